package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayurveda/iam-service/internal/core/domain"
	"github.com/ayurveda/iam-service/internal/core/ports"
)

type captureSink struct {
	events []ports.AuthEventInput
}

func (s *captureSink) Enqueue(event ports.AuthEventInput) {
	s.events = append(s.events, event)
}

func newTestAuthService(t *testing.T) (*AuthService, *captureSink) {
	t.Helper()
	repo := newStubUserRepo()
	registry := newTestRegistry(t)
	hasher := NewBcryptHasher(bcrypt.MinCost, 2)
	userSvc := NewUserService(repo, registry, hasher, zerolog.Nop())

	if _, err := userSvc.Create(context.Background(), validInput(facultyID(t, registry))); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}

	sink := &captureSink{}
	issuer := NewJWTIssuer("secret", time.Hour)
	return NewAuthService(repo, hasher, issuer, sink, zerolog.Nop()), sink
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, sink := newTestAuthService(t)

	result, err := svc.Login(context.Background(), "doc1", "Doctor@123", "10.0.0.1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if result.Username != "doc1" || result.RoleName != domain.RoleFaculty {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.UserID == 0 {
		t.Fatalf("expected user id in result")
	}

	claims, err := NewJWTIssuer("secret", time.Hour).Verify(result.Token)
	if err != nil {
		t.Fatalf("token did not verify: %v", err)
	}
	if claims.Username != "doc1" || claims.RoleName != domain.RoleFaculty {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if len(sink.events) != 1 || sink.events[0].Result != domain.AuthResultSuccess {
		t.Fatalf("expected one success audit event, got %+v", sink.events)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, sink := newTestAuthService(t)

	result, err := svc.Login(context.Background(), "doc1", "wrong", "")
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected no result on failure, got %+v", result)
	}
	if len(sink.events) != 1 || sink.events[0].Result != domain.AuthResultCredentialMismatch {
		t.Fatalf("expected credential_mismatch audit event, got %+v", sink.events)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, sink := newTestAuthService(t)

	result, err := svc.Login(context.Background(), "ghost", "Doctor@123", "")
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected no result on failure, got %+v", result)
	}
	if len(sink.events) != 1 || sink.events[0].Result != domain.AuthResultIdentityNotFound {
		t.Fatalf("expected identity_not_found audit event, got %+v", sink.events)
	}
}

// The external error for unknown user and wrong password must be the same
// value so callers cannot distinguish the two cases.
func TestAuthService_Login_FailuresIndistinguishable(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, errUnknown := svc.Login(context.Background(), "ghost", "whatever", "")
	_, errWrong := svc.Login(context.Background(), "doc1", "wrong", "")

	if errUnknown == nil || errWrong == nil {
		t.Fatalf("expected both logins to fail")
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Fatalf("failure errors differ: %q vs %q", errUnknown, errWrong)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc, sink := newTestAuthService(t)

	if _, err := svc.Login(context.Background(), "", "", ""); !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
	if len(sink.events) != 0 {
		t.Fatalf("empty credentials should not reach the audit trail")
	}
}
