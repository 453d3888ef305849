package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayurveda/iam-service/internal/core/domain"
	"github.com/ayurveda/iam-service/internal/core/ports"
)

// AuditSink receives login outcomes for asynchronous recording. Enqueue must
// never block the login path.
type AuditSink interface {
	Enqueue(event ports.AuthEventInput)
}

// AuthService implements login. Each call is a single-shot, stateless
// credential check: lookup, verify, issue token. The two internal failure
// modes are logged and audited with their specific reason but collapse to
// ErrAuthenticationFailed at the boundary so callers cannot tell whether the
// username or the password was wrong.
type AuthService struct {
	repo   ports.UserRepository
	hasher PasswordHasher
	issuer ports.TokenIssuer
	audit  AuditSink
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher PasswordHasher, issuer ports.TokenIssuer, audit AuditSink, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, issuer: issuer, audit: audit, log: log}
}

func (s *AuthService) Login(ctx context.Context, username, password, remoteIP string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrAuthenticationFailed
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("username", username).Msg("login failed: identity not found")
			s.record(username, domain.AuthResultIdentityNotFound, remoteIP)
			return nil, domain.ErrAuthenticationFailed
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Warn().Str("username", username).Msg("login failed: credential mismatch")
		s.record(username, domain.AuthResultCredentialMismatch, remoteIP)
		return nil, domain.ErrAuthenticationFailed
	}

	token, err := s.issuer.Issue(user.Username, user.Role.Name)
	if err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("failed to issue token")
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Str("role", user.Role.Name).Msg("login successful")
	s.record(user.Username, domain.AuthResultSuccess, remoteIP)

	return &ports.LoginResult{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		RoleName: user.Role.Name,
	}, nil
}

func (s *AuthService) record(username string, result domain.AuthEventResult, remoteIP string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuthEventInput{
		Username:  username,
		Result:    result,
		Timestamp: time.Now().UTC(),
		RemoteIP:  remoteIP,
	})
}
