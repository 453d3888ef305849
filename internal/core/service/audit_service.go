package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ayurveda/iam-service/internal/core/domain"
	"github.com/ayurveda/iam-service/internal/core/ports"
)

// LastLoginStore records the most recent successful login per username
// (Redis-backed in production).
type LastLoginStore interface {
	Record(ctx context.Context, username string, ts int64) error
	Get(ctx context.Context, username string) (int64, error)
}

type auditService struct {
	repo      ports.AuditRepository
	lastLogin LastLoginStore
	log       zerolog.Logger
}

// NewAuditService returns an AuditService that persists auth events and keeps
// the last-login marker current.
func NewAuditService(repo ports.AuditRepository, lastLogin LastLoginStore, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, lastLogin: lastLogin, log: log}
}

// Process persists a single auth event. The last-login update is best effort:
// a Redis hiccup must not lose the durable audit record.
func (s *auditService) Process(ctx context.Context, in ports.AuthEventInput) error {
	event := &domain.AuthEvent{
		Username:  in.Username,
		Result:    in.Result,
		Timestamp: in.Timestamp,
		RemoteIP:  in.RemoteIP,
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}

	if in.Result == domain.AuthResultSuccess && s.lastLogin != nil {
		if err := s.lastLogin.Record(ctx, in.Username, in.Timestamp.Unix()); err != nil {
			s.log.Warn().Err(err).Str("username", in.Username).Msg("failed to update last-login marker")
		}
	}

	s.log.Debug().
		Str("username", in.Username).
		Str("result", string(in.Result)).
		Msg("auth event recorded")

	return nil
}
