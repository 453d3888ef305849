package ports

import (
	"context"
	"time"

	"github.com/ayurveda/iam-service/internal/core/domain"
)

// AuthEventInput is the DTO handed to the audit pipeline after each login
// attempt. Events for the same username are processed in order.
type AuthEventInput struct {
	Username  string
	Result    domain.AuthEventResult
	Timestamp time.Time
	RemoteIP  string
}

// AuditService persists login outcomes for internal diagnostics.
type AuditService interface {
	Process(ctx context.Context, event AuthEventInput) error
}

// AuditRepository stores the auth-event trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
	FindByUsername(ctx context.Context, username string, limit int64) ([]domain.AuthEvent, error)
}
