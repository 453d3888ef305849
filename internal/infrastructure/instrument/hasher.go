// Package instrument decorates core components with Prometheus metrics,
// keeping the core itself free of observability concerns.
package instrument

import (
	"time"

	"github.com/ayurveda/iam-service/internal/api/metrics"
	"github.com/ayurveda/iam-service/internal/core/service"
)

// Hasher wraps a PasswordHasher and records operation durations.
type Hasher struct {
	next service.PasswordHasher
}

func NewHasher(next service.PasswordHasher) *Hasher {
	return &Hasher{next: next}
}

func (h *Hasher) Hash(password string) (string, error) {
	start := time.Now()
	out, err := h.next.Hash(password)
	metrics.PasswordHashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
	return out, err
}

func (h *Hasher) Verify(password, hash string) bool {
	start := time.Now()
	ok := h.next.Verify(password, hash)
	metrics.PasswordHashDuration.WithLabelValues("verify").Observe(time.Since(start).Seconds())
	return ok
}
