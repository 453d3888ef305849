package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayurveda/iam-service/internal/core/domain"
	"github.com/ayurveda/iam-service/internal/core/ports"
)

type recordingAuditService struct {
	mu     sync.Mutex
	events []ports.AuthEventInput
	done   chan struct{}
	want   int
}

func newRecordingAuditService(want int) *recordingAuditService {
	return &recordingAuditService{done: make(chan struct{}), want: want}
}

func (s *recordingAuditService) Process(_ context.Context, event ports.AuthEventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func (s *recordingAuditService) wait(t *testing.T) []ports.AuthEventInput {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %d events", s.want)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.AuthEventInput, len(s.events))
	copy(out, s.events)
	return out
}

func TestDispatcher_PreservesPerUserOrder(t *testing.T) {
	const n = 20
	svc := newRecordingAuditService(n)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		d.Enqueue(ports.AuthEventInput{
			Username:  "doctor@test.com",
			Result:    domain.AuthResultSuccess,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
	}

	events := svc.wait(t)
	for i := 1; i < len(events); i++ {
		if !events[i].Timestamp.After(events[i-1].Timestamp) {
			t.Fatalf("events out of order at %d: %v before %v", i, events[i-1].Timestamp, events[i].Timestamp)
		}
	}
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	svc := newRecordingAuditService(1)
	d := NewDispatcher(1, svc, zerolog.Nop())
	// Workers never started: the channel fills and further events are dropped.

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer*2; i++ {
			d.Enqueue(ports.AuthEventInput{Username: "doctor@test.com", Result: domain.AuthResultSuccess})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("enqueue blocked on a full queue")
	}
}

func TestDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newRecordingAuditService(1), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
