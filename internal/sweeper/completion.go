// Package sweeper contains the background job that finalizes elapsed
// reservations. Clients may infer "completed" from wall-clock
// comparison for display purposes, but the transition recorded here is
// the authoritative one.
package sweeper

import (
	"context"
	"log"
	"time"

	"github.com/admin-AK47/MRBS/internal/repository"
)

// Completion periodically flips confirmed reservations whose end time
// has passed to completed.
type Completion struct {
	reservations *repository.ReservationRepo
	interval     time.Duration
}

// NewCompletion returns a sweeper that runs every interval. A zero or
// negative interval falls back to one minute.
func NewCompletion(reservations *repository.ReservationRepo, interval time.Duration) *Completion {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Completion{reservations: reservations, interval: interval}
}

// Run sweeps until the context is cancelled. Each tick is bounded by
// its own timeout so a slow database cannot pile up overlapping
// sweeps.
func (s *Completion) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tickCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			n, err := s.reservations.CompleteElapsed(tickCtx, time.Now())
			cancel()
			if err != nil {
				log.Printf("completion-sweeper: sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("completion-sweeper: marked %d reservation(s) completed", n)
			}
		}
	}
}
