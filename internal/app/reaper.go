package app

import (
	"context"
	"log"
	"time"
)

const defaultSweepInterval = 10 * time.Second

// Reaper periodically clears expired challenges so stale entries never block
// a future Open. It only removes; correctness of an in-flight Submit racing
// a sweep is handled by SweepExpired's id-conditioned removal.
type Reaper struct {
	service  *ChallengeService
	interval time.Duration
}

func NewReaper(service *ChallengeService, interval time.Duration) *Reaper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Reaper{service: service, interval: interval}
}

// Run sweeps on a fixed period until ctx is canceled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.service.SweepExpired(); n > 0 {
				log.Printf("reaper cleared %d expired challenge(s)", n)
			}
		}
	}
}
