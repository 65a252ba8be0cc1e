package recommendation

import (
	"context"
	"log"
	"time"
)

// Scheduler periodically rescans active users and refreshes stale
// recommendation sets in the background.
type Scheduler struct {
	store    *Store
	interval time.Duration
	stop     chan struct{}
}

func NewScheduler(store *Store, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Scheduler{
		store:    store,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start launches the refresh loop in a goroutine
func (s *Scheduler) Start() {
	log.Printf("recommendation: scheduler started (interval %s)", s.interval)
	go s.run()
}

func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			s.store.RefreshStale(ctx)
			cancel()
		case <-s.stop:
			log.Println("recommendation: scheduler stopped")
			return
		}
	}
}
