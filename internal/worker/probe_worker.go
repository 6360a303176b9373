package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Prober checks the catalog backend once. *service.BackendService
// implements it.
type Prober interface {
	Check(ctx context.Context) error
}

// ProbeWorker periodically checks that the catalog backend answers.
type ProbeWorker struct {
	prober   Prober
	interval time.Duration
}

// NewProbeWorker constructs a ProbeWorker.
func NewProbeWorker(prober Prober, interval time.Duration) *ProbeWorker {
	return &ProbeWorker{
		prober:   prober,
		interval: interval,
	}
}

// Start begins the periodic probe loop and listens for context cancellation.
// A zero interval disables the worker.
func (w *ProbeWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		log.Info().Msg("Backend probe worker disabled")
		return
	}
	log.Info().Dur("interval", w.interval).Msg("Starting backend probe worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Backend probe worker stopped")
			return
		}
	}
}

func (w *ProbeWorker) run(ctx context.Context) {
	start := time.Now()
	if err := w.prober.Check(ctx); err != nil {
		log.Warn().Err(err).Msg("Catalog backend unreachable")
		return
	}
	log.Debug().Dur("duration", time.Since(start)).Msg("Catalog backend reachable")
}
