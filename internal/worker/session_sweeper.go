package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper is a session store that can drop its expired entries.
type Sweeper interface {
	Sweep() int
}

// SessionSweeper periodically reclaims idle sessions from an in-process store.
type SessionSweeper struct {
	store    Sweeper
	interval time.Duration
	log      zerolog.Logger
}

// NewSessionSweeper creates a new SessionSweeper.
func NewSessionSweeper(store Sweeper, interval time.Duration, log zerolog.Logger) *SessionSweeper {
	return &SessionSweeper{
		store:    store,
		interval: interval,
		log:      log.With().Str("component", "session_sweeper").Logger(),
	}
}

// Start begins the sweep loop. Call in a goroutine.
func (w *SessionSweeper) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.sweepOnce()
		}
	}
}

func (w *SessionSweeper) sweepOnce() int {
	removed := w.store.Sweep()
	if removed > 0 {
		w.log.Debug().Int("removed", removed).Msg("Expired sessions swept")
	}
	return removed
}
