package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper periodically purges refresh-token records that are expired or
// revoked. It runs as one long-lived background goroutine; individual
// iteration failures are logged and retried on the next tick, never fatal.
type Sweeper struct {
	tokens   RefreshTokenRepositoryInterface
	interval time.Duration
	maxRuns  int // 0 means run until cancelled; tests set a bound
	now      func() time.Time
}

func NewSweeper(tokens RefreshTokenRepositoryInterface, interval time.Duration) *Sweeper {
	return &Sweeper{tokens: tokens, interval: interval, now: time.Now}
}

// WithMaxRuns bounds the number of iterations so tests can let the loop
// terminate deterministically.
func (s *Sweeper) WithMaxRuns(n int) *Sweeper {
	s.maxRuns = n
	return s
}

// WithClock overrides the sweeper clock. Test hook.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	s.now = now
	return s
}

// PurgeOnce deletes all expired or revoked refresh-token records.
func (s *Sweeper) PurgeOnce(ctx context.Context) (int64, error) {
	return s.tokens.DeleteExpired(ctx, s.now())
}

// Run executes the purge loop until ctx is cancelled (or maxRuns is
// reached). Cancellation is observed at each iteration boundary, so the
// loop stops within one interval of the signal.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	runs := 0
	for {
		if deleted, err := s.PurgeOnce(ctx); err != nil {
			log.Warn().Err(err).Msg("refresh token purge failed")
		} else if deleted > 0 {
			log.Info().Int64("deleted", deleted).Msg("purged refresh tokens")
		}

		runs++
		if s.maxRuns > 0 && runs >= s.maxRuns {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
