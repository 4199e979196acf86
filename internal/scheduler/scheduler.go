package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dbalakin/notewall/internal/metrics"
	"github.com/dbalakin/notewall/internal/repo"
)

// Run starts a background cron that purges expired session rows on the
// given spec (e.g. "@every 15m"). Without the purge, expired rows are
// merely invisible to lookups; this keeps the table from growing forever.
// Returns the cron so the caller can Stop it on shutdown.
func Run(sessions *repo.SessionRepo, spec string) (*cron.Cron, error) {
	c := cron.New()

	purge := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		n, err := sessions.DeleteExpired(ctx)
		if err != nil {
			slog.Error("session purge failed", "error", err)
			return
		}
		metrics.AddSessionsPurged(n)
		if n > 0 {
			slog.Info("purged expired sessions", "count", n)
		}
	}

	if _, err := c.AddFunc(spec, purge); err != nil {
		return nil, err
	}

	c.Start()
	slog.Info("session purge scheduled", "spec", spec)
	return c, nil
}
