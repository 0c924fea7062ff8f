package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Warmer refreshes the catalog cache on a cron schedule so the home view
// rarely waits on the upstream API.
type Warmer struct {
	cron    *cron.Cron
	client  *Client
	logger  *zap.Logger
	timeout time.Duration
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewWarmer validates schedule (standard five-field cron syntax or a
// descriptor such as "@every 4m") and registers the warm job.
func NewWarmer(client *Client, schedule string, logger *zap.Logger) (*Warmer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Warmer{
		cron:    cron.New(),
		client:  client,
		logger:  logger,
		timeout: client.cfg.Timeout * time.Duration(len(warmPaths)),
		ctx:     ctx,
		cancel:  cancel,
	}
	if _, err := w.cron.AddFunc(schedule, w.warm); err != nil {
		cancel()
		return nil, fmt.Errorf("invalid warm schedule %q: %w", schedule, err)
	}
	return w, nil
}

// Start runs the schedule in the background.
func (w *Warmer) Start() {
	w.cron.Start()
	w.logger.Info("catalog cache warming enabled", zap.Int("jobs", len(w.cron.Entries())))
}

// Stop cancels an in-flight warm and waits for running jobs to return.
func (w *Warmer) Stop() {
	w.cancel()
	<-w.cron.Stop().Done()
}

func (w *Warmer) warm() {
	ctx, cancel := context.WithTimeout(w.ctx, w.timeout)
	defer cancel()

	start := time.Now()
	if err := w.client.Warm(ctx); err != nil {
		w.logger.Warn("catalog cache warm failed", zap.Error(err))
		return
	}
	w.logger.Debug("catalog cache warm complete", zap.Duration("duration", time.Since(start)))
}
