package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/olegsm/imagewall/internal/logging"
	"github.com/robfig/cron/v3"
)

// Watcher adapts the two external event sources to the feed: a periodic
// background refresh and the viewport-proximity trigger. Both are best
// effort; overlap protection lives in the feed's loading guards, not here.
type Watcher struct {
	feed     *Feed
	logger   logging.Logger
	interval time.Duration
	cron     *cron.Cron
}

func NewWatcher(f *Feed, interval time.Duration, logger logging.Logger) *Watcher {
	return &Watcher{
		feed:     f,
		logger:   logger,
		interval: interval,
		cron:     cron.New(),
	}
}

// Start schedules the periodic forced list refresh.
func (w *Watcher) Start() error {
	_, err := w.cron.AddFunc(fmt.Sprintf("@every %s", w.interval), func() {
		ctx := context.Background()
		if err := w.feed.Load(ctx, false, true); err != nil {
			w.logger.Warn(ctx, "background refresh", "error", err)
		}
	})
	if err != nil {
		return err
	}
	w.cron.Start()
	return nil
}

// Stop halts the periodic refresh. Only called on teardown.
func (w *Watcher) Stop() {
	w.cron.Stop()
}

// NearEnd is the viewport-proximity signal. It may fire many times in a row;
// the feed treats redundant calls as no-ops.
func (w *Watcher) NearEnd(ctx context.Context) {
	if err := w.feed.LoadMore(ctx); err != nil {
		w.logger.Warn(ctx, "loading next page", "error", err)
	}
}
