package notify

import (
	"context"
	"time"
)

const (
	stockCheckInterval = 5 * time.Minute
	autoCleanInterval  = time.Hour
)

// Run drives the engine's periodic work until ctx is cancelled: the
// low-stock scan every five minutes and the history retention sweep hourly.
func (e *Engine) Run(ctx context.Context, products LowStockLister) {
	stockTicker := time.NewTicker(stockCheckInterval)
	cleanTicker := time.NewTicker(autoCleanInterval)
	defer stockTicker.Stop()
	defer cleanTicker.Stop()

	e.logger.Info("notification watcher started",
		"stock_interval", stockCheckInterval, "clean_interval", autoCleanInterval)

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("notification watcher stopped")
			return
		case <-stockTicker.C:
			e.CheckStockAlerts(ctx, products)
		case <-cleanTicker.C:
			e.AutoClean(ctx)
		}
	}
}
