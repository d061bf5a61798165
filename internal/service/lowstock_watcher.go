package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/amirahs/stockroom-golang/internal/repository"
)

// LowStockWatcher periodically scans for items at or below the threshold and
// notifies their owners. An item is alerted once per crossing: after its
// quantity recovers above the threshold it becomes eligible again.
type LowStockWatcher struct {
	items     repository.ItemRepository
	notifier  *Notifier
	threshold int
	interval  time.Duration

	alerted map[int64]bool
}

func NewLowStockWatcher(items repository.ItemRepository, notifier *Notifier,
	threshold int, interval time.Duration) *LowStockWatcher {
	return &LowStockWatcher{
		items:     items,
		notifier:  notifier,
		threshold: threshold,
		interval:  interval,
		alerted:   map[int64]bool{},
	}
}

// Run blocks until ctx is cancelled, checking on every tick.
func (w *LowStockWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("Low stock watcher started (threshold %d, every %s)", w.threshold, w.interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check runs one scan. Exported so a request path or test can force it.
func (w *LowStockWatcher) Check(ctx context.Context) {
	low, err := w.items.ListLowStock(ctx, w.threshold)
	if err != nil {
		log.Printf("low stock check failed: %v", err)
		return
	}

	lowNow := make(map[int64]bool, len(low))
	for _, item := range low {
		lowNow[item.ID] = true
		if w.alerted[item.ID] {
			continue
		}
		w.alerted[item.ID] = true
		message := fmt.Sprintf("Low stock: %q is down to %d (threshold %d)",
			item.Name, item.Quantity, w.threshold)
		if err := w.notifier.Notify(ctx, item.UserID, message, fmt.Sprintf("/v1/items/%d", item.ID)); err != nil {
			log.Printf("low stock notify failed for item %d: %v", item.ID, err)
		}
	}

	// Recovered items become eligible for the next crossing.
	for id := range w.alerted {
		if !lowNow[id] {
			delete(w.alerted, id)
		}
	}
}
