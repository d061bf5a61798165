package service

import (
	"context"
	"testing"
	"time"

	"github.com/amirahs/stockroom-golang/internal/models"
)

func TestSummary(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, models.RoleStaff)
	other := env.mustUser(t, models.RoleStaff)
	produce := env.mustCategory(t, "Produce", nil)

	env.mustItem(t, user.ID, "Apples", 10, &produce.ID)
	env.mustItem(t, user.ID, "Pears", 2, &produce.ID)
	env.mustItem(t, user.ID, "Misc", 1, nil)
	env.mustItem(t, other.ID, "Not Mine", 100, nil)

	reports := NewReportService(env.items, 5)
	summary, err := reports.Summary(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if summary.TotalItems != 3 {
		t.Errorf("total items = %d, want 3", summary.TotalItems)
	}
	if summary.TotalQuantity != 13 {
		t.Errorf("total quantity = %d, want 13", summary.TotalQuantity)
	}
	if summary.LowStockCount != 2 { // Pears (2) and Misc (1)
		t.Errorf("low stock count = %d, want 2", summary.LowStockCount)
	}
	if len(summary.Categories) != 1 || summary.Categories[0].ItemCount != 2 {
		t.Errorf("category counts = %+v, want Produce x2", summary.Categories)
	}
}

func TestLowStockThresholdIsInclusive(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, models.RoleStaff)
	env.mustItem(t, user.ID, "At Threshold", 5, nil)
	env.mustItem(t, user.ID, "Above", 6, nil)

	reports := NewReportService(env.items, 5)
	low, err := reports.LowStock(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	names := itemNames(low)
	if !names["At Threshold"] {
		t.Error("quantity == threshold counts as low stock")
	}
	if names["Above"] {
		t.Error("quantity above threshold must not be listed")
	}
}

func TestLowStockWatcherAlertsOncePerCrossing(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, models.RoleStaff)
	item := env.mustItem(t, user.ID, "Apples", 2, nil)
	ctx := context.Background()

	watcher := NewLowStockWatcher(env.items, env.notifier, 5, time.Minute)

	watcher.Check(ctx)
	watcher.Check(ctx) // same crossing, no second alert

	notifications, _ := env.notifications.ListByUser(ctx, user.ID)
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}

	// Recover above the threshold, then drop again: a new crossing.
	if err := env.items.UpdateQuantity(ctx, item.ID, 10); err != nil {
		t.Fatalf("restock: %v", err)
	}
	watcher.Check(ctx)
	if err := env.items.UpdateQuantity(ctx, item.ID, 1); err != nil {
		t.Fatalf("drain: %v", err)
	}
	watcher.Check(ctx)

	notifications, _ = env.notifications.ListByUser(ctx, user.ID)
	if len(notifications) != 2 {
		t.Errorf("expected 2 notifications after a second crossing, got %d", len(notifications))
	}
}
