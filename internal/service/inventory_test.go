package service

import (
	"context"
	"sync"
	"testing"

	"github.com/amirahs/stockroom-golang/internal/apperror"
	"github.com/amirahs/stockroom-golang/internal/models"
)

func TestCreateItemValidation(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, models.RoleStaff)
	ctx := context.Background()

	if _, err := env.inventory.CreateItem(ctx, user.ID, ItemInput{Name: "  "}); apperror.GetCode(err) != apperror.CodeValidation {
		t.Errorf("blank name: code = %q, want validation", apperror.GetCode(err))
	}

	bogus := int64(999)
	_, err := env.inventory.CreateItem(ctx, user.ID, ItemInput{Name: "Apples", CategoryID: &bogus})
	if apperror.GetCode(err) != apperror.CodeValidation {
		t.Errorf("unknown category: code = %q, want validation", apperror.GetCode(err))
	}
}

func TestUpdateItemOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.mustUser(t, models.RoleStaff)
	other := env.mustUser(t, models.RoleStaff)
	item := env.mustItem(t, owner.ID, "Apples", 10, nil)
	ctx := context.Background()

	_, err := env.inventory.UpdateItem(ctx, other.ID, item.ID, ItemInput{Name: "Stolen", Quantity: 0})
	if apperror.GetCode(err) != apperror.CodePermission {
		t.Errorf("code = %q, want permission", apperror.GetCode(err))
	}

	if err := env.inventory.DeleteItem(ctx, other.ID, item.ID); apperror.GetCode(err) != apperror.CodePermission {
		t.Errorf("delete: code = %q, want permission", apperror.GetCode(err))
	}

	// Untouched.
	got, _ := env.items.GetByID(ctx, item.ID)
	if got.Name != "Apples" {
		t.Errorf("name = %q, want Apples", got.Name)
	}
}

func TestBulkUpdateAppliesAll(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, models.RoleStaff)
	a := env.mustItem(t, user.ID, "A", 10, nil)
	b := env.mustItem(t, user.ID, "B", 20, nil)
	ctx := context.Background()

	err := env.inventory.BulkUpdateQuantities(ctx, user.ID, []QuantityUpdate{
		{ItemID: a.ID, NewQuantity: 1},
		{ItemID: b.ID, NewQuantity: 2},
	})
	if err != nil {
		t.Fatalf("bulk update: %v", err)
	}

	gotA, _ := env.items.GetByID(ctx, a.ID)
	gotB, _ := env.items.GetByID(ctx, b.ID)
	if gotA.Quantity != 1 || gotB.Quantity != 2 {
		t.Errorf("quantities = %d/%d, want 1/2", gotA.Quantity, gotB.Quantity)
	}

	if inv := inventoryLogsFor(t, env, a.ID); len(inv) != 1 {
		t.Errorf("expected 1 inventory log for A, got %d", len(inv))
	}
}

func TestBulkUpdateIsAtomic(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, models.RoleStaff)
	a := env.mustItem(t, user.ID, "A", 10, nil)
	ctx := context.Background()

	err := env.inventory.BulkUpdateQuantities(ctx, user.ID, []QuantityUpdate{
		{ItemID: a.ID, NewQuantity: 1},
		{ItemID: 999, NewQuantity: 5}, // does not exist
	})
	if apperror.GetCode(err) != apperror.CodeValidation {
		t.Fatalf("code = %q, want validation", apperror.GetCode(err))
	}

	// The whole batch rolled back: A keeps its old quantity, no logs.
	got, _ := env.items.GetByID(ctx, a.ID)
	if got.Quantity != 10 {
		t.Errorf("quantity = %d, want 10 (batch must be all-or-nothing)", got.Quantity)
	}
	if inv := inventoryLogsFor(t, env, a.ID); len(inv) != 0 {
		t.Errorf("expected no inventory logs after rollback, got %d", len(inv))
	}
}

func TestBulkUpdateSkipsUnchangedRows(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, models.RoleStaff)
	a := env.mustItem(t, user.ID, "A", 10, nil)
	ctx := context.Background()

	err := env.inventory.BulkUpdateQuantities(ctx, user.ID, []QuantityUpdate{
		{ItemID: a.ID, NewQuantity: 10}, // same value
	})
	if err != nil {
		t.Fatalf("bulk update: %v", err)
	}
	if inv := inventoryLogsFor(t, env, a.ID); len(inv) != 0 {
		t.Errorf("unchanged row must not produce a log, got %d", len(inv))
	}
	// And no UPDATE audit row either, just the original CREATE.
	if audit := auditLogsFor(t, env, a.ID); len(audit) != 1 {
		t.Errorf("expected only the CREATE audit row, got %d", len(audit))
	}
}

func TestConcurrentEditsChainQuantityLogs(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, models.RoleStaff)
	item := env.mustItem(t, user.ID, "Apples", 10, nil)
	ctx := context.Background()

	// Two racing edits of the same item. The row lock serializes them, so
	// whatever order they land in, each log's previous quantity must be
	// the value the other edit (or the initial 10) actually left behind.
	var wg sync.WaitGroup
	for _, quantity := range []int{7, 3} {
		wg.Add(1)
		go func(quantity int) {
			defer wg.Done()
			if _, err := env.inventory.UpdateItem(ctx, user.ID, item.ID, ItemInput{
				Name:     "Apples",
				Quantity: quantity,
			}); err != nil {
				t.Errorf("update to %d: %v", quantity, err)
			}
		}(quantity)
	}
	wg.Wait()

	inv := inventoryLogsFor(t, env, item.ID)
	if len(inv) != 2 {
		t.Fatalf("expected 2 inventory logs, got %d", len(inv))
	}
	a, b := inv[0], inv[1]
	chained := (a.PreviousQuantity == 10 && b.PreviousQuantity == a.NewQuantity) ||
		(b.PreviousQuantity == 10 && a.PreviousQuantity == b.NewQuantity)
	if !chained {
		t.Errorf("logs do not chain: %d->%d and %d->%d",
			a.PreviousQuantity, a.NewQuantity, b.PreviousQuantity, b.NewQuantity)
	}
}

func TestListItemsSorting(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, models.RoleStaff)
	env.mustItem(t, user.ID, "Zebra Feed", 3, nil)
	env.mustItem(t, user.ID, "Apples", 9, nil)
	ctx := context.Background()

	byName, err := env.inventory.ListItems(ctx, user.ID, "name")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if byName[0].Name != "Apples" {
		t.Errorf("first by name = %q, want Apples", byName[0].Name)
	}

	byQuantity, err := env.inventory.ListItems(ctx, user.ID, "quantity")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if byQuantity[0].Name != "Zebra Feed" {
		t.Errorf("first by quantity = %q, want Zebra Feed", byQuantity[0].Name)
	}
}
