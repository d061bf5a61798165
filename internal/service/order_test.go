package service

import (
	"context"
	"strings"
	"testing"

	"github.com/amirahs/stockroom-golang/internal/apperror"
	"github.com/amirahs/stockroom-golang/internal/models"
)

// orderFixture: one department that may order from "Produce" only.
type orderFixture struct {
	env     *testEnv
	user    *models.User
	dept    *models.Department
	apples  *models.InventoryItem // Produce, quantity 10
	hammers *models.InventoryItem // Tools, not orderable by dept
}

func newOrderFixture(t *testing.T) *orderFixture {
	env := newTestEnv(t)
	user := env.mustUser(t, models.RoleStaff)
	produce := env.mustCategory(t, "Produce", nil)
	tools := env.mustCategory(t, "Tools", nil)
	apples := env.mustItem(t, user.ID, "Apples", 10, &produce.ID)
	hammers := env.mustItem(t, user.ID, "Hammers", 5, &tools.ID)
	dept := env.mustDepartment(t, "Kitchen", []int64{produce.ID})
	return &orderFixture{env: env, user: user, dept: dept, apples: apples, hammers: hammers}
}

func TestCreateOrderValidation(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		lines   []OrderLine
		wantErr string
	}{
		{
			name:    "no lines",
			lines:   nil,
			wantErr: "at least one line",
		},
		{
			name:    "zero quantity",
			lines:   []OrderLine{{ItemID: f.apples.ID, Quantity: 0}},
			wantErr: "positive integer",
		},
		{
			name:    "item outside accessible categories",
			lines:   []OrderLine{{ItemID: f.hammers.ID, Quantity: 1}},
			wantErr: "not orderable",
		},
		{
			name: "one bad line rejects the whole order",
			lines: []OrderLine{
				{ItemID: f.apples.ID, Quantity: 2},
				{ItemID: f.hammers.ID, Quantity: 1},
			},
			wantErr: "not orderable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.env.orderSvc.Create(ctx, f.dept.ID, f.user.ID, tt.lines)
			if err == nil {
				t.Fatal("expected an error")
			}
			if apperror.GetCode(err) != apperror.CodeValidation {
				t.Errorf("code = %q, want validation", apperror.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}

	// No drafts should have been saved.
	orders, err := f.env.orderSvc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected no orders persisted, got %d", len(orders))
	}
}

func TestCreateOrderDraft(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.env.orderSvc.Create(ctx, f.dept.ID, f.user.ID, []OrderLine{
		{ItemID: f.apples.ID, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Confirmed {
		t.Error("new order must start as a draft")
	}
	if order.Reference == "" {
		t.Error("order must get a reference")
	}

	// Creating a draft must not touch stock.
	item, _ := f.env.items.GetByID(ctx, f.apples.ID)
	if item.Quantity != 10 {
		t.Errorf("quantity = %d, want 10 (draft must not decrement)", item.Quantity)
	}
}

func TestConfirmDecrementsStockAndLogs(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.env.orderSvc.Create(ctx, f.dept.ID, f.user.ID, []OrderLine{
		{ItemID: f.apples.ID, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	confirmed, err := f.env.orderSvc.Confirm(ctx, order.ID, f.user.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !confirmed.Confirmed {
		t.Error("order should be confirmed")
	}

	item, _ := f.env.items.GetByID(ctx, f.apples.ID)
	if item.Quantity != 7 {
		t.Errorf("quantity = %d, want 7", item.Quantity)
	}

	inv := inventoryLogsFor(t, f.env, f.apples.ID)
	if len(inv) != 1 {
		t.Fatalf("expected 1 inventory log, got %d", len(inv))
	}
	if inv[0].PreviousQuantity != 10 || inv[0].NewQuantity != 7 {
		t.Errorf("inventory log = %d -> %d, want 10 -> 7", inv[0].PreviousQuantity, inv[0].NewQuantity)
	}

	// CREATE + the confirmation's UPDATE.
	audit := auditLogsFor(t, f.env, f.apples.ID)
	if len(audit) != 2 {
		t.Errorf("expected 2 audit logs, got %d", len(audit))
	}
}

func TestConfirmDecrementsEveryLine(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	produce, _ := f.env.categories.GetByID(ctx, *f.apples.CategoryID)
	pears := f.env.mustItem(t, f.user.ID, "Pears", 5, &produce.ID)

	order, err := f.env.orderSvc.Create(ctx, f.dept.ID, f.user.ID, []OrderLine{
		{ItemID: f.apples.ID, Quantity: 3},
		{ItemID: pears.ID, Quantity: 5},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.env.orderSvc.Confirm(ctx, order.ID, f.user.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	gotApples, _ := f.env.items.GetByID(ctx, f.apples.ID)
	gotPears, _ := f.env.items.GetByID(ctx, pears.ID)
	if gotApples.Quantity != 7 {
		t.Errorf("apples = %d, want 7", gotApples.Quantity)
	}
	if gotPears.Quantity != 0 {
		t.Errorf("pears = %d, want 0", gotPears.Quantity)
	}

	// One inventory log per decremented line.
	if inv := inventoryLogsFor(t, f.env, f.apples.ID); len(inv) != 1 {
		t.Errorf("apples inventory logs = %d, want 1", len(inv))
	}
	if inv := inventoryLogsFor(t, f.env, pears.ID); len(inv) != 1 {
		t.Errorf("pears inventory logs = %d, want 1", len(inv))
	}
}

func TestConfirmTwiceIsRejectedAndDecrementsOnce(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, _ := f.env.orderSvc.Create(ctx, f.dept.ID, f.user.ID, []OrderLine{
		{ItemID: f.apples.ID, Quantity: 3},
	})
	if _, err := f.env.orderSvc.Confirm(ctx, order.ID, f.user.ID); err != nil {
		t.Fatalf("first confirm: %v", err)
	}

	_, err := f.env.orderSvc.Confirm(ctx, order.ID, f.user.ID)
	if err == nil {
		t.Fatal("second confirm must fail")
	}
	if apperror.GetCode(err) != apperror.CodeInvalidState {
		t.Errorf("code = %q, want invalid_state", apperror.GetCode(err))
	}

	item, _ := f.env.items.GetByID(ctx, f.apples.ID)
	if item.Quantity != 7 {
		t.Errorf("quantity = %d, want 7 (must not decrement twice)", item.Quantity)
	}
	if inv := inventoryLogsFor(t, f.env, f.apples.ID); len(inv) != 1 {
		t.Errorf("expected 1 inventory log, got %d", len(inv))
	}
}

func TestConfirmAllowsNegativeStock(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, _ := f.env.orderSvc.Create(ctx, f.dept.ID, f.user.ID, []OrderLine{
		{ItemID: f.apples.ID, Quantity: 15},
	})
	if _, err := f.env.orderSvc.Confirm(ctx, order.ID, f.user.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	item, _ := f.env.items.GetByID(ctx, f.apples.ID)
	if item.Quantity != -5 {
		t.Errorf("quantity = %d, want -5 (over-ordering goes negative, not rejected)", item.Quantity)
	}
}

func TestConfirmUnknownOrder(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.env.orderSvc.Confirm(context.Background(), 9999, f.user.ID)
	if apperror.GetCode(err) != apperror.CodeNotFound {
		t.Errorf("code = %q, want not_found", apperror.GetCode(err))
	}
}

func TestDeleteItemRemovesOrderLines(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.env.orderSvc.Create(ctx, f.dept.ID, f.user.ID, []OrderLine{
		{ItemID: f.apples.ID, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Deleting an item referenced by a draft must succeed; its lines
	// cascade away with it.
	if err := f.env.inventory.DeleteItem(ctx, f.user.ID, f.apples.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	detail, err := f.env.orderSvc.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Errorf("order still has %d lines after item deletion, want 0", len(detail.Items))
	}
}

func TestGetOrderIncludesLines(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, _ := f.env.orderSvc.Create(ctx, f.dept.ID, f.user.ID, []OrderLine{
		{ItemID: f.apples.ID, Quantity: 3},
	})

	detail, err := f.env.orderSvc.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(detail.Items))
	}
	line := detail.Items[0]
	if line.ItemID != f.apples.ID || line.QuantityOrdered != 3 {
		t.Errorf("line = %+v, want apples x3", line)
	}
	if line.ItemName != "Apples" {
		t.Errorf("line item name = %q, want Apples", line.ItemName)
	}
}
