package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirahs/stockroom-golang/internal/apperror"
	"github.com/amirahs/stockroom-golang/internal/models"
	"github.com/amirahs/stockroom-golang/internal/repository"
	"github.com/google/uuid"
)

type OrderLine struct {
	ItemID   int64
	Quantity int
}

type OrderDetail struct {
	Order models.Order       `json:"order"`
	Items []models.OrderItem `json:"items"`
}

// OrderService drives the order lifecycle: Draft (confirmed=false) to
// Confirmed, one way. Confirmation is the only mutation path it owns and
// it reports every stock decrement through the auditor, like every other
// quantity writer.
type OrderService struct {
	orders repository.OrderRepository
	items  repository.ItemRepository
	access *AccessService
	tx     repository.TxManager
	audit  *Auditor
}

func NewOrderService(orders repository.OrderRepository, items repository.ItemRepository,
	access *AccessService, tx repository.TxManager, audit *Auditor) *OrderService {
	return &OrderService{orders: orders, items: items, access: access, tx: tx, audit: audit}
}

// Create validates the candidate lines against the department's allowed
// item set and persists the draft order. The whole request is rejected if
// any line is bad: mixing one forbidden item into an otherwise fine order
// fails loudly instead of silently dropping the line.
func (s *OrderService) Create(ctx context.Context, departmentID, actorID int64, lines []OrderLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, apperror.New(apperror.CodeValidation, "order must contain at least one line")
	}

	allowed, err := s.access.AllowedItems(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	allowedSet := make(map[int64]bool, len(allowed))
	for _, item := range allowed {
		allowedSet[item.ID] = true
	}

	var bad []string
	for i, line := range lines {
		if line.Quantity <= 0 {
			bad = append(bad, fmt.Sprintf("line %d: quantity must be a positive integer", i+1))
			continue
		}
		if !allowedSet[line.ItemID] {
			bad = append(bad, fmt.Sprintf("line %d: item %d is not orderable by this department", i+1, line.ItemID))
		}
	}
	if len(bad) > 0 {
		return nil, apperror.New(apperror.CodeValidation, strings.Join(bad, "; "))
	}

	order := &models.Order{
		Reference:    uuid.NewString(),
		DepartmentID: departmentID,
		CreatedBy:    actorID,
	}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.orders.Create(ctx, order); err != nil {
			return err
		}
		for _, line := range lines {
			item := &models.OrderItem{
				OrderID:         order.ID,
				ItemID:          line.ItemID,
				QuantityOrdered: line.Quantity,
			}
			if err := s.orders.AddItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Confirm flips an order to Confirmed and decrements the stock of every
// line item, all inside one transaction. The order row is locked first, so
// of two concurrent confirmations exactly one wins and the other sees
// confirmed=true and is rejected; stock is never decremented twice.
//
// No floor is applied: confirming more than is on hand drives the quantity
// negative rather than failing the order.
func (s *OrderService) Confirm(ctx context.Context, orderID, actorID int64) (*models.Order, error) {
	var confirmed *models.Order
	var changes []itemChange

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Confirmed {
			return apperror.New(apperror.CodeInvalidState, "order is already confirmed")
		}

		lines, err := s.orders.ListItems(ctx, orderID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			prev, err := s.items.GetForUpdate(ctx, line.ItemID)
			if err != nil {
				return err
			}
			newQuantity := prev.Quantity - line.QuantityOrdered
			if err := s.items.UpdateQuantity(ctx, line.ItemID, newQuantity); err != nil {
				return err
			}
			curr := *prev
			curr.Quantity = newQuantity
			changes = append(changes, itemChange{prev: prev, curr: &curr})
		}

		if err := s.orders.SetConfirmed(ctx, orderID); err != nil {
			return err
		}
		order.Confirmed = true
		confirmed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Committed: every decrement is now observed exactly once.
	for _, change := range changes {
		s.audit.ItemUpdated(ctx, change.prev, change.curr, actorID)
	}
	return confirmed, nil
}

// List returns all orders, most recent first.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) Get(ctx context.Context, orderID int64) (*OrderDetail, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *order, Items: items}, nil
}
