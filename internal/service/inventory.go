package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirahs/stockroom-golang/internal/apperror"
	"github.com/amirahs/stockroom-golang/internal/models"
	"github.com/amirahs/stockroom-golang/internal/repository"
)

type ItemInput struct {
	Name       string
	Quantity   int
	CategoryID *int64
}

type QuantityUpdate struct {
	ItemID      int64
	NewQuantity int
}

// InventoryService owns every inventory item mutation. Handlers never call
// the item repository's mutating methods directly; going through here is
// what guarantees the auditor sees each change exactly once.
type InventoryService struct {
	items      repository.ItemRepository
	categories repository.CategoryRepository
	tx         repository.TxManager
	audit      *Auditor
}

func NewInventoryService(items repository.ItemRepository, categories repository.CategoryRepository,
	tx repository.TxManager, audit *Auditor) *InventoryService {
	return &InventoryService{items: items, categories: categories, tx: tx, audit: audit}
}

func (s *InventoryService) validateInput(ctx context.Context, input ItemInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperror.New(apperror.CodeValidation, "item name is required")
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			if apperror.GetCode(err) == apperror.CodeNotFound {
				return apperror.New(apperror.CodeValidation, "unknown category")
			}
			return err
		}
	}
	return nil
}

func (s *InventoryService) CreateItem(ctx context.Context, actorID int64, input ItemInput) (*models.InventoryItem, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	item := &models.InventoryItem{
		UserID:     actorID,
		Name:       strings.TrimSpace(input.Name),
		Quantity:   input.Quantity,
		CategoryID: input.CategoryID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	// Reload so the snapshot carries the resolved category name.
	created, err := s.items.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	s.audit.ItemCreated(ctx, created, actorID)
	return created, nil
}

func (s *InventoryService) GetItem(ctx context.Context, id int64) (*models.InventoryItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *InventoryService) ListItems(ctx context.Context, actorID int64, sortBy string) ([]models.InventoryItem, error) {
	return s.items.ListByUser(ctx, actorID, sortBy)
}

func (s *InventoryService) UpdateItem(ctx context.Context, actorID, id int64, input ItemInput) (*models.InventoryItem, error) {
	var prev, curr *models.InventoryItem

	// The row lock serializes concurrent edits of the same item, so the
	// quantity recorded as previous really is the one this edit replaced.
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		prev, err = s.items.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if prev.UserID != actorID {
			return apperror.New(apperror.CodePermission, "you do not own this item")
		}
		if err := s.validateInput(ctx, input); err != nil {
			return err
		}

		updated := *prev
		updated.Name = strings.TrimSpace(input.Name)
		updated.Quantity = input.Quantity
		updated.CategoryID = input.CategoryID
		if err := s.items.Update(ctx, &updated); err != nil {
			return err
		}

		curr, err = s.items.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.audit.ItemUpdated(ctx, prev, curr, actorID)
	return curr, nil
}

func (s *InventoryService) DeleteItem(ctx context.Context, actorID, id int64) error {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item.UserID != actorID {
		return apperror.New(apperror.CodePermission, "you do not own this item")
	}

	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.ItemDeleted(ctx, item, actorID)
	return nil
}

// itemChange pairs the before/after state of one item so the auditor can
// be invoked after the transaction commits.
type itemChange struct {
	prev *models.InventoryItem
	curr *models.InventoryItem
}

// BulkUpdateQuantities applies a batch of (item id, new quantity) pairs in
// a single transaction. One unknown id fails the whole batch; rows whose
// quantity is unchanged are skipped and produce no log entries.
func (s *InventoryService) BulkUpdateQuantities(ctx context.Context, actorID int64, updates []QuantityUpdate) error {
	if len(updates) == 0 {
		return apperror.New(apperror.CodeValidation, "no updates submitted")
	}

	var changes []itemChange
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, update := range updates {
			prev, err := s.items.GetForUpdate(ctx, update.ItemID)
			if err != nil {
				if apperror.GetCode(err) == apperror.CodeNotFound {
					return apperror.New(apperror.CodeValidation,
						fmt.Sprintf("item %d does not exist", update.ItemID))
				}
				return err
			}
			if prev.Quantity == update.NewQuantity {
				continue
			}
			if err := s.items.UpdateQuantity(ctx, update.ItemID, update.NewQuantity); err != nil {
				return err
			}
			curr := *prev
			curr.Quantity = update.NewQuantity
			changes = append(changes, itemChange{prev: prev, curr: &curr})
		}
		return nil
	})
	if err != nil {
		return err
	}

	// The batch is committed; now let the auditor observe each change.
	for _, change := range changes {
		s.audit.ItemUpdated(ctx, change.prev, change.curr, actorID)
	}
	return nil
}
