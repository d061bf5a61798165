package service

import (
	"context"
	"strings"

	"github.com/amirahs/stockroom-golang/internal/apperror"
	"github.com/amirahs/stockroom-golang/internal/models"
	"github.com/amirahs/stockroom-golang/internal/repository"
	"github.com/gosimple/slug"
)

// CategoryService manages the category tree. The parent chain is kept
// acyclic: a category may never become its own ancestor.
type CategoryService struct {
	categories repository.CategoryRepository
	items      repository.ItemRepository
	tx         repository.TxManager
}

func NewCategoryService(categories repository.CategoryRepository, items repository.ItemRepository,
	tx repository.TxManager) *CategoryService {
	return &CategoryService{categories: categories, items: items, tx: tx}
}

func (s *CategoryService) Create(ctx context.Context, name string, parentID *int64) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.New(apperror.CodeValidation, "category name is required")
	}
	if parentID != nil {
		if _, err := s.categories.GetByID(ctx, *parentID); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		Name:     name,
		Slug:     slug.Make(name),
		ParentID: parentID,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update renames and/or reparents a category. Reparenting walks the new
// parent chain to reject cycles.
func (s *CategoryService) Update(ctx context.Context, id int64, name string, parentID *int64) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.New(apperror.CodeValidation, "category name is required")
	}

	if parentID != nil {
		if *parentID == id {
			return nil, apperror.New(apperror.CodeValidation, "category cannot be its own parent")
		}
		if _, err := s.categories.GetByID(ctx, *parentID); err != nil {
			return nil, err
		}
		cycle, err := s.wouldCreateCycle(ctx, id, *parentID)
		if err != nil {
			return nil, err
		}
		if cycle {
			return nil, apperror.New(apperror.CodeValidation, "category cannot become its own ancestor")
		}
	}

	category.Name = name
	category.Slug = slug.Make(name)
	category.ParentID = parentID
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// wouldCreateCycle reports whether hanging categoryID under newParentID
// puts categoryID on its own parent chain.
func (s *CategoryService) wouldCreateCycle(ctx context.Context, categoryID, newParentID int64) (bool, error) {
	currentID := &newParentID
	for currentID != nil {
		if *currentID == categoryID {
			return true, nil
		}
		parent, err := s.categories.GetByID(ctx, *currentID)
		if err != nil {
			if apperror.GetCode(err) == apperror.CodeNotFound {
				return false, nil
			}
			return false, err
		}
		currentID = parent.ParentID
	}
	return false, nil
}

// Delete removes a category and its whole subtree in one transaction.
// Items pointing at any deleted category keep existing with a null
// category reference.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return err
	}

	subtree, err := s.subtreeIDs(ctx, id)
	if err != nil {
		return err
	}

	// subtreeIDs walks top-down; reverse it so children are deleted before
	// their parents and the self-referencing FK never sees a dangling
	// parent id mid-delete.
	for i, j := 0, len(subtree)-1; i < j; i, j = i+1, j-1 {
		subtree[i], subtree[j] = subtree[j], subtree[i]
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.items.ClearCategory(ctx, subtree); err != nil {
			return err
		}
		return s.categories.DeleteByIDs(ctx, subtree)
	})
}

func (s *CategoryService) subtreeIDs(ctx context.Context, rootID int64) ([]int64, error) {
	all, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	childrenOf := map[int64][]int64{}
	for _, category := range all {
		if category.ParentID != nil {
			childrenOf[*category.ParentID] = append(childrenOf[*category.ParentID], category.ID)
		}
	}

	ids := []int64{rootID}
	for queue := childrenOf[rootID]; len(queue) > 0; {
		id := queue[0]
		queue = queue[1:]
		ids = append(ids, id)
		queue = append(queue, childrenOf[id]...)
	}
	return ids, nil
}

// Tree returns all categories nested under their roots, children sorted
// by name (ListAll already returns name order).
func (s *CategoryService) Tree(ctx context.Context) ([]models.Category, error) {
	all, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	childrenOf := map[int64][]models.Category{}
	rootIDs := []int64{}
	byID := map[int64]models.Category{}
	for _, category := range all {
		byID[category.ID] = category
		if category.ParentID == nil {
			rootIDs = append(rootIDs, category.ID)
		} else {
			childrenOf[*category.ParentID] = append(childrenOf[*category.ParentID], category)
		}
	}

	var build func(category models.Category) models.Category
	build = func(category models.Category) models.Category {
		category.Children = []models.Category{}
		for _, child := range childrenOf[category.ID] {
			category.Children = append(category.Children, build(child))
		}
		return category
	}

	roots := []models.Category{}
	for _, id := range rootIDs {
		roots = append(roots, build(byID[id]))
	}
	return roots, nil
}

// ItemsByCategory lists the items directly in one category.
func (s *CategoryService) ItemsByCategory(ctx context.Context, categoryID int64) ([]models.InventoryItem, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.items.ListByCategoryIDs(ctx, []int64{categoryID})
}
