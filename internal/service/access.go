package service

import (
	"context"
	"strings"

	"github.com/amirahs/stockroom-golang/internal/apperror"
	"github.com/amirahs/stockroom-golang/internal/models"
	"github.com/amirahs/stockroom-golang/internal/repository"
)

// AccessService resolves which items a department may order.
//
// The rule is flat category membership: an item is orderable by a
// department exactly when its category is one of the department's
// accessible categories. Subcategories are NOT inherited: listing
// "Produce" does not grant "Produce/Organic".
type AccessService struct {
	departments repository.DepartmentRepository
	categories  repository.CategoryRepository
	items       repository.ItemRepository
}

func NewAccessService(departments repository.DepartmentRepository,
	categories repository.CategoryRepository, items repository.ItemRepository) *AccessService {
	return &AccessService{departments: departments, categories: categories, items: items}
}

// AllowedItems returns the department's orderable item set. Read-only and
// deterministic. A department with no accessible categories gets an empty
// set, never "all items".
func (s *AccessService) AllowedItems(ctx context.Context, departmentID int64) ([]models.InventoryItem, error) {
	if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
		return nil, err
	}

	categoryIDs, err := s.departments.ListCategoryIDs(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if len(categoryIDs) == 0 {
		return []models.InventoryItem{}, nil
	}
	return s.items.ListByCategoryIDs(ctx, categoryIDs)
}

func (s *AccessService) CreateDepartment(ctx context.Context, name string, categoryIDs []int64) (*models.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.New(apperror.CodeValidation, "department name is required")
	}
	for _, id := range categoryIDs {
		if _, err := s.categories.GetByID(ctx, id); err != nil {
			if apperror.GetCode(err) == apperror.CodeNotFound {
				return nil, apperror.New(apperror.CodeValidation, "unknown category in accessible set")
			}
			return nil, err
		}
	}

	department := &models.Department{Name: name}
	if err := s.departments.Create(ctx, department); err != nil {
		return nil, err
	}
	if err := s.departments.SetCategories(ctx, department.ID, categoryIDs); err != nil {
		return nil, err
	}
	department.CategoryIDs = categoryIDs
	return department, nil
}

func (s *AccessService) ListDepartments(ctx context.Context) ([]models.Department, error) {
	departments, err := s.departments.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range departments {
		ids, err := s.departments.ListCategoryIDs(ctx, departments[i].ID)
		if err != nil {
			return nil, err
		}
		departments[i].CategoryIDs = ids
	}
	return departments, nil
}

// DepartmentCategories returns the accessible category set of one
// department.
func (s *AccessService) DepartmentCategories(ctx context.Context, departmentID int64) ([]models.Category, error) {
	if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
		return nil, err
	}
	return s.departments.ListCategories(ctx, departmentID)
}
