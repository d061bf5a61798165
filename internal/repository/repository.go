package repository

import (
	"context"

	"github.com/amirahs/stockroom-golang/internal/models"
)

// Repositories are dumb data access. All business rules (ownership checks,
// access rules, audit logging) live in the service layer, which is the only
// code allowed to call the mutating methods below.

// Item sort keys accepted by ListByUser.
const (
	SortByID       = "id"
	SortByName     = "name"
	SortByQuantity = "quantity"
	SortByCategory = "category"
)

// ItemRepository is the persistence boundary for inventory items.
type ItemRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id int64) (*models.InventoryItem, error)
	// GetForUpdate locks the item row for the current transaction.
	GetForUpdate(ctx context.Context, id int64) (*models.InventoryItem, error)
	Update(ctx context.Context, item *models.InventoryItem) error
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64, sortBy string) ([]models.InventoryItem, error)
	// ListByCategoryIDs returns items whose category is literally one of the
	// given ids, with no traversal into subcategories.
	ListByCategoryIDs(ctx context.Context, categoryIDs []int64) ([]models.InventoryItem, error)
	ListLowStock(ctx context.Context, threshold int) ([]models.InventoryItem, error)
	ListLowStockByUser(ctx context.Context, userID int64, threshold int) ([]models.InventoryItem, error)
	// ClearCategory nulls the category reference of every item pointing at
	// one of the given categories (category deletion).
	ClearCategory(ctx context.Context, categoryIDs []int64) error
	SummaryByUser(ctx context.Context, userID int64) (totalItems int, totalQuantity int, err error)
	CategoryCountsByUser(ctx context.Context, userID int64) ([]models.CategoryCount, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	DeleteByIDs(ctx context.Context, ids []int64) error
	ListAll(ctx context.Context) ([]models.Category, error)
}

type DepartmentRepository interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	List(ctx context.Context) ([]models.Department, error)
	// SetCategories replaces the department's accessible category set.
	SetCategories(ctx context.Context, departmentID int64, categoryIDs []int64) error
	ListCategoryIDs(ctx context.Context, departmentID int64) ([]int64, error)
	ListCategories(ctx context.Context, departmentID int64) ([]models.Category, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	AddItem(ctx context.Context, item *models.OrderItem) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	// GetForUpdate locks the order row so two concurrent confirmations
	// serialize on it.
	GetForUpdate(ctx context.Context, id int64) (*models.Order, error)
	SetConfirmed(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Order, error)
	ListItems(ctx context.Context, orderID int64) ([]models.OrderItem, error)
}

// LogsPageSize is the page size for both log listings.
const LogsPageSize = 20

type LogRepository interface {
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
	CreateInventoryLog(ctx context.Context, entry *models.InventoryLog) error
	// Listings are newest-first, page is 1-based.
	ListAuditLogs(ctx context.Context, page int) ([]models.AuditLog, error)
	ListInventoryLogs(ctx context.Context, page int) ([]models.InventoryLog, error)
	// Test/report helpers over append-only data.
	ListAuditLogsByItem(ctx context.Context, itemID int64) ([]models.AuditLog, error)
	ListInventoryLogsByItem(ctx context.Context, itemID int64) ([]models.InventoryLog, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Update rewrites the mutable fields (role, email, name, password hash).
	Update(ctx context.Context, user *models.User) error
	ListAdminIDs(ctx context.Context) ([]int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID int64) ([]models.Notification, error)
	// MarkRead reports whether a row was actually updated, so handlers can
	// distinguish "not found / not yours" from success.
	MarkRead(ctx context.Context, id, userID int64) (bool, error)
}

// TxManager runs fn inside a single transaction. Repositories called with
// the ctx passed to fn participate in that transaction.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
