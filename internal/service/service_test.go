package service

import (
	"context"
	"testing"

	"github.com/amirahs/stockroom-golang/internal/models"
	"github.com/amirahs/stockroom-golang/internal/repository"
)

// testEnv wires every service against one shared in-memory store.
type testEnv struct {
	store         *repository.MemoryStore
	items         *repository.MemoryItemRepository
	categories    *repository.MemoryCategoryRepository
	departments   *repository.MemoryDepartmentRepository
	orders        *repository.MemoryOrderRepository
	logs          *repository.MemoryLogRepository
	users         *repository.MemoryUserRepository
	notifications *repository.MemoryNotificationRepository

	inventory *InventoryService
	catalog   *CategoryService
	access    *AccessService
	orderSvc  *OrderService
	notifier  *Notifier
	auditor   *Auditor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repository.NewMemoryStore()
	env := &testEnv{
		store:         store,
		items:         repository.NewMemoryItemRepository(store),
		categories:    repository.NewMemoryCategoryRepository(store),
		departments:   repository.NewMemoryDepartmentRepository(store),
		orders:        repository.NewMemoryOrderRepository(store),
		logs:          repository.NewMemoryLogRepository(store),
		users:         repository.NewMemoryUserRepository(store),
		notifications: repository.NewMemoryNotificationRepository(store),
	}
	tx := repository.NewMemoryTxManager(store)
	env.notifier = NewNotifier(env.notifications, env.users)
	env.auditor = NewAuditor(env.logs, env.notifier)
	env.inventory = NewInventoryService(env.items, env.categories, tx, env.auditor)
	env.catalog = NewCategoryService(env.categories, env.items, tx)
	env.access = NewAccessService(env.departments, env.categories, env.items)
	env.orderSvc = NewOrderService(env.orders, env.items, env.access, tx, env.auditor)
	return env
}

func (env *testEnv) mustUser(t *testing.T, role string) *models.User {
	t.Helper()
	user := &models.User{Role: role, Email: "user@example.com", FullName: "Test User"}
	if err := env.users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (env *testEnv) mustCategory(t *testing.T, name string, parentID *int64) *models.Category {
	t.Helper()
	category, err := env.catalog.Create(context.Background(), name, parentID)
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return category
}

func (env *testEnv) mustItem(t *testing.T, userID int64, name string, quantity int, categoryID *int64) *models.InventoryItem {
	t.Helper()
	item, err := env.inventory.CreateItem(context.Background(), userID, ItemInput{
		Name:       name,
		Quantity:   quantity,
		CategoryID: categoryID,
	})
	if err != nil {
		t.Fatalf("create item %q: %v", name, err)
	}
	return item
}

func (env *testEnv) mustDepartment(t *testing.T, name string, categoryIDs []int64) *models.Department {
	t.Helper()
	department, err := env.access.CreateDepartment(context.Background(), name, categoryIDs)
	if err != nil {
		t.Fatalf("create department %q: %v", name, err)
	}
	return department
}
