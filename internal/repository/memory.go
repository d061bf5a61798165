package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/amirahs/stockroom-golang/internal/apperror"
	"github.com/amirahs/stockroom-golang/internal/models"
)

// MemoryStore is a combined in-memory backing store with a simple ID
// generator. It exists for tests: the per-entity repositories below wrap it
// and implement the same interfaces as the MySQL ones.
type MemoryStore struct {
	mu sync.RWMutex

	nextID        int64
	items         map[int64]models.InventoryItem
	categories    map[int64]models.Category
	departments   map[int64]models.Department
	deptCats      map[int64][]int64
	orders        map[int64]models.Order
	orderItems    map[int64][]models.OrderItem
	users         map[int64]models.User
	auditLogs     []models.AuditLog
	inventoryLogs []models.InventoryLog
	notifications []models.Notification
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:      1,
		items:       make(map[int64]models.InventoryItem),
		categories:  make(map[int64]models.Category),
		departments: make(map[int64]models.Department),
		deptCats:    make(map[int64][]int64),
		orders:      make(map[int64]models.Order),
		orderItems:  make(map[int64][]models.OrderItem),
		users:       make(map[int64]models.User),
	}
}

// transaction-aware locking helpers: inside a MemoryTxManager transaction
// the store mutex is already held, so repository methods must skip their
// own locking.
type memTxKey struct{}

func inTx(ctx context.Context) bool {
	v, ok := ctx.Value(memTxKey{}).(bool)
	return ok && v
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !inTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !inTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !inTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !inTx(ctx) {
		m.mu.Unlock()
	}
}

func (m *MemoryStore) id() int64 {
	id := m.nextID
	m.nextID++
	return id
}

// categoryNameOf resolves the joined-in category name the way the MySQL
// repository's LEFT JOIN does. Caller must hold the lock.
func (m *MemoryStore) categoryNameOf(item *models.InventoryItem) {
	item.CategoryName = nil
	if item.CategoryID != nil {
		if c, ok := m.categories[*item.CategoryID]; ok {
			name := c.Name
			item.CategoryName = &name
		}
	}
}

// --- ItemRepository ---

type MemoryItemRepository struct{ s *MemoryStore }

func NewMemoryItemRepository(s *MemoryStore) *MemoryItemRepository {
	return &MemoryItemRepository{s: s}
}

var _ ItemRepository = (*MemoryItemRepository)(nil)

func (r *MemoryItemRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	item.ID = r.s.id()
	item.CreatedAt = time.Now()
	r.s.items[item.ID] = *item
	r.s.categoryNameOf(item)
	return nil
}

func (r *MemoryItemRepository) get(ctx context.Context, id int64) (*models.InventoryItem, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	item, ok := r.s.items[id]
	if !ok {
		return nil, apperror.New(apperror.CodeNotFound, "inventory item not found")
	}
	cp := item
	r.s.categoryNameOf(&cp)
	return &cp, nil
}

func (r *MemoryItemRepository) GetByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	return r.get(ctx, id)
}

func (r *MemoryItemRepository) GetForUpdate(ctx context.Context, id int64) (*models.InventoryItem, error) {
	// Row locks do not exist here; the transaction's store-wide lock
	// already serializes writers.
	return r.get(ctx, id)
}

func (r *MemoryItemRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	existing, ok := r.s.items[item.ID]
	if !ok {
		return apperror.New(apperror.CodeNotFound, "inventory item not found")
	}
	item.CreatedAt = existing.CreatedAt
	r.s.items[item.ID] = *item
	r.s.categoryNameOf(item)
	return nil
}

func (r *MemoryItemRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	item, ok := r.s.items[id]
	if !ok {
		return apperror.New(apperror.CodeNotFound, "inventory item not found")
	}
	item.Quantity = quantity
	r.s.items[id] = item
	return nil
}

func (r *MemoryItemRepository) Delete(ctx context.Context, id int64) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	if _, ok := r.s.items[id]; !ok {
		return apperror.New(apperror.CodeNotFound, "inventory item not found")
	}
	delete(r.s.items, id)
	// Order lines referencing the item go with it, matching the FK cascade
	// on order_items in the MySQL schema.
	for orderID, lines := range r.s.orderItems {
		kept := lines[:0]
		for _, line := range lines {
			if line.ItemID != id {
				kept = append(kept, line)
			}
		}
		r.s.orderItems[orderID] = kept
	}
	return nil
}

func (r *MemoryItemRepository) ListByUser(ctx context.Context, userID int64, sortBy string) ([]models.InventoryItem, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	out := []models.InventoryItem{}
	for _, item := range r.s.items {
		if item.UserID != userID {
			continue
		}
		cp := item
		r.s.categoryNameOf(&cp)
		out = append(out, cp)
	}
	sortItems(out, sortBy)
	return out, nil
}

func sortItems(items []models.InventoryItem, sortBy string) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch sortBy {
		case SortByID:
			return a.ID < b.ID
		case SortByName:
			return a.Name < b.Name
		case SortByQuantity:
			return a.Quantity < b.Quantity
		default: // category
			an, bn := "", ""
			if a.CategoryName != nil {
				an = *a.CategoryName
			}
			if b.CategoryName != nil {
				bn = *b.CategoryName
			}
			if !strings.EqualFold(an, bn) {
				return an < bn
			}
			return a.Name < b.Name
		}
	})
}

func (r *MemoryItemRepository) ListByCategoryIDs(ctx context.Context, categoryIDs []int64) ([]models.InventoryItem, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	wanted := make(map[int64]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = true
	}
	out := []models.InventoryItem{}
	for _, item := range r.s.items {
		if item.CategoryID == nil || !wanted[*item.CategoryID] {
			continue
		}
		cp := item
		r.s.categoryNameOf(&cp)
		out = append(out, cp)
	}
	sortItems(out, SortByName)
	return out, nil
}

func (r *MemoryItemRepository) ListLowStock(ctx context.Context, threshold int) ([]models.InventoryItem, error) {
	return r.listLowStock(ctx, nil, threshold)
}

func (r *MemoryItemRepository) ListLowStockByUser(ctx context.Context, userID int64, threshold int) ([]models.InventoryItem, error) {
	return r.listLowStock(ctx, &userID, threshold)
}

func (r *MemoryItemRepository) listLowStock(ctx context.Context, userID *int64, threshold int) ([]models.InventoryItem, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	out := []models.InventoryItem{}
	for _, item := range r.s.items {
		if userID != nil && item.UserID != *userID {
			continue
		}
		if item.Quantity > threshold {
			continue
		}
		cp := item
		r.s.categoryNameOf(&cp)
		out = append(out, cp)
	}
	sortItems(out, SortByQuantity)
	return out, nil
}

func (r *MemoryItemRepository) ClearCategory(ctx context.Context, categoryIDs []int64) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	cleared := make(map[int64]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		cleared[id] = true
	}
	for id, item := range r.s.items {
		if item.CategoryID != nil && cleared[*item.CategoryID] {
			item.CategoryID = nil
			r.s.items[id] = item
		}
	}
	return nil
}

func (r *MemoryItemRepository) SummaryByUser(ctx context.Context, userID int64) (int, int, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	totalItems, totalQuantity := 0, 0
	for _, item := range r.s.items {
		if item.UserID != userID {
			continue
		}
		totalItems++
		totalQuantity += item.Quantity
	}
	return totalItems, totalQuantity, nil
}

func (r *MemoryItemRepository) CategoryCountsByUser(ctx context.Context, userID int64) ([]models.CategoryCount, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	byCategory := map[int64]int{}
	for _, item := range r.s.items {
		if item.UserID != userID || item.CategoryID == nil {
			continue
		}
		byCategory[*item.CategoryID]++
	}
	out := []models.CategoryCount{}
	for id, count := range byCategory {
		category, ok := r.s.categories[id]
		if !ok {
			continue
		}
		out = append(out, models.CategoryCount{CategoryID: id, Name: category.Name, ItemCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- CategoryRepository ---

type MemoryCategoryRepository struct{ s *MemoryStore }

func NewMemoryCategoryRepository(s *MemoryStore) *MemoryCategoryRepository {
	return &MemoryCategoryRepository{s: s}
}

var _ CategoryRepository = (*MemoryCategoryRepository)(nil)

func (r *MemoryCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	category.ID = r.s.id()
	r.s.categories[category.ID] = *category
	return nil
}

func (r *MemoryCategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	category, ok := r.s.categories[id]
	if !ok {
		return nil, apperror.New(apperror.CodeNotFound, "category not found")
	}
	cp := category
	return &cp, nil
}

func (r *MemoryCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	if _, ok := r.s.categories[category.ID]; !ok {
		return apperror.New(apperror.CodeNotFound, "category not found")
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r *MemoryCategoryRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	for _, id := range ids {
		delete(r.s.categories, id)
	}
	return nil
}

func (r *MemoryCategoryRepository) ListAll(ctx context.Context) ([]models.Category, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	out := []models.Category{}
	for _, category := range r.s.categories {
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- DepartmentRepository ---

type MemoryDepartmentRepository struct{ s *MemoryStore }

func NewMemoryDepartmentRepository(s *MemoryStore) *MemoryDepartmentRepository {
	return &MemoryDepartmentRepository{s: s}
}

var _ DepartmentRepository = (*MemoryDepartmentRepository)(nil)

func (r *MemoryDepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	department.ID = r.s.id()
	r.s.departments[department.ID] = *department
	return nil
}

func (r *MemoryDepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	department, ok := r.s.departments[id]
	if !ok {
		return nil, apperror.New(apperror.CodeNotFound, "department not found")
	}
	cp := department
	return &cp, nil
}

func (r *MemoryDepartmentRepository) List(ctx context.Context) ([]models.Department, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	out := []models.Department{}
	for _, department := range r.s.departments {
		out = append(out, department)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryDepartmentRepository) SetCategories(ctx context.Context, departmentID int64, categoryIDs []int64) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	r.s.deptCats[departmentID] = append([]int64{}, categoryIDs...)
	return nil
}

func (r *MemoryDepartmentRepository) ListCategoryIDs(ctx context.Context, departmentID int64) ([]int64, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	return append([]int64{}, r.s.deptCats[departmentID]...), nil
}

func (r *MemoryDepartmentRepository) ListCategories(ctx context.Context, departmentID int64) ([]models.Category, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	out := []models.Category{}
	for _, id := range r.s.deptCats[departmentID] {
		if category, ok := r.s.categories[id]; ok {
			out = append(out, category)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- OrderRepository ---

type MemoryOrderRepository struct{ s *MemoryStore }

func NewMemoryOrderRepository(s *MemoryStore) *MemoryOrderRepository {
	return &MemoryOrderRepository{s: s}
}

var _ OrderRepository = (*MemoryOrderRepository)(nil)

func (r *MemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	order.ID = r.s.id()
	order.CreatedAt = time.Now()
	r.s.orders[order.ID] = *order
	return nil
}

func (r *MemoryOrderRepository) AddItem(ctx context.Context, item *models.OrderItem) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	item.ID = r.s.id()
	r.s.orderItems[item.OrderID] = append(r.s.orderItems[item.OrderID], *item)
	return nil
}

func (r *MemoryOrderRepository) get(ctx context.Context, id int64) (*models.Order, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	order, ok := r.s.orders[id]
	if !ok {
		return nil, apperror.New(apperror.CodeNotFound, "order not found")
	}
	cp := order
	return &cp, nil
}

func (r *MemoryOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	return r.get(ctx, id)
}

func (r *MemoryOrderRepository) GetForUpdate(ctx context.Context, id int64) (*models.Order, error) {
	return r.get(ctx, id)
}

func (r *MemoryOrderRepository) SetConfirmed(ctx context.Context, id int64) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	order, ok := r.s.orders[id]
	if !ok {
		return apperror.New(apperror.CodeNotFound, "order not found")
	}
	order.Confirmed = true
	r.s.orders[id] = order
	return nil
}

func (r *MemoryOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	out := []models.Order{}
	for _, order := range r.s.orders {
		out = append(out, order)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryOrderRepository) ListItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	out := []models.OrderItem{}
	for _, item := range r.s.orderItems[orderID] {
		if stock, ok := r.s.items[item.ItemID]; ok {
			item.ItemName = stock.Name
		}
		out = append(out, item)
	}
	return out, nil
}

// --- LogRepository ---

type MemoryLogRepository struct{ s *MemoryStore }

func NewMemoryLogRepository(s *MemoryStore) *MemoryLogRepository {
	return &MemoryLogRepository{s: s}
}

var _ LogRepository = (*MemoryLogRepository)(nil)

func (r *MemoryLogRepository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	entry.ID = r.s.id()
	entry.Timestamp = time.Now()
	r.s.auditLogs = append(r.s.auditLogs, *entry)
	return nil
}

func (r *MemoryLogRepository) CreateInventoryLog(ctx context.Context, entry *models.InventoryLog) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	entry.ID = r.s.id()
	entry.Timestamp = time.Now()
	r.s.inventoryLogs = append(r.s.inventoryLogs, *entry)
	return nil
}

func (r *MemoryLogRepository) ListAuditLogs(ctx context.Context, page int) ([]models.AuditLog, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	all := append([]models.AuditLog{}, r.s.auditLogs...)
	// newest first
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return pageOf(all, page), nil
}

func (r *MemoryLogRepository) ListInventoryLogs(ctx context.Context, page int) ([]models.InventoryLog, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	all := append([]models.InventoryLog{}, r.s.inventoryLogs...)
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return pageOf(all, page), nil
}

func (r *MemoryLogRepository) ListAuditLogsByItem(ctx context.Context, itemID int64) ([]models.AuditLog, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	out := []models.AuditLog{}
	for _, entry := range r.s.auditLogs {
		if entry.ItemID == itemID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *MemoryLogRepository) ListInventoryLogsByItem(ctx context.Context, itemID int64) ([]models.InventoryLog, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	out := []models.InventoryLog{}
	for _, entry := range r.s.inventoryLogs {
		if entry.ItemID == itemID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func pageOf[T any](all []T, page int) []T {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * LogsPageSize
	if start >= len(all) {
		return []T{}
	}
	end := start + LogsPageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

// --- UserRepository ---

type MemoryUserRepository struct{ s *MemoryStore }

func NewMemoryUserRepository(s *MemoryStore) *MemoryUserRepository {
	return &MemoryUserRepository{s: s}
}

var _ UserRepository = (*MemoryUserRepository)(nil)

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	user.ID = r.s.id()
	user.CreatedAt = time.Now()
	r.s.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	user, ok := r.s.users[id]
	if !ok {
		return nil, apperror.New(apperror.CodeNotFound, "user not found")
	}
	cp := user
	return &cp, nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	for _, user := range r.s.users {
		if strings.EqualFold(user.Email, email) {
			cp := user
			return &cp, nil
		}
	}
	return nil, apperror.New(apperror.CodeNotFound, "user not found")
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *models.User) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	existing, ok := r.s.users[user.ID]
	if !ok {
		return apperror.New(apperror.CodeNotFound, "user not found")
	}
	user.CreatedAt = existing.CreatedAt
	r.s.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) ListAdminIDs(ctx context.Context) ([]int64, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	ids := []int64{}
	for _, user := range r.s.users {
		if user.Role == models.RoleAdmin {
			ids = append(ids, user.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// --- NotificationRepository ---

type MemoryNotificationRepository struct{ s *MemoryStore }

func NewMemoryNotificationRepository(s *MemoryStore) *MemoryNotificationRepository {
	return &MemoryNotificationRepository{s: s}
}

var _ NotificationRepository = (*MemoryNotificationRepository)(nil)

func (r *MemoryNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	notification.ID = r.s.id()
	notification.CreatedAt = time.Now()
	r.s.notifications = append(r.s.notifications, *notification)
	return nil
}

func (r *MemoryNotificationRepository) ListByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	r.s.rlock(ctx)
	defer r.s.runlock(ctx)
	out := []models.Notification{}
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsRead != out[j].IsRead {
			return !out[i].IsRead
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > 50 {
		out = out[:50]
	}
	return out, nil
}

func (r *MemoryNotificationRepository) MarkRead(ctx context.Context, id, userID int64) (bool, error) {
	r.s.wlock(ctx)
	defer r.s.wunlock(ctx)
	for i, n := range r.s.notifications {
		if n.ID == id && n.UserID == userID {
			r.s.notifications[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

// --- TxManager ---

// MemoryTxManager emulates a transaction with the store-wide write lock
// plus a full snapshot, so a failed fn leaves the store untouched, the
// same all-or-nothing behavior the MySQL transaction gives.
type MemoryTxManager struct{ s *MemoryStore }

func NewMemoryTxManager(s *MemoryStore) *MemoryTxManager {
	return &MemoryTxManager{s: s}
}

var _ TxManager = (*MemoryTxManager)(nil)

func (m *MemoryTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	snapshot := m.s.snapshot()
	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		m.s.restore(snapshot)
		return err
	}
	return nil
}

type storeSnapshot struct {
	nextID        int64
	items         map[int64]models.InventoryItem
	categories    map[int64]models.Category
	departments   map[int64]models.Department
	deptCats      map[int64][]int64
	orders        map[int64]models.Order
	orderItems    map[int64][]models.OrderItem
	users         map[int64]models.User
	auditLogs     []models.AuditLog
	inventoryLogs []models.InventoryLog
	notifications []models.Notification
}

func (m *MemoryStore) snapshot() storeSnapshot {
	return storeSnapshot{
		nextID:        m.nextID,
		items:         copyMap(m.items),
		categories:    copyMap(m.categories),
		departments:   copyMap(m.departments),
		deptCats:      copySliceMap(m.deptCats),
		orders:        copyMap(m.orders),
		orderItems:    copySliceMap(m.orderItems),
		users:         copyMap(m.users),
		auditLogs:     append([]models.AuditLog{}, m.auditLogs...),
		inventoryLogs: append([]models.InventoryLog{}, m.inventoryLogs...),
		notifications: append([]models.Notification{}, m.notifications...),
	}
}

func (m *MemoryStore) restore(s storeSnapshot) {
	m.nextID = s.nextID
	m.items = s.items
	m.categories = s.categories
	m.departments = s.departments
	m.deptCats = s.deptCats
	m.orders = s.orders
	m.orderItems = s.orderItems
	m.users = s.users
	m.auditLogs = s.auditLogs
	m.inventoryLogs = s.inventoryLogs
	m.notifications = s.notifications
}

func copyMap[V any](in map[int64]V) map[int64]V {
	out := make(map[int64]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copySliceMap[V any](in map[int64][]V) map[int64][]V {
	out := make(map[int64][]V, len(in))
	for k, v := range in {
		out[k] = append([]V{}, v...)
	}
	return out
}
