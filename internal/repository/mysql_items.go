package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/amirahs/stockroom-golang/internal/apperror"
	"github.com/amirahs/stockroom-golang/internal/models"
)

// MySQLItemRepository implements ItemRepository over MySQL.
type MySQLItemRepository struct {
	db *sql.DB
}

func NewMySQLItemRepository(db *sql.DB) *MySQLItemRepository {
	return &MySQLItemRepository{db: db}
}

func (r *MySQLItemRepository) q(ctx context.Context) querier {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return r.db
}

// itemColumns joins the category name in so callers (and log snapshots)
// never need a second round trip.
const itemColumns = `
	i.id, i.user_id, i.name, i.quantity, i.category_id, i.created_at, c.name
	FROM inventory_items i
	LEFT JOIN categories c ON i.category_id = c.id`

func scanItem(row interface{ Scan(...any) error }) (*models.InventoryItem, error) {
	var item models.InventoryItem
	var categoryName sql.NullString
	if err := row.Scan(&item.ID, &item.UserID, &item.Name, &item.Quantity,
		&item.CategoryID, &item.CreatedAt, &categoryName); err != nil {
		return nil, err
	}
	if categoryName.Valid {
		item.CategoryName = &categoryName.String
	}
	return &item, nil
}

func (r *MySQLItemRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	item.CreatedAt = time.Now()
	res, err := r.q(ctx).ExecContext(ctx,
		`INSERT INTO inventory_items (user_id, name, quantity, category_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		item.UserID, item.Name, item.Quantity, item.CategoryID, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	item.ID, err = res.LastInsertId()
	return err
}

func (r *MySQLItemRepository) GetByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	row := r.q(ctx).QueryRowContext(ctx, `SELECT `+itemColumns+` WHERE i.id = ?`, id)
	item, err := scanItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.New(apperror.CodeNotFound, "inventory item not found")
		}
		return nil, fmt.Errorf("select inventory item: %w", err)
	}
	return item, nil
}

func (r *MySQLItemRepository) GetForUpdate(ctx context.Context, id int64) (*models.InventoryItem, error) {
	row := r.q(ctx).QueryRowContext(ctx, `SELECT `+itemColumns+` WHERE i.id = ? FOR UPDATE`, id)
	item, err := scanItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.New(apperror.CodeNotFound, "inventory item not found")
		}
		return nil, fmt.Errorf("select inventory item for update: %w", err)
	}
	return item, nil
}

func (r *MySQLItemRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	res, err := r.q(ctx).ExecContext(ctx,
		`UPDATE inventory_items SET name = ?, quantity = ?, category_id = ? WHERE id = ?`,
		item.Name, item.Quantity, item.CategoryID, item.ID)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// MySQL also reports 0 when nothing changed, so double-check.
		if _, err := r.GetByID(ctx, item.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *MySQLItemRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	_, err := r.q(ctx).ExecContext(ctx,
		`UPDATE inventory_items SET quantity = ? WHERE id = ?`, quantity, id)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	return nil
}

func (r *MySQLItemRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q(ctx).ExecContext(ctx, `DELETE FROM inventory_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.New(apperror.CodeNotFound, "inventory item not found")
	}
	return nil
}

func (r *MySQLItemRepository) ListByUser(ctx context.Context, userID int64, sortBy string) ([]models.InventoryItem, error) {
	// Whitelist the sort column; anything unknown falls back to category,
	// matching the dashboard default.
	orderBy := map[string]string{
		SortByID:       "i.id",
		SortByName:     "i.name",
		SortByQuantity: "i.quantity",
		SortByCategory: "c.name, i.name",
	}[sortBy]
	if orderBy == "" {
		orderBy = "c.name, i.name"
	}

	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT `+itemColumns+` WHERE i.user_id = ? ORDER BY `+orderBy, userID)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *MySQLItemRepository) ListByCategoryIDs(ctx context.Context, categoryIDs []int64) ([]models.InventoryItem, error) {
	if len(categoryIDs) == 0 {
		return []models.InventoryItem{}, nil
	}

	placeholders, args := inClause(categoryIDs)
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT `+itemColumns+` WHERE i.category_id IN (`+placeholders+`) ORDER BY i.name`, args...)
	if err != nil {
		return nil, fmt.Errorf("list items by category: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *MySQLItemRepository) ListLowStock(ctx context.Context, threshold int) ([]models.InventoryItem, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT `+itemColumns+` WHERE i.quantity <= ? ORDER BY i.quantity`, threshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *MySQLItemRepository) ListLowStockByUser(ctx context.Context, userID int64, threshold int) ([]models.InventoryItem, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT `+itemColumns+` WHERE i.user_id = ? AND i.quantity <= ? ORDER BY i.quantity`,
		userID, threshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *MySQLItemRepository) ClearCategory(ctx context.Context, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	placeholders, args := inClause(categoryIDs)
	_, err := r.q(ctx).ExecContext(ctx,
		`UPDATE inventory_items SET category_id = NULL WHERE category_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("clear item categories: %w", err)
	}
	return nil
}

func (r *MySQLItemRepository) SummaryByUser(ctx context.Context, userID int64) (int, int, error) {
	var totalItems, totalQuantity int
	err := r.q(ctx).QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM inventory_items WHERE user_id = ?`,
		userID).Scan(&totalItems, &totalQuantity)
	if err != nil {
		return 0, 0, fmt.Errorf("item summary: %w", err)
	}
	return totalItems, totalQuantity, nil
}

func (r *MySQLItemRepository) CategoryCountsByUser(ctx context.Context, userID int64) ([]models.CategoryCount, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT c.id, c.name, COUNT(i.id)
		 FROM categories c
		 JOIN inventory_items i ON i.category_id = c.id
		 WHERE i.user_id = ?
		 GROUP BY c.id, c.name
		 ORDER BY c.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("category counts: %w", err)
	}
	defer rows.Close()

	counts := []models.CategoryCount{}
	for rows.Next() {
		var cc models.CategoryCount
		if err := rows.Scan(&cc.CategoryID, &cc.Name, &cc.ItemCount); err != nil {
			return nil, err
		}
		counts = append(counts, cc)
	}
	return counts, rows.Err()
}

func collectItems(rows *sql.Rows) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// inClause builds "?, ?, ?" and the matching args for an IN (...) filter.
func inClause(ids []int64) (string, []any) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", "), args
}
