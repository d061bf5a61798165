package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amirahs/stockroom-golang/internal/apperror"
	"github.com/amirahs/stockroom-golang/internal/models"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) q(ctx context.Context) querier {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return r.db
}

func (r *MySQLOrderRepository) Create(ctx context.Context, order *models.Order) error {
	order.CreatedAt = time.Now()
	res, err := r.q(ctx).ExecContext(ctx,
		`INSERT INTO orders (reference, department_id, created_by, confirmed, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		order.Reference, order.DepartmentID, order.CreatedBy, order.Confirmed, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	order.ID, err = res.LastInsertId()
	return err
}

func (r *MySQLOrderRepository) AddItem(ctx context.Context, item *models.OrderItem) error {
	res, err := r.q(ctx).ExecContext(ctx,
		`INSERT INTO order_items (order_id, item_id, quantity_ordered) VALUES (?, ?, ?)`,
		item.OrderID, item.ItemID, item.QuantityOrdered)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	item.ID, err = res.LastInsertId()
	return err
}

const orderColumns = `id, reference, department_id, created_by, confirmed, created_at FROM orders`

func (r *MySQLOrderRepository) scanOrder(row *sql.Row) (*models.Order, error) {
	var order models.Order
	err := row.Scan(&order.ID, &order.Reference, &order.DepartmentID,
		&order.CreatedBy, &order.Confirmed, &order.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.New(apperror.CodeNotFound, "order not found")
		}
		return nil, fmt.Errorf("select order: %w", err)
	}
	return &order, nil
}

func (r *MySQLOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	return r.scanOrder(r.q(ctx).QueryRowContext(ctx, `SELECT `+orderColumns+` WHERE id = ?`, id))
}

func (r *MySQLOrderRepository) GetForUpdate(ctx context.Context, id int64) (*models.Order, error) {
	return r.scanOrder(r.q(ctx).QueryRowContext(ctx, `SELECT `+orderColumns+` WHERE id = ? FOR UPDATE`, id))
}

func (r *MySQLOrderRepository) SetConfirmed(ctx context.Context, id int64) error {
	_, err := r.q(ctx).ExecContext(ctx, `UPDATE orders SET confirmed = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("confirm order: %w", err)
	}
	return nil
}

func (r *MySQLOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	rows, err := r.q(ctx).QueryContext(ctx, `SELECT `+orderColumns+` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(&order.ID, &order.Reference, &order.DepartmentID,
			&order.CreatedBy, &order.Confirmed, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *MySQLOrderRepository) ListItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT oi.id, oi.order_id, oi.item_id, oi.quantity_ordered, i.name
		 FROM order_items oi
		 JOIN inventory_items i ON oi.item_id = i.id
		 WHERE oi.order_id = ?
		 ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ItemID,
			&item.QuantityOrdered, &item.ItemName); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
