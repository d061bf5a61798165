package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/amirahs/stockroom-golang/internal/apperror"
	"github.com/amirahs/stockroom-golang/internal/models"
)

type MySQLCategoryRepository struct {
	db *sql.DB
}

func NewMySQLCategoryRepository(db *sql.DB) *MySQLCategoryRepository {
	return &MySQLCategoryRepository{db: db}
}

func (r *MySQLCategoryRepository) q(ctx context.Context) querier {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return r.db
}

func (r *MySQLCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	res, err := r.q(ctx).ExecContext(ctx,
		`INSERT INTO categories (name, slug, parent_id) VALUES (?, ?, ?)`,
		category.Name, category.Slug, category.ParentID)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	category.ID, err = res.LastInsertId()
	return err
}

func (r *MySQLCategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	err := r.q(ctx).QueryRowContext(ctx,
		`SELECT id, name, slug, parent_id FROM categories WHERE id = ?`, id).
		Scan(&category.ID, &category.Name, &category.Slug, &category.ParentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.New(apperror.CodeNotFound, "category not found")
		}
		return nil, fmt.Errorf("select category: %w", err)
	}
	return &category, nil
}

func (r *MySQLCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	_, err := r.q(ctx).ExecContext(ctx,
		`UPDATE categories SET name = ?, slug = ?, parent_id = ? WHERE id = ?`,
		category.Name, category.Slug, category.ParentID, category.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// DeleteByIDs deletes one row per statement, in the order given. Callers
// pass subtree ids children-first; a single IN (...) delete would let
// InnoDB remove rows in PK order and trip the parent FK.
func (r *MySQLCategoryRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if _, err := r.q(ctx).ExecContext(ctx,
			`DELETE FROM categories WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete category %d: %w", id, err)
		}
	}
	return nil
}

func (r *MySQLCategoryRepository) ListAll(ctx context.Context) ([]models.Category, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT id, name, slug, parent_id FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.ParentID); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
