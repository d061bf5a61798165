package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/amirahs/stockroom-golang/internal/apperror"
	"github.com/amirahs/stockroom-golang/internal/models"
)

type MySQLDepartmentRepository struct {
	db *sql.DB
}

func NewMySQLDepartmentRepository(db *sql.DB) *MySQLDepartmentRepository {
	return &MySQLDepartmentRepository{db: db}
}

func (r *MySQLDepartmentRepository) q(ctx context.Context) querier {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return r.db
}

func (r *MySQLDepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	res, err := r.q(ctx).ExecContext(ctx,
		`INSERT INTO departments (name) VALUES (?)`, department.Name)
	if err != nil {
		return fmt.Errorf("insert department: %w", err)
	}
	department.ID, err = res.LastInsertId()
	return err
}

func (r *MySQLDepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	var department models.Department
	err := r.q(ctx).QueryRowContext(ctx,
		`SELECT id, name FROM departments WHERE id = ?`, id).
		Scan(&department.ID, &department.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.New(apperror.CodeNotFound, "department not found")
		}
		return nil, fmt.Errorf("select department: %w", err)
	}
	return &department, nil
}

func (r *MySQLDepartmentRepository) List(ctx context.Context) ([]models.Department, error) {
	rows, err := r.q(ctx).QueryContext(ctx, `SELECT id, name FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	departments := []models.Department{}
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(&department.ID, &department.Name); err != nil {
			return nil, err
		}
		departments = append(departments, department)
	}
	return departments, rows.Err()
}

func (r *MySQLDepartmentRepository) SetCategories(ctx context.Context, departmentID int64, categoryIDs []int64) error {
	if _, err := r.q(ctx).ExecContext(ctx,
		`DELETE FROM department_categories WHERE department_id = ?`, departmentID); err != nil {
		return fmt.Errorf("clear department categories: %w", err)
	}
	for _, categoryID := range categoryIDs {
		if _, err := r.q(ctx).ExecContext(ctx,
			`INSERT INTO department_categories (department_id, category_id) VALUES (?, ?)`,
			departmentID, categoryID); err != nil {
			return fmt.Errorf("insert department category: %w", err)
		}
	}
	return nil
}

func (r *MySQLDepartmentRepository) ListCategoryIDs(ctx context.Context, departmentID int64) ([]int64, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT category_id FROM department_categories WHERE department_id = ?`, departmentID)
	if err != nil {
		return nil, fmt.Errorf("list department category ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *MySQLDepartmentRepository) ListCategories(ctx context.Context, departmentID int64) ([]models.Category, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT c.id, c.name, c.slug, c.parent_id
		 FROM department_categories dc
		 JOIN categories c ON dc.category_id = c.id
		 WHERE dc.department_id = ?
		 ORDER BY c.name`, departmentID)
	if err != nil {
		return nil, fmt.Errorf("list department categories: %w", err)
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
