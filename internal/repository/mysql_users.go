package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amirahs/stockroom-golang/internal/apperror"
	"github.com/amirahs/stockroom-golang/internal/models"
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) q(ctx context.Context) querier {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return r.db
}

func (r *MySQLUserRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	res, err := r.q(ctx).ExecContext(ctx,
		`INSERT INTO users (role, email, password_hash, full_name, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.Role, user.Email, user.PasswordHash, user.FullName, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID, err = res.LastInsertId()
	return err
}

const userColumns = `id, role, email, password_hash, full_name, created_at FROM users`

func (r *MySQLUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.scanUser(r.q(ctx).QueryRowContext(ctx, `SELECT `+userColumns+` WHERE id = ?`, id))
}

func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(r.q(ctx).QueryRowContext(ctx, `SELECT `+userColumns+` WHERE email = ?`, email))
}

func (r *MySQLUserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Role, &user.Email,
		&user.PasswordHash, &user.FullName, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.New(apperror.CodeNotFound, "user not found")
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &user, nil
}

func (r *MySQLUserRepository) Update(ctx context.Context, user *models.User) error {
	res, err := r.q(ctx).ExecContext(ctx,
		`UPDATE users SET role = ?, email = ?, password_hash = ?, full_name = ? WHERE id = ?`,
		user.Role, user.Email, user.PasswordHash, user.FullName, user.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.New(apperror.CodeNotFound, "user not found")
	}
	return nil
}

func (r *MySQLUserRepository) ListAdminIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.q(ctx).QueryContext(ctx,
		`SELECT id FROM users WHERE role = ?`, models.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("list admin ids: %w", err)
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
