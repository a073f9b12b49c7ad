package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wealthwise/internal/models"
)

type ExpenseRepository interface {
	Create(ctx context.Context, e *models.Expense) error
	GetByID(ctx context.Context, userID, id int) (*models.Expense, error)
	Update(ctx context.Context, e *models.Expense) error
	Delete(ctx context.Context, userID, id int) error
	ListByUser(ctx context.Context, userID int) ([]*models.Expense, error)
	ListBetween(ctx context.Context, userID int, from, to time.Time) ([]*models.Expense, error)
}

type expenseRepository struct {
	DB *sql.DB
}

func NewExpenseRepository(db *sql.DB) ExpenseRepository {
	return &expenseRepository{DB: db}
}

const expenseColumns = `id, user_id, date, category, amount, COALESCE(description, ''), created_at`

func (r *expenseRepository) Create(ctx context.Context, e *models.Expense) error {
	const q = `
		INSERT INTO expenses (user_id, date, category, amount, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRowContext(ctx, q, e.UserID, e.Date, e.Category, e.Amount, e.Description).Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("expense create: %w", err)
	}
	return nil
}

func (r *expenseRepository) GetByID(ctx context.Context, userID, id int) (*models.Expense, error) {
	q := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 AND user_id = $2`
	e := &models.Expense{}
	err := r.DB.QueryRowContext(ctx, q, id, userID).Scan(
		&e.ID, &e.UserID, &e.Date, &e.Category, &e.Amount, &e.Description, &e.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("expense get: %w", err)
	}
	return e, nil
}

func (r *expenseRepository) Update(ctx context.Context, e *models.Expense) error {
	const q = `
		UPDATE expenses
		SET date=$1, category=$2, amount=$3, description=$4
		WHERE id=$5 AND user_id=$6
	`
	res, err := r.DB.ExecContext(ctx, q, e.Date, e.Category, e.Amount, e.Description, e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("expense update: %w", err)
	}
	return expectOne(res)
}

func (r *expenseRepository) Delete(ctx context.Context, userID, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM expenses WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return fmt.Errorf("expense delete: %w", err)
	}
	return expectOne(res)
}

func (r *expenseRepository) ListByUser(ctx context.Context, userID int) ([]*models.Expense, error) {
	q := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1 ORDER BY date DESC, id DESC`
	return r.list(ctx, q, userID)
}

// ListBetween returns rows with from <= date < to.
func (r *expenseRepository) ListBetween(ctx context.Context, userID int, from, to time.Time) ([]*models.Expense, error) {
	q := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1 AND date >= $2 AND date < $3 ORDER BY date DESC, id DESC`
	return r.list(ctx, q, userID, from, to)
}

func (r *expenseRepository) list(ctx context.Context, q string, args ...any) ([]*models.Expense, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("expense list: %w", err)
	}
	defer rows.Close()

	var res []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Category, &e.Amount, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("expense scan: %w", err)
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
