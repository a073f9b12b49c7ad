package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wealthwise/internal/models"
)

type IncomeRepository interface {
	Create(ctx context.Context, inc *models.Income) error
	GetByID(ctx context.Context, userID, id int) (*models.Income, error)
	Update(ctx context.Context, inc *models.Income) error
	Delete(ctx context.Context, userID, id int) error
	ListByUser(ctx context.Context, userID int) ([]*models.Income, error)
	ListBetween(ctx context.Context, userID int, from, to time.Time) ([]*models.Income, error)
}

type incomeRepository struct {
	DB *sql.DB
}

func NewIncomeRepository(db *sql.DB) IncomeRepository {
	return &incomeRepository{DB: db}
}

const incomeColumns = `id, user_id, date, source, amount, COALESCE(description, ''), created_at`

func (r *incomeRepository) Create(ctx context.Context, inc *models.Income) error {
	const q = `
		INSERT INTO income (user_id, date, source, amount, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRowContext(ctx, q, inc.UserID, inc.Date, inc.Source, inc.Amount, inc.Description).Scan(&inc.ID, &inc.CreatedAt); err != nil {
		return fmt.Errorf("income create: %w", err)
	}
	return nil
}

func (r *incomeRepository) GetByID(ctx context.Context, userID, id int) (*models.Income, error) {
	q := `SELECT ` + incomeColumns + ` FROM income WHERE id = $1 AND user_id = $2`
	inc := &models.Income{}
	err := r.DB.QueryRowContext(ctx, q, id, userID).Scan(
		&inc.ID, &inc.UserID, &inc.Date, &inc.Source, &inc.Amount, &inc.Description, &inc.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("income get: %w", err)
	}
	return inc, nil
}

func (r *incomeRepository) Update(ctx context.Context, inc *models.Income) error {
	const q = `
		UPDATE income
		SET date=$1, source=$2, amount=$3, description=$4
		WHERE id=$5 AND user_id=$6
	`
	res, err := r.DB.ExecContext(ctx, q, inc.Date, inc.Source, inc.Amount, inc.Description, inc.ID, inc.UserID)
	if err != nil {
		return fmt.Errorf("income update: %w", err)
	}
	return expectOne(res)
}

func (r *incomeRepository) Delete(ctx context.Context, userID, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM income WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return fmt.Errorf("income delete: %w", err)
	}
	return expectOne(res)
}

func (r *incomeRepository) ListByUser(ctx context.Context, userID int) ([]*models.Income, error) {
	q := `SELECT ` + incomeColumns + ` FROM income WHERE user_id = $1 ORDER BY date DESC, id DESC`
	return r.list(ctx, q, userID)
}

// ListBetween returns rows with from <= date < to.
func (r *incomeRepository) ListBetween(ctx context.Context, userID int, from, to time.Time) ([]*models.Income, error) {
	q := `SELECT ` + incomeColumns + ` FROM income WHERE user_id = $1 AND date >= $2 AND date < $3 ORDER BY date DESC, id DESC`
	return r.list(ctx, q, userID, from, to)
}

func (r *incomeRepository) list(ctx context.Context, q string, args ...any) ([]*models.Income, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("income list: %w", err)
	}
	defer rows.Close()

	var res []*models.Income
	for rows.Next() {
		inc := &models.Income{}
		if err := rows.Scan(&inc.ID, &inc.UserID, &inc.Date, &inc.Source, &inc.Amount, &inc.Description, &inc.CreatedAt); err != nil {
			return nil, fmt.Errorf("income scan: %w", err)
		}
		res = append(res, inc)
	}
	return res, rows.Err()
}
