package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"wealthwise/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	MarkVerified(ctx context.Context, id int, at time.Time) error
	UpdatePassword(ctx context.Context, id int, hash string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, full_name, email, phone, address, password_hash, is_verified, verified_at, created_at`

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
		INSERT INTO users (full_name, email, phone, address, password_hash, is_verified, verified_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, q,
		user.FullName,
		user.Email,
		user.Phone,
		user.Address,
		user.PasswordHash,
		user.IsVerified,
		user.VerifiedAt,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		switch c := uniqueViolation(err); {
		case strings.Contains(c, "email"):
			return ErrDuplicateEmail
		case strings.Contains(c, "phone"):
			return ErrDuplicatePhone
		}
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
}

func (r *userRepository) getOne(ctx context.Context, q string, arg any) (*models.User, error) {
	u := &models.User{}
	var (
		address    sql.NullString
		verifiedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, q, arg).Scan(
		&u.ID, &u.FullName, &u.Email, &u.Phone, &address, &u.PasswordHash,
		&u.IsVerified, &verifiedAt, &u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user get: %w", err)
	}
	if address.Valid {
		u.Address = address.String
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		u.VerifiedAt = &t
	}
	return u, nil
}

func (r *userRepository) MarkVerified(ctx context.Context, id int, at time.Time) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET is_verified = TRUE, verified_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("user mark verified: %w", err)
	}
	return expectOne(res)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int, hash string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("user update password: %w", err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
