package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wealthwise/internal/models"
)

type VerificationRepository interface {
	Create(ctx context.Context, v *models.VerificationCode) error
	GetLatest(ctx context.Context, userID int, purpose string) (*models.VerificationCode, error)
	CountRecentSends(ctx context.Context, userID int, purpose string, since time.Time) (int, error)
	IncrementAttempts(ctx context.Context, id int64) (int, error)
	MarkConfirmed(ctx context.Context, id int64) error
	Expire(ctx context.Context, id int64, at time.Time) error
}

type verificationRepository struct {
	DB *sql.DB
}

func NewVerificationRepository(db *sql.DB) VerificationRepository {
	return &verificationRepository{DB: db}
}

// Create inserts a new row; every send is its own row.
func (r *verificationRepository) Create(ctx context.Context, v *models.VerificationCode) error {
	const q = `
		INSERT INTO verification_codes (user_id, purpose, code_hash, sent_at, expires_at, confirmed, attempts)
		VALUES ($1, $2, $3, $4, $5, FALSE, 0)
		RETURNING id
	`
	if err := r.DB.QueryRowContext(ctx, q, v.UserID, v.Purpose, v.CodeHash, v.SentAt, v.ExpiresAt).Scan(&v.ID); err != nil {
		return fmt.Errorf("verification create: %w", err)
	}
	return nil
}

func (r *verificationRepository) GetLatest(ctx context.Context, userID int, purpose string) (*models.VerificationCode, error) {
	const q = `
		SELECT id, user_id, purpose, code_hash, sent_at, expires_at, confirmed, attempts
		FROM verification_codes
		WHERE user_id = $1 AND purpose = $2
		ORDER BY sent_at DESC, id DESC
		LIMIT 1
	`
	var v models.VerificationCode
	err := r.DB.QueryRowContext(ctx, q, userID, purpose).Scan(
		&v.ID, &v.UserID, &v.Purpose, &v.CodeHash, &v.SentAt, &v.ExpiresAt, &v.Confirmed, &v.Attempts,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("verification latest: %w", err)
	}
	return &v, nil
}

// CountRecentSends is used for resend throttling.
func (r *verificationRepository) CountRecentSends(ctx context.Context, userID int, purpose string, since time.Time) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM verification_codes
		WHERE user_id = $1 AND purpose = $2 AND sent_at >= $3
	`
	var c int
	if err := r.DB.QueryRowContext(ctx, q, userID, purpose, since).Scan(&c); err != nil {
		return 0, fmt.Errorf("verification count recent: %w", err)
	}
	return c, nil
}

func (r *verificationRepository) IncrementAttempts(ctx context.Context, id int64) (int, error) {
	const q = `
		UPDATE verification_codes
		SET attempts = attempts + 1
		WHERE id = $1
		RETURNING attempts
	`
	var attempts int
	if err := r.DB.QueryRowContext(ctx, q, id).Scan(&attempts); err != nil {
		return 0, fmt.Errorf("verification increment attempts: %w", err)
	}
	return attempts, nil
}

// MarkConfirmed flips an unconfirmed code; ErrNotFound when the code is
// missing or was already used.
func (r *verificationRepository) MarkConfirmed(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE verification_codes SET confirmed = TRUE WHERE id = $1 AND confirmed = FALSE`, id)
	if err != nil {
		return fmt.Errorf("verification mark confirmed: %w", err)
	}
	return expectOne(res)
}

func (r *verificationRepository) Expire(ctx context.Context, id int64, at time.Time) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE verification_codes SET expires_at = $1 WHERE id = $2`, at, id)
	return err
}
