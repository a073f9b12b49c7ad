package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"wealthwise/internal/models"
	"wealthwise/internal/repositories"
	"wealthwise/internal/validation"
)

var (
	ErrResendThrottled = errors.New("resend throttled")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrCodeExpired     = errors.New("code expired")
	ErrCodeInvalid     = errors.New("code invalid")
)

type VerificationConfig struct {
	CodeLength   int
	TTL          time.Duration
	MaxAttempts  int
	MaxResends   int
	ResendWindow time.Duration
}

func (c VerificationConfig) withDefaults() VerificationConfig {
	if c.CodeLength <= 0 {
		c.CodeLength = 6
	}
	if c.TTL <= 0 {
		c.TTL = 10 * time.Minute
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 5
	}
	if c.MaxResends <= 0 {
		c.MaxResends = 3
	}
	if c.ResendWindow <= 0 {
		c.ResendWindow = 10 * time.Minute
	}
	return c
}

type VerificationService interface {
	Send(ctx context.Context, user *models.User, purpose string) error
	Confirm(ctx context.Context, userID int, purpose, code string) error
	CodeLength() int
}

type verificationService struct {
	repo   repositories.VerificationRepository
	sender CodeSender
	hasher PasswordHasher
	otp    *validation.OTPGenerator
	cfg    VerificationConfig
	now    func() time.Time
}

func NewVerificationService(
	repo repositories.VerificationRepository,
	sender CodeSender,
	hasher PasswordHasher,
	otp *validation.OTPGenerator,
	cfg VerificationConfig,
) VerificationService {
	if otp == nil {
		otp = validation.NewOTPGenerator(nil)
	}
	return &verificationService{
		repo:   repo,
		sender: sender,
		hasher: hasher,
		otp:    otp,
		cfg:    cfg.withDefaults(),
		now:    time.Now,
	}
}

func (s *verificationService) CodeLength() int { return s.cfg.CodeLength }

// Send issues a fresh code; every resend is a new code. Only the bcrypt hash
// is stored.
func (s *verificationService) Send(ctx context.Context, user *models.User, purpose string) error {
	now := s.now()
	cnt, err := s.repo.CountRecentSends(ctx, user.ID, purpose, now.Add(-s.cfg.ResendWindow))
	if err != nil {
		return err
	}
	if cnt >= s.cfg.MaxResends {
		return ErrResendThrottled
	}

	code, err := s.otp.Generate(s.cfg.CodeLength)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	hash, err := s.hasher.HashPassword(code)
	if err != nil {
		return err
	}

	v := &models.VerificationCode{
		UserID:    user.ID,
		Purpose:   purpose,
		CodeHash:  hash,
		SentAt:    now,
		ExpiresAt: now.Add(s.cfg.TTL),
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return err
	}

	if err := s.sender.SendCode(ctx, user, purpose, code); err != nil {
		return fmt.Errorf("deliver code: %w", err)
	}
	log.Printf("[verify][send] user_id=%d purpose=%s", user.ID, purpose)
	return nil
}

// Confirm checks the latest code for (user, purpose): TTL, bcrypt compare
// and the attempts limit.
func (s *verificationService) Confirm(ctx context.Context, userID int, purpose, code string) error {
	if err := validation.OTP(code, s.cfg.CodeLength); err != nil {
		return ErrCodeInvalid
	}
	v, err := s.repo.GetLatest(ctx, userID, purpose)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrCodeInvalid
	}
	if err != nil {
		return err
	}
	if v.Confirmed {
		return ErrCodeInvalid
	}
	now := s.now()
	if now.After(v.ExpiresAt) {
		return ErrCodeExpired
	}

	if !s.hasher.CheckPassword(v.CodeHash, code) {
		attempts, err := s.repo.IncrementAttempts(ctx, v.ID)
		if err != nil {
			return err
		}
		if attempts >= s.cfg.MaxAttempts {
			if err := s.repo.Expire(ctx, v.ID, now); err != nil {
				log.Printf("[verify][confirm] expire failed id=%d: %v", v.ID, err)
			}
			return ErrTooManyAttempts
		}
		return ErrCodeInvalid
	}

	// a concurrent request may have used the code since GetLatest
	if err := s.repo.MarkConfirmed(ctx, v.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCodeInvalid
		}
		return err
	}
	log.Printf("[verify][confirm] OK user_id=%d purpose=%s", userID, purpose)
	return nil
}
