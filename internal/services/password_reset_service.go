package services

import (
	"context"
	"errors"
	"log"

	"wealthwise/internal/models"
	"wealthwise/internal/repositories"
)

type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type passwordResetService struct {
	userRepo      repositories.UserRepository
	verifications VerificationService
	auth          AuthService
}

func NewPasswordResetService(userRepo repositories.UserRepository, verifications VerificationService, auth AuthService) PasswordResetService {
	return &passwordResetService{
		userRepo:      userRepo,
		verifications: verifications,
		auth:          auth,
	}
}

// RequestReset never tells the caller whether the account exists.
func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Printf("[password-reset] request: user not found or error: %v", err)
		return nil
	}
	if err := s.verifications.Send(ctx, user, models.PurposePasswordReset); err != nil {
		if errors.Is(err, ErrResendThrottled) {
			log.Printf("[password-reset] throttled user_id=%d", user.ID)
			return nil
		}
		log.Printf("[password-reset] failed to send code user_id=%d: %v", user.ID, err)
	}
	return nil
}

// ResetPassword expects newPassword to have passed validation.Password.
func (s *passwordResetService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrCodeInvalid
	}
	if err != nil {
		return err
	}
	if err := s.verifications.Confirm(ctx, user.ID, models.PurposePasswordReset, code); err != nil {
		return err
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	log.Printf("[password-reset] password updated user_id=%d", user.ID)
	return nil
}
