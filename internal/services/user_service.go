package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"wealthwise/internal/models"
	"wealthwise/internal/repositories"
	"wealthwise/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrPhoneTaken         = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid email/phone or password")
	ErrNotVerified        = errors.New("email not verified")
	ErrAlreadyVerified    = errors.New("account already verified")
)

type UserService interface {
	Register(ctx context.Context, form validation.RegistrationForm) (*models.User, error)
	Authenticate(ctx context.Context, identifier, password string) (*models.User, error)
	VerifyEmail(ctx context.Context, email, code string) (*models.User, error)
	ResendVerification(ctx context.Context, email string) error
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

type userService struct {
	repo          repositories.UserRepository
	auth          AuthService
	verifications VerificationService
	emailService  EmailService
	now           func() time.Time
}

func NewUserService(repo repositories.UserRepository, auth AuthService, verifications VerificationService, emailService EmailService) UserService {
	return &userService{
		repo:          repo,
		auth:          auth,
		verifications: verifications,
		emailService:  emailService,
		now:           time.Now,
	}
}

// Register expects a form already normalized by validation.ValidateRegistration.
func (s *userService) Register(ctx context.Context, form validation.RegistrationForm) (*models.User, error) {
	hash, err := s.auth.HashPassword(form.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		FullName:     form.FullName,
		Email:        form.Email,
		Phone:        form.Phone,
		Address:      form.Address,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repositories.ErrDuplicatePhone):
			return nil, ErrPhoneTaken
		}
		return nil, err
	}
	log.Printf("[user][register] created user_id=%d", user.ID)

	// the user can ask for a new code from the verify page
	if err := s.verifications.Send(ctx, user, models.PurposeEmailVerification); err != nil {
		log.Printf("[user][register] warning: verification code not sent user_id=%d: %v", user.ID, err)
	}
	return user, nil
}

// Authenticate looks the identifier up by email when it looks like one and by
// normalized phone number otherwise.
func (s *userService) Authenticate(ctx context.Context, identifier, password string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)

	var (
		user *models.User
		err  error
	)
	if validation.IsEmail(identifier) {
		user, err = s.repo.GetByEmail(ctx, strings.ToLower(identifier))
	} else {
		phone, perr := validation.Phone(identifier)
		if perr != nil {
			log.Printf("[auth][login] identifier is neither email nor phone")
			return nil, ErrInvalidCredentials
		}
		user, err = s.repo.GetByPhone(ctx, phone)
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.auth.CheckPassword(strings.TrimSpace(user.PasswordHash), password) {
		log.Printf("[auth][login] password mismatch user_id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return user, ErrNotVerified
	}
	return user, nil
}

func (s *userService) VerifyEmail(ctx context.Context, email, code string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrCodeInvalid
	}
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return user, ErrAlreadyVerified
	}
	if err := s.verifications.Confirm(ctx, user.ID, models.PurposeEmailVerification, strings.TrimSpace(code)); err != nil {
		return nil, err
	}

	at := s.now()
	if err := s.repo.MarkVerified(ctx, user.ID, at); err != nil {
		return nil, err
	}
	user.IsVerified = true
	user.VerifiedAt = &at

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FullName); err != nil {
			// warn but do not fail verification
			log.Printf("[user][verify] warning: welcome email failed user_id=%d: %v", user.ID, err)
		}
	}
	return user, nil
}

func (s *userService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repositories.ErrNotFound) {
		// don't leak existence
		log.Printf("[user][resend] no account for identifier")
		return nil
	}
	if err != nil {
		return err
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}
	return s.verifications.Send(ctx, user, models.PurposeEmailVerification)
}

func (s *userService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
