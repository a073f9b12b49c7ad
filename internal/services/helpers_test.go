package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"wealthwise/internal/models"
	"wealthwise/internal/repositories/repotest"
	"wealthwise/internal/validation"
)

type sentCode struct {
	UserID  int
	Purpose string
	Code    string
}

type captureSender struct {
	mu   sync.Mutex
	sent []sentCode
	err  error
}

func (s *captureSender) SendCode(_ context.Context, user *models.User, purpose, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentCode{UserID: user.ID, Purpose: purpose, Code: code})
	return nil
}

func (s *captureSender) last(t *testing.T) sentCode {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		t.Fatalf("no code sent")
	}
	return s.sent[len(s.sent)-1]
}

type recordingEmails struct {
	mu       sync.Mutex
	welcomes []string
}

func (e *recordingEmails) SendWelcomeEmail(email, _ string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.welcomes = append(e.welcomes, email)
	return nil
}
func (e *recordingEmails) SendVerificationCode(string, string, string) error { return nil }
func (e *recordingEmails) SendPasswordResetCode(string, string) error        { return nil }

type fixture struct {
	users         *repotest.Users
	verifRepo     *repotest.Verifications
	sender        *captureSender
	emails        *recordingEmails
	auth          AuthService
	verifications *verificationService
	userSvc       UserService
	resets        PasswordResetService
	clock         time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:     repotest.NewUsers(),
		verifRepo: repotest.NewVerifications(),
		sender:    &captureSender{},
		emails:    &recordingEmails{},
		auth:      NewAuthService([]byte("test-secret-key"), 24*time.Hour, bcrypt.MinCost),
		clock:     time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
	}
	vs := NewVerificationService(f.verifRepo, f.sender, f.auth, validation.NewOTPGenerator(nil), VerificationConfig{
		CodeLength:   6,
		TTL:          10 * time.Minute,
		MaxAttempts:  3,
		MaxResends:   3,
		ResendWindow: 10 * time.Minute,
	}).(*verificationService)
	vs.now = func() time.Time { return f.clock }
	f.verifications = vs
	f.userSvc = NewUserService(f.users, f.auth, vs, f.emails)
	f.resets = NewPasswordResetService(f.users, vs, f.auth)
	return f
}

func testRegistration() validation.RegistrationForm {
	return validation.RegistrationForm{
		FullName:        "Test User",
		Email:           "test@example.com",
		Phone:           "9876543210",
		Address:         "Test Address, Kathmandu",
		Password:        "TestPass123!",
		ConfirmPassword: "TestPass123!",
	}
}

// wrongCode returns a well-formed code different from code.
func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}
