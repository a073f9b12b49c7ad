package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthwise/internal/models"
)

func registerVerified(t *testing.T, f *fixture) *models.User {
	t.Helper()
	ctx := context.Background()
	u, err := f.userSvc.Register(ctx, testRegistration())
	require.NoError(t, err)
	_, err = f.userSvc.VerifyEmail(ctx, u.Email, f.sender.last(t).Code)
	require.NoError(t, err)
	return u
}

func TestUserService_RegisterSendsCode(t *testing.T) {
	f := newFixture(t)
	u, err := f.userSvc.Register(context.Background(), testRegistration())
	require.NoError(t, err)

	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "TestPass123!", u.PasswordHash)
	assert.False(t, u.IsVerified)
	sent := f.sender.last(t)
	assert.Equal(t, u.ID, sent.UserID)
	assert.Equal(t, models.PurposeEmailVerification, sent.Purpose)
}

func TestUserService_RegisterDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.userSvc.Register(ctx, testRegistration())
	require.NoError(t, err)

	_, err = f.userSvc.Register(ctx, testRegistration())
	assert.ErrorIs(t, err, ErrEmailTaken)

	form := testRegistration()
	form.Email = "other@example.com"
	_, err = f.userSvc.Register(ctx, form)
	assert.ErrorIs(t, err, ErrPhoneTaken)
}

func TestUserService_VerifyEmail(t *testing.T) {
	f := newFixture(t)
	u := registerVerified(t, f)

	stored, err := f.users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)
	require.NotNil(t, stored.VerifiedAt)
	assert.Equal(t, []string{"test@example.com"}, f.emails.welcomes)

	_, err = f.userSvc.VerifyEmail(context.Background(), u.Email, "123456")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
	assert.ErrorIs(t, f.userSvc.ResendVerification(context.Background(), u.Email), ErrAlreadyVerified)
}

func TestUserService_VerifyEmailUnknownAccount(t *testing.T) {
	f := newFixture(t)
	_, err := f.userSvc.VerifyEmail(context.Background(), "nobody@example.com", "123456")
	assert.ErrorIs(t, err, ErrCodeInvalid)
	assert.NoError(t, f.userSvc.ResendVerification(context.Background(), "nobody@example.com"))
}

func TestUserService_AuthenticateByEmailOrPhone(t *testing.T) {
	f := newFixture(t)
	u := registerVerified(t, f)
	ctx := context.Background()

	for _, id := range []string{"test@example.com", "  TEST@example.com ", "9876543210", "+9779876543210"} {
		got, err := f.userSvc.Authenticate(ctx, id, "TestPass123!")
		require.NoError(t, err, id)
		assert.Equal(t, u.ID, got.ID, id)
	}
}

func TestUserService_AuthenticateFailures(t *testing.T) {
	f := newFixture(t)
	registerVerified(t, f)
	ctx := context.Background()

	cases := map[string][2]string{
		"wrong password":   {"test@example.com", "WrongPass123!"},
		"unknown email":    {"nobody@example.com", "TestPass123!"},
		"unknown phone":    {"9800000000", "TestPass123!"},
		"sql injection":    {"'; DROP TABLE users; --", "test"},
		"script injection": {"<script>alert('XSS')</script>", "test"},
	}
	for name, tc := range cases {
		_, err := f.userSvc.Authenticate(ctx, tc[0], tc[1])
		assert.ErrorIs(t, err, ErrInvalidCredentials, name)
	}
}

func TestUserService_AuthenticateUnverified(t *testing.T) {
	f := newFixture(t)
	u, err := f.userSvc.Register(context.Background(), testRegistration())
	require.NoError(t, err)

	got, err := f.userSvc.Authenticate(context.Background(), "test@example.com", "TestPass123!")
	assert.ErrorIs(t, err, ErrNotVerified)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
}
