package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthwise/internal/models"
)

func TestPasswordReset_Flow(t *testing.T) {
	f := newFixture(t)
	u := registerVerified(t, f)
	ctx := context.Background()

	require.NoError(t, f.resets.RequestReset(ctx, " Test@Example.com "))
	sent := f.sender.last(t)
	require.Equal(t, models.PurposePasswordReset, sent.Purpose)

	assert.ErrorIs(t, f.resets.ResetPassword(ctx, u.Email, wrongCode(sent.Code), "NewPass123!"), ErrCodeInvalid)
	require.NoError(t, f.resets.ResetPassword(ctx, u.Email, sent.Code, "NewPass123!"))

	_, err := f.userSvc.Authenticate(ctx, u.Email, "TestPass123!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.userSvc.Authenticate(ctx, u.Email, "NewPass123!")
	assert.NoError(t, err)

	// used code
	assert.ErrorIs(t, f.resets.ResetPassword(ctx, u.Email, sent.Code, "Other123!"), ErrCodeInvalid)
}

func TestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.resets.RequestReset(context.Background(), "nobody@example.com"))
	assert.Empty(t, f.sender.sent)

	err := f.resets.ResetPassword(context.Background(), "nobody@example.com", "123456", "NewPass123!")
	assert.ErrorIs(t, err, ErrCodeInvalid)
}

func TestPasswordReset_Throttled(t *testing.T) {
	f := newFixture(t)
	registerVerified(t, f)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, f.resets.RequestReset(ctx, "test@example.com"))
	}
	sent := len(f.sender.sent)
	// throttled requests look like any other so the form leaks nothing
	assert.NoError(t, f.resets.RequestReset(ctx, "test@example.com"))
	assert.Len(t, f.sender.sent, sent)
}
