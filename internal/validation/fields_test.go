package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	for _, ok := range []string{"John Doe", "Test User", "ram", "Ñandú Pérez"} {
		assert.NoError(t, Name(ok), ok)
	}
	for _, bad := range []string{"John123", "John@Doe", "Anna-Marie", "Tom_"} {
		err := Name(bad)
		require.Error(t, err, bad)
		assert.Contains(t, err.Error(), "letters and spaces")
		assert.True(t, errors.Is(err, ErrInvalidFormat))
	}
}

func TestName_EmptyIsRequired(t *testing.T) {
	for _, s := range []string{"", "   "} {
		err := Name(s)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrRequired), "%q: %v", s, err)
	}
}

func TestIsEmail(t *testing.T) {
	for _, ok := range []string{"test@example.com", "user@domain.co.uk", "name.surname@company.com", "a+b@x-y.org"} {
		assert.True(t, IsEmail(ok), ok)
	}
	for _, bad := range []string{
		"notanemail", "missing@domain", "@nodomain.com", "no@.com",
		"9876543210", "+9779876543210", "a@b.c0m", "two@@at.com", "",
	} {
		assert.False(t, IsEmail(bad), bad)
	}
}

func TestPhone(t *testing.T) {
	got, err := Phone("9876543210")
	require.NoError(t, err)
	assert.Equal(t, "9876543210", got)

	got, err = Phone("+9779876543210")
	require.NoError(t, err)
	assert.Equal(t, "9876543210", got)

	again, err := Phone(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestPhone_LengthBeforeFormat(t *testing.T) {
	for _, s := range []string{"98765", "", "+977", "98765432101", "+97798765", "abc"} {
		_, err := Phone(s)
		require.Error(t, err, s)
		assert.Contains(t, err.Error(), "10 digits", s)
		assert.True(t, errors.Is(err, ErrInvalidLength), s)
	}

	_, err := Phone("98765x3210")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
	assert.NotContains(t, err.Error(), "10 digits")
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("SecurePass123!"))
	assert.NoError(t, Password("TestPass123!"))

	cases := []struct {
		in   string
		want string
		kind *Error
	}{
		{"Weak1!", "8 characters", ErrTooShort},
		{"weakpass123!", "uppercase", ErrMissingClass},
		{"WeakPassword!", "numbers", ErrMissingClass},
		{"WeakPass123", "special characters", ErrMissingClass},
		// first violated rule wins
		{"weak", "8 characters", ErrTooShort},
		{"weakpassword", "uppercase", ErrMissingClass},
	}
	for _, tc := range cases {
		err := Password(tc.in)
		require.Error(t, err, tc.in)
		assert.Contains(t, err.Error(), tc.want, tc.in)
		assert.True(t, errors.Is(err, tc.kind), tc.in)
	}
}

func TestPassword_SpaceCountsAsSpecial(t *testing.T) {
	assert.NoError(t, Password("Secure Pass123"))
}
