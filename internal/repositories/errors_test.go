package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: "users_email_key"}
	assert.Equal(t, "users_email_key", uniqueViolation(dup))
	assert.Equal(t, "users_email_key", uniqueViolation(fmt.Errorf("wrapped: %w", dup)))

	assert.Empty(t, uniqueViolation(&pq.Error{Code: "23503", Constraint: "fk"}))
	assert.Empty(t, uniqueViolation(errors.New("boom")))
}
