package repositories

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicatePhone = errors.New("phone already registered")
)

const pqUniqueViolation = "23505"

// uniqueViolation returns the violated constraint name, or "" when err is
// not a unique violation.
func uniqueViolation(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return pqErr.Constraint
	}
	return ""
}
