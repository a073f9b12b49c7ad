// Package validation holds the field validators used by the WealthWise forms:
// names, email-or-phone identifiers, phone numbers, passwords and one-time codes.
//
// Every validator reports at most one *Error per call; the form helpers collect
// those per field into FieldErrors.
package validation

import (
	"errors"
	"sort"
)

type Kind string

const (
	KindInvalidFormat Kind = "invalid_format"
	KindInvalidLength Kind = "invalid_length"
	KindTooShort      Kind = "too_short"
	KindMissingClass  Kind = "missing_class"
	KindMismatch      Kind = "mismatch"
	KindRequired      Kind = "required"
)

// Error is a single rejected field value. Message is shown to the user as is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches on Kind, so errors.Is(err, ErrTooShort) works for any message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidFormat = &Error{Kind: KindInvalidFormat, Message: "invalid format"}
	ErrInvalidLength = &Error{Kind: KindInvalidLength, Message: "invalid length"}
	ErrTooShort      = &Error{Kind: KindTooShort, Message: "too short"}
	ErrMissingClass  = &Error{Kind: KindMissingClass, Message: "missing required character"}
	ErrMismatch      = &Error{Kind: KindMismatch, Message: "values do not match"}
	ErrRequired      = &Error{Kind: KindRequired, Message: "required"}
)

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// FieldErrors maps a form field name to the first rule it violated.
type FieldErrors map[string]*Error

func (fe FieldErrors) OK() bool { return len(fe) == 0 }

func (fe FieldErrors) add(field string, err error) {
	if err == nil {
		return
	}
	var ve *Error
	if !errors.As(err, &ve) {
		ve = newError(KindInvalidFormat, err.Error())
	}
	fe[field] = ve
}

// Messages flattens the errors for templates.
func (fe FieldErrors) Messages() map[string]string {
	out := make(map[string]string, len(fe))
	for field, err := range fe {
		out[field] = err.Message
	}
	return out
}

// Err returns nil when every field passed, otherwise all failures joined in
// field-name order.
func (fe FieldErrors) Err() error {
	if fe.OK() {
		return nil
	}
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	errs := make([]error, 0, len(fields))
	for _, f := range fields {
		errs = append(errs, fe[f])
	}
	return errors.Join(errs...)
}
