// Package errors collects the warnings produced while decoding. It forwards
// the common functions of the standard errors package so that callers need
// only one import.
package errors

import (
	"errors"
	"strings"
)

func New(text string) error {
	return errors.New(text)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// Errors is an ordered list of errors. A decoder appends to it as it finds
// problems that do not stop decoding.
type Errors []error

// Error formats the list with one message per line. Lines within a message
// are indented with a tab.
func (errs Errors) Error() string {
	switch len(errs) {
	case 0:
		return "no errors"
	case 1:
		return errs[0].Error()
	}
	var buf strings.Builder
	buf.WriteString("multiple errors:")
	for _, err := range errs {
		buf.WriteString("\n\t")
		buf.WriteString(strings.ReplaceAll(err.Error(), "\n", "\n\t"))
	}
	return buf.String()
}

// Unwrap returns the list, so that Is and As match any member.
func (errs Errors) Unwrap() []error {
	return errs
}

// Append returns errs with each non-nil err appended.
func (errs Errors) Append(err ...error) Errors {
	for _, err := range err {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Count returns the number of members that match target.
func (errs Errors) Count(target error) int {
	n := 0
	for _, err := range errs {
		if errors.Is(err, target) {
			n++
		}
	}
	return n
}

// Return returns nil if errs is empty, or errs otherwise.
func (errs Errors) Return() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Union combines errs into one Errors, flattening any members that are
// themselves Errors. It returns nil if nothing remains.
func Union(errs ...error) error {
	var e Errors
	for _, err := range errs {
		switch err := err.(type) {
		case nil:
		case Errors:
			e = e.Append(err...)
		default:
			e = append(e, err)
		}
	}
	return e.Return()
}
