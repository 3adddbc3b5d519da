// Package errors defines the domain error taxonomy shared by all services.
package errors

import "fmt"

// DomainError is an error with a stable machine-readable code. Two domain
// errors match under errors.Is when their codes are equal, so sentinel
// values below can be used as targets regardless of the wrapped message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// WithMessage returns a copy of the error carrying a different message.
func (e *DomainError) WithMessage(format string, args ...interface{}) *DomainError {
	return &DomainError{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}
