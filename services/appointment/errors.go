package appointment

import (
	"errors"
	"fmt"
)

// Workflow error codes.
const (
	CodeNotFound          = "notFound"
	CodeInvalidTransition = "invalidTransition"
	CodeIntegrity         = "integrityError"
	CodePersistence       = "persistenceError"
)

// WorkflowError is a caller-visible failure of a lifecycle workflow.
type WorkflowError struct {
	Code    string
	Message string
	Err     error
}

func (e *WorkflowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *WorkflowError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(msg string) error {
	return &WorkflowError{Code: CodeNotFound, Message: msg}
}

func NewInvalidTransitionError(msg string) error {
	return &WorkflowError{Code: CodeInvalidTransition, Message: msg}
}

func NewIntegrityError(msg string) error {
	return &WorkflowError{Code: CodeIntegrity, Message: msg}
}

func NewPersistenceError(msg string, err error) error {
	return &WorkflowError{Code: CodePersistence, Message: msg, Err: err}
}

func hasCode(err error, code string) bool {
	var we *WorkflowError
	return errors.As(err, &we) && we.Code == code
}

func IsNotFound(err error) bool          { return hasCode(err, CodeNotFound) }
func IsInvalidTransition(err error) bool { return hasCode(err, CodeInvalidTransition) }
func IsIntegrityError(err error) bool    { return hasCode(err, CodeIntegrity) }
func IsPersistenceError(err error) bool  { return hasCode(err, CodePersistence) }
