package main

import "fmt"

// ServiceError carries the failing service and operation alongside the cause,
// so log lines and user-facing toasts can name where things went wrong.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error returns the formatted error string
func (e *ServiceError) Error() string {
	return fmt.Sprintf("[%s.%s] %v", e.Service, e.Operation, e.Err)
}

// Unwrap supports errors.Is / errors.As
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with service and operation context.
// A nil error passes through as nil so call sites can wrap unconditionally.
func WrapError(service, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Err:       err,
	}
}
