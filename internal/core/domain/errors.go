package domain

import (
	"errors"
	"fmt"
)

type ServiceErrorKind string

const (
	ErrorKindUnknownService       ServiceErrorKind = "unknown_service"
	ErrorKindTargetMismatch       ServiceErrorKind = "target_mismatch"
	ErrorKindMissingRequiredField ServiceErrorKind = "missing_required_field"
	ErrorKindFieldOutOfRange      ServiceErrorKind = "field_out_of_range"
	ErrorKindInvalidFieldType     ServiceErrorKind = "invalid_field_type"
	ErrorKindUnknownField         ServiceErrorKind = "unknown_field"
	ErrorKindDownstreamFailure    ServiceErrorKind = "downstream_failure"
)

// ServiceError is the error type returned by the service dispatcher.
// Field is only set for field-level validation failures.
type ServiceError struct {
	Kind    ServiceErrorKind
	Service string
	Field   string
	Err     error
}

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("service %q: %s", e.Service, e.Kind)
	if e.Field != "" {
		msg = fmt.Sprintf("%s: field %q", msg, e.Field)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	return msg
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// Sentinel errors returned by selector validation. The dispatcher maps them
// to ServiceError kinds with the field name attached.
var (
	ErrValueOutOfRange  = errors.New("value out of range")
	ErrInvalidValueType = errors.New("invalid value type")
)
