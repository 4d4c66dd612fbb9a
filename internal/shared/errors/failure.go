// Package errors provides the restaurant API error taxonomy and its HTTP envelope.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind tags a Failure with the category of problem it describes.
type Kind string

const (
	KindBadRequest            Kind = "bad_request"
	KindMissingEntryData      Kind = "missing_entry_data"
	KindMissingFoodSize       Kind = "missing_food_size"
	KindImproperEntryData     Kind = "improper_entry_data"
	KindEntityNotFound        Kind = "entity_not_found"
	KindCustomerNotFound      Kind = "customer_not_found"
	KindMustDeleteOrdersFirst Kind = "must_delete_orders_first"
	KindDataInconsistency     Kind = "data_inconsistency"
	KindInternal              Kind = "internal"
)

// Machine-readable codes carried in the response envelope.
const (
	CodeOK                    = 0
	CodePartialSuccess        = 2070
	CodeGenericBadRequest     = 4000
	CodeMissingEntryData      = 4001
	CodeMissingFoodSize       = 4002
	CodeBadEntryData          = 4003
	CodeEntryNotFound         = 4004
	CodeCustomerNotFound      = 4005
	CodeMustDeleteOrdersFirst = 4009
	CodeGenericServerError    = 5000
	CodeDataInconsistency     = 5001
)

// Failure is the typed error returned by the restaurant services.
type Failure struct {
	Kind    Kind
	Status  int
	Code    int
	Message string
	Data    map[string]any
	cause   error
}

// Error implements the error interface.
func (f Failure) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s: %v", f.Message, f.cause)
	}
	return f.Message
}

// Unwrap exposes the wrapped cause.
func (f Failure) Unwrap() error { return f.cause }

// Is matches any Failure of the same kind, so templates below work with errors.Is.
func (f Failure) Is(target error) bool {
	var other Failure
	switch t := target.(type) {
	case Failure:
		other = t
	case *Failure:
		if t == nil {
			return false
		}
		other = *t
	default:
		return false
	}
	return other.Kind == f.Kind
}

// WithMessage returns a copy with a specific message.
func (f Failure) WithMessage(msg string) Failure {
	f.Message = msg
	return f
}

// WithMessagef is WithMessage with formatting.
func (f Failure) WithMessagef(format string, args ...any) Failure {
	return f.WithMessage(fmt.Sprintf(format, args...))
}

// WithMessageFrom uses err's text, first letter upper-cased, as the message.
func (f Failure) WithMessageFrom(err error) Failure {
	msg := err.Error()
	if msg != "" {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}
	return f.WithMessage(msg)
}

// WithData returns a copy with an additional data entry.
func (f Failure) WithData(key string, value any) Failure {
	data := make(map[string]any, len(f.Data)+1)
	for k, v := range f.Data {
		data[k] = v
	}
	data[key] = value
	f.Data = data
	return f
}

// Wrap returns a copy that keeps err as its cause.
func (f Failure) Wrap(err error) Failure {
	f.cause = err
	return f
}

var (
	ErrBadRequest = Failure{
		Kind:    KindBadRequest,
		Status:  http.StatusBadRequest,
		Code:    CodeGenericBadRequest,
		Message: "Invalid request",
	}
	ErrMissingEntryData = Failure{
		Kind:    KindMissingEntryData,
		Status:  http.StatusBadRequest,
		Code:    CodeMissingEntryData,
		Message: "Required entry data is missing",
	}
	ErrMissingFoodSize = Failure{
		Kind:    KindMissingFoodSize,
		Status:  http.StatusBadRequest,
		Code:    CodeMissingFoodSize,
		Message: "Food size is required for this category",
	}
	ErrImproperEntryData = Failure{
		Kind:    KindImproperEntryData,
		Status:  http.StatusBadRequest,
		Code:    CodeBadEntryData,
		Message: "Improper entry data",
	}
	ErrEntityNotFound = Failure{
		Kind:    KindEntityNotFound,
		Status:  http.StatusNotFound,
		Code:    CodeEntryNotFound,
		Message: "Entry not found",
	}
	ErrCustomerNotFound = Failure{
		Kind:    KindCustomerNotFound,
		Status:  http.StatusNotFound,
		Code:    CodeCustomerNotFound,
		Message: "Customer not found",
	}
	ErrMustDeleteOrdersFirst = Failure{
		Kind:    KindMustDeleteOrdersFirst,
		Status:  http.StatusConflict,
		Code:    CodeMustDeleteOrdersFirst,
		Message: "The customer's orders must be deleted first",
	}
	ErrDataInconsistency = Failure{
		Kind:    KindDataInconsistency,
		Status:  http.StatusInternalServerError,
		Code:    CodeDataInconsistency,
		Message: "Stored data changed unexpectedly",
	}
	ErrInternal = Failure{
		Kind:    KindInternal,
		Status:  http.StatusInternalServerError,
		Code:    CodeGenericServerError,
		Message: "An unexpected error occurred",
	}
)

var templates = map[Kind]Failure{
	KindBadRequest:            ErrBadRequest,
	KindMissingEntryData:      ErrMissingEntryData,
	KindMissingFoodSize:       ErrMissingFoodSize,
	KindImproperEntryData:     ErrImproperEntryData,
	KindEntityNotFound:        ErrEntityNotFound,
	KindCustomerNotFound:      ErrCustomerNotFound,
	KindMustDeleteOrdersFirst: ErrMustDeleteOrdersFirst,
	KindDataInconsistency:     ErrDataInconsistency,
	KindInternal:              ErrInternal,
}

// FromKind rebuilds a Failure from its kind, e.g. after crossing a process boundary.
// Unknown kinds become internal failures.
func FromKind(kind Kind, message string) Failure {
	f, ok := templates[kind]
	if !ok {
		f = ErrInternal
	}
	if message != "" {
		f.Message = message
	}
	return f
}

// AsFailure extracts a Failure from err.
func AsFailure(err error) (Failure, bool) {
	var f Failure
	if errors.As(err, &f) {
		return f, true
	}
	return Failure{}, false
}

// HTTPStatusFromError extracts HTTP status from an error if possible.
func HTTPStatusFromError(err error) int {
	if f, ok := AsFailure(err); ok {
		return f.Status
	}
	return http.StatusInternalServerError
}
