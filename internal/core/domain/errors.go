package domain

import (
	"errors"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Gateway Errors.

	// ErrProviderUnknown indicates no provider is registered under the id.
	ErrProviderUnknown = errors.New("provider unknown")

	// ErrOperationUnsupported indicates the provider does not declare the operation.
	ErrOperationUnsupported = errors.New("operation unsupported")

	// ErrCategoryUnsupported indicates the operation variant takes no category
	// for this provider.
	ErrCategoryUnsupported = errors.New("category unsupported")

	// ErrCategoryInvalid indicates the category is not one the provider knows.
	ErrCategoryInvalid = errors.New("category invalid")

	// ErrBlocked indicates the backend is unreachable or returned no usable page.
	// It is distinct from ErrEmpty, which means the backend answered with nothing.
	ErrBlocked = errors.New("provider blocked")

	// ErrEmpty indicates the provider answered but found nothing.
	ErrEmpty = errors.New("no results")

	// ErrProviderFault indicates the provider call failed unexpectedly.
	ErrProviderFault = errors.New("provider fault")
)

// CategoryError reports an invalid category together with the categories
// the provider accepts. It unwraps to ErrCategoryInvalid.
type CategoryError struct {
	Category  string
	Available []string
}

func (e *CategoryError) Error() string {
	return "category invalid: " + e.Category + " (available: " + strings.Join(e.Available, ", ") + ")"
}

// Unwrap returns ErrCategoryInvalid.
func (e *CategoryError) Unwrap() error {
	return ErrCategoryInvalid
}
