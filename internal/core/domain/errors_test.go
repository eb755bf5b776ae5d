package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrProviderUnknown", ErrProviderUnknown},
		{"ErrOperationUnsupported", ErrOperationUnsupported},
		{"ErrCategoryUnsupported", ErrCategoryUnsupported},
		{"ErrCategoryInvalid", ErrCategoryInvalid},
		{"ErrBlocked", ErrBlocked},
		{"ErrEmpty", ErrEmpty},
		{"ErrProviderFault", ErrProviderFault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrBlocked, ErrEmpty))
	assert.False(t, errors.Is(ErrEmpty, ErrBlocked))
	assert.False(t, errors.Is(ErrCategoryInvalid, ErrCategoryUnsupported))
}

func TestCategoryError(t *testing.T) {
	err := &CategoryError{Category: "xyz", Available: []string{"movies", "tv"}}

	assert.True(t, errors.Is(err, ErrCategoryInvalid))
	assert.Contains(t, err.Error(), "xyz")
	assert.Contains(t, err.Error(), "movies, tv")

	var ce *CategoryError
	wrapped := errors.Join(errors.New("outer"), err)
	assert.True(t, errors.As(wrapped, &ce))
	assert.Equal(t, []string{"movies", "tv"}, ce.Available)
}
