package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapability_Constants(t *testing.T) {
	assert.Equal(t, Capability(0), CapNone)
	assert.Equal(t, Capability(1), CapSearch)
	assert.Equal(t, Capability(2), CapTrending)
	assert.Equal(t, Capability(4), CapRecent)
	assert.Equal(t, Capability(8), CapCategorySearch)
}

func TestCapability_Has(t *testing.T) {
	tests := []struct {
		name     string
		cap      Capability
		op       Operation
		expected bool
	}{
		{"none has nothing", CapNone, OpSearch, false},
		{"search only", CapSearch, OpSearch, true},
		{"search lacks trending", CapSearch, OpTrending, false},
		{"combined has recent", CapSearch | CapRecent, OpRecent, true},
		{"combined lacks category", CapSearch | CapRecent, OpCategorySearch, false},
		{"unknown operation", CapSearch | CapTrending | CapRecent | CapCategorySearch, Operation("bogus"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cap.Has(tt.op))
		})
	}
}

func TestCapability_String(t *testing.T) {
	assert.Equal(t, "none", CapNone.String())
	assert.Equal(t, "search", CapSearch.String())
	assert.Equal(t, "search,trending,recent,category", (CapCategorySearch | CapRecent | CapTrending | CapSearch).String())
}

func TestCapability_Operations(t *testing.T) {
	assert.Empty(t, CapNone.Operations())
	assert.Equal(t, []Operation{OpSearch, OpCategorySearch}, (CapCategorySearch | CapSearch).Operations())
}

func TestParseCapabilities(t *testing.T) {
	t.Run("case insensitive", func(t *testing.T) {
		c, err := ParseCapabilities([]string{"Search", " TRENDING ", "category"})
		require.NoError(t, err)
		assert.Equal(t, CapSearch|CapTrending|CapCategorySearch, c)
	})

	t.Run("empty list", func(t *testing.T) {
		c, err := ParseCapabilities(nil)
		require.NoError(t, err)
		assert.Equal(t, CapNone, c)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParseCapabilities([]string{"search", "popular"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "popular")
	})
}

func TestOperation_Properties(t *testing.T) {
	tests := []struct {
		op            Operation
		takesQuery    bool
		takesCategory bool
		title         string
	}{
		{OpSearch, true, false, "Search"},
		{OpTrending, false, true, "Trending"},
		{OpRecent, false, true, "Recent"},
		{OpCategorySearch, true, true, "Category"},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			assert.True(t, tt.op.IsValid())
			assert.Equal(t, tt.takesQuery, tt.op.TakesQuery())
			assert.Equal(t, tt.takesCategory, tt.op.TakesCategory())
			assert.Equal(t, tt.title, tt.op.Title())
		})
	}

	assert.False(t, Operation("popular").IsValid())
}
