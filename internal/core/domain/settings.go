package domain

import (
	"fmt"
	"strings"
)

// OutputFormat selects how the CLI prints results.
type OutputFormat string

// Available output formats.
const (
	// OutputAuto prints a table on a terminal and JSON otherwise.
	OutputAuto OutputFormat = "auto"

	// OutputTable always prints a table.
	OutputTable OutputFormat = "table"

	// OutputJSON always prints JSON.
	OutputJSON OutputFormat = "json"
)

// IsValid returns true if the output format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputAuto, OutputTable, OutputJSON:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// Settings are user preferences persisted between runs.
type Settings struct {
	// DefaultLimit is the page size the CLI asks for; 0 lets each provider decide.
	DefaultLimit int

	// Output is the CLI output format.
	Output OutputFormat

	// ServeAddr is the listen address of the HTTP API.
	ServeAddr string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		DefaultLimit: 0,
		Output:       OutputAuto,
		ServeAddr:    ":8009",
	}
}

// Validate checks the settings for consistency.
func (s *Settings) Validate() error {
	if s.DefaultLimit < 0 {
		return fmt.Errorf("%w: default limit must not be negative", ErrInvalidInput)
	}
	if !s.Output.IsValid() {
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidInput, s.Output)
	}
	if strings.TrimSpace(s.ServeAddr) == "" {
		return fmt.Errorf("%w: serve address is required", ErrInvalidInput)
	}
	return nil
}
