package driving

import "github.com/custodia-labs/trawl/internal/core/domain"

// SettingsService manages user preferences.
type SettingsService interface {
	// Get returns the current settings with defaults filled in.
	Get() (*domain.Settings, error)

	// Save validates and persists settings.
	Save(settings *domain.Settings) error

	// Set parses value for the named key and persists it.
	Set(key, value string) error

	// Keys lists the setting keys Set accepts.
	Keys() []string
}
