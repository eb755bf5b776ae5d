package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driven"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyDefaultLimit = "cli.default_limit"
	KeyOutput       = "cli.output"
	KeyServeAddr    = "serve.addr"
)

// SettingsService manages user preferences on top of a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the stored settings. Missing or invalid values fall back to
// the defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	if _, ok := s.configStore.Get(KeyDefaultLimit); ok {
		if n := s.configStore.GetInt(KeyDefaultLimit); n >= 0 {
			settings.DefaultLimit = n
		}
	}
	if out := domain.OutputFormat(s.configStore.GetString(KeyOutput)); out.IsValid() {
		settings.Output = out
	}
	if addr := strings.TrimSpace(s.configStore.GetString(KeyServeAddr)); addr != "" {
		settings.ServeAddr = addr
	}

	return &settings, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.configStore.Set(KeyDefaultLimit, settings.DefaultLimit); err != nil {
		return fmt.Errorf("save default limit: %w", err)
	}
	if err := s.configStore.Set(KeyOutput, settings.Output.String()); err != nil {
		return fmt.Errorf("save output: %w", err)
	}
	if err := s.configStore.Set(KeyServeAddr, settings.ServeAddr); err != nil {
		return fmt.Errorf("save serve addr: %w", err)
	}
	return nil
}

// Set parses value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch strings.ToLower(strings.TrimSpace(key)) {
	case KeyDefaultLimit:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, KeyDefaultLimit)
		}
		settings.DefaultLimit = n
	case KeyOutput:
		settings.Output = domain.OutputFormat(strings.ToLower(value))
	case KeyServeAddr:
		settings.ServeAddr = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys lists the setting keys Set accepts.
func (s *SettingsService) Keys() []string {
	return []string{KeyDefaultLimit, KeyOutput, KeyServeAddr}
}
