package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

func TestSettingsCmd_ShowTable(t *testing.T) {
	settings := tableSettings()
	settings.settings.DefaultLimit = 30
	useServices(t, &Services{Settings: settings})

	out, err := execute(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "cli.default_limit = 30")
	assert.Contains(t, out, "cli.output        = table")
	assert.Contains(t, out, "serve.addr        = :8009")
}

func TestSettingsShowCmd_JSON(t *testing.T) {
	useServices(t, &Services{Settings: &mockSettings{settings: domain.DefaultSettings()}})

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.JSONEq(t, `{"cli.default_limit":0,"cli.output":"auto","serve.addr":":8009"}`, out)
}

func TestSettingsSetCmd(t *testing.T) {
	settings := &mockSettings{settings: domain.DefaultSettings()}
	useServices(t, &Services{Settings: settings})

	out, err := execute(t, "settings", "set", "cli.default_limit", "40")

	require.NoError(t, err)
	assert.Equal(t, "40", settings.set["cli.default_limit"])
	assert.Contains(t, out, "cli.default_limit updated")
}

func TestSettingsSetCmd_Error(t *testing.T) {
	useServices(t, &Services{Settings: &mockSettings{setErr: domain.ErrInvalidInput}})

	_, err := execute(t, "settings", "set", "nope", "1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "failed to set nope")
}

func TestSettingsCmd_NotConfigured(t *testing.T) {
	useServices(t, &Services{})

	_, err := execute(t, "settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
