package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEpisode(t *testing.T) {
	tests := []struct {
		name    string
		season  int
		episode int
		found   bool
	}{
		{"Shogun.2024.S01E03.1080p.WEB", 1, 3, true},
		{"The Bear s03e10 720p", 3, 10, true},
		{"Show Name S2 E5", 2, 5, true},
		{"Show Name Season 2 Episode 5", 0, 0, false},
		{"Severance S02.E04", 2, 4, true},
		{"Dune Part Two 2024 2160p", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			season, episode := ParseEpisode(tt.name)
			if !tt.found {
				assert.Nil(t, season)
				assert.Nil(t, episode)
				return
			}
			require.NotNil(t, season)
			require.NotNil(t, episode)
			assert.Equal(t, tt.season, *season)
			assert.Equal(t, tt.episode, *episode)
		})
	}
}
