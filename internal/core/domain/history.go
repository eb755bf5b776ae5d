package domain

import (
	"regexp"
	"strconv"
	"time"
)

// SeenItem is an item the gateway has returned at least once.
type SeenItem struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	ProviderID string    `json:"provider"`
	MagnetLink string    `json:"magnet_link,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	// Functional is true while the provider keeps returning the item.
	Functional bool   `json:"functional"`
	TMDBID     string `json:"tmdb_id,omitempty"`
	Season     *int   `json:"season,omitempty"`
	Episode    *int   `json:"episode,omitempty"`
}

var episodePattern = regexp.MustCompile(`(?i)\bS(\d{1,2})[ ._-]?E(\d{1,3})\b`)

// ParseEpisode extracts season and episode numbers from a release name
// such as "Show.Name.S02E07.1080p". Both are nil when none are found.
func ParseEpisode(name string) (season, episode *int) {
	m := episodePattern.FindStringSubmatch(name)
	if m == nil {
		return nil, nil
	}
	s, _ := strconv.Atoi(m[1])
	e, _ := strconv.Atoi(m[2])
	return &s, &e
}
