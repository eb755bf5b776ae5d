package driven

// ConfigStore holds user preferences as loosely typed keys.
// Writes persist before Set returns.
type ConfigStore interface {
	// Get reports the raw value stored under key and whether it is set.
	Get(key string) (any, bool)

	// GetString returns the value under key, or "" when unset or not a string.
	GetString(key string) string

	// GetInt returns the value under key, or 0 when unset or not numeric.
	GetInt(key string) int

	// Set stores value under key.
	Set(key string, value any) error
}
