// Package pagination provides a reusable load-more pagination framework
// for the content endpoints. Clients request a growing prefix of the
// filtered result set via the `shown` parameter; "load more" raises it by
// one step until the full set is visible.
package pagination

import (
	"os"
	"strconv"
)

// Config holds pagination configuration settings.
// These values can be loaded from environment variables or config files.
type Config struct {
	DefaultShown int // Initial number of items shown (typically 6)
	Step         int // How many items each "load more" adds
	MaxShown     int // Maximum allowed shown value (typically 100)
}

// DefaultConfig returns the default pagination configuration.
// Default values: shown=6, step=6, max=100
func DefaultConfig() Config {
	return Config{
		DefaultShown: 6,
		Step:         6,
		MaxShown:     100,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_DEFAULT_SHOWN: Initial number of items shown
//   - PAGINATION_STEP: Items added per "load more"
//   - PAGINATION_MAX_SHOWN: Maximum shown value
//
// Falls back to DefaultConfig() if environment variables are not set.
func LoadFromEnv() Config {
	return Config{
		DefaultShown: getEnvAsInt("PAGINATION_DEFAULT_SHOWN", 6),
		Step:         getEnvAsInt("PAGINATION_STEP", 6),
		MaxShown:     getEnvAsInt("PAGINATION_MAX_SHOWN", 100),
	}
}

// getEnvAsInt retrieves an environment variable and parses it as an integer.
// Returns the default value if the variable is not set or cannot be parsed.
func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}
