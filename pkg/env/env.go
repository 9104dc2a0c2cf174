package env

import "os"

// Get reads key from the process environment, returning fallback when the
// variable is unset or empty.
func Get(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

// First reads the first key that is set, falling back in order. Useful for
// console tooling that accepts both prefixed and legacy variable names.
func First(fallback string, keys ...string) string {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return fallback
}
