package helpers

import (
	"os"
	"strconv"
)

// EnvOrDefault returns the value of the environment variable key, or
// fallback when it is unset or empty.
func EnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnvIntOrDefault returns the integer value of the environment variable key,
// or fallback when it is unset, empty, or not a valid integer.
func EnvIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
