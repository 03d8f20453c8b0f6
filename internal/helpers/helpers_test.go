package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("HELPER_TEST_KEY", "value")
	assert.Equal(t, "value", EnvOrDefault("HELPER_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", EnvOrDefault("HELPER_TEST_MISSING", "fallback"))
}

func TestEnvIntOrDefault(t *testing.T) {
	t.Setenv("HELPER_TEST_INT", "15")
	assert.Equal(t, 15, EnvIntOrDefault("HELPER_TEST_INT", 5))

	t.Setenv("HELPER_TEST_BAD_INT", "fifteen")
	assert.Equal(t, 5, EnvIntOrDefault("HELPER_TEST_BAD_INT", 5))

	assert.Equal(t, 5, EnvIntOrDefault("HELPER_TEST_MISSING_INT", 5))
}
