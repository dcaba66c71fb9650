package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("APP_NAME", "shr-repository")
	assert.Equal(t, "shr-repository", GetEnvString("APP_NAME", "fallback"))
	assert.Equal(t, "fallback", GetEnvString("APP_NAME_MISSING", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("BATCH_SIZE", "25")
	t.Setenv("BATCH_SIZE_BAD", "twenty-five")
	assert.Equal(t, 25, GetEnvInt("BATCH_SIZE", 1))
	assert.Equal(t, 1, GetEnvInt("BATCH_SIZE_BAD", 1))
	assert.Equal(t, 1, GetEnvInt("BATCH_SIZE_MISSING", 1))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FEATURE_ON", "true")
	t.Setenv("FEATURE_BAD", "yep")
	assert.True(t, GetEnvBool("FEATURE_ON", false))
	assert.False(t, GetEnvBool("FEATURE_BAD", false))
	assert.True(t, GetEnvBool("FEATURE_MISSING", true))
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("RATE_LIMIT", "2.5")
	assert.Equal(t, 2.5, GetEnvFloat("RATE_LIMIT", 1.0))
	assert.Equal(t, 1.0, GetEnvFloat("RATE_LIMIT_MISSING", 1.0))
}
