package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("OCR_TIMEOUT_A", "90s")
	t.Setenv("OCR_TIMEOUT_B", "45")
	t.Setenv("OCR_TIMEOUT_C", "soon")

	assert.Equal(t, 90*time.Second, getEnvAsDuration("OCR_TIMEOUT_A", time.Minute))
	assert.Equal(t, 45*time.Second, getEnvAsDuration("OCR_TIMEOUT_B", time.Minute))
	assert.Equal(t, time.Minute, getEnvAsDuration("OCR_TIMEOUT_C", time.Minute))
	assert.Equal(t, time.Minute, getEnvAsDuration("OCR_TIMEOUT_UNSET", time.Minute))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_BASE_URL", "http://notes.test")
	t.Setenv("OCR_TIMEOUT", "")

	cfg := Load()

	assert.Equal(t, 60*time.Second, cfg.OCR.Timeout)
	assert.Equal(t, "http://notes.test/functions/v1/extract-text", cfg.OCR.ProxyURL)
	assert.Equal(t, "http://notes.test/uploads", cfg.Storage.PublicBaseURL)
	assert.False(t, cfg.Storage.PublicBaseURLExplicit)
}

func TestLoadExplicitPublicBase(t *testing.T) {
	t.Setenv("STORAGE_PUBLIC_BASE_URL", "https://cdn.example.com/notes")

	cfg := Load()

	assert.Equal(t, "https://cdn.example.com/notes", cfg.Storage.PublicBaseURL)
	assert.True(t, cfg.Storage.PublicBaseURLExplicit)
}
