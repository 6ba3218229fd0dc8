package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("DB_HOST")
	defer os.Setenv("DB_HOST", origHost)

	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("MINIO_USE_SSL", "true")
	os.Setenv("OCR_LANGUAGES", "eng, spa")
	os.Setenv("ANALYZER_SUMMARY_SENTENCES", "6")
	defer func() {
		os.Unsetenv("DB_MAX_OPEN_CONNS")
		os.Unsetenv("MINIO_USE_SSL")
		os.Unsetenv("OCR_LANGUAGES")
		os.Unsetenv("ANALYZER_SUMMARY_SENTENCES")
	}()

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, []string{"eng", "spa"}, cfg.OCR.Languages)
	assert.Equal(t, 6, cfg.Analyzer.SummarySentences)
	assert.Equal(t, "gpt-4o-mini", cfg.Analyzer.OpenAIModel)
}

func TestAuthConfigValidate(t *testing.T) {
	assert.Error(t, AuthConfig{}.Validate())
	assert.Error(t, AuthConfig{TokenTTLMin: 60, BcryptCost: 10}.Validate())
	assert.NoError(t, AuthConfig{JWTSecret: "s", TokenTTLMin: 60, BcryptCost: 10}.Validate())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvList(t *testing.T) {
	key := "TEST_LIST_VAR"

	os.Setenv(key, "eng,hin ,tam")
	assert.Equal(t, []string{"eng", "hin", "tam"}, getEnvList(key, nil))

	os.Setenv(key, " , ")
	assert.Equal(t, []string{"eng"}, getEnvList(key, []string{"eng"}))

	os.Unsetenv(key)
	assert.Equal(t, []string{"eng"}, getEnvList(key, []string{"eng"}))
}
