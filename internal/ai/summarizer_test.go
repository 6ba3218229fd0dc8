package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"legalscan/internal/config"
)

func TestNewOpenAISummarizer(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		_, err := NewOpenAISummarizer(config.AnalyzerConfig{})
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("configured", func(t *testing.T) {
		s, err := NewOpenAISummarizer(config.AnalyzerConfig{
			OpenAIAPIKey: "sk-test",
			OpenAIModel:  "gpt-4o-mini",
		})
		assert.NoError(t, err)
		assert.NotNil(t, s)
	})
}
