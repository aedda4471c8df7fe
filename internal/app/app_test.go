package app

import (
	"testing"

	"newstagger/internal/config"

	"github.com/go-playground/assert/v2"
	"github.com/prometheus/client_golang/prometheus"
)

func TestNewTagger(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
	}{
		{config.ProviderGemini, "gemini:gemini-2.5-flash"},
		{config.ProviderOpenAI, "openai:gpt-4o-mini"},
		{config.ProviderAnthropic, "anthropic:claude-4.5-haiku"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			tagger, err := NewTagger(&config.Config{TagProvider: tt.provider, APIKey: "k", GeminiModel: "gemini-2.5-flash"})
			assert.Equal(t, nil, err)
			assert.Equal(t, tt.wantName, tagger.Name())
		})
	}
}

func TestNewTagger_Unsupported(t *testing.T) {
	_, err := NewTagger(&config.Config{TagProvider: "mistral", APIKey: "k"})
	assert.NotEqual(t, nil, err)
}

func TestNew(t *testing.T) {
	cfg, err := config.FromEnv(func(key string) string {
		if key == "GEMINI_API_KEY" {
			return "k"
		}
		return ""
	})
	assert.Equal(t, nil, err)

	a, err := New(cfg, prometheus.NewRegistry())
	assert.Equal(t, nil, err)
	assert.Equal(t, "gemini:gemini-2.5-flash", a.Annotator.TaggerName())
	assert.Equal(t, 5, len(a.Categories.All()))
}
