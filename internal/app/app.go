package app

import (
	"fmt"
	"net/http"
	"time"

	"newstagger/internal/category"
	"newstagger/internal/config"
	"newstagger/internal/normalizer"
	"newstagger/internal/pipeline"
	"newstagger/pkg/llm"
	"newstagger/pkg/news"

	"github.com/prometheus/client_golang/prometheus"
)

// App holds the components shared by the server and the one-shot fetcher.
type App struct {
	Categories *category.Registry
	Annotator  *llm.Annotator
	Pipeline   *pipeline.Pipeline
}

func New(cfg *config.Config, reg prometheus.Registerer) (*App, error) {
	tagger, err := NewTagger(cfg)
	if err != nil {
		return nil, err
	}

	categories := category.NewRegistry()
	annotator := llm.NewAnnotator(tagger, cfg.TagTimeout, cfg.TagRatePerSec)

	p := pipeline.New(
		categories,
		news.NewGoogleNewsClient(cfg.FeedBaseURL, cfg.FeedTimeout, cfg.FeedMaxItems),
		normalizer.New(cfg.SummaryMaxRunes),
		annotator,
		pipeline.NewMetrics(reg),
		pipeline.Options{
			MaxArticles:    cfg.MaxArticles,
			TagConcurrency: cfg.TagConcurrency,
			FeedRetries:    cfg.FeedRetries,
		},
	)

	return &App{Categories: categories, Annotator: annotator, Pipeline: p}, nil
}

func NewTagger(cfg *config.Config) (llm.Tagger, error) {
	switch cfg.TagProvider {
	case config.ProviderGemini:
		// The Annotator enforces TagTimeout; this only bounds stray connections.
		return llm.NewGeminiTagger(cfg.APIKey, cfg.GeminiModel, &http.Client{Timeout: cfg.TagTimeout + 5*time.Second}), nil
	case config.ProviderOpenAI:
		return llm.NewOpenAITagger(cfg.APIKey), nil
	case config.ProviderAnthropic:
		return llm.NewAnthropicTagger(cfg.APIKey), nil
	default:
		return nil, fmt.Errorf("unsupported tag provider %q", cfg.TagProvider)
	}
}
