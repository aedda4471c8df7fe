package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingCredential = errors.New("missing tag service credential")

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Port        string
	FrontendURL string
	LogLevel    slog.Level

	TagProvider    string
	APIKey         string
	GeminiModel    string
	TagTimeout     time.Duration
	TagConcurrency int
	TagRatePerSec  float64

	FeedBaseURL     string
	FeedTimeout     time.Duration
	FeedMaxItems    int
	FeedRetries     int
	MaxArticles     int
	SummaryMaxRunes int
}

// Load reads an optional .env file and then the process environment. The
// tagging credential is required; its absence is ErrMissingCredential.
func Load() (*Config, error) {
	godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (*Config, error) {
	p := parser{getenv: getenv}

	cfg := &Config{
		Port:        p.str("PORT", "5000"),
		FrontendURL: getenv("FRONTEND_URL"),
		TagProvider: strings.ToLower(p.str("TAG_PROVIDER", ProviderGemini)),
		GeminiModel: p.str("GEMINI_MODEL", "gemini-2.5-flash"),
		FeedBaseURL: p.str("FEED_BASE_URL", "https://news.google.com/rss"),

		TagTimeout:     p.duration("TAG_TIMEOUT", 15*time.Second),
		TagConcurrency: p.positiveInt("TAG_CONCURRENCY", 4),
		TagRatePerSec:  p.float("TAG_RATE_PER_SEC", 0),

		FeedTimeout:     p.duration("FEED_TIMEOUT", 10*time.Second),
		FeedMaxItems:    p.positiveInt("FEED_MAX_ITEMS", 20),
		FeedRetries:     p.nonNegativeInt("FEED_RETRIES", 1),
		MaxArticles:     p.positiveInt("MAX_ARTICLES", 10),
		SummaryMaxRunes: p.positiveInt("SUMMARY_MAX_RUNES", 150),
	}

	level, err := parseLevel(getenv("LOG_LEVEL"))
	if err != nil {
		p.errs = append(p.errs, err)
	}
	cfg.LogLevel = level

	if len(p.errs) > 0 {
		return nil, errors.Join(p.errs...)
	}

	switch cfg.TagProvider {
	case ProviderGemini:
		cfg.APIKey = getenv("GEMINI_API_KEY")
		if cfg.APIKey == "" {
			cfg.APIKey = getenv("GOOGLE_API_KEY")
		}
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: set GEMINI_API_KEY or GOOGLE_API_KEY", ErrMissingCredential)
		}
	case ProviderOpenAI:
		cfg.APIKey = getenv("OPENAI_API_KEY")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: set OPENAI_API_KEY", ErrMissingCredential)
		}
	case ProviderAnthropic:
		cfg.APIKey = getenv("ANTHROPIC_API_KEY")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: set ANTHROPIC_API_KEY", ErrMissingCredential)
		}
	default:
		return nil, fmt.Errorf("invalid TAG_PROVIDER %q: must be one of gemini, openai, anthropic", cfg.TagProvider)
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

type parser struct {
	getenv func(string) string
	errs   []error
}

func (p *parser) str(key, def string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return def
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		p.errs = append(p.errs, fmt.Errorf("invalid %s %q: must be a positive duration like 10s", key, v))
		return def
	}
	return d
}

func (p *parser) intValue(key string, def, min int) int {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < min {
		p.errs = append(p.errs, fmt.Errorf("invalid %s %q: must be an integer >= %d", key, v, min))
		return def
	}
	return n
}

func (p *parser) positiveInt(key string, def int) int {
	return p.intValue(key, def, 1)
}

func (p *parser) nonNegativeInt(key string, def int) int {
	return p.intValue(key, def, 0)
}

func (p *parser) float(key string, def float64) float64 {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return def
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		p.errs = append(p.errs, fmt.Errorf("invalid %s %q: must be a number >= 0", key, v))
		return def
	}
	return f
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
