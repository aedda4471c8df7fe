package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"newstagger/internal/model"
	"newstagger/pkg/llm"
	"newstagger/pkg/news"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"
)

type CategoryResolver interface {
	Resolve(id string) (model.Category, error)
}

type FeedFetcher interface {
	Fetch(ctx context.Context, feedQuery string) ([]news.Entry, error)
}

type ArticleNormalizer interface {
	NormalizeAll(entries []news.Entry) []model.Article
}

type TagGenerator interface {
	GenerateTags(ctx context.Context, article model.Article) llm.TagResult
}

type Options struct {
	MaxArticles    int
	TagConcurrency int
	FeedRetries    int
	RetryInterval  time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxArticles <= 0 {
		o.MaxArticles = 10
	}
	if o.TagConcurrency <= 0 {
		o.TagConcurrency = 4
	}
	if o.FeedRetries < 0 {
		o.FeedRetries = 0
	}
	if o.RetryInterval <= 0 {
		o.RetryInterval = 500 * time.Millisecond
	}
	return o
}

// Pipeline runs one stateless fetch-normalize-annotate pass per request.
type Pipeline struct {
	categories CategoryResolver
	feed       FeedFetcher
	normalizer ArticleNormalizer
	tagger     TagGenerator
	metrics    *Metrics
	opts       Options
}

func New(categories CategoryResolver, feed FeedFetcher, normalizer ArticleNormalizer, tagger TagGenerator, metrics *Metrics, opts Options) *Pipeline {
	return &Pipeline{
		categories: categories,
		feed:       feed,
		normalizer: normalizer,
		tagger:     tagger,
		metrics:    metrics,
		opts:       opts.withDefaults(),
	}
}

// HandleCategoryRequest returns the category's articles in feed order, each
// annotated with 0..3 tags. Only an unknown category or an unavailable feed
// fails the request; tagging failures leave that article's tags empty.
func (p *Pipeline) HandleCategoryRequest(ctx context.Context, categoryID string) ([]model.Article, error) {
	start := time.Now()

	category, err := p.categories.Resolve(categoryID)
	if err != nil {
		return nil, err
	}
	defer func() {
		p.metrics.duration.WithLabelValues(category.ID).Observe(time.Since(start).Seconds())
	}()

	entries, err := p.fetch(ctx, category)
	if err != nil {
		return nil, err
	}

	if len(entries) > p.opts.MaxArticles {
		entries = entries[:p.opts.MaxArticles]
	}

	articles := p.normalizer.NormalizeAll(entries)
	tagged := p.annotate(ctx, articles)

	slog.Info("category request complete",
		"category", category.ID,
		"articles", len(articles),
		"tagged", tagged,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return articles, nil
}

func (p *Pipeline) fetch(ctx context.Context, category model.Category) ([]news.Entry, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = p.opts.RetryInterval

	attempt := 0
	var entries []news.Entry
	err := backoff.Retry(func() error {
		attempt++
		var err error
		entries, err = p.feed.Fetch(ctx, category.FeedQuery)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		slog.Warn("feed fetch failed", "category", category.ID, "attempt", attempt, "error", err)
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(p.opts.FeedRetries)), ctx))

	if err != nil {
		p.metrics.feedFetches.WithLabelValues(category.ID, "error").Inc()
		slog.Error("feed unavailable", "category", category.ID, "attempts", attempt, "error", err)
		if !errors.Is(err, news.ErrFeedUnavailable) {
			err = fmt.Errorf("%w: %w", news.ErrFeedUnavailable, err)
		}
		return nil, err
	}

	p.metrics.feedFetches.WithLabelValues(category.ID, "ok").Inc()
	return entries, nil
}

// annotate fills articles[i].Tags concurrently. Each goroutine owns exactly
// one index, so the slice needs no locking and order is preserved.
func (p *Pipeline) annotate(ctx context.Context, articles []model.Article) int {
	results := make([]bool, len(articles))

	var g errgroup.Group
	g.SetLimit(p.opts.TagConcurrency)

	for i := range articles {
		if ctx.Err() != nil {
			slog.Warn("request abandoned, skipping remaining tag calls", "remaining", len(articles)-i)
			break
		}

		g.Go(func() error {
			res := p.tagger.GenerateTags(ctx, articles[i])
			articles[i].Tags = res.Tags
			if articles[i].Tags == nil {
				articles[i].Tags = []string{}
			}
			results[i] = res.Err == nil && len(res.Tags) > 0
			p.metrics.tagRequests.WithLabelValues(llm.ErrorClass(res.Err)).Inc()
			return nil
		})
	}
	g.Wait()

	tagged := 0
	for _, ok := range results {
		if ok {
			tagged++
		}
	}
	return tagged
}
