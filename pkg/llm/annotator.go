package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"newstagger/internal/model"

	"golang.org/x/time/rate"
)

const DefaultTagTimeout = 15 * time.Second

// TagResult is the outcome of one tag call. Tags is always usable: when Err is
// set it is an empty slice.
type TagResult struct {
	Tags []string
	Err  error
}

// Annotator bounds each Tagger call and turns failures into empty tag lists.
type Annotator struct {
	tagger  Tagger
	timeout time.Duration
	limiter *rate.Limiter
}

// NewAnnotator builds an Annotator. ratePerSec <= 0 disables rate limiting.
func NewAnnotator(tagger Tagger, timeout time.Duration, ratePerSec float64) *Annotator {
	if timeout <= 0 {
		timeout = DefaultTagTimeout
	}

	a := &Annotator{tagger: tagger, timeout: timeout}
	if ratePerSec > 0 {
		a.limiter = rate.NewLimiter(rate.Limit(ratePerSec), 1)
	}
	return a
}

func (a *Annotator) TaggerName() string {
	return a.tagger.Name()
}

func (a *Annotator) GenerateTags(ctx context.Context, article model.Article) TagResult {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	tags, err := a.call(ctx, article)
	if err != nil {
		slog.Warn("tag generation failed, continuing without tags",
			"title", article.Title,
			"tagger", a.tagger.Name(),
			"error_class", ErrorClass(err),
			"error", err,
		)
		return TagResult{Tags: []string{}, Err: err}
	}

	if len(tags) > model.MaxTags {
		tags = tags[:model.MaxTags]
	}
	return TagResult{Tags: tags}
}

func (a *Annotator) call(ctx context.Context, article model.Article) ([]string, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
	}

	type reply struct {
		tags []string
		err  error
	}

	// Buffered so a Tagger that ignores ctx cannot block its goroutine forever.
	done := make(chan reply, 1)
	go func() {
		tags, err := a.tagger.Tags(ctx, TagInput{Title: article.Title, Summary: article.Summary})
		done <- reply{tags: tags, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.tags, r.err
	}
}

// ErrorClass maps a tag error to a short label for logs and metrics.
func ErrorClass(err error) string {
	var netErr net.Error
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.Is(err, ErrBadStatus):
		return "bad_status"
	case errors.Is(err, ErrUnparsableResponse), errors.Is(err, ErrEmptyResponse):
		return "unparsable"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	default:
		return "transport"
	}
}
