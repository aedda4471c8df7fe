package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"newstagger/internal/model"

	"github.com/go-playground/assert/v2"
)

type fakeTagger struct {
	tags  []string
	err   error
	block bool
	calls int
}

func (f *fakeTagger) Name() string { return "fake" }

func (f *fakeTagger) Tags(ctx context.Context, input TagInput) ([]string, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.tags, f.err
}

// stubbornTagger ignores cancellation entirely.
type stubbornTagger struct {
	release chan struct{}
}

func (s *stubbornTagger) Name() string { return "stubborn" }

func (s *stubbornTagger) Tags(ctx context.Context, input TagInput) ([]string, error) {
	<-s.release
	return []string{"遅延"}, nil
}

func TestGenerateTags_Success(t *testing.T) {
	a := NewAnnotator(&fakeTagger{tags: []string{"経済", "金利"}}, time.Second, 0)

	res := a.GenerateTags(context.Background(), model.Article{Title: "t"})

	assert.Equal(t, nil, res.Err)
	assert.Equal(t, []string{"経済", "金利"}, res.Tags)
}

func TestGenerateTags_CapsAtMaxTags(t *testing.T) {
	a := NewAnnotator(&fakeTagger{tags: []string{"a", "b", "c", "d", "e"}}, time.Second, 0)

	res := a.GenerateTags(context.Background(), model.Article{Title: "t"})

	assert.Equal(t, model.MaxTags, len(res.Tags))
}

func TestGenerateTags_DegradesOnError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantClass string
	}{
		{name: "bad status", err: fmt.Errorf("%w: 500", ErrBadStatus), wantClass: "bad_status"},
		{name: "unparsable", err: ErrUnparsableResponse, wantClass: "unparsable"},
		{name: "empty", err: ErrEmptyResponse, wantClass: "unparsable"},
		{name: "transport", err: errors.New("connection reset"), wantClass: "transport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnnotator(&fakeTagger{err: tt.err}, time.Second, 0)

			res := a.GenerateTags(context.Background(), model.Article{Title: "t"})

			assert.Equal(t, 0, len(res.Tags))
			if res.Tags == nil {
				t.Error("expected non-nil empty tags")
			}
			assert.Equal(t, tt.wantClass, ErrorClass(res.Err))
		})
	}
}

func TestGenerateTags_Timeout(t *testing.T) {
	a := NewAnnotator(&fakeTagger{block: true}, 30*time.Millisecond, 0)

	start := time.Now()
	res := a.GenerateTags(context.Background(), model.Article{Title: "t"})

	assert.Equal(t, 0, len(res.Tags))
	assert.Equal(t, "timeout", ErrorClass(res.Err))
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("timeout not enforced, took %v", elapsed)
	}
}

func TestGenerateTags_TimeoutWhenTaggerIgnoresContext(t *testing.T) {
	tagger := &stubbornTagger{release: make(chan struct{})}
	defer close(tagger.release)
	a := NewAnnotator(tagger, 30*time.Millisecond, 0)

	res := a.GenerateTags(context.Background(), model.Article{Title: "t"})

	assert.Equal(t, 0, len(res.Tags))
	if !errors.Is(res.Err, context.DeadlineExceeded) {
		t.Errorf("got %v, want deadline exceeded", res.Err)
	}
}

func TestGenerateTags_ParentCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := NewAnnotator(&fakeTagger{block: true}, time.Second, 0)

	res := a.GenerateTags(ctx, model.Article{Title: "t"})

	assert.Equal(t, 0, len(res.Tags))
	assert.Equal(t, "canceled", ErrorClass(res.Err))
}

func TestGenerateTags_RateLimited(t *testing.T) {
	tagger := &fakeTagger{tags: []string{"経済"}}
	// One token per 10s: the second call cannot get a token within its timeout.
	a := NewAnnotator(tagger, 50*time.Millisecond, 0.1)

	first := a.GenerateTags(context.Background(), model.Article{Title: "a"})
	second := a.GenerateTags(context.Background(), model.Article{Title: "b"})

	assert.Equal(t, []string{"経済"}, first.Tags)
	assert.Equal(t, 0, len(second.Tags))
	assert.Equal(t, "rate_limited", ErrorClass(second.Err))
	assert.Equal(t, 1, tagger.calls)
}

func TestNewAnnotator_DefaultTimeout(t *testing.T) {
	a := NewAnnotator(&fakeTagger{}, 0, 0)

	assert.Equal(t, DefaultTagTimeout, a.timeout)
	assert.Equal(t, "fake", a.TaggerName())
}

func TestErrorClass(t *testing.T) {
	assert.Equal(t, "ok", ErrorClass(nil))
	assert.Equal(t, "timeout", ErrorClass(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.Equal(t, "rate_limited", ErrorClass(fmt.Errorf("%w: burst", ErrRateLimited)))
}
