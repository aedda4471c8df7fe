package llm

import (
	"context"
	"errors"
)

var (
	ErrBadStatus          = errors.New("tag service returned non-2xx status")
	ErrEmptyResponse      = errors.New("empty response from tag service")
	ErrUnparsableResponse = errors.New("unparsable tag response")
	ErrRateLimited        = errors.New("tag rate limit wait failed")
)

type TagInput struct {
	Title   string
	Summary string
}

// Tagger asks a generative-language service for labels describing one
// article. Implementations return labels already passed through ParseTags.
type Tagger interface {
	Tags(ctx context.Context, input TagInput) ([]string, error)
	Name() string
}
