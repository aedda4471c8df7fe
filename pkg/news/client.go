package news

import (
	"context"
	"errors"
	"time"
)

var ErrFeedUnavailable = errors.New("feed unavailable")

// Entry is a single feed item as parsed off the wire, before normalization.
type Entry struct {
	Title       string
	Link        string
	SummaryHTML string
	PublishedAt *time.Time
}

type FeedClient interface {
	Fetch(ctx context.Context, feedQuery string) ([]Entry, error)
	Name() string
}
