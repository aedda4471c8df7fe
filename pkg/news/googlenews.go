package news

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

const (
	DefaultGoogleNewsBaseURL = "https://news.google.com/rss"
	defaultMaxItems          = 20
	userAgent                = "Mozilla/5.0"
)

var _ FeedClient = (*GoogleNewsClient)(nil)

var markupPolicy = bluemonday.StrictPolicy()

type GoogleNewsClient struct {
	baseURL    string
	maxItems   int
	httpClient *http.Client
}

func NewGoogleNewsClient(baseURL string, timeout time.Duration, maxItems int) *GoogleNewsClient {
	if baseURL == "" {
		baseURL = DefaultGoogleNewsBaseURL
	}
	if maxItems <= 0 {
		maxItems = defaultMaxItems
	}

	return &GoogleNewsClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		maxItems:   maxItems,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *GoogleNewsClient) Name() string {
	return "GoogleNews"
}

func (c *GoogleNewsClient) FeedURL(feedQuery string) string {
	return fmt.Sprintf(
		"%s/headlines/section/topic/%s?hl=ja&gl=JP&ceid=JP:ja",
		c.baseURL, url.PathEscape(feedQuery),
	)
}

// Fetch issues a single GET for the topic feed. Any transport, status or parse
// failure is reported as ErrFeedUnavailable; an empty feed is not an error.
func (c *GoogleNewsClient) Fetch(ctx context.Context, feedQuery string) ([]Entry, error) {
	feedURL := c.FeedURL(feedQuery)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrFeedUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: googlenews fetch: %w", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: googlenews status %d", ErrFeedUnavailable, resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: googlenews decode: %w", ErrFeedUnavailable, err)
	}

	entries := make([]Entry, 0, min(len(feed.Items), c.maxItems))
	for _, item := range feed.Items {
		if len(entries) == c.maxItems {
			break
		}
		if item == nil {
			continue
		}

		title := CleanLeadingNumber(item.Title)
		link := strings.TrimSpace(item.Link)
		if !hasText(title) || link == "" {
			continue
		}

		entries = append(entries, Entry{
			Title:       title,
			Link:        link,
			SummaryHTML: item.Description,
			PublishedAt: item.PublishedParsed,
		})
	}

	return entries, nil
}

// hasText reports whether s still has visible text once markup is stripped.
func hasText(s string) bool {
	return len(strings.Fields(html.UnescapeString(markupPolicy.Sanitize(s)))) > 0
}
