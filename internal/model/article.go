package model

import "time"

const MaxTags = 3

type Category struct {
	ID          string
	DisplayName string
	FeedQuery   string
}

// Article is the unit handed to the presentation layer. Tags holds 0..MaxTags
// labels; an empty list means tagging failed or was skipped for this article.
type Article struct {
	Title       string
	Link        string
	Summary     string
	PublishedAt *time.Time
	Tags        []string
}
