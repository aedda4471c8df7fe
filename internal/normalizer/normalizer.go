package normalizer

import (
	"html"
	"strings"
	"unicode/utf8"

	"newstagger/internal/model"
	"newstagger/pkg/news"

	"github.com/microcosm-cc/bluemonday"
)

const DefaultSummaryMaxRunes = 150

// Entity decoding can turn "&lt;b&gt;" into a tag again, so any angle
// bracket left after stripping is swapped for its fullwidth form.
var bracketReplacer = strings.NewReplacer("<", "＜", ">", "＞")

// Normalizer turns feed entries into Articles. It is safe for concurrent use.
type Normalizer struct {
	policy          *bluemonday.Policy
	summaryMaxRunes int
}

func New(summaryMaxRunes int) *Normalizer {
	if summaryMaxRunes <= 0 {
		summaryMaxRunes = DefaultSummaryMaxRunes
	}
	return &Normalizer{
		policy:          bluemonday.StrictPolicy(),
		summaryMaxRunes: summaryMaxRunes,
	}
}

// Normalize never fails. Missing fields come back empty and Tags is always a
// non-nil empty slice until the annotator fills it.
func (n *Normalizer) Normalize(e news.Entry) model.Article {
	return model.Article{
		Title:       n.PlainText(e.Title),
		Link:        strings.TrimSpace(e.Link),
		Summary:     truncateRunes(news.CleanLeadingNumber(n.PlainText(e.SummaryHTML)), n.summaryMaxRunes),
		PublishedAt: e.PublishedAt,
		Tags:        []string{},
	}
}

func (n *Normalizer) NormalizeAll(entries []news.Entry) []model.Article {
	articles := make([]model.Article, len(entries))
	for i, e := range entries {
		articles[i] = n.Normalize(e)
	}
	return articles
}

// PlainText strips all markup from s and returns whitespace-collapsed text.
func (n *Normalizer) PlainText(s string) string {
	if s == "" {
		return ""
	}

	text := html.UnescapeString(n.policy.Sanitize(s))
	text = bracketReplacer.Replace(text)

	return strings.Join(strings.Fields(text), " ")
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max]))
}
