package normalizer

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"newstagger/pkg/news"

	"github.com/go-playground/assert/v2"
)

func TestNormalize_GoogleNewsDescription(t *testing.T) {
	published := time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)
	n := New(150)

	a := n.Normalize(news.Entry{
		Title:       "首相が記者会見 - NHK",
		Link:        " https://example.com/a ",
		SummaryHTML: `<a href="https://example.com/a" target="_blank">首相が記者会見</a>&nbsp;&nbsp;<font color="#6f6f6f">NHK</font>`,
		PublishedAt: &published,
	})

	assert.Equal(t, "首相が記者会見 - NHK", a.Title)
	assert.Equal(t, "https://example.com/a", a.Link)
	assert.Equal(t, "首相が記者会見 NHK", a.Summary)
	assert.Equal(t, &published, a.PublishedAt)
	assert.Equal(t, 0, len(a.Tags))
	if a.Tags == nil {
		t.Error("expected non-nil tags slice")
	}
}

func TestNormalize_NoMarkupSurvives(t *testing.T) {
	n := New(500)

	inputs := []string{
		`<script>alert(1)</script>本文`,
		`&lt;script&gt;alert(1)&lt;/script&gt;本文`,
		`<img src=x onerror=alert(1)>本文`,
		`<p>段落<br/>改行</p>`,
		`&amp;lt;b&amp;gt;二重エスケープ`,
		`<<b>>壊れた<</b>>タグ`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			a := n.Normalize(news.Entry{Title: in, Link: "https://example.com", SummaryHTML: in})
			for _, s := range []string{a.Title, a.Summary} {
				if strings.ContainsAny(s, "<>") {
					t.Errorf("markup survived normalization: %q", s)
				}
			}
		})
	}
}

func TestNormalize_MissingFields(t *testing.T) {
	n := New(0)

	a := n.Normalize(news.Entry{Title: "見出し", Link: "https://example.com"})

	assert.Equal(t, "見出し", a.Title)
	assert.Equal(t, "", a.Summary)
	if a.PublishedAt != nil {
		t.Errorf("expected nil PublishedAt, got %v", a.PublishedAt)
	}

	empty := n.Normalize(news.Entry{})
	assert.Equal(t, "", empty.Title)
	assert.Equal(t, "", empty.Link)
	assert.Equal(t, "", empty.Summary)
}

func TestNormalize_TruncatesByRune(t *testing.T) {
	n := New(10)

	a := n.Normalize(news.Entry{
		Title:       "t",
		SummaryHTML: strings.Repeat("あ", 40),
	})

	assert.Equal(t, 10, utf8.RuneCountInString(a.Summary))
	assert.Equal(t, true, utf8.ValidString(a.Summary))
	assert.Equal(t, strings.Repeat("あ", 10), a.Summary)
}

func TestNormalize_StripsLeadingNumberFromSummary(t *testing.T) {
	n := New(150)

	a := n.Normalize(news.Entry{Title: "t", SummaryHTML: "<p>1. 要約です</p>"})

	assert.Equal(t, "要約です", a.Summary)
}

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	n := New(150)
	entries := []news.Entry{
		{Title: "A", Link: "https://example.com/a"},
		{Title: "B", Link: "https://example.com/b"},
		{Title: "C", Link: "https://example.com/c"},
	}

	articles := n.NormalizeAll(entries)

	assert.Equal(t, 3, len(articles))
	for i, e := range entries {
		assert.Equal(t, e.Title, articles[i].Title)
		assert.Equal(t, e.Link, articles[i].Link)
	}
}
