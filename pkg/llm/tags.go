package llm

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"newstagger/internal/model"

	"github.com/samber/lo"
)

const MaxTagRunes = 20

var (
	labelSeparators = strings.NewReplacer(
		"\r", ",", "\n", ",", "、", ",", "，", ",", ";", ",", "；", ",", "|", ",", "／", ",",
	)
	leadingMarkerPattern = regexp.MustCompile(`^(?:[0-9０-９]+[.．)）:：]+\s*|[①-⑳]+\s*|[-*・•#＃>]+\s*)`)
)

// Sentence endings mark prose such as "以下のタグを提案します".
var proseSuffixes = []string{"。", "ます", "です", "ました", "でした", "ください"}

const labelTrimChars = " \t\"'`「」『』【】[]()（）〈〉《》*"

// ParseTags splits free-text service output into at most model.MaxTags clean
// labels. Enumeration markers, quotes and code fences are removed; empty,
// over-long, prose-like and duplicate labels are dropped.
func ParseTags(text string) []string {
	text = stripCodeFence(text)
	if text == "" {
		return []string{}
	}

	parts := strings.Split(labelSeparators.Replace(text), ",")
	labels := lo.FilterMap(parts, func(p string, _ int) (string, bool) {
		label := cleanLabel(p)
		return label, isValidLabel(label)
	})

	labels = lo.Uniq(labels)
	if len(labels) > model.MaxTags {
		labels = labels[:model.MaxTags]
	}
	return labels
}

func cleanLabel(s string) string {
	s = strings.TrimSpace(s)
	for {
		trimmed := strings.Trim(leadingMarkerPattern.ReplaceAllString(s, ""), labelTrimChars)
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

func isValidLabel(label string) bool {
	if label == "" || utf8.RuneCountInString(label) > MaxTagRunes {
		return false
	}
	// "以下がタグです:" style preambles are not labels.
	if strings.ContainsAny(label, ":：") {
		return false
	}
	for _, suffix := range proseSuffixes {
		if strings.HasSuffix(label, suffix) {
			return false
		}
	}
	return true
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	if idx := strings.Index(s, "\n"); idx != -1 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
