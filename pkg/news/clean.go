package news

import (
	"regexp"
	"strings"
)

// Matches enumeration prefixes such as "1. ", "１．", "3) " and "① ".
var leadingNumberPattern = regexp.MustCompile(`^[0-9０-９①-⑳]+[.．、)）\s]+`)

func CleanLeadingNumber(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(leadingNumberPattern.ReplaceAllString(strings.TrimSpace(text), ""))
}
