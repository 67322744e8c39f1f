package parser

import (
	"strings"
)

// TitleDirectivePrefix starts the optional title comment on the first line of an input.
const TitleDirectivePrefix = "#title="

// TitleDirective returns the value of a "#title=<value>" directive found on the
// first line of raw, trimmed of surrounding whitespace. The line is a comment,
// so the record parser skips it.
func TitleDirective(raw string) (string, bool) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	first, _, _ := strings.Cut(raw, "\n")
	first = strings.TrimSuffix(first, "\r")
	if !strings.HasPrefix(first, TitleDirectivePrefix) {
		return "", false
	}
	title := strings.TrimSpace(strings.TrimPrefix(first, TitleDirectivePrefix))
	if title == "" {
		return "", false
	}
	return title, true
}
