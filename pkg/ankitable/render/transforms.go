package render

import (
	"strings"

	"github.com/ukaji3/ankitable-go/pkg/ankitable/models"
)

const (
	clozeDelimiter        = "::"
	escapedClozeDelimiter = ":\u200B:"

	lineBreakTag = "<br />"
	// lineBreakMarker is the inverted exclamation mark authors type for a line break.
	lineBreakMarker = "\u00A1"
	// lineBreakMojibake is lineBreakMarker's UTF-8 bytes (C2 A1) mis-decoded as Latin-1.
	lineBreakMojibake = "\u00C2\u00A1"
)

var htmlEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// UnwrapSurroundingQuotes removes exactly one leading and one trailing double
// quote when s starts and ends with one and is at least two bytes long.
func UnwrapSurroundingQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// EscapeHTML replaces < and > with their entities. Nothing else is escaped.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// EscapeClozeDelimiter breaks every "::" with a zero-width space so the
// flashcard software does not read it as a cloze field separator. The result
// never contains "::", including for runs of three or more colons.
func EscapeClozeDelimiter(s string) string {
	for strings.Contains(s, clozeDelimiter) {
		s = strings.ReplaceAll(s, clozeDelimiter, escapedClozeDelimiter)
	}
	return s
}

// InterpretLineBreakMarkup turns the line-break marker into <br />. When the
// mis-decoded form of the marker is present only that form is replaced.
func InterpretLineBreakMarkup(s string) string {
	switch {
	case strings.Contains(s, lineBreakMojibake):
		return strings.ReplaceAll(s, lineBreakMojibake, lineBreakTag)
	case strings.Contains(s, lineBreakMarker):
		return strings.ReplaceAll(s, lineBreakMarker, lineBreakTag)
	default:
		return s
	}
}

// Classify splits a raw data cell into a literal cell (prefix removed) or a
// cloze cell. A zero prefix disables literal cells.
func Classify(raw string, literalPrefix rune) models.Cell {
	if literalPrefix != 0 {
		if rest, ok := strings.CutPrefix(raw, string(literalPrefix)); ok {
			return models.Literal(rest)
		}
	}
	return models.Cloze(raw)
}

// headerHTML is the content of a <th> element.
func headerHTML(raw string) string {
	return EscapeHTML(EscapeClozeDelimiter(UnwrapSurroundingQuotes(raw)))
}

// clozeHTML is the content of a cloze cell before it is wrapped in {{cN::...}}.
func clozeHTML(text string) string {
	s := UnwrapSurroundingQuotes(text)
	s = EscapeHTML(s)
	s = EscapeClozeDelimiter(s)
	s = InterpretLineBreakMarkup(s)
	// Second unwrap catches fields that were quote-wrapped twice in the source.
	return UnwrapSurroundingQuotes(s)
}
