package render

import (
	"fmt"
	"strings"
)

// DefaultTableClass is the CSS class of the emitted table.
const DefaultTableClass = "fred"

// DefaultLiteralPrefix opts a data cell out of cloze wrapping.
const DefaultLiteralPrefix = '\u00BF'

// Options configures the document the renderer emits.
type Options struct {
	// Style replaces the generated <style> block when non-empty.
	Style string
	// TableClass is the CSS class on the <table> element.
	TableClass string
	// LiteralPrefix marks data cells emitted without a cloze marker; 0 disables literal cells.
	LiteralPrefix rune
	// ReserveLiteralNumbers makes literal cells consume a cloze number anyway,
	// so later numbers match tables rendered by older tooling.
	ReserveLiteralNumbers bool
}

// DefaultOptions returns the renderer options used for flashcard import.
func DefaultOptions() Options {
	return Options{
		TableClass:    DefaultTableClass,
		LiteralPrefix: DefaultLiteralPrefix,
	}
}

// Validate checks that the options produce well-formed markup.
func (o Options) Validate() error {
	if o.TableClass == "" {
		return fmt.Errorf("%w: empty table class", ErrInvalidArgument)
	}
	if strings.ContainsAny(o.TableClass, " \t\r\n\"'<>") {
		return fmt.Errorf("%w: table class %q", ErrInvalidArgument, o.TableClass)
	}
	return nil
}

// Stylesheet returns the style block for the given table class.
func Stylesheet(class string) string {
	return strings.ReplaceAll(styleTemplate, "{class}", class)
}

// StyleBlock returns the configured style block.
func (o Options) StyleBlock() string {
	if o.Style != "" {
		return o.Style
	}
	return Stylesheet(o.TableClass)
}

const styleTemplate = `<style>
table.{class} {
  margin: auto;
  border-collapse: collapse;
}
table.{class},
table.{class} th,
table.{class} td {
  border: 1px solid white;
}
table.{class} th,
table.{class} td {
  padding: 10px;
  text-align: left;
}
</style>
`
