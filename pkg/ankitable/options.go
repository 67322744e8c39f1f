// Package ankitable converts delimited tables into HTML tables of numbered
// cloze deletions for flashcard import.
package ankitable

import (
	"github.com/rs/zerolog"

	"github.com/ukaji3/ankitable-go/pkg/ankitable/parser"
	"github.com/ukaji3/ankitable-go/pkg/ankitable/render"
)

// Options configures conversion behavior.
type Options struct {
	// Format is the delimited-text dialect of .csv inputs.
	Format parser.Format
	// Render configures the emitted document.
	Render render.Options
	// Encoding names the charset of text inputs (e.g. "windows-1252").
	// Empty means UTF-8.
	Encoding string
	// Sheet selects the worksheet of .xlsx inputs. Empty means the first sheet.
	Sheet string
	// Title overrides the title derived from the output file name.
	// A "#title=" directive in the input still takes precedence.
	Title string
	// Logger receives progress events. The zero value discards them.
	Logger zerolog.Logger
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	return Options{
		Format: parser.DefaultFormat(),
		Render: render.DefaultOptions(),
		Logger: zerolog.Nop(),
	}
}

// ShouldDecode reports whether text inputs need charset decoding beyond UTF-8.
func (o Options) ShouldDecode() bool {
	switch o.Encoding {
	case "", "utf-8", "utf8", "UTF-8", "UTF8":
		return false
	default:
		return true
	}
}
