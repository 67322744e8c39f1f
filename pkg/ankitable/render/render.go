// Package render turns a parsed table into an HTML document whose data cells
// are numbered cloze deletions.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ukaji3/ankitable-go/pkg/ankitable/models"
)

// ErrInvalidArgument indicates a missing table or unusable options.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrColumnCountMismatch indicates records with differing cell counts.
var ErrColumnCountMismatch = errors.New("column count mismatch")

// ColumnCountError reports the first record whose cell count differs from the header's.
type ColumnCountError struct {
	Row      int // 1-based record position; the header is row 1
	Expected int
	Actual   int
}

func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("row %d has %d columns, expected %d", e.Row, e.Actual, e.Expected)
}

func (e *ColumnCountError) Unwrap() error {
	return ErrColumnCountMismatch
}

// Stats summarises a rendered document.
type Stats struct {
	Columns  int
	DataRows int
	Clozes   int
}

// Validate checks that every record has the header's cell count and returns that count.
func Validate(t *models.Table) (int, error) {
	if t == nil {
		return 0, fmt.Errorf("%w: nil table", ErrInvalidArgument)
	}
	if len(t.Records) == 0 {
		return 0, fmt.Errorf("%w: table has no header record", ErrInvalidArgument)
	}

	columns := len(t.Records[0])
	for i, rec := range t.Records[1:] {
		if len(rec) != columns {
			return 0, &ColumnCountError{Row: i + 2, Expected: columns, Actual: len(rec)}
		}
	}
	return columns, nil
}

// Render validates t and returns the complete document.
func Render(t *models.Table, title string, opts Options) (string, Stats, error) {
	var buf bytes.Buffer
	stats, err := RenderTo(&buf, t, title, opts)
	if err != nil {
		return "", Stats{}, err
	}
	return buf.String(), stats, nil
}

// RenderTo validates t and writes the document to w. Nothing is written when
// validation fails. The title is emitted verbatim.
func RenderTo(w io.Writer, t *models.Table, title string, opts Options) (Stats, error) {
	if err := opts.Validate(); err != nil {
		return Stats{}, err
	}
	columns, err := Validate(t)
	if err != nil {
		return Stats{}, err
	}

	r := &renderer{opts: opts, next: 1}
	r.document(t, title)

	if _, err := w.Write(r.buf.Bytes()); err != nil {
		return Stats{}, err
	}
	return Stats{Columns: columns, DataRows: len(t.Data()), Clozes: r.clozes}, nil
}

// renderer owns the cloze counter for one table.
type renderer struct {
	opts   Options
	buf    bytes.Buffer
	next   int
	clozes int
}

func (r *renderer) document(t *models.Table, title string) {
	r.buf.WriteString(r.opts.StyleBlock())
	r.buf.WriteString("<div>" + title + "</div>\n")
	r.buf.WriteString(`<table class="` + r.opts.TableClass + `">` + "\n")

	r.buf.WriteString("<tr>\n")
	for _, cell := range t.Header() {
		r.buf.WriteString("  <th>" + headerHTML(cell) + "</th>\n")
	}
	r.buf.WriteString("</tr>\n")

	for _, rec := range t.Data() {
		r.buf.WriteString("<tr>\n")
		for _, raw := range rec {
			r.buf.WriteString("  <td>" + r.cell(Classify(raw, r.opts.LiteralPrefix)) + "</td>\n")
		}
		r.buf.WriteString("</tr>\n")
	}

	r.buf.WriteString("</table>\n")
}

func (r *renderer) cell(c models.Cell) string {
	if c.Kind == models.CellLiteral {
		if r.opts.ReserveLiteralNumbers {
			r.next++
		}
		return EscapeHTML(c.Text)
	}

	n := r.next
	r.next++
	r.clozes++
	return "{{c" + strconv.Itoa(n) + "::" + clozeHTML(c.Text) + "}}"
}
