package ankitable

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/renameio/v2"

	"github.com/ukaji3/ankitable-go/pkg/ankitable/models"
	"github.com/ukaji3/ankitable-go/pkg/ankitable/parser"
	"github.com/ukaji3/ankitable-go/pkg/ankitable/render"
)

// Document is a rendered table ready to be written.
type Document struct {
	// Title is the title emitted in the document.
	Title string
	// HTML is the complete output.
	HTML []byte
	// Stats describes the rendered table.
	Stats render.Stats
}

// Convert parses raw delimited text and renders it. A "#title=" directive on
// the first line takes precedence over title.
func Convert(raw, title string, opts Options) (*Document, error) {
	table, err := parser.Parse(raw, opts.Format)
	if err != nil {
		return nil, err
	}
	if directive, ok := parser.TitleDirective(raw); ok {
		title = directive
	}
	return renderDocument(table, title, opts)
}

// Load reads and parses one input file. The returned directive is the
// "#title=" value of text inputs, or empty.
func Load(input string, opts Options) (*models.Table, string, error) {
	kind, err := parser.DetectSource(input)
	if err != nil {
		return nil, "", NewConversionError(input, StageRead, err)
	}

	if kind == parser.SourceWorkbook {
		table, err := parser.ReadWorkbook(input, opts.Sheet, opts.Format.Trim)
		if err != nil {
			return nil, "", NewConversionError(input, StageRead, err)
		}
		return table, "", nil
	}

	charset := ""
	if opts.ShouldDecode() {
		charset = opts.Encoding
	}
	raw, err := parser.ReadText(input, charset)
	if err != nil {
		return nil, "", NewConversionError(input, StageRead, err)
	}
	table, err := parser.Parse(raw, opts.Format)
	if err != nil {
		return nil, "", NewConversionError(input, StageParse, err)
	}
	table.Source = input
	directive, _ := parser.TitleDirective(raw)
	return table, directive, nil
}

// ConvertFile converts input and writes the document to output. The output
// file is replaced atomically and is left untouched when any step fails.
func ConvertFile(ctx context.Context, input, output string, opts Options) (models.FileResult, error) {
	res := models.FileResult{Input: input, Output: output}

	doc, err := convertInput(ctx, input, DeriveTitle(output), opts)
	if err != nil {
		return res, err
	}
	res.Title = doc.Title
	res.Clozes = doc.Stats.Clozes

	if err := writeFileAtomic(output, doc.HTML); err != nil {
		return res, NewConversionError(input, StageWrite, err)
	}

	opts.Logger.Info().
		Str("input", input).
		Str("output", output).
		Str("size", humanize.Bytes(uint64(len(doc.HTML)))).
		Int("rows", doc.Stats.DataRows).
		Int("clozes", doc.Stats.Clozes).
		Msg("wrote file")
	return res, nil
}

// ConvertTo converts input and writes the document to w. Without a title
// directive or Options.Title, the title is the input file name without extensions.
func ConvertTo(ctx context.Context, w io.Writer, input string, opts Options) (models.FileResult, error) {
	res := models.FileResult{Input: input}

	doc, err := convertInput(ctx, input, DeriveTitle(OutputPath(input)), opts)
	if err != nil {
		return res, err
	}
	res.Title = doc.Title
	res.Clozes = doc.Stats.Clozes

	if _, err := w.Write(doc.HTML); err != nil {
		return res, NewConversionError(input, StageWrite, err)
	}
	return res, nil
}

func convertInput(ctx context.Context, input, fallbackTitle string, opts Options) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, directive, err := Load(input, opts)
	if err != nil {
		return nil, err
	}

	title := fallbackTitle
	switch {
	case directive != "":
		title = directive
	case opts.Title != "":
		title = opts.Title
	}

	opts.Logger.Debug().
		Str("input", input).
		Str("title", title).
		Int("records", table.Len()).
		Msg("converting")

	doc, err := renderDocument(table, title, opts)
	if err != nil {
		return nil, NewConversionError(input, StageRender, err)
	}
	return doc, nil
}

func renderDocument(table *models.Table, title string, opts Options) (*Document, error) {
	var buf bytes.Buffer
	stats, err := render.RenderTo(&buf, table, title, opts.Render)
	if err != nil {
		return nil, err
	}
	return &Document{Title: title, HTML: buf.Bytes(), Stats: stats}, nil
}

// DeriveTitle returns the file name of path without its extension.
func DeriveTitle(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// OutputPath returns the HTML path written beside input in batch mode:
// deck.csv, deck.csv.xz and deck.xlsx all map to deck.html.
func OutputPath(input string) string {
	dir, name := filepath.Split(input)
	if strings.EqualFold(filepath.Ext(name), ".xz") {
		name = name[:len(name)-len(".xz")]
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(dir, name+".html")
}

// writeFileAtomic replaces path with data via a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return renameio.WriteFile(path, data, 0644)
}
