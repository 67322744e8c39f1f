package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnsupportedSource indicates the input file type is not recognised.
var ErrUnsupportedSource = errors.New("unsupported input type")

// SourceKind identifies how an input file is read.
type SourceKind string

const (
	// SourceDelimited is delimited text (.csv, optionally .xz compressed).
	SourceDelimited SourceKind = "delimited"
	// SourceWorkbook is an xlsx spreadsheet.
	SourceWorkbook SourceKind = "workbook"
)

// DetectSource classifies an input path by its extension.
func DetectSource(path string) (SourceKind, error) {
	name := strings.ToLower(filepath.Base(path))
	name = strings.TrimSuffix(name, ".xz")
	switch filepath.Ext(name) {
	case ".csv":
		return SourceDelimited, nil
	case ".xlsx", ".xlsm":
		if strings.HasSuffix(strings.ToLower(path), ".xz") {
			return "", fmt.Errorf("%w: compressed workbook %s", ErrUnsupportedSource, filepath.Base(path))
		}
		return SourceWorkbook, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedSource, filepath.Base(path))
	}
}

// ReadText reads a delimited text file fully into memory. Files ending in
// .xz are decompressed. The text is decoded from the named charset (empty
// means UTF-8) and a leading byte order mark is dropped.
func ReadText(path, charset string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(strings.ToLower(path), ".xz") {
		xr, err := xz.NewReader(r)
		if err != nil {
			return "", fmt.Errorf("open xz stream: %w", err)
		}
		r = xr
	}

	dec, err := Decoder(charset)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return string(data), nil
}

// Decoder returns a transformer decoding the named charset to UTF-8. A UTF-8
// or UTF-16 byte order mark overrides the charset and is removed.
func Decoder(charset string) (transform.Transformer, error) {
	var enc encoding.Encoding = unicode.UTF8
	if name := strings.TrimSpace(charset); name != "" {
		e, err := htmlindex.Get(name)
		if err != nil {
			return nil, fmt.Errorf("unknown encoding %q: %w", charset, err)
		}
		enc = e
	}
	return unicode.BOMOverride(enc.NewDecoder()), nil
}
