// Package parser reads input sources into tables: delimited text with quoting,
// escaping and comment lines, and xlsx sheets.
package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/ankitable-go/pkg/ankitable/models"
)

// ErrMalformedInput indicates the delimited text could not be tokenized.
var ErrMalformedInput = errors.New("malformed input")

var (
	// ErrUnterminatedQuote indicates a quoted field was still open at end of input.
	ErrUnterminatedQuote = fmt.Errorf("%w: unterminated quoted field", ErrMalformedInput)
	// ErrEscapeAtEOF indicates the input ended directly after an escape character.
	ErrEscapeAtEOF = fmt.Errorf("%w: escape character at end of input", ErrMalformedInput)
	// ErrTrailingGarbage indicates non-blank text between a closing quote and the next delimiter.
	ErrTrailingGarbage = fmt.Errorf("%w: invalid character after closing quote", ErrMalformedInput)
)

// ParseError records where in the input tokenizing failed.
type ParseError struct {
	Line   int // 1-based line of the offending character
	Column int // 1-based column (in runes) of the offending character
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Format describes the delimited-text dialect.
type Format struct {
	// Delimiter separates fields within a record.
	Delimiter rune
	// Quote wraps fields containing delimiters or line breaks; 0 disables quoting.
	Quote rune
	// Escape escapes the quote character (and other meta characters); 0 disables escaping.
	Escape rune
	// Comment marks a whole line as a comment when it is the first character of the line; 0 disables comments.
	Comment rune
	// Trim strips leading and trailing spaces and control characters from every field after unescaping.
	Trim bool
	// IgnoreEmptyLines skips lines with no characters at all.
	IgnoreEmptyLines bool
}

// DefaultFormat returns the comma-separated dialect used for flashcard tables.
func DefaultFormat() Format {
	return Format{
		Delimiter:        ',',
		Quote:            '"',
		Escape:           '\\',
		Comment:          '#',
		Trim:             true,
		IgnoreEmptyLines: true,
	}
}

// Validate checks that the format's special characters are usable and distinct.
func (f Format) Validate() error {
	if f.Delimiter == 0 || f.Delimiter == '\n' || f.Delimiter == '\r' {
		return fmt.Errorf("invalid delimiter %q", f.Delimiter)
	}
	specials := map[rune]string{f.Delimiter: "delimiter"}
	for _, s := range []struct {
		r    rune
		name string
	}{{f.Quote, "quote"}, {f.Escape, "escape"}, {f.Comment, "comment marker"}} {
		if s.r == 0 {
			continue
		}
		if s.r == '\n' || s.r == '\r' {
			return fmt.Errorf("invalid %s %q", s.name, s.r)
		}
		if other, ok := specials[s.r]; ok {
			return fmt.Errorf("%s %q collides with %s", s.name, s.r, other)
		}
		specials[s.r] = s.name
	}
	return nil
}

// ParseReader reads all of r and parses it with Parse.
func ParseReader(r io.Reader, f Format) (*models.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data), f)
}

// Parse turns raw delimited text into a Table in file order, skipping comment lines.
// Column-count consistency is not checked here.
func Parse(raw string, f Format) (*models.Table, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	raw = strings.TrimPrefix(raw, "\ufeff")
	l := &lexer{in: []rune(raw), f: f, line: 1, col: 1}
	table := &models.Table{}
	for !l.eof() {
		if l.skipBlankOrComment() {
			continue
		}
		rec, err := l.readRecord()
		if err != nil {
			return nil, err
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}

type fieldEnd int

const (
	endField fieldEnd = iota
	endRecord
	endInput
)

type lexer struct {
	in   []rune
	pos  int
	line int
	col  int
	f    Format
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.in)
}

func (l *lexer) peek() rune {
	if l.eof() {
		return -1
	}
	return l.in[l.pos]
}

func (l *lexer) next() rune {
	r := l.in[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) errorf(line, col int, err error) error {
	return &ParseError{Line: line, Column: col, Err: err}
}

// skipBlankOrComment consumes an empty line or a comment line at the current
// position and reports whether it did so.
func (l *lexer) skipBlankOrComment() bool {
	c := l.peek()
	if l.f.IgnoreEmptyLines && (c == '\n' || c == '\r') {
		l.consumeLineBreak()
		return true
	}
	if l.f.Comment != 0 && c == l.f.Comment {
		for !l.eof() && l.peek() != '\n' && l.peek() != '\r' {
			l.next()
		}
		if !l.eof() {
			l.consumeLineBreak()
		}
		return true
	}
	return false
}

func (l *lexer) consumeLineBreak() {
	if l.next() == '\r' && l.peek() == '\n' {
		l.next()
	}
}

func (l *lexer) readRecord() (models.Record, error) {
	var rec models.Record
	for {
		var (
			field string
			end   fieldEnd
			err   error
		)
		if l.f.Quote != 0 && l.peek() == l.f.Quote {
			field, end, err = l.readQuoted()
		} else {
			field, end, err = l.readPlain()
		}
		if err != nil {
			return nil, err
		}
		if l.f.Trim {
			field = strings.TrimFunc(field, isTrimmable)
		}
		rec = append(rec, field)
		if end != endField {
			return rec, nil
		}
	}
}

// isTrimmable matches control characters and space; other Unicode spaces
// such as U+00A0 are kept.
func isTrimmable(r rune) bool {
	return r <= ' '
}

func (l *lexer) readPlain() (string, fieldEnd, error) {
	var sb strings.Builder
	for {
		if l.eof() {
			return sb.String(), endInput, nil
		}
		line, col := l.line, l.col
		c := l.next()
		switch {
		case c == l.f.Delimiter:
			return sb.String(), endField, nil
		case c == '\n':
			return sb.String(), endRecord, nil
		case c == '\r':
			if l.peek() == '\n' {
				l.next()
			}
			return sb.String(), endRecord, nil
		case l.f.Escape != 0 && c == l.f.Escape:
			if err := l.readEscape(&sb, line, col); err != nil {
				return "", endInput, err
			}
		default:
			sb.WriteRune(c)
		}
	}
}

func (l *lexer) readQuoted() (string, fieldEnd, error) {
	startLine, startCol := l.line, l.col
	l.next() // opening quote

	var sb strings.Builder
	for {
		if l.eof() {
			return "", endInput, l.errorf(startLine, startCol, ErrUnterminatedQuote)
		}
		line, col := l.line, l.col
		c := l.next()
		switch {
		case l.f.Escape != 0 && c == l.f.Escape:
			if err := l.readEscape(&sb, line, col); err != nil {
				return "", endInput, err
			}
		case c == l.f.Quote:
			if l.peek() == l.f.Quote {
				l.next()
				sb.WriteRune(c)
				continue
			}
			end, err := l.afterClosingQuote()
			return sb.String(), end, err
		default:
			sb.WriteRune(c)
		}
	}
}

// afterClosingQuote allows blanks between a closing quote and the field terminator.
func (l *lexer) afterClosingQuote() (fieldEnd, error) {
	for {
		if l.eof() {
			return endInput, nil
		}
		line, col := l.line, l.col
		c := l.next()
		switch {
		case c == l.f.Delimiter:
			return endField, nil
		case c == '\n':
			return endRecord, nil
		case c == '\r':
			if l.peek() == '\n' {
				l.next()
			}
			return endRecord, nil
		case c == ' ' || c == '\t':
		default:
			return endInput, l.errorf(line, col, ErrTrailingGarbage)
		}
	}
}

// readEscape handles the character following an escape character. Control
// escapes (\n, \t, ...) and escaped meta characters are unescaped; anything
// else is kept verbatim together with the escape character.
func (l *lexer) readEscape(sb *strings.Builder, line, col int) error {
	if l.eof() {
		return l.errorf(line, col, ErrEscapeAtEOF)
	}
	c := l.next()
	switch c {
	case 'r':
		sb.WriteRune('\r')
	case 'n':
		sb.WriteRune('\n')
	case 't':
		sb.WriteRune('\t')
	case 'b':
		sb.WriteRune('\b')
	case 'f':
		sb.WriteRune('\f')
	case '\r', '\n', '\t', '\b', '\f':
		sb.WriteRune(c)
	default:
		if l.isMeta(c) {
			sb.WriteRune(c)
		} else {
			sb.WriteRune(l.f.Escape)
			sb.WriteRune(c)
		}
	}
	return nil
}

func (l *lexer) isMeta(c rune) bool {
	return c == l.f.Delimiter ||
		(l.f.Quote != 0 && c == l.f.Quote) ||
		(l.f.Escape != 0 && c == l.f.Escape) ||
		(l.f.Comment != 0 && c == l.f.Comment)
}
