package ankitable

import (
	"errors"
	"fmt"

	"github.com/ukaji3/ankitable-go/pkg/ankitable/parser"
	"github.com/ukaji3/ankitable-go/pkg/ankitable/render"
)

// ErrMalformedInput indicates the input text could not be parsed.
var ErrMalformedInput = parser.ErrMalformedInput

// ErrColumnCountMismatch indicates rows with differing cell counts.
var ErrColumnCountMismatch = render.ErrColumnCountMismatch

// ErrInvalidArgument indicates a missing or empty table or bad options.
var ErrInvalidArgument = render.ErrInvalidArgument

// ErrUnsupportedSource indicates an input file type that cannot be read.
var ErrUnsupportedSource = parser.ErrUnsupportedSource

// ErrNotDirectory indicates the batch path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// ErrOutputCollision indicates two batch inputs map to the same output file.
var ErrOutputCollision = errors.New("output already written by another input")

// Stage names the step of a conversion that failed.
type Stage string

const (
	StageRead   Stage = "read"
	StageParse  Stage = "parse"
	StageRender Stage = "render"
	StageWrite  Stage = "write"
)

// ConversionError represents a failed conversion of one input file.
type ConversionError struct {
	Input string
	Stage Stage
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s (%s): %v", e.Input, e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// NewConversionError creates a new ConversionError.
func NewConversionError(input string, stage Stage, err error) *ConversionError {
	return &ConversionError{
		Input: input,
		Stage: stage,
		Err:   err,
	}
}
