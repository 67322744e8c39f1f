package ankitable

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/ankitable-go/pkg/ankitable/models"
	"github.com/ukaji3/ankitable-go/pkg/ankitable/parser"
)

// BatchInputs lists the convertible files directly inside dir, sorted by name.
// Subdirectories and spreadsheet lock files (~$name.xlsx) are skipped.
func BatchInputs(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "~$") {
			continue
		}
		if _, err := parser.DetectSource(entry.Name()); err != nil {
			continue
		}
		inputs = append(inputs, filepath.Join(dir, entry.Name()))
	}
	return inputs, nil
}

// Batch converts every input in dir, writing each document beside its input
// (see OutputPath). A failed file does not stop the batch; all failures are
// returned joined, and every attempted file has a result. An input whose
// output was already produced by an earlier input fails with ErrOutputCollision.
func Batch(ctx context.Context, dir string, opts Options) ([]models.FileResult, error) {
	inputs, err := BatchInputs(dir)
	if err != nil {
		return nil, err
	}

	// Titles come from each file, never from a single override.
	opts.Title = ""

	var (
		results []models.FileResult
		errs    []error
		written = make(map[string]string)
	)
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		output := OutputPath(input)
		var (
			res models.FileResult
			err error
		)
		if prev, ok := written[output]; ok {
			res = models.FileResult{Input: input, Output: output}
			err = NewConversionError(input, StageWrite, fmt.Errorf("%w: %s from %s", ErrOutputCollision, output, prev))
		} else {
			res, err = ConvertFile(ctx, input, output, opts)
		}
		if err == nil {
			written[output] = input
		} else {
			res.Err = err
			errs = append(errs, err)
			opts.Logger.Error().Err(err).Str("input", input).Msg("conversion failed")
		}
		results = append(results, res)
	}

	opts.Logger.Info().
		Str("dir", dir).
		Int("files", len(results)).
		Int("failed", len(errs)).
		Msg("batch finished")
	return results, errors.Join(errs...)
}
