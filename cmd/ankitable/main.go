// Package main provides the CLI entry point for ankitable-go.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/ankitable-go/internal/logging"
	"github.com/ukaji3/ankitable-go/pkg/ankitable"
)

var (
	batchDir       string
	title          string
	encoding       string
	sheet          string
	tableClass     string
	reserveNumbers bool
	logLevel       string
	logFormat      string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	rootCmd.SetArgs(legacyArgs(os.Args[1:]))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ankitable input.csv output.html | --batch DIR",
		Short: "Convert CSV tables into cloze-deletion HTML for flashcards",
		Long: `ankitable converts a CSV table (or .csv.xz, or an .xlsx sheet) into an HTML
table whose data cells are numbered cloze deletions ({{c1::...}}).

Cells starting with ¿ are copied without a cloze marker, ¡ inside a cell becomes
a line break, and a first line of "#title=..." sets the document title.
Use "-" as the output path to write to stdout.`,
		Args:         validateArgs,
		RunE:         run,
		SilenceUsage: true,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&batchDir, "batch", "", "Convert every .csv, .csv.xz and .xlsx file in this directory")
	flags.StringVar(&title, "title", "", "Document title (default: output file name without extension)")
	flags.StringVar(&encoding, "encoding", "", "Charset of CSV inputs, e.g. windows-1252 (default: utf-8)")
	flags.StringVar(&sheet, "sheet", "", "Worksheet of .xlsx inputs (default: first sheet)")
	flags.StringVar(&tableClass, "table-class", "", "CSS class of the emitted table (default: fred)")
	flags.BoolVar(&reserveNumbers, "reserve-literal-numbers", false, "Let ¿ cells consume a cloze number")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "console", "Log format: console, json")

	return rootCmd
}

// legacyArgs rewrites the single-dash invocations "-batch DIR" and
// "-file in out" into the flag syntax the root command accepts.
func legacyArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		switch {
		case arg == "--":
			return append(out, args[i:]...)
		case arg == "-file":
			continue
		case arg == "-batch" || strings.HasPrefix(arg, "-batch="):
			out = append(out, "-"+arg)
		default:
			out = append(out, arg)
		}
	}
	return out
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if batchDir != "" {
		return cobra.NoArgs(cmd, args)
	}
	return cobra.ExactArgs(2)(cmd, args)
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(cmd.ErrOrStderr(), logLevel, logFormat)
	if err != nil {
		return err
	}

	opts := ankitable.DefaultOptions()
	opts.Logger = logger
	opts.Encoding = encoding
	opts.Sheet = sheet
	opts.Title = title
	opts.Render.ReserveLiteralNumbers = reserveNumbers
	if tableClass != "" {
		opts.Render.TableClass = tableClass
	}

	ctx := cmd.Context()

	if batchDir != "" {
		results, err := ankitable.Batch(ctx, batchDir, opts)
		if err != nil {
			failed := 0
			for _, res := range results {
				if !res.OK() {
					failed++
				}
			}
			if results == nil || failed == 0 {
				return fmt.Errorf("batch failed: %w", err)
			}
			return fmt.Errorf("%d of %d files failed", failed, len(results))
		}
		return nil
	}

	inputPath, outputPath := args[0], args[1]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	if outputPath == "-" {
		_, err := ankitable.ConvertTo(ctx, cmd.OutOrStdout(), inputPath, opts)
		return err
	}

	if _, err := ankitable.ConvertFile(ctx, inputPath, outputPath, opts); err != nil {
		return err
	}
	return nil
}
