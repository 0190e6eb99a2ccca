// Command receipt-parse runs the receipt parser over saved OCR transcripts
// and prints the result as JSON. It is meant for tuning the heuristics
// against real receipts without a camera or OCR engine in the loop.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/receipt-reader/internal/parsing"
)

func main() {
	fs := ff.NewFlagSet("receipt-parse")
	var (
		tablesPath = fs.StringLong("tables", "", "YAML file replacing the built-in store and category tables (optional)")
		strategy   = fs.StringLong("strategy", "auto", "Item pass to run: auto, strict or aggressive")
		debug      = fs.BoolLong("debug", "Enable debug logging")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPT_READER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(os.Stdout, os.Stdin, fs.GetArgs(), *tablesPath, *strategy); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run parses each named transcript, or stdin when none are given
func run(out io.Writer, stdin io.Reader, paths []string, tablesPath, strategy string) error {
	tables := parsing.DefaultTables()
	if tablesPath != "" {
		var err error
		if tables, err = parsing.LoadTables(tablesPath); err != nil {
			return err
		}
	}
	parser := parsing.NewParser(tables)

	interpret, err := interpreter(parser, strategy)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if len(paths) == 0 {
		text, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		return enc.Encode(interpret(string(text)))
	}

	for _, path := range paths {
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading transcript: %w", err)
		}
		slog.Debug("Parsing transcript", "path", path, "bytes", len(text))
		if err := enc.Encode(interpret(string(text))); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	}
	return nil
}

// interpreter returns the full two-pass parse or a single forced pass
func interpreter(parser *parsing.Parser, strategy string) (func(string) *parsing.ReceiptData, error) {
	switch strategy {
	case "auto":
		return parser.Parse, nil
	case parsing.Strict.String(), parsing.Aggressive.String():
		pass := parsing.Strict
		if strategy == parsing.Aggressive.String() {
			pass = parsing.Aggressive
		}
		return func(text string) *parsing.ReceiptData {
			data := parser.Parse(text)
			data.Items = parser.ExtractItems(pass, parsing.SplitLines(text))
			if parsing.ExtractTotal(parsing.SplitLines(text)) == 0 {
				data.TotalAmount = data.ItemsTotal()
			}
			return data
		}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}
