// Command redact runs the redaction pipeline once, from a file or stdin.
//
// The redacted text is written to stdout; a per-type entity summary goes to
// stderr so the output stays pipeable.
//
// Usage:
//
//	redact [-mode mask|redact] [-json] [file]
//
//	# Redact a file
//	redact -mode redact notes.txt
//
//	# Pipe through
//	cat notes.txt | redact > clean.txt
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"text-redactor/internal/detect"
	"text-redactor/internal/dictionary"
	"text-redactor/internal/entity"
	"text-redactor/internal/logger"
	"text-redactor/internal/redactor"
	"text-redactor/internal/rewrite"
)

func main() {
	modeFlag := flag.String("mode", "mask", "rewrite mode: mask or redact")
	jsonFlag := flag.Bool("json", false, "emit the full result as JSON instead of plain text")
	flag.Parse()

	mode, err := rewrite.ParseMode(*modeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "redact: %v\n", err)
		os.Exit(2)
	}

	text, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "redact: %v\n", err)
		os.Exit(1)
	}

	dict, err := dictionary.Load(dictionary.Overrides{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "redact: load dictionary: %v\n", err)
		os.Exit(1)
	}

	red := redactor.New(detect.New(dict), nil, nil, logger.New("redact", "error"))
	res, err := red.Process(text, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "redact: %v\n", err)
		os.Exit(1)
	}

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(os.Stderr, "redact: encode result: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Print(res.RedactedText)

	printSummary(res)
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path given by the invoking user
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func printSummary(res *redactor.Result) {
	counts := res.Entities.Counts()
	if len(counts) == 0 {
		fmt.Fprintf(os.Stderr, "\n-- no entities found, similarity %.1f%%\n", res.Similarity)
		return
	}

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, string(t))
	}
	sort.Strings(types)

	fmt.Fprintf(os.Stderr, "\n-- %d entities, similarity %.1f%%\n", len(res.Entities), res.Similarity)
	for _, t := range types {
		fmt.Fprintf(os.Stderr, "   %-16s %d\n", t, counts[entity.Type(t)])
	}
}
