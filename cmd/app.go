// Package cmd implements the CLI application to compute portfolio returns.
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/returns"
	"github.com/google/subcommands"
)

// Commands lists the subcommands of the application.
// A main package registers them all and Executes the user-selected one.
var Commands = []subcommands.Command{
	&returnsCmd{},
	&periodsCmd{},
	&accountsCmd{},
	&fetchCmd{},
	&topicCmd{},
}

// printMarkdown renders a markdown report on stdout.
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		// still print the raw markdown, it remains readable
		fmt.Print(markdown)
		return
	}
	fmt.Print(out)
}

// loadLedger reads and decodes a JSONL ledger file.
func loadLedger(filename string) ([]returns.Directive, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w", filename, err)
	}
	defer f.Close()
	entries, err := returns.DecodeDirectives(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read ledger %q: %w", filename, err)
	}
	return entries, nil
}

// parseRange parses the optional begin/end date flags. Empty strings yield
// zero dates, meaning unbounded.
func parseRange(begin, end string) (b, e returns.Date, err error) {
	if begin != "" {
		if b, err = returns.ParseDate(begin); err != nil {
			return b, e, fmt.Errorf("invalid begin date: %w", err)
		}
	}
	if end != "" {
		if e, err = returns.ParseDate(end); err != nil {
			return b, e, fmt.Errorf("invalid end date: %w", err)
		}
	}
	return b, e, nil
}

// setupLog configures warning output: data quality warnings always go to
// stderr, timestamps are noise for a short-lived CLI run.
func setupLog() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}
