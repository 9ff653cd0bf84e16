package app

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"find-text/search"
)

// Color codes for terminal output
const (
	RED    = "\033[31m"
	GREEN  = "\033[32m"
	YELLOW = "\033[33m"
	BLUE   = "\033[34m"
	GRAY   = "\033[90m"
	BOLD   = "\033[1m"
	NC     = "\033[0m" // No Color
)

// getTerminalWidth returns the terminal width, defaulting to 80 if unable to detect
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// createSeparator creates a separator line that fits the terminal width
func createSeparator() string {
	width := getTerminalWidth()
	if width > 120 {
		width = 120
	}
	return strings.Repeat("━", width)
}

// RunCLI executes one search and streams results to stdout as they arrive.
// Ctrl-C sets the cancellation token; in-flight files finish and the
// pipeline drains instead of the process dying mid-write.
func RunCLI(cfg search.SearchConfig) error {
	quit := &search.CancelToken{}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Fprintf(os.Stderr, "\n%sstopping...%s\n", YELLOW, NC)
		quit.Set()
	}()

	startTime := time.Now()
	results, err := search.Search(cfg, quit)
	if err != nil {
		return err
	}

	count := 0
	for result := range results {
		printSearchResult(result)
		count++
	}

	if quit.IsSet() {
		fmt.Printf("%sSearch cancelled after %d results%s\n", YELLOW, count, NC)
		return nil
	}

	if count == 0 {
		fmt.Printf("%sNo matches found%s\n", YELLOW, NC)
		return nil
	}

	fmt.Printf("%s%s%s\n", GRAY, createSeparator(), NC)
	fmt.Printf("%s%d matches in %.2fs%s\n", GREEN, count, time.Since(startTime).Seconds(), NC)
	return nil
}

// printSearchResult prints one match with its numbered context window, the
// matched line marked with '>'.
func printSearchResult(result search.SearchResult) {
	fmt.Printf("%sFile: %s:%d%s\n", BOLD, result.Path, result.LineNumber, NC)

	for _, ctx := range result.ContextBefore {
		fmt.Printf("%s%3d |%s %s\n", GRAY, ctx.Number, NC, ctx.Text)
	}

	fmt.Printf("%s>%2d |%s %s%s%s\n", GREEN, result.LineNumber, NC, BOLD, result.Line, NC)

	for _, ctx := range result.ContextAfter {
		fmt.Printf("%s%3d |%s %s\n", GRAY, ctx.Number, NC, ctx.Text)
	}

	fmt.Println()
}
