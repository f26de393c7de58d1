package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	DefaultQuery = "finance"
	DefaultTopN  = 5
)

// misspellings are queries corrected before searching.
var misspellings = map[string]string{
	"buisness": "business",
}

func correctQuery(query string) (string, bool) {
	if fixed, ok := misspellings[strings.ToLower(query)]; ok {
		return fixed, true
	}
	return query, false
}

// promptQuery asks for the search query and app count. An empty query falls
// back to DefaultQuery without asking for a count; an empty or invalid count
// falls back to defaultTopN.
func promptQuery(in io.Reader, out io.Writer, defaultTopN int) (string, int) {
	if defaultTopN <= 0 {
		defaultTopN = DefaultTopN
	}
	reader := bufio.NewReader(in)

	_, _ = fmt.Fprintln(out, "\n===== AppVerdict: store app risk analysis =====")
	_, _ = fmt.Fprintln(out, strings.Repeat("=", 40))
	_, _ = fmt.Fprintln(out, "What type of apps would you like to analyze for potential fraud?")
	_, _ = fmt.Fprintln(out, "Examples: business, finance, games, social, education, etc.")
	_, _ = fmt.Fprint(out, "Enter app category/query: ")
	query := readLine(reader)

	if fixed, ok := correctQuery(query); ok {
		_, _ = fmt.Fprintf(out, "Note: Using '%s' instead of '%s' (corrected spelling)\n", fixed, query)
		query = fixed
	}
	if query == "" {
		_, _ = fmt.Fprintf(out, "Using default query '%s'\n", DefaultQuery)
		return DefaultQuery, defaultTopN
	}

	_, _ = fmt.Fprintf(out, "How many apps would you like to analyze? [%d]: ", defaultTopN)
	answer := readLine(reader)
	if answer == "" {
		return query, defaultTopN
	}
	topN, err := strconv.Atoi(answer)
	if err != nil || topN <= 0 {
		_, _ = fmt.Fprintf(out, "Invalid input. Using default (%d apps)\n", defaultTopN)
		return query, defaultTopN
	}
	return query, topN
}

func readLine(r *bufio.Reader) string {
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

// resolveQuery picks the search parameters for a scraping run.
func resolveQuery(opts *options, in io.Reader, out io.Writer) (string, int) {
	topN := opts.topN
	if topN <= 0 {
		topN = DefaultTopN
	}
	if !opts.noPrompt {
		return promptQuery(in, out, topN)
	}
	query := opts.query
	if query == "" {
		query = DefaultQuery
	}
	query, _ = correctQuery(query)
	_, _ = fmt.Fprintf(out, "Using query: %s with %d apps (--no-prompt specified)\n", query, topN)
	return query, topN
}
