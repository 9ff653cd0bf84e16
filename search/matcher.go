package search

import (
	"fmt"
	"regexp"
)

// Matcher is the compiled query predicate. It is stateless after
// construction and safe to evaluate from any number of workers; the regexp
// package serializes its internal scratch state.
type Matcher struct {
	re *regexp.Regexp
}

// NewMatcher compiles the query. With useRegex false every metacharacter is
// escaped, giving plain substring semantics. An invalid expression is the
// engine's single fail-fast configuration error: nothing has been walked or
// scanned when it is reported.
func NewMatcher(query string, useRegex bool) (Matcher, error) {
	expr := query
	if !useRegex {
		expr = regexp.QuoteMeta(query)
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return Matcher{}, fmt.Errorf("invalid search query %q: %w", query, err)
	}
	return Matcher{re: re}, nil
}

// Match reports whether the line satisfies the query.
func (m Matcher) Match(line []byte) bool {
	return m.re.Match(line)
}

// MatchString reports whether the line satisfies the query.
func (m Matcher) MatchString(line string) bool {
	return m.re.MatchString(line)
}
