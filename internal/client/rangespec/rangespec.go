// Package rangespec parses and validates page-range strings such as
// "1-5, 8, 11-13".
//
// The grammar is a comma-separated list of tokens; each token is a single
// non-negative integer or "A-B" with A < B, with optional surrounding
// whitespace. Beyond syntax, the parser rejects any input whose tokens cover
// a page number more than once, whether via two singles, two overlapping
// ranges, or a single inside a range.
//
// Parse is pure and total: malformed input yields an invalid Result, never
// an error or panic.
package rangespec

import (
	"sort"
	"strconv"
	"strings"
)

// Span is an inclusive run of pages covered by one token.
// A single page N is the span [N, N].
type Span struct {
	Start int
	End   int
}

// Result is the outcome of parsing a page-range string.
//
// When Valid is false the other fields are zero. Spans preserves token
// order as entered; PageCount is the total number of pages covered.
type Result struct {
	Valid     bool
	Spans     []Span
	PageCount int
}

var invalid = Result{}

// Parse validates a page-range string against the grammar.
//
// The empty string is invalid: callers represent "all pages" with an
// explicit sentinel, not an empty spec.
func Parse(input string) Result {
	if strings.TrimSpace(input) == "" {
		return invalid
	}

	tokens := strings.Split(input, ",")
	spans := make([]Span, 0, len(tokens))

	for _, tok := range tokens {
		span, ok := parseToken(tok)
		if !ok {
			return invalid
		}
		spans = append(spans, span)
	}

	if overlaps(spans) {
		return invalid
	}

	count := 0
	for _, s := range spans {
		count += s.End - s.Start + 1
	}

	return Result{Valid: true, Spans: spans, PageCount: count}
}

// parseToken accepts "N" or "A-B" with optional surrounding spaces/tabs.
// Anything else, including "A--B", "-N" or stray characters, fails.
func parseToken(tok string) (Span, bool) {
	tok = strings.Trim(tok, " \t")
	if tok == "" {
		return Span{}, false
	}

	a, b, found := strings.Cut(tok, "-")
	if !found {
		n, ok := parsePage(a)
		if !ok {
			return Span{}, false
		}
		return Span{Start: n, End: n}, true
	}

	start, ok := parsePage(strings.Trim(a, " \t"))
	if !ok {
		return Span{}, false
	}
	end, ok := parsePage(strings.Trim(b, " \t"))
	if !ok {
		return Span{}, false
	}

	// Zero-length and descending ranges are invalid; no implicit reordering.
	if start >= end {
		return Span{}, false
	}

	return Span{Start: start, End: end}, true
}

// parsePage accepts a plain non-negative decimal integer. strconv.Atoi alone
// would also admit "+5" and "-5", so the digits are checked explicitly.
func parsePage(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// overlaps reports whether any page number is covered by two spans. Spans
// are compared on a sorted copy so the check is O(k log k) regardless of
// how wide the ranges are.
func overlaps(spans []Span) bool {
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start <= sorted[i-1].End {
			return true
		}
	}
	return false
}
