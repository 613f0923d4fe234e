package headlessterm

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Regex wraps a compiled pattern for either hyperlink/hover matching or
// interactive search (spec.md §4.7). regexp2 is this module's PCRE2-style
// engine: unlike the stdlib's RE2-based regexp, it supports lookaround and
// backreferences, matching spec.md's "PCRE2-style compiled pattern" intent
// without requiring cgo.
type Regex struct {
	re      *regexp2.Regexp
	purpose RegexPurpose
	tag     int
}

// RegexPurpose distinguishes a hyperlink/hover matcher from an interactive
// search pattern (spec.md §4.7).
type RegexPurpose int

const (
	RegexPurposeMatch RegexPurpose = iota
	RegexPurposeSearch
)

// RegexFlags mirror spec.md's compile flags (UTF/UCP are implicit in Go's
// string model; IgnoreCase/Multiline are the flags worth exposing).
type RegexFlags int

const (
	RegexIgnoreCase RegexFlags = 1 << iota
	RegexMultiline
)

// NewRegex compiles pattern, returning a compile error to the caller per
// spec.md §7 ("surfaced to the caller that requested the compile").
func NewRegex(pattern string, purpose RegexPurpose, flags RegexFlags) (*Regex, error) {
	opts := regexp2.None
	if flags&RegexIgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}
	if flags&RegexMultiline != 0 {
		opts |= regexp2.Multiline
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, fmt.Errorf("compile regex %q: %w", pattern, err)
	}
	return &Regex{re: re, purpose: purpose}, nil
}

// Span is a half-open text span expressed in (row, col) cell coordinates.
type Span struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

// MatchResult is the outcome of CheckAt: the tag of the regex that matched,
// the matched text, and its span.
type MatchResult struct {
	Tag  int
	Text string
	Span Span
}

// registeredRegex is one entry in a Terminal's match table (spec.md §3.7).
type registeredRegex struct {
	regex      *Regex
	tag        int
	cursorHint bool
}

// MatchTable holds the ordered set of regexes registered for hover/click
// matching, plus a small positive/negative result cache keyed by the last
// query (spec.md §4.7: "Result may be cached as (positive hit...) or
// (negative with containing span...)").
type MatchTable struct {
	entries  []registeredRegex
	nextTag  int
	cacheRow int
	cacheCol int
	cacheHit *MatchResult
	cacheSet bool
}

// NewMatchTable creates an empty match table.
func NewMatchTable() *MatchTable {
	return &MatchTable{cacheRow: -1, cacheCol: -1}
}

// Add registers re and returns its tag, invalidating the match cache.
func (m *MatchTable) Add(re *Regex, cursorHint bool) int {
	tag := m.nextTag
	m.nextTag++
	re.tag = tag
	m.entries = append(m.entries, registeredRegex{regex: re, tag: tag, cursorHint: cursorHint})
	m.invalidate()
	return tag
}

// Remove drops the entry with the given tag, invalidating the cache.
func (m *MatchTable) Remove(tag int) {
	for i, e := range m.entries {
		if e.tag == tag {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			break
		}
	}
	m.invalidate()
}

func (m *MatchTable) invalidate() {
	m.cacheRow, m.cacheCol = -1, -1
	m.cacheHit = nil
	m.cacheSet = false
}

// lineExtractor produces the text of one row (for the purposes of match
// extraction) plus a per-rune (origRow, origCol) back-mapping: backmap[i]
// locates the i-th rune of text.
type lineExtractor func(row int) (text string, backmap []Position)

// CheckAt extracts a window of text around (row, col) via extract, runs
// every registered regex, and returns the one whose match covers (row,
// col), preferring the result cache when the query repeats the last one.
func (m *MatchTable) CheckAt(row, col int, extract lineExtractor) (*MatchResult, bool) {
	if m.cacheSet && m.cacheRow == row && m.cacheCol == col {
		if m.cacheHit == nil {
			return nil, false
		}
		return m.cacheHit, true
	}

	text, backmap := extract(row)
	runes := []rune(text)

	var best *MatchResult
	for _, entry := range m.entries {
		match, err := entry.regex.re.FindStringMatch(text)
		for err == nil && match != nil {
			start := match.Index
			end := match.Index + match.Length
			if start < 0 || end > len(runes) {
				match, err = entry.regex.re.FindNextMatch(match)
				continue
			}
			if coversPosition(backmap, start, end, row, col) {
				span := spanFromBackmap(backmap, start, end, row, col)
				best = &MatchResult{Tag: entry.tag, Text: match.String(), Span: span}
			}
			match, err = entry.regex.re.FindNextMatch(match)
		}
		if best != nil {
			break
		}
	}

	m.cacheRow, m.cacheCol = row, col
	m.cacheHit = best
	m.cacheSet = true
	return best, best != nil
}

func coversPosition(backmap []Position, start, end, row, col int) bool {
	for i := start; i < end && i < len(backmap); i++ {
		if backmap[i].Row == row && backmap[i].Col == col {
			return true
		}
	}
	return false
}

func spanFromBackmap(backmap []Position, start, end, row, col int) Span {
	if start >= len(backmap) || end == 0 || end-1 >= len(backmap) {
		return Span{StartRow: row, StartCol: col, EndRow: row, EndCol: col + 1}
	}
	s := backmap[start]
	e := backmap[end-1]
	return Span{StartRow: s.Row, StartCol: s.Col, EndRow: e.Row, EndCol: e.Col + 1}
}
