package locator

import (
	"fmt"
	"regexp"
	"strings"

	"deadwood/internal/config"
	"deadwood/internal/document"
)

// Boundary is the inclusive 1-based line range spanning one declaration,
// extended backward over an attached documentation block. Line numbers are
// coordinates in one specific Document snapshot and are single-use: they
// mean nothing once that snapshot has been edited.
type Boundary struct {
	StartLine int
	EndLine   int
	Name      string
}

// Match identifies one target declaration: its exact name plus the anchored
// line-start patterns that recognize its opening line. Immutable once built.
type Match struct {
	Name     string
	profile  config.LanguageProfile
	patterns []*regexp.Regexp
}

// NewMatch compiles the profile's declaration templates for a concrete name.
// Patterns are anchored at the start of the line so that a reference to the
// name inside an unrelated expression never matches.
func NewMatch(name string, profile config.LanguageProfile) (*Match, error) {
	if len(profile.DeclPatterns) == 0 {
		return nil, fmt.Errorf("profile %q has no declaration patterns", profile.Name)
	}

	patterns := make([]*regexp.Regexp, 0, len(profile.DeclPatterns))
	for _, tmpl := range profile.DeclPatterns {
		re, err := regexp.Compile(fmt.Sprintf(tmpl, regexp.QuoteMeta(name)))
		if err != nil {
			return nil, fmt.Errorf("bad declaration pattern %q: %w", tmpl, err)
		}
		patterns = append(patterns, re)
	}

	return &Match{Name: name, profile: profile, patterns: patterns}, nil
}

func (m *Match) matchesLine(line string) bool {
	for _, re := range m.patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Locate finds the full span of the first declaration matching m, scanning
// top to bottom. It runs as a two-phase pass: seek the anchored declaration
// line, then count delimiter balance forward until the body closes. The
// start is extended backward over an immediately attached doc block.
//
// Returns ok=false when no line matches, when the declaration line carries
// no opening delimiter (multi-line signatures are out of scope), or when
// the balance never returns to zero before end of document.
func Locate(doc *document.Document, m *Match) (Boundary, bool) {
	declLine := -1
	for i := 0; i < doc.Len(); i++ {
		if m.matchesLine(doc.Line(i)) {
			declLine = i
			break
		}
	}
	if declLine < 0 {
		return Boundary{}, false
	}

	// The opening delimiter must sit on the declaration line itself;
	// otherwise the balance scan has nothing to anchor on.
	if !strings.Contains(doc.Line(declLine), m.profile.OpenDelim) {
		return Boundary{}, false
	}

	end := scanBalance(doc, declLine, m.profile)
	if end < 0 {
		return Boundary{}, false
	}

	start := attachDocBlock(doc, declLine, m.profile)

	return Boundary{StartLine: start + 1, EndLine: end + 1, Name: m.Name}, true
}

// scanBalance walks forward from declLine counting opening minus closing
// delimiters and returns the 0-based line where the outermost balance
// returns to zero, or -1 if it never does. Delimiters inside string or
// comment content are counted too; the declaration shapes this tool
// targets never carry literal delimiters in their signatures.
func scanBalance(doc *document.Document, declLine int, p config.LanguageProfile) int {
	balance := 0
	seenOpen := false
	for i := declLine; i < doc.Len(); i++ {
		line := doc.Line(i)
		opens := strings.Count(line, p.OpenDelim)
		balance += opens - strings.Count(line, p.CloseDelim)
		if opens > 0 {
			seenOpen = true
		}
		if seenOpen && balance == 0 {
			return i
		}
	}
	return -1
}

// attachDocBlock walks backward from the declaration line and returns the
// 0-based start of an attached documentation block, or declLine when there
// is none. A blank line or a non-comment line directly above the
// declaration detaches it, so a comment belonging to a different
// declaration further up is never fused in.
func attachDocBlock(doc *document.Document, declLine int, p config.LanguageProfile) int {
	start := declLine
	for j := declLine - 1; j >= 0; j-- {
		trimmed := strings.TrimSpace(doc.Line(j))
		if trimmed == "" {
			break
		}
		if strings.HasPrefix(trimmed, p.DocOpen) {
			start = j
			if !hasAnyPrefix(trimmed, p.CommentPrefixes) {
				// Block opener like "/**": the walk is done.
				break
			}
			// Line-comment style ("//"): keep absorbing the run upward.
			continue
		}
		if !hasAnyPrefix(trimmed, p.CommentPrefixes) {
			break
		}
		// Continuation line ("* ..."); attachment happens only if the run
		// eventually terminates at the doc opener.
	}
	return start
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// nameSlot recognizes an identifier where a Match would hold a concrete name.
const nameSlot = `([A-Za-z_$][A-Za-z0-9_$]*)`

// Candidates scans the document with wildcard variants of the profile's
// declaration patterns and returns every declaration name present, in
// document order. Used for "did you mean" suggestions when a requested
// name is not found; no parsing involved.
func Candidates(doc *document.Document, profile config.LanguageProfile) []string {
	var patterns []*regexp.Regexp
	for _, tmpl := range profile.DeclPatterns {
		re, err := regexp.Compile(fmt.Sprintf(tmpl, nameSlot))
		if err != nil {
			continue
		}
		patterns = append(patterns, re)
	}

	var names []string
	seen := make(map[string]bool)
	for i := 0; i < doc.Len(); i++ {
		line := doc.Line(i)
		for _, re := range patterns {
			sub := re.FindStringSubmatch(line)
			if len(sub) < 2 {
				continue
			}
			if !seen[sub[1]] {
				seen[sub[1]] = true
				names = append(names, sub[1])
			}
			break
		}
	}
	return names
}
