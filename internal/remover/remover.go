package remover

import (
	"fmt"
	"sort"
	"strings"

	"deadwood/internal/config"
	"deadwood/internal/document"
	"deadwood/internal/locator"
)

// Removal is one applied deletion: the boundary plus the text that was cut,
// kept so the caller can journal what left the file.
type Removal struct {
	Boundary locator.Boundary
	Text     string
}

// Report summarizes one batch over one document snapshot.
type Report struct {
	Removed  []Removal
	NotFound []string
	Before   int
	After    int
}

// Apply deletes every boundary from the document and returns the edited
// copy. All boundaries must come from the same unmodified snapshot.
// Boundaries are applied in descending order of start line, so deleting one
// range never shifts the line numbers of a range still waiting to be
// applied. Overlapping boundaries are a caller bug and are rejected before
// anything is touched.
func Apply(doc *document.Document, boundaries []locator.Boundary) (*document.Document, []Removal, error) {
	if err := validate(doc, boundaries); err != nil {
		return nil, nil, err
	}

	plan := make([]locator.Boundary, len(boundaries))
	copy(plan, boundaries)
	sort.Slice(plan, func(i, j int) bool { return plan[i].StartLine > plan[j].StartLine })

	removals := make([]Removal, 0, len(plan))
	lines := doc.Lines()
	for _, b := range plan {
		start, end := b.StartLine-1, b.EndLine-1
		text := strings.Join(lines[start:end+1], "\n")
		lines = append(lines[:start], lines[end+1:]...)
		removals = append(removals, Removal{Boundary: b, Text: text})
	}

	// Report removals in ascending document order regardless of how the
	// deletion pass ran.
	sort.Slice(removals, func(i, j int) bool {
		return removals[i].Boundary.StartLine < removals[j].Boundary.StartLine
	})

	return doc.WithLines(lines), removals, nil
}

func validate(doc *document.Document, boundaries []locator.Boundary) error {
	sorted := make([]locator.Boundary, len(boundaries))
	copy(sorted, boundaries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartLine < sorted[j].StartLine })

	for i, b := range sorted {
		if b.StartLine < 1 || b.EndLine > doc.Len() || b.StartLine > b.EndLine {
			return fmt.Errorf("boundary for %s (%d-%d) is outside the document", b.Name, b.StartLine, b.EndLine)
		}
		if i > 0 && b.StartLine <= sorted[i-1].EndLine {
			prev := sorted[i-1]
			return fmt.Errorf("boundary for %s (%d-%d) overlaps %s (%d-%d)",
				b.Name, b.StartLine, b.EndLine, prev.Name, prev.StartLine, prev.EndLine)
		}
	}
	return nil
}

// RemoveByName locates every requested declaration against one snapshot,
// then applies the whole plan at once. Names with no match are reported,
// never fatal; duplicates in the request collapse to one removal.
func RemoveByName(doc *document.Document, names []string, profile config.LanguageProfile) (*document.Document, *Report, error) {
	report := &Report{Before: doc.Len()}

	var plan []locator.Boundary
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		m, err := locator.NewMatch(name, profile)
		if err != nil {
			return nil, nil, err
		}
		b, ok := locator.Locate(doc, m)
		if !ok {
			report.NotFound = append(report.NotFound, name)
			continue
		}
		plan = append(plan, b)
	}

	edited, removals, err := Apply(doc, plan)
	if err != nil {
		return nil, nil, err
	}

	report.Removed = removals
	report.After = edited.Len()
	return edited, report, nil
}
