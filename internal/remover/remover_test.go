package remover

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deadwood/internal/config"
	"deadwood/internal/document"
	"deadwood/internal/locator"
)

func tsProfile(t *testing.T) config.LanguageProfile {
	t.Helper()
	for _, p := range config.DefaultProfiles() {
		if p.Name == "typescript" {
			return p
		}
	}
	t.Fatal("typescript profile missing")
	return config.LanguageProfile{}
}

// fixtureDoc builds a 50-line document where declaration A spans lines
// 10-20 and declaration B spans lines 30-40, padded with filler lines.
func fixtureDoc() *document.Document {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = fmt.Sprintf("// filler %d", i+1)
	}

	lines[9] = "export async function alpha() {"
	for i := 10; i < 19; i++ {
		lines[i] = "  work()"
	}
	lines[19] = "}"

	lines[29] = "export async function beta() {"
	for i := 30; i < 39; i++ {
		lines[i] = "  rest()"
	}
	lines[39] = "}"

	return document.New(lines)
}

func TestRemoveByName_DisjointIndependence(t *testing.T) {
	doc := fixtureDoc()

	edited, report, err := RemoveByName(doc, []string{"alpha", "beta"}, tsProfile(t))
	require.NoError(t, err)

	assert.Equal(t, 50, report.Before)
	assert.Equal(t, 50-11-11, report.After)
	assert.Equal(t, 50-11-11, edited.Len())
	assert.Empty(t, report.NotFound)
	require.Len(t, report.Removed, 2)

	// "// filler" lines are not JSDoc, so nothing attaches above the
	// declarations and the boundaries are exactly the bodies.
	assert.Equal(t, 10, report.Removed[0].Boundary.StartLine)
	assert.Equal(t, 20, report.Removed[0].Boundary.EndLine)
	assert.Equal(t, 30, report.Removed[1].Boundary.StartLine)
	assert.Equal(t, 40, report.Removed[1].Boundary.EndLine)

	content := edited.Content()
	assert.NotContains(t, content, "alpha")
	assert.NotContains(t, content, "beta")

	// Everything else survives verbatim and in order.
	assert.Contains(t, content, "// filler 8")
	assert.Contains(t, content, "// filler 21")
	assert.Contains(t, content, "// filler 50")
	idxBefore := strings.Index(content, "// filler 21")
	idxAfter := strings.Index(content, "// filler 41")
	assert.Less(t, idxBefore, idxAfter)
}

func TestRemoveByName_OrderIndependence(t *testing.T) {
	first, _, err := RemoveByName(fixtureDoc(), []string{"alpha", "beta"}, tsProfile(t))
	require.NoError(t, err)

	second, _, err := RemoveByName(fixtureDoc(), []string{"beta", "alpha"}, tsProfile(t))
	require.NoError(t, err)

	assert.Equal(t, first.Content(), second.Content())
}

func TestRemoveByName_RerunIsIdempotent(t *testing.T) {
	names := []string{"alpha", "beta"}

	once, report, err := RemoveByName(fixtureDoc(), names, tsProfile(t))
	require.NoError(t, err)
	require.Empty(t, report.NotFound)

	twice, report2, err := RemoveByName(once, names, tsProfile(t))
	require.NoError(t, err)

	assert.ElementsMatch(t, names, report2.NotFound)
	assert.Empty(t, report2.Removed)
	assert.Equal(t, once.Content(), twice.Content())
}

func TestRemoveByName_NotFoundLeavesDocumentUnchanged(t *testing.T) {
	doc := fixtureDoc()

	edited, report, err := RemoveByName(doc, []string{"missing"}, tsProfile(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"missing"}, report.NotFound)
	assert.Empty(t, report.Removed)
	assert.Equal(t, doc.Content(), edited.Content())
}

func TestRemoveByName_MixedFoundAndMissing(t *testing.T) {
	edited, report, err := RemoveByName(fixtureDoc(), []string{"alpha", "missing", "beta"}, tsProfile(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"missing"}, report.NotFound)
	assert.Len(t, report.Removed, 2)
	assert.Equal(t, 50-11-11, edited.Len())
}

func TestRemoveByName_DuplicateNamesCollapse(t *testing.T) {
	edited, report, err := RemoveByName(fixtureDoc(), []string{"alpha", "alpha"}, tsProfile(t))
	require.NoError(t, err)

	assert.Len(t, report.Removed, 1)
	assert.Equal(t, 50-11, edited.Len())
}

func TestApply_RecordsRemovedText(t *testing.T) {
	doc := document.New([]string{
		"export function gone() {",
		"  return 42",
		"}",
		"keep me",
	})

	edited, removals, err := Apply(doc, []locator.Boundary{{StartLine: 1, EndLine: 3, Name: "gone"}})
	require.NoError(t, err)

	require.Len(t, removals, 1)
	assert.Equal(t, "export function gone() {\n  return 42\n}", removals[0].Text)
	assert.Equal(t, "keep me\n", edited.Content())
}

func TestApply_RejectsOverlap(t *testing.T) {
	doc := document.New(make([]string, 30))

	_, _, err := Apply(doc, []locator.Boundary{
		{StartLine: 5, EndLine: 15, Name: "a"},
		{StartLine: 10, EndLine: 20, Name: "b"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlaps")
}

func TestApply_RejectsOutOfRange(t *testing.T) {
	doc := document.New(make([]string, 5))

	_, _, err := Apply(doc, []locator.Boundary{{StartLine: 3, EndLine: 9, Name: "a"}})
	require.Error(t, err)
}

func TestApply_OriginalSnapshotUntouched(t *testing.T) {
	doc := document.New([]string{"a", "b", "c"})

	_, _, err := Apply(doc, []locator.Boundary{{StartLine: 2, EndLine: 2, Name: "b"}})
	require.NoError(t, err)

	assert.Equal(t, 3, doc.Len())
	assert.Equal(t, "b", doc.Line(1))
}
