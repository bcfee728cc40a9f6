package inspect

import (
	"context"
	"fmt"
	"os"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

// Declaration is one function-like declaration found in a source file.
// StartLine extends over an immediately attached comment block, mirroring
// what a removal of the same name would take out.
type Declaration struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// ListFile parses one source file and returns its function-like
// declarations in document order. Discovery only: nothing here feeds the
// edit path, which stays line-based on purpose.
func ListFile(path string) ([]Declaration, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return List(source, path)
}

// List extracts declarations from already-loaded source. The grammar is
// chosen from the file extension.
func List(source []byte, path string) ([]Declaration, error) {
	lang, err := languageForFile(path)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang.language)
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}
	defer tree.Close()

	query, err := sitter.NewQuery([]byte(lang.query), lang.language)
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}

	var decls []Declaration
	qc := sitter.NewQueryCursor()
	qc.Exec(query, tree.RootNode())

	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			nameNode := c.Node.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			decls = append(decls, Declaration{
				Name:      nameNode.Content(source),
				Kind:      query.CaptureNameForId(c.Index),
				StartLine: int(docStartRow(c.Node)) + 1,
				EndLine:   int(c.Node.EndPoint().Row) + 1,
			})
		}
	}

	sort.Slice(decls, func(i, j int) bool { return decls[i].StartLine < decls[j].StartLine })
	return decls, nil
}

// docStartRow walks backward over adjacent comment siblings, the same
// association rule the remover uses: contiguous comments with no blank
// line in between belong to the declaration.
func docStartRow(node *sitter.Node) uint32 {
	current := node
	// Exported TS/JS declarations sit inside an export_statement; the
	// attached comment is that statement's sibling.
	if p := node.Parent(); p != nil && p.Type() == "export_statement" {
		current = p
	}
	for {
		prev := current.PrevSibling()
		if prev == nil || current.StartPoint().Row-prev.EndPoint().Row > 1 {
			break
		}
		if prev.Type() != "comment" {
			break
		}
		current = prev
	}
	return current.StartPoint().Row
}
