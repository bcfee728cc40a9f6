package inspect

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

type languageSpec struct {
	language *sitter.Language
	query    string
}

func languageForFile(path string) (*languageSpec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx":
		return &languageSpec{
			language: typescript.GetLanguage(),
			query: `
				(function_declaration) @function
				(generator_function_declaration) @function
				(method_definition) @method
			`,
		}, nil
	case ".js", ".jsx", ".mjs", ".cjs":
		return &languageSpec{
			language: javascript.GetLanguage(),
			query: `
				(function_declaration) @function
				(generator_function_declaration) @function
				(method_definition) @method
			`,
		}, nil
	case ".go":
		return &languageSpec{
			language: golang.GetLanguage(),
			query: `
				(function_declaration) @function
				(method_declaration) @method
			`,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}
