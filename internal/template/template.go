package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ReplaceValue swaps the string value at a dot-separated key path inside a
// JSON document for the given replacement, rewriting the file with stable
// 2-space indentation. Whole-value replacement only; nothing is merged or
// scanned.
func ReplaceValue(path, keyPath, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	out, err := Rewrite(data, keyPath, value)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// Rewrite performs the replacement on in-memory JSON.
func Rewrite(data []byte, keyPath, value string) ([]byte, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	keys := strings.Split(keyPath, ".")
	current := doc
	for i, key := range keys {
		if i == len(keys)-1 {
			if _, ok := current[key]; !ok {
				return nil, fmt.Errorf("key %q not found", keyPath)
			}
			current[key] = value
			break
		}
		next, ok := current[key].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("key %q not found", keyPath)
		}
		current = next
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
