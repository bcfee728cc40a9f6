package migrate

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Result reports one file migration: how many console calls were rewritten
// to the tagged logger and how many remain for manual review.
type Result struct {
	Replaced    int
	Remaining   int
	ImportAdded bool
}

var firstImport = regexp.MustCompile(`import\s+.*\n`)

// consoleLevels maps console methods to logger levels. console.log and
// console.info both land on info.
var consoleLevels = [][2]string{
	{"log", "info"},
	{"info", "info"},
	{"warn", "warn"},
	{"error", "error"},
}

var quotes = []string{`'`, `"`, "`"}

// File rewrites tagged console calls in the file at path and writes the
// result back. Pure find/replace; no structural reasoning.
func File(path, tag string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	rewritten, res := Rewrite(string(data), tag)

	if err := os.WriteFile(path, []byte(rewritten), 0644); err != nil {
		return nil, fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return res, nil
}

// Rewrite performs the migration on in-memory content:
//  1. ensure the tagged logger import/declaration exists,
//  2. rewrite console.<method>(<quote>[Tag] ... to taggedLogger.<level>(<quote>...
//     (the [Tag] prefix is dropped; the logger carries the tag itself).
func Rewrite(content, tag string) (string, *Result) {
	res := &Result{}
	before := strings.Count(content, "console.")

	if !strings.Contains(content, "import { logger }") {
		content = insertLoggerImport(content, tag)
		res.ImportAdded = true
	}

	loggerName := strings.ToLower(tag) + "Logger"
	for _, level := range consoleLevels {
		for _, q := range quotes {
			pattern := regexp.MustCompile(
				`console\.` + level[0] + `\(` + regexp.QuoteMeta(q) + `\[` + regexp.QuoteMeta(tag) + `\]`)
			content = pattern.ReplaceAllString(content, loggerName+"."+level[1]+"("+q)
		}
	}

	res.Remaining = strings.Count(content, "console.")
	res.Replaced = before - res.Remaining
	return content, res
}

func insertLoggerImport(content, tag string) string {
	block := fmt.Sprintf(`import { logger } from '../../utils/logger'

// module-tagged logger
const %sLogger = logger.withTag('%s')

`, strings.ToLower(tag), tag)

	if loc := firstImport.FindStringIndex(content); loc != nil {
		return content[:loc[1]] + block + content[loc[1]:]
	}

	// No imports: insert before the first line that is neither blank nor
	// part of a leading comment.
	lines := strings.Split(content, "\n")
	insertAt := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "*") && !strings.HasPrefix(trimmed, "//") {
			insertAt = i
			break
		}
	}

	inserted := make([]string, 0, len(lines)+1)
	inserted = append(inserted, lines[:insertAt]...)
	inserted = append(inserted, block)
	inserted = append(inserted, lines[insertAt:]...)
	return strings.Join(inserted, "\n")
}
