package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document is an in-memory snapshot of one text file as an ordered sequence
// of lines. Boundaries are computed against a single snapshot and consumed
// before any further edit; a Document is never mutated in place.
type Document struct {
	path            string
	lines           []string
	trailingNewline bool
}

// Load reads the file at path into a Document. A missing file is the one
// fatal condition of the whole tool, so the error is returned unwrapped
// enough for the caller to report it before any scanning starts.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	content := string(data)
	trailing := strings.HasSuffix(content, "\n")
	if trailing {
		content = strings.TrimSuffix(content, "\n")
	}

	var lines []string
	if content != "" || trailing {
		lines = strings.Split(content, "\n")
	}

	return &Document{path: path, lines: lines, trailingNewline: trailing}, nil
}

// New builds a Document from lines, detached from any file.
func New(lines []string) *Document {
	copied := make([]string, len(lines))
	copy(copied, lines)
	return &Document{lines: copied, trailingNewline: true}
}

func (d *Document) Path() string { return d.path }

func (d *Document) Len() int { return len(d.lines) }

// Line returns the line at the 0-based index i.
func (d *Document) Line(i int) string { return d.lines[i] }

// Lines returns a copy, so a caller can never disturb the snapshot a
// Boundary was computed against.
func (d *Document) Lines() []string {
	copied := make([]string, len(d.lines))
	copy(copied, d.lines)
	return copied
}

// WithLines derives a new Document sharing this one's path and newline
// convention but carrying a different line sequence.
func (d *Document) WithLines(lines []string) *Document {
	return &Document{path: d.path, lines: lines, trailingNewline: d.trailingNewline}
}

// Content joins the lines back into file content.
func (d *Document) Content() string {
	content := strings.Join(d.lines, "\n")
	if d.trailingNewline && len(d.lines) > 0 {
		content += "\n"
	}
	return content
}

// Save rewrites the backing file in one atomic replacement: the new content
// is written to a temp file in the same directory and renamed over the
// original, so a crash never leaves a half-written document.
func (d *Document) Save() error {
	if d.path == "" {
		return fmt.Errorf("document has no backing file")
	}

	dir := filepath.Dir(d.path)
	tmp, err := os.CreateTemp(dir, ".deadwood-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(d.Content()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", d.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if info, err := os.Stat(d.path); err == nil {
		_ = os.Chmod(tmpPath, info.Mode())
	}

	if err := os.Rename(tmpPath, d.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", d.path, err)
	}
	return nil
}
