package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

func loadText(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", ErrFormat, path)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")

	doc := &Document{format: FormatText}
	if content == "" {
		return doc, nil
	}
	for _, line := range strings.Split(content, "\n") {
		doc.paragraphs = append(doc.paragraphs, Paragraph{
			Text:    line,
			Heading: isTextHeading(line),
		})
	}
	return doc, nil
}

// isTextHeading reports whether a plain-text line acts as a heading: a
// Markdown heading, or a short line written entirely in upper case the way
// résumé section titles usually are.
func isTextHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "#") {
		return true
	}
	if len(trimmed) > 60 || len(strings.Fields(trimmed)) > 6 {
		return false
	}
	hasLetter := false
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func (d *Document) saveText(path string) error {
	var b strings.Builder
	for _, p := range d.paragraphs {
		b.WriteString(p.Text)
		b.WriteByte('\n')
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return nil
}
