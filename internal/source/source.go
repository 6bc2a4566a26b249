// Package source extracts plain text from a local keyword-source file, so
// the refresh can derive keywords from a document other than the résumé
// itself (a skills sheet, an exported profile, a job description saved to
// disk). Supported formats: .txt, .md, .docx and .pdf.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/muhammadolammi/resumerefresher/internal/document"
)

// ExtractText reads the file at path and returns its text content.
func ExtractText(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", document.ErrNotFound, path)
		}
		return "", fmt.Errorf("stat source %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", document.ErrFormat, path, err)
		}
		return string(data), nil

	case ".pdf":
		return extractPDFText(path)

	case ".docx":
		return extractDocxText(path)

	default:
		return "", fmt.Errorf("%w: unsupported source type %q", document.ErrFormat, filepath.Ext(path))
	}
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read pdf %s: %v", document.ErrFormat, path, err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
		textBuilder.WriteByte('\n')
	}
	return textBuilder.String(), nil
}

func extractDocxText(path string) (string, error) {
	doc, err := document.Load(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return strings.Join(doc.Texts(), "\n"), nil
}
