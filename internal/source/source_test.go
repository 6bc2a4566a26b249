package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/resumerefresher/internal/document"
)

func TestExtractTextPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.txt")
	require.NoError(t, os.WriteFile(path, []byte("Kubernetes Terraform"), 0o644))

	text, err := ExtractText(path)
	require.NoError(t, err)
	assert.Equal(t, "Kubernetes Terraform", text)
}

func TestExtractTextMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.md")
	require.NoError(t, os.WriteFile(path, []byte("# Skills\nDocker"), 0o644))

	text, err := ExtractText(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Docker")
}

func TestExtractTextMissing(t *testing.T) {
	_, err := ExtractText(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, document.ErrNotFound)
}

func TestExtractTextUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := ExtractText(path)
	assert.ErrorIs(t, err, document.ErrFormat)
}

func TestExtractTextCorruptPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))

	_, err := ExtractText(path)
	assert.ErrorIs(t, err, document.ErrFormat)
}

func TestExtractTextCorruptDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := ExtractText(path)
	assert.ErrorIs(t, err, document.ErrFormat)
}
