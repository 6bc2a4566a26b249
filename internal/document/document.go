// Package document models a résumé as an ordered sequence of paragraphs and
// knows how to load and save it in its on-disk format. Two formats are
// supported, picked by file extension: Word documents (.docx) and plain
// text or Markdown (.txt, .md), where each line is a paragraph.
//
// Paragraphs that are not touched by an edit round-trip through save with
// their original content preserved.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Error kinds surfaced by Load and Save. Callers match with errors.Is.
var (
	ErrNotFound = errors.New("document not found")
	ErrFormat   = errors.New("unreadable document")
	ErrWrite    = errors.New("cannot write document")
)

// Format is the on-disk encoding of a document.
type Format int

const (
	FormatText Format = iota
	FormatDocx
)

// Paragraph is one paragraph of the document. Heading marks paragraphs that
// terminate a section during a rewrite: styled headings in docx, or
// heading-looking lines in plain text.
type Paragraph struct {
	Text    string
	Heading bool

	// raw is the original document.xml fragment for docx paragraphs.
	// Empty for plain-text and freshly built paragraphs, which are
	// rendered from Text at save time.
	raw string
}

// NewParagraph builds a plain body paragraph.
func NewParagraph(text string) Paragraph {
	return Paragraph{Text: text}
}

// NewHeading builds a heading paragraph.
func NewHeading(text string) Paragraph {
	return Paragraph{Text: text, Heading: true}
}

// Document is an in-memory document. Mutations go through ReplaceRange and
// Append so the codec bookkeeping stays consistent.
type Document struct {
	format     Format
	paragraphs []Paragraph

	// docx codec state: gaps[i] is the raw XML before paragraph i,
	// gaps[len(paragraphs)] the XML after the last paragraph, and suffix
	// holds the body closing (sectPr onward). archive is the open source
	// file, needed to rebuild the zip on save.
	gaps    []string
	suffix  string
	archive *docxArchive
}

// New returns an empty plain-text document.
func New() *Document {
	return &Document{format: FormatText}
}

// Load reads the document at path, picking the codec from the extension.
func Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", ErrFormat, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFormat, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return loadDocx(path)
	case ".txt", ".md", "":
		return loadText(path)
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrFormat, filepath.Ext(path))
	}
}

// Format reports the document's on-disk encoding.
func (d *Document) Format() Format { return d.format }

// Len returns the number of paragraphs.
func (d *Document) Len() int { return len(d.paragraphs) }

// Paragraph returns the paragraph at index i.
func (d *Document) Paragraph(i int) Paragraph { return d.paragraphs[i] }

// Texts returns the trimmed, non-empty paragraph texts in order.
func (d *Document) Texts() []string {
	return d.TextsExcluding(0, 0)
}

// TextsExcluding returns the trimmed, non-empty paragraph texts outside the
// half-open index range [start, end).
func (d *Document) TextsExcluding(start, end int) []string {
	var texts []string
	for i, p := range d.paragraphs {
		if i >= start && i < end {
			continue
		}
		if t := strings.TrimSpace(p.Text); t != "" {
			texts = append(texts, t)
		}
	}
	return texts
}

// ReplaceRange replaces paragraphs in the half-open range [i, j) with the
// given paragraphs. i == j inserts before paragraph i.
func (d *Document) ReplaceRange(i, j int, ps []Paragraph) {
	if i < 0 || j < i || j > len(d.paragraphs) {
		panic(fmt.Sprintf("document: replace range [%d,%d) out of bounds for %d paragraphs", i, j, len(d.paragraphs)))
	}

	if d.gaps != nil {
		gaps := append([]string{}, d.gaps[:i+1]...)
		if len(ps) == 0 {
			// The gap before the removed run and the one after it
			// collapse into a single gap.
			gaps[i] += d.gaps[j]
			gaps = append(gaps, d.gaps[j+1:]...)
		} else {
			for k := 1; k < len(ps); k++ {
				gaps = append(gaps, "")
			}
			gaps = append(gaps, d.gaps[j:]...)
		}
		d.gaps = gaps
	}

	rest := append([]Paragraph{}, d.paragraphs[j:]...)
	d.paragraphs = append(d.paragraphs[:i:i], ps...)
	d.paragraphs = append(d.paragraphs, rest...)
}

// Append adds paragraphs after the last paragraph.
func (d *Document) Append(ps ...Paragraph) {
	if d.gaps != nil {
		for range ps {
			d.gaps = append(d.gaps, "")
		}
	}
	d.paragraphs = append(d.paragraphs, ps...)
}

// Save writes the document to path atomically: content goes to a temporary
// file in the same directory which then replaces the target, so a failure
// never leaves a partially written document behind.
func (d *Document) Save(path string) error {
	switch d.format {
	case FormatDocx:
		return d.saveDocx(path)
	default:
		return d.saveText(path)
	}
}

// Close releases the underlying file handle of a docx document. It is a
// no-op for plain-text documents.
func (d *Document) Close() error {
	if d.archive != nil {
		return d.archive.Close()
	}
	return nil
}
