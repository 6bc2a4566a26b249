package document

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// docxArchive keeps the source .docx open between Load and Save: the
// library rebuilds the whole zip from the original archive, swapping in the
// edited document.xml.
type docxArchive struct {
	file     *docx.ReplaceDocx
	editable *docx.Docx
}

func (a *docxArchive) Close() error { return a.file.Close() }

var (
	// A self-closing empty paragraph, or a full paragraph element. The
	// self-closing form is tried first so "<w:p w:x/>" is not read as an
	// opening tag. Tags starting with "w:p" (w:pPr, w:pStyle) do not
	// match because the name must end at whitespace, '>' or '/>'.
	docxParagraphRe = regexp.MustCompile(`(?s)<w:p(?:\s[^>]*)?/>|<w:p(?:\s[^>]*)?>.*?</w:p>`)
	docxRunTextRe   = regexp.MustCompile(`(?s)<w:t(?:\s[^>]*)?>(.*?)</w:t>`)
	docxHeadingRe   = regexp.MustCompile(`<w:pStyle\s[^>]*w:val="(?:Heading[^"]*|Title)"`)
)

func loadDocx(path string) (*Document, error) {
	file, err := docx.ReadDocxFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
	}

	archive := &docxArchive{file: file, editable: file.Editable()}
	content := archive.editable.GetContent()
	if !strings.Contains(content, "</w:body>") {
		archive.Close()
		return nil, fmt.Errorf("%w: %s: document.xml has no body", ErrFormat, path)
	}

	paragraphs, gaps, suffix := splitDocxBody(content)
	return &Document{
		format:     FormatDocx,
		paragraphs: paragraphs,
		gaps:       gaps,
		suffix:     suffix,
		archive:    archive,
	}, nil
}

// splitDocxBody cuts document.xml into paragraphs and the raw XML around
// them. Paragraphs are matched first: a sectPr inside a paragraph's pPr
// (a mid-document section break) belongs to that paragraph's fragment. The
// returned suffix starts at the body-level sectPr after the last paragraph
// (or at </w:body> if there is none) so that appended paragraphs land
// inside the body.
func splitDocxBody(content string) ([]Paragraph, []string, string) {
	locs := docxParagraphRe.FindAllStringIndex(content, -1)

	bodyEnd := 0
	if len(locs) > 0 {
		bodyEnd = locs[len(locs)-1][1]
	}
	suffixAt := len(content)
	if i := strings.Index(content[bodyEnd:], "<w:sectPr"); i >= 0 {
		suffixAt = bodyEnd + i
	} else if i := strings.Index(content[bodyEnd:], "</w:body>"); i >= 0 {
		suffixAt = bodyEnd + i
	}

	var (
		paragraphs []Paragraph
		gaps       []string
		last       int
	)
	for _, loc := range locs {
		raw := content[loc[0]:loc[1]]
		gaps = append(gaps, content[last:loc[0]])
		paragraphs = append(paragraphs, Paragraph{
			Text:    docxParagraphText(raw),
			Heading: docxHeadingRe.MatchString(raw),
			raw:     raw,
		})
		last = loc[1]
	}
	gaps = append(gaps, content[last:suffixAt])
	return paragraphs, gaps, content[suffixAt:]
}

// docxParagraphText joins the text runs of one paragraph.
func docxParagraphText(raw string) string {
	var b strings.Builder
	for _, m := range docxRunTextRe.FindAllStringSubmatch(raw, -1) {
		b.WriteString(unescapeXML(m[1]))
	}
	return b.String()
}

func (d *Document) saveDocx(path string) error {
	if d.archive == nil {
		return fmt.Errorf("%w: %s: document was not loaded from a docx file", ErrWrite, path)
	}

	var b strings.Builder
	for i, p := range d.paragraphs {
		b.WriteString(d.gaps[i])
		b.WriteString(renderDocxParagraph(p))
	}
	b.WriteString(d.gaps[len(d.paragraphs)])
	b.WriteString(d.suffix)

	d.archive.editable.SetContent(b.String())

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err := d.archive.editable.WriteToFile(tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return nil
}

// renderDocxParagraph emits XML for a paragraph. Paragraphs read from the
// source keep their original fragment untouched.
func renderDocxParagraph(p Paragraph) string {
	if p.raw != "" {
		return p.raw
	}
	text := `<w:r><w:t xml:space="preserve">` + escapeXML(p.Text) + `</w:t></w:r>`
	if p.Heading {
		return `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr>` + text + `</w:p>`
	}
	return `<w:p>` + text + `</w:p>`
}

var (
	xmlEscaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;")
	xmlUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'", "&amp;", "&")
)

func escapeXML(s string) string   { return xmlEscaper.Replace(s) }
func unescapeXML(s string) string { return xmlUnescaper.Replace(s) }
