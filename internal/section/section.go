// Package section locates and rewrites the summary/keywords section of a
// résumé document. The marker is the first paragraph whose text matches one
// of a small fixed set of heading labels; the section runs from that marker
// up to the next heading or the end of the document and is replaced
// wholesale. With no marker present, the section is appended at the end.
package section

import (
	"fmt"
	"strings"
	"time"

	"github.com/muhammadolammi/resumerefresher/internal/document"
)

// DefaultHeadings are the labels recognized as section markers, matched
// case-insensitively against the start of a paragraph.
func DefaultHeadings() []string {
	return []string{"summary", "keywords", "skills"}
}

// Location is the paragraph range [Start, End) of the section. Found is
// false when no marker paragraph exists.
type Location struct {
	Start int
	End   int
	Found bool
}

// Locate finds the section in doc. A paragraph is the marker when its
// trimmed, lower-cased text equals one of the headings or starts with one
// of them ("Skills & Tools" matches "skills"). The section ends at the next
// heading-level paragraph after the marker, or at the end of the document.
func Locate(doc *document.Document, headings []string) Location {
	if len(headings) == 0 {
		headings = DefaultHeadings()
	}

	for i := 0; i < doc.Len(); i++ {
		if !matchesHeading(doc.Paragraph(i).Text, headings) {
			continue
		}
		end := doc.Len()
		for j := i + 1; j < doc.Len(); j++ {
			if doc.Paragraph(j).Heading {
				end = j
				break
			}
		}
		return Location{Start: i, End: end, Found: true}
	}
	return Location{Start: doc.Len(), End: doc.Len()}
}

func matchesHeading(text string, headings []string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return false
	}
	for _, h := range headings {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" && strings.HasPrefix(t, h) {
			return true
		}
	}
	return false
}

// Build produces the replacement section: a Summary heading, one line with
// the run timestamp and keyword count, and one comma-joined keyword line.
// The block contains exactly one heading (the leading one), so a later run
// replaces it cleanly from marker to next heading.
func Build(keywords []string, now time.Time) []document.Paragraph {
	line := "Keywords:"
	if len(keywords) > 0 {
		line += " " + strings.Join(keywords, ", ")
	}
	return []document.Paragraph{
		document.NewHeading("Summary"),
		document.NewParagraph(fmt.Sprintf("Updated %s. %d keywords extracted from this resume.",
			now.Format(time.RFC3339), len(keywords))),
		document.NewParagraph(line),
	}
}

// Apply writes the section into doc at loc: a found section is replaced in
// place, otherwise the block is appended after the last paragraph.
func Apply(doc *document.Document, loc Location, block []document.Paragraph) {
	if loc.Found {
		doc.ReplaceRange(loc.Start, loc.End, block)
		return
	}
	doc.Append(block...)
}
