// Package keywords derives a deterministic keyword set from résumé text.
// Tokens are case-folded, stripped of punctuation, filtered by length and a
// stop-word list, deduplicated and sorted, so identical input text always
// produces the identical set.
package keywords

import (
	"sort"
	"strings"
	"unicode"
)

// Defaults, matching the tuning the résumé updater has always shipped with.
const (
	DefaultMinLength = 3
	DefaultLimit     = 12
)

// DefaultStopWords are common filler words that never count as keywords.
func DefaultStopWords() []string {
	return []string{
		"a", "also", "am", "an", "and", "are", "as", "at", "be", "been",
		"but", "by", "can", "did", "do", "for", "from", "had", "has",
		"have", "i", "in", "is", "it", "its", "my", "of", "on", "or",
		"our", "that", "the", "these", "this", "those", "to", "use",
		"used", "using", "was", "we", "were", "will", "with", "you",
		"your",
	}
}

// Options tunes extraction. Zero values fall back to the defaults.
type Options struct {
	// MinLength drops tokens shorter than this many runes.
	MinLength int
	// StopWords are dropped regardless of length. Matched after
	// normalization, so entries should be lower case.
	StopWords []string
	// Limit caps the result size, applied after sorting.
	Limit int
}

func (o Options) withDefaults() Options {
	if o.MinLength <= 0 {
		o.MinLength = DefaultMinLength
	}
	if o.StopWords == nil {
		o.StopWords = DefaultStopWords()
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	return o
}

// Extract returns the distinct normalized tokens of the given texts, sorted
// lexicographically and capped at Limit.
func Extract(texts []string, opts Options) []string {
	opts = opts.withDefaults()

	stop := make(map[string]struct{}, len(opts.StopWords))
	for _, w := range opts.StopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}

	seen := make(map[string]struct{})
	for _, text := range texts {
		for _, token := range tokenize(text) {
			if len([]rune(token)) < opts.MinLength {
				continue
			}
			if _, ok := stop[token]; ok {
				continue
			}
			seen[token] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for token := range seen {
		out = append(out, token)
	}
	sort.Strings(out)
	if len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

// tokenize lower-cases text and splits it on every non-alphanumeric rune,
// so "Python," and "python" collapse to the same token.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
