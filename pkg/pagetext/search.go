package pagetext

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// SearchOptions controls how Highlight compares words.
type SearchOptions struct {
	CaseSensitive bool
	// KeepPunctuation compares words verbatim instead of trimming
	// leading and trailing punctuation.
	KeepPunctuation bool
}

// Highlight marks every occurrence of term in the visible lines and returns
// the number of hits. The term is split into words on whitespace and matched
// against consecutive content words of a line; the whitespace words between
// matched words are highlighted too.
func (t *Tree) Highlight(term string, opts SearchOptions) int {
	fold := foldFunc(opts)
	var want []string
	for _, f := range strings.Fields(term) {
		if k := fold(f); k != "" {
			want = append(want, k)
		}
	}
	if len(want) == 0 {
		return 0
	}

	hits := 0
	for _, l := range t.VisibleLines() {
		hits += highlightLine(l, want, fold)
	}
	return hits
}

func highlightLine(l *Line, want []string, fold func(string) string) int {
	// Indexes into l.words of the content words.
	var content []int
	for i, w := range l.words {
		if !w.whitespace {
			content = append(content, i)
		}
	}

	hits := 0
	for i := 0; i+len(want) <= len(content); i++ {
		match := true
		for j, k := range want {
			if fold(l.words[content[i+j]].Text()) != k {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		first, last := content[i], content[i+len(want)-1]
		for _, w := range l.words[first : last+1] {
			w.Highlight()
		}
		hits++
		i += len(want) - 1
	}
	return hits
}

func foldFunc(opts SearchOptions) func(string) string {
	caser := cases.Fold()
	return func(s string) string {
		s = norm.NFC.String(s)
		if !opts.KeepPunctuation {
			s = strings.TrimFunc(s, IsPunctuation)
		}
		if !opts.CaseSensitive {
			s = caser.String(s)
		}
		return s
	}
}
