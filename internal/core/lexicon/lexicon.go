// Package lexicon loads the embedded Russian vocabulary used by the query compiler.
// It carries every accepted month spelling and the keyword stem groups the
// intent rules match against normalized text
package lexicon

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

//go:embed lexicon.json
var embedded []byte

// keyword group names referenced by the compiler rules
const (
	Creator   = "creator"
	Count     = "count"
	Video     = "video"
	Views     = "views"
	More      = "more"
	Growth    = "growth"
	Snapshot  = "snapshot"
	Stats     = "stats"
	Negative  = "negative"
	System    = "system"
	Earliest  = "earliest"
	Latest    = "latest"
	Date      = "date"
	Publish   = "publish"
	Top       = "top"
	Which     = "which"
	Most      = "most"
	Total     = "total"
	Published = "published"
)

var requiredGroups = []string{
	Creator, Count, Video, Views, More, Growth, Snapshot, Stats, Negative, System,
	Earliest, Latest, Date, Publish, Top, Which, Most, Total, Published,
}

type rawMonth struct {
	Month  int      `json:"month"`
	Forms  []string `json:"forms"`
	Abbrev []string `json:"abbrev"`
}

type rawLexicon struct {
	Version  int                 `json:"version"`
	Meta     map[string]any      `json:"meta"`
	Months   []rawMonth          `json:"months"`
	Keywords map[string][]string `json:"keywords"`
}

// Group is a set of stems; a group matches when any stem is a substring of the text
type Group []string

// In reports whether any stem of g occurs in text
func (g Group) In(text string) bool {
	for _, s := range g {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// Lexicon is the compiled vocabulary
type Lexicon struct {
	Version int

	// Months maps every accepted spelling (full forms and abbreviations) to its month
	Months map[string]time.Month

	// MonthAlt is a regexp alternation of all month spellings, longest first
	MonthAlt string

	Keywords map[string]Group
}

// Load parses and validates the embedded lexicon
func Load() (*Lexicon, error) {
	return parse(embedded)
}

// MustLoad is Load for package init and main wiring
func MustLoad() *Lexicon {
	l, err := Load()
	if err != nil {
		panic(err)
	}
	return l
}

func parse(b []byte) (*Lexicon, error) {
	var raw rawLexicon
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("lexicon: parse lexicon.json: %w", err)
	}
	if raw.Version != 1 {
		return nil, fmt.Errorf("lexicon: unsupported version %d (want 1)", raw.Version)
	}

	l := &Lexicon{
		Version:  raw.Version,
		Months:   make(map[string]time.Month, 64),
		Keywords: make(map[string]Group, len(raw.Keywords)),
	}

	seen := make(map[int]bool, 12)
	for _, m := range raw.Months {
		if m.Month < 1 || m.Month > 12 {
			return nil, fmt.Errorf("lexicon: month %d out of range", m.Month)
		}
		seen[m.Month] = true
		for _, w := range append(append([]string(nil), m.Forms...), m.Abbrev...) {
			w = fold(w)
			if w == "" {
				continue
			}
			if prev, ok := l.Months[w]; ok && prev != time.Month(m.Month) {
				return nil, fmt.Errorf("lexicon: spelling %q maps to both %d and %d", w, prev, m.Month)
			}
			l.Months[w] = time.Month(m.Month)
		}
	}
	if len(seen) != 12 {
		return nil, fmt.Errorf("lexicon: expected 12 months, got %d", len(seen))
	}

	words := make([]string, 0, len(l.Months))
	for w := range l.Months {
		words = append(words, w)
	}
	// longest first so "марта" wins over "мар" in the alternation
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	l.MonthAlt = strings.Join(quoted, "|")

	for name, stems := range raw.Keywords {
		g := make(Group, 0, len(stems))
		for _, s := range stems {
			if s = fold(s); s != "" {
				g = append(g, s)
			}
		}
		l.Keywords[name] = g
	}
	for _, name := range requiredGroups {
		if len(l.Keywords[name]) == 0 {
			return nil, fmt.Errorf("lexicon: keyword group %q is missing or empty", name)
		}
	}

	return l, nil
}

// Group returns the named keyword group; unknown names yield an empty group
func (l *Lexicon) Group(name string) Group { return l.Keywords[name] }

// Month resolves a spelling with an optional trailing dot
func (l *Lexicon) Month(word string) (time.Month, bool) {
	m, ok := l.Months[fold(strings.TrimSuffix(word, "."))]
	return m, ok
}

// fold matches what the normalizer does to input text
func fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "ё", "е")
}
