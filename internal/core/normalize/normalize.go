// Package normalize folds a raw question into the canonical text the
// intent patterns and extractors match against.
//
// Stages, in order: invalid UTF-8 bytes are dropped, NFKC composes and
// replaces no-break spaces, case is folded, combining marks and format
// characters go, fullwidth forms narrow, ё becomes е, controls become
// spaces, and whitespace runs collapse to one space.
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is safe for concurrent use
type Normalizer struct {
	chains sync.Pool
}

func New() *Normalizer {
	n := &Normalizer{}
	n.chains.New = func() any { return foldChain() }
	return n
}

func foldChain() transform.Transformer {
	dropped := runes.In(unicode.Mn)
	format := runes.In(unicode.Cf)
	return transform.Chain(
		norm.NFKC,
		cases.Fold(),
		runes.Remove(runes.Predicate(func(r rune) bool { return dropped.Contains(r) || format.Contains(r) })),
		width.Fold,
		runes.Map(func(r rune) rune {
			if r == 'ё' {
				return 'е'
			}
			if unicode.IsControl(r) {
				return ' '
			}
			return r
		}),
	)
}

// Normalize returns the canonical form of s
func (n *Normalizer) Normalize(s string) string {
	s = strings.ToValidUTF8(s, "")
	if s == "" {
		return ""
	}

	t := n.chains.Get().(transform.Transformer)
	defer n.chains.Put(t)
	t.Reset()

	out, _, err := transform.String(t, s)
	if err != nil {
		out = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(out), " ")
}

var shared = New()

// String normalizes s with a package level Normalizer
func String(s string) string { return shared.Normalize(s) }
