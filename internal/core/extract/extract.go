// Package extract holds the pure lexical extractors the query compiler binds
// intent parameters with. Every extractor takes normalized text and returns a
// tagged Result; none of them panic or return errors
package extract

// Reason tells why a Result carries no value
type Reason uint8

const (
	// Found means Value is set
	Found Reason = iota
	// NotFound means nothing resembling the value class appeared in the text
	NotFound
	// Invalid means a candidate matched lexically but failed semantic validation
	Invalid
)

// String implements fmt.Stringer
func (r Reason) String() string {
	switch r {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Span is a byte range [Start,End) over the text the extractor ran on
type Span struct {
	Start, End int
}

// Result is the tagged optional every extractor returns
type Result[T any] struct {
	Value  T
	Reason Reason
	Span   Span
}

// OK reports whether the result carries a value
func (r Result[T]) OK() bool { return r.Reason == Found }

func found[T any](v T, start, end int) Result[T] {
	return Result[T]{Value: v, Reason: Found, Span: Span{Start: start, End: end}}
}

func notFound[T any]() Result[T] { return Result[T]{Reason: NotFound} }

func invalid[T any](start, end int) Result[T] {
	return Result[T]{Reason: Invalid, Span: Span{Start: start, End: end}}
}

// StripSpan removes sp from text and leaves a single space in its place so
// neighbouring tokens never merge
func StripSpan(text string, sp Span) string {
	if sp.Start < 0 || sp.End > len(text) || sp.Start >= sp.End {
		return text
	}
	return text[:sp.Start] + " " + text[sp.End:]
}

// word boundary for Cyrillic text; RE2 \b only knows ASCII word chars
const lb = `(?:^|[^\p{L}\p{N}_])`
