package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// creator ids are 32 hex chars; the dashed UUID spelling is accepted and canonicalized
var reCreatorID = regexp.MustCompile(
	`(?i)(?:^|[^0-9a-z_])([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}|[0-9a-f]{32})(?:$|[^0-9a-z_])`,
)

// CreatorID returns the first creator identifier in text, lower-cased with dashes removed
func CreatorID(text string) Result[string] {
	m := reCreatorID.FindStringSubmatchIndex(text)
	if m == nil {
		return notFound[string]()
	}
	start, end := m[2], m[3]
	u, err := uuid.Parse(text[start:end])
	if err != nil {
		return invalid[string](start, end)
	}
	return found(strings.ReplaceAll(u.String(), "-", ""), start, end)
}

// digits with optional space or underscore thousands grouping, e.g. 10 000 or 1_000_000
var reThreshold = regexp.MustCompile(`\d+(?:[ _]\d{3})*`)

// ThresholdStrict returns the first grouped integer in text
// an empty digit run is absence; overflow is Invalid
func ThresholdStrict(text string) Result[int64] {
	loc := reThreshold.FindStringIndex(text)
	if loc == nil {
		return notFound[int64]()
	}
	raw := strings.NewReplacer(" ", "", "_", "").Replace(text[loc[0]:loc[1]])
	if raw == "" {
		return notFound[int64]()
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return invalid[int64](loc[0], loc[1])
	}
	return found(n, loc[0], loc[1])
}

// Threshold is ThresholdStrict with a caller supplied default when no numeral is present
// an Invalid numeral stays Invalid and does not fall back to def
func Threshold(text string, def int64) Result[int64] {
	r := ThresholdStrict(text)
	if r.Reason == NotFound {
		return Result[int64]{Value: def, Reason: Found, Span: Span{Start: -1, End: -1}}
	}
	return r
}
