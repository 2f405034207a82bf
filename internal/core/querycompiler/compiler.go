// Package querycompiler turns a Russian analytic question into one parameterized
// Postgres query that returns a single scalar.
//
// Intent selection is a declared priority list of rules. Each rule carries a
// predicate over normalized text, the parameter kinds it needs and the template
// it renders. The first rule whose predicate holds and whose parameters all
// extract wins; otherwise the zero fallback is returned. The compiler is pure:
// no I/O, no shared mutable state, safe for concurrent use.
package querycompiler

import (
	"fmt"
	"regexp"

	"videobot/internal/core/extract"
	"videobot/internal/core/lexicon"
	"videobot/internal/core/normalize"
)

// DefaultPublishedAtColumn is the videos column holding the publication timestamp
const DefaultPublishedAtColumn = "video_created_at"

// DefaultViewThreshold applies to system wide threshold questions without a number
const DefaultViewThreshold int64 = 100000

var reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config is fixed at construction
type Config struct {
	// PublishedAtColumn must be a plain SQL identifier
	PublishedAtColumn string
	// DefaultViewThreshold is bound when a system wide threshold question has no numeral
	DefaultViewThreshold int64
}

// DefaultConfig returns the stock schema settings
func DefaultConfig() Config {
	return Config{
		PublishedAtColumn:    DefaultPublishedAtColumn,
		DefaultViewThreshold: DefaultViewThreshold,
	}
}

// Compiled is the compiler output; SQL uses $1..$n and len(Args) == n
type Compiled struct {
	Intent Intent
	SQL    string
	Args   []any
}

// Utterance is the per call view every rule predicate and the binder see
type Utterance struct {
	// Text is the normalized utterance
	Text string
	// Stripped is Text with the creator id removed so its digits never read as numbers
	Stripped string
	// Creator is the identifier extraction result over Text
	Creator extract.Result[string]
}

// Rule is one row of the priority table
type Rule struct {
	Intent   Intent
	Match    func(u *Utterance) bool
	Requires []ParamKind
	Template TemplateKey
}

// Compiler holds the immutable rule and template tables
type Compiler struct {
	cfg   Config
	lex   *lexicon.Lexicon
	cal   *extract.Calendar
	norm  *normalize.Normalizer
	sql   map[TemplateKey]string
	rules []Rule
}

// New validates cfg and builds the rule and template tables
func New(cfg Config) (*Compiler, error) {
	if cfg.PublishedAtColumn == "" {
		cfg.PublishedAtColumn = DefaultPublishedAtColumn
	}
	if !reIdentifier.MatchString(cfg.PublishedAtColumn) {
		return nil, fmt.Errorf("querycompiler: published_at column %q is not a plain identifier", cfg.PublishedAtColumn)
	}
	if cfg.DefaultViewThreshold < 0 {
		return nil, fmt.Errorf("querycompiler: default view threshold must be non-negative, got %d", cfg.DefaultViewThreshold)
	}

	lex, err := lexicon.Load()
	if err != nil {
		return nil, err
	}

	c := &Compiler{
		cfg:  cfg,
		lex:  lex,
		cal:  extract.NewCalendar(lex),
		norm: normalize.New(),
		sql:  renderTemplates(cfg.PublishedAtColumn),
	}
	c.rules = c.priority()

	for _, r := range c.rules {
		sql, ok := c.sql[r.Template]
		if !ok {
			return nil, fmt.Errorf("querycompiler: rule %s references unknown template %q", r.Intent, r.Template)
		}
		want := 0
		for _, k := range r.Requires {
			want += k.Arity()
		}
		if got := Placeholders(sql); got != want {
			return nil, fmt.Errorf("querycompiler: template %q expects %d args, rule %s binds %d", r.Template, got, r.Intent, want)
		}
	}
	return c, nil
}

// MustNew is New for main wiring
func MustNew(cfg Config) *Compiler {
	c, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// Config returns the construction config
func (c *Compiler) Config() Config { return c.cfg }

// Priority lists intents in evaluation order
func (c *Compiler) Priority() []Intent {
	out := make([]Intent, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.Intent
	}
	return out
}

// Compile never fails; unrecognized text compiles to the zero fallback
func (c *Compiler) Compile(text string) Compiled {
	u := c.prepare(text)
	for _, r := range c.rules {
		if !r.Match(u) {
			continue
		}
		args, ok := c.bind(u, r.Requires)
		if !ok {
			continue
		}
		return Compiled{Intent: r.Intent, SQL: c.sql[r.Template], Args: args}
	}
	return Compiled{Intent: IntentUnknown, SQL: c.sql[TplZero]}
}

func (c *Compiler) prepare(text string) *Utterance {
	norm := c.norm.Normalize(text)
	u := &Utterance{Text: norm, Stripped: norm, Creator: extract.CreatorID(norm)}
	if u.Creator.OK() {
		u.Stripped = extract.StripSpan(norm, u.Creator.Span)
	}
	return u
}

// bind extracts args in the order the template placeholders expect
func (c *Compiler) bind(u *Utterance, kinds []ParamKind) ([]any, bool) {
	if len(kinds) == 0 {
		return nil, true
	}
	var args []any
	for _, k := range kinds {
		switch k {
		case ParamCreatorID:
			if !u.Creator.OK() {
				return nil, false
			}
			args = append(args, u.Creator.Value)
		case ParamThreshold:
			r := extract.ThresholdStrict(u.Stripped)
			if !r.OK() {
				return nil, false
			}
			args = append(args, r.Value)
		case ParamThresholdOrDefault:
			r := extract.Threshold(u.Stripped, c.cfg.DefaultViewThreshold)
			if !r.OK() {
				return nil, false
			}
			args = append(args, r.Value)
		case ParamDate:
			r := c.cal.Date(u.Stripped)
			if !r.OK() {
				return nil, false
			}
			args = append(args, r.Value)
		case ParamDateRange:
			r := c.cal.Range(u.Stripped)
			if !r.OK() {
				return nil, false
			}
			args = append(args, r.Value.Start, r.Value.End)
		case ParamMonthSpan:
			r := c.cal.MonthYear(u.Stripped)
			if !r.OK() {
				return nil, false
			}
			args = append(args, r.Value.Start, r.Value.End)
		case ParamTimeRange:
			r := extract.TimeOfDayRange(u.Stripped)
			if !r.OK() {
				return nil, false
			}
			args = append(args, r.Value.Start, r.Value.End)
		default:
			return nil, false
		}
	}
	return args, true
}
