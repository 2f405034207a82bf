package querycompiler

import (
	"videobot/internal/core/extract"
	"videobot/internal/core/lexicon"
)

// priority is the mandatory evaluation order, most constrained first
func (c *Compiler) priority() []Rule {
	return []Rule{
		{
			Intent:   IntentCreatorViewGrowth,
			Match:    c.all(c.scoped, c.has(lexicon.Views), c.has(lexicon.Growth)),
			Requires: []ParamKind{ParamCreatorID, ParamDate, ParamTimeRange},
			Template: TplCreatorViewGrowth,
		},
		{
			Intent:   IntentNegativeSnapshots,
			Match:    c.all(c.has(lexicon.Snapshot), c.has(lexicon.Negative), c.has(lexicon.Views)),
			Template: TplNegativeSnapshots,
		},
		{
			Intent:   IntentSnapshotCount,
			Match:    c.all(c.has(lexicon.Snapshot), c.has(lexicon.Stats)),
			Template: TplSnapshotCount,
		},
		{
			Intent: IntentTotalVideos,
			Match: c.all(
				c.has(lexicon.Count), c.has(lexicon.Video), c.has(lexicon.System),
				not(c.scoped), not(c.has(lexicon.More)), not(c.has(lexicon.Views)),
			),
			Template: TplTotalVideos,
		},
		{
			// yields to the threshold and date range rules below when their parameters are present
			Intent: IntentCreatorVideos,
			Match: c.all(
				c.scoped, c.has(lexicon.Count), c.has(lexicon.Video),
				not(c.thresholdPhrase), not(c.hasRange),
			),
			Requires: []ParamKind{ParamCreatorID},
			Template: TplCreatorVideos,
		},
		{
			Intent:   IntentCreatorVideosAbove,
			Match:    c.all(c.scoped, c.has(lexicon.Video), c.has(lexicon.More), c.has(lexicon.Views)),
			Requires: []ParamKind{ParamCreatorID, ParamThreshold},
			Template: TplCreatorVideosAbove,
		},
		{
			Intent:   IntentVideosAbove,
			Match:    c.all(c.has(lexicon.Video), c.has(lexicon.More), c.has(lexicon.Views), not(c.scoped)),
			Requires: []ParamKind{ParamThresholdOrDefault},
			Template: TplVideosAbove,
		},
		{
			Intent: IntentPublicationBounds,
			Match: c.all(
				c.has(lexicon.Earliest), c.has(lexicon.Latest), c.has(lexicon.Date), c.has(lexicon.Publish),
			),
			Template: TplPublicationBounds,
		},
		{
			Intent:   IntentTopCreators,
			Match:    c.all(c.has(lexicon.Top), c.has(lexicon.Creator), c.has(lexicon.Video)),
			Template: TplTopCreators,
		},
		{
			Intent: IntentMostVideosCreator,
			Match: c.all(
				c.has(lexicon.Which), c.has(lexicon.Creator), c.has(lexicon.Most), c.has(lexicon.Video),
			),
			Template: TplMostVideosCreator,
		},
		{
			Intent:   IntentCreatorVideosInRange,
			Match:    c.all(c.scoped, c.has(lexicon.Video)),
			Requires: []ParamKind{ParamCreatorID, ParamDateRange},
			Template: TplCreatorVideosInRange,
		},
		{
			Intent:   IntentMonthViews,
			Match:    c.all(c.has(lexicon.Total), c.has(lexicon.Views), c.has(lexicon.Published)),
			Requires: []ParamKind{ParamMonthSpan},
			Template: TplMonthViews,
		},
	}
}

type predicate = func(u *Utterance) bool

func (c *Compiler) has(group string) predicate {
	g := c.lex.Group(group)
	return func(u *Utterance) bool { return g.In(u.Text) }
}

// scoped is creator phrasing: the creator keyword or a creator id in the text
func (c *Compiler) scoped(u *Utterance) bool {
	return u.Creator.OK() || c.lex.Group(lexicon.Creator).In(u.Text)
}

// thresholdPhrase is "больше N просмотров" with N extractable
func (c *Compiler) thresholdPhrase(u *Utterance) bool {
	return c.lex.Group(lexicon.More).In(u.Text) &&
		c.lex.Group(lexicon.Views).In(u.Text) &&
		extract.ThresholdStrict(u.Stripped).OK()
}

func (c *Compiler) hasRange(u *Utterance) bool { return c.cal.Range(u.Stripped).OK() }

func (c *Compiler) all(ps ...predicate) predicate {
	return func(u *Utterance) bool {
		for _, p := range ps {
			if !p(u) {
				return false
			}
		}
		return true
	}
}

func not(p predicate) predicate {
	return func(u *Utterance) bool { return !p(u) }
}
