package querycompiler

import "strconv"

// Intent is one recognized class of analytic question
type Intent uint8

const (
	// IntentUnknown is the fallback when no rule confirms
	IntentUnknown Intent = iota
	// IntentCreatorViewGrowth sums snapshot view deltas for a creator on one date within a clock window
	IntentCreatorViewGrowth
	// IntentNegativeSnapshots counts snapshots whose view delta went below zero
	IntentNegativeSnapshots
	// IntentSnapshotCount counts all snapshots
	IntentSnapshotCount
	// IntentTotalVideos counts all videos
	IntentTotalVideos
	// IntentCreatorVideos counts one creator's videos
	IntentCreatorVideos
	// IntentCreatorVideosAbove counts one creator's videos above a view threshold
	IntentCreatorVideosAbove
	// IntentVideosAbove counts all videos above a view threshold
	IntentVideosAbove
	// IntentPublicationBounds returns "earliest latest" publication dates
	IntentPublicationBounds
	// IntentTopCreators returns the top 5 creators by video count, one per line
	IntentTopCreators
	// IntentMostVideosCreator returns the creator with the most videos and the count
	IntentMostVideosCreator
	// IntentCreatorVideosInRange counts one creator's videos published within an inclusive date range
	IntentCreatorVideosInRange
	// IntentMonthViews sums views of videos published in a month
	IntentMonthViews
)

var intentNames = [...]string{
	IntentUnknown:              "unknown",
	IntentCreatorViewGrowth:    "creator_view_growth",
	IntentNegativeSnapshots:    "negative_snapshots",
	IntentSnapshotCount:        "snapshot_count",
	IntentTotalVideos:          "total_videos",
	IntentCreatorVideos:        "creator_videos",
	IntentCreatorVideosAbove:   "creator_videos_above",
	IntentVideosAbove:          "videos_above",
	IntentPublicationBounds:    "publication_bounds",
	IntentTopCreators:          "top_creators",
	IntentMostVideosCreator:    "most_videos_creator",
	IntentCreatorVideosInRange: "creator_videos_in_range",
	IntentMonthViews:           "month_views",
}

// String implements fmt.Stringer
func (i Intent) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "intent(" + strconv.Itoa(int(i)) + ")"
}

// MarshalText lets intents serialize by name in logs and JSON
func (i Intent) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// ParamKind is a typed parameter class an intent requires
type ParamKind uint8

const (
	// ParamCreatorID binds one text arg
	ParamCreatorID ParamKind = iota + 1
	// ParamThreshold binds one integer arg and has no default
	ParamThreshold
	// ParamThresholdOrDefault binds one integer arg, falling back to the rule default
	ParamThresholdOrDefault
	// ParamDate binds one date arg
	ParamDate
	// ParamDateRange binds start and exclusive end
	ParamDateRange
	// ParamMonthSpan binds month start and next month start
	ParamMonthSpan
	// ParamTimeRange binds two time-of-day args
	ParamTimeRange
)

// Arity is the number of bind arguments the kind contributes
func (k ParamKind) Arity() int {
	switch k {
	case ParamDateRange, ParamMonthSpan, ParamTimeRange:
		return 2
	default:
		return 1
	}
}
