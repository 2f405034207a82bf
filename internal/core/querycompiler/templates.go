package querycompiler

import (
	"regexp"
	"strconv"
	"strings"
)

// TemplateKey names one entry of the template table
type TemplateKey string

// template keys, one per intent plus the zero fallback
const (
	TplZero                  TemplateKey = "zero"
	TplCreatorViewGrowth     TemplateKey = "creator_view_growth"
	TplNegativeSnapshots     TemplateKey = "negative_snapshots"
	TplSnapshotCount         TemplateKey = "snapshot_count"
	TplTotalVideos           TemplateKey = "total_videos"
	TplCreatorVideos         TemplateKey = "creator_videos"
	TplCreatorVideosAbove    TemplateKey = "creator_videos_above"
	TplVideosAbove           TemplateKey = "videos_above"
	TplPublicationBounds     TemplateKey = "publication_bounds"
	TplTopCreators           TemplateKey = "top_creators"
	TplMostVideosCreator     TemplateKey = "most_videos_creator"
	TplCreatorVideosInRange  TemplateKey = "creator_videos_in_range"
	TplMonthViews            TemplateKey = "month_views"
	publishedAtPlaceholder               = "{published_at}"
)

// every template yields exactly one row with one non-null column
// {published_at} is replaced with the configured publication column at construction
var templateText = map[TemplateKey]string{
	TplZero: `SELECT 0::bigint`,

	TplCreatorViewGrowth: `SELECT COALESCE(SUM(s.delta_views_count), 0)::bigint
FROM video_snapshots s
JOIN videos v ON v.id = s.video_id
WHERE v.creator_id = $1
  AND s.created_at >= ($2::date + $3::time)
  AND s.created_at < ($2::date + $4::time)`,

	TplNegativeSnapshots: `SELECT COUNT(*)::bigint FROM video_snapshots WHERE delta_views_count < 0`,

	TplSnapshotCount: `SELECT COUNT(*)::bigint FROM video_snapshots`,

	TplTotalVideos: `SELECT COUNT(*)::bigint FROM videos`,

	TplCreatorVideos: `SELECT COUNT(*)::bigint FROM videos WHERE creator_id = $1`,

	TplCreatorVideosAbove: `SELECT COUNT(*)::bigint FROM videos WHERE creator_id = $1 AND views_count > $2`,

	TplVideosAbove: `SELECT COUNT(*)::bigint FROM videos WHERE views_count > $1`,

	TplPublicationBounds: `SELECT COALESCE(MIN({published_at})::date::text || ' ' || MAX({published_at})::date::text, '') FROM videos`,

	TplTopCreators: `SELECT COALESCE((
  SELECT string_agg(creator_id || ' ' || cnt::text, E'\n' ORDER BY cnt DESC, creator_id ASC)
  FROM (
    SELECT creator_id, COUNT(*)::bigint AS cnt
    FROM videos
    GROUP BY creator_id
    ORDER BY cnt DESC, creator_id ASC
    LIMIT 5
  ) s
), '')`,

	TplMostVideosCreator: `SELECT COALESCE((
  SELECT creator_id || ' ' || cnt::text
  FROM (
    SELECT creator_id, COUNT(*)::bigint AS cnt
    FROM videos
    GROUP BY creator_id
    ORDER BY cnt DESC, creator_id ASC
    LIMIT 1
  ) s
), '0')`,

	TplCreatorVideosInRange: `SELECT COUNT(*)::bigint FROM videos
WHERE creator_id = $1 AND {published_at} >= $2 AND {published_at} < $3`,

	TplMonthViews: `SELECT COALESCE(SUM(views_count), 0)::bigint FROM videos
WHERE {published_at} >= $1 AND {published_at} < $2`,
}

func renderTemplates(publishedAt string) map[TemplateKey]string {
	r := strings.NewReplacer(publishedAtPlaceholder, publishedAt)
	out := make(map[TemplateKey]string, len(templateText))
	for k, v := range templateText {
		out[k] = r.Replace(v)
	}
	return out
}

var rePlaceholder = regexp.MustCompile(`\$(\d+)`)

// Placeholders returns the highest $n referenced by sql, which is the arity it expects
func Placeholders(sql string) int {
	max := 0
	for _, m := range rePlaceholder.FindAllStringSubmatch(sql, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return max
}
