// Package repo writes dataset records into postgres
package repo

import (
	"context"
	_ "embed"
	"strconv"
	"strings"

	"videobot/internal/modkit/repokit"
	"videobot/internal/platform/store"
	"videobot/internal/services/dataset/domain"
)

// MaxParams is the postgres limit on bind parameters per statement
const MaxParams = 65535

//go:embed schema.sql
var schemaSQL string

// Schema returns the DDL for videos, video_snapshots and their indexes
func Schema() string { return schemaSQL }

// Repo is the write surface for the loader
type Repo interface {
	ApplySchema(ctx context.Context) error
	// InsertVideos and InsertSnapshots skip ids already present and return rows written
	InsertVideos(ctx context.Context, vs []domain.Video) (int64, error)
	InsertSnapshots(ctx context.Context, ss []domain.Snapshot) (int64, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

var (
	videoCols = []string{
		"id", "creator_id", "video_created_at",
		"views_count", "likes_count", "comments_count", "reports_count",
		"created_at", "updated_at",
	}
	snapshotCols = []string{
		"id", "video_id",
		"views_count", "likes_count", "comments_count", "reports_count",
		"delta_views_count", "delta_likes_count", "delta_comments_count", "delta_reports_count",
		"created_at", "updated_at",
	}
)

func (r *queries) ApplySchema(ctx context.Context) error {
	// no args: simple protocol, so the whole script runs in one round trip
	_, err := store.Exec(ctx, r.q, schemaSQL)
	return err
}

func (r *queries) InsertVideos(ctx context.Context, vs []domain.Video) (int64, error) {
	return insertChunked(ctx, r.q, "videos", videoCols, len(vs), func(i int, args []any) []any {
		v := vs[i]
		return append(args,
			v.ID, v.CreatorID, v.VideoCreatedAt.Time,
			v.ViewsCount, v.LikesCount, v.CommentsCount, v.ReportsCount,
			v.CreatedAt.Time, v.UpdatedAt.Time,
		)
	})
}

func (r *queries) InsertSnapshots(ctx context.Context, ss []domain.Snapshot) (int64, error) {
	return insertChunked(ctx, r.q, "video_snapshots", snapshotCols, len(ss), func(i int, args []any) []any {
		s := ss[i]
		return append(args,
			s.ID, s.VideoID,
			s.ViewsCount, s.LikesCount, s.CommentsCount, s.ReportsCount,
			s.DeltaViewsCount, s.DeltaLikesCount, s.DeltaCommentsCount, s.DeltaReportsCount,
			s.CreatedAt.Time, s.UpdatedAt.Time,
		)
	})
}

// insertChunked writes n rows in as few statements as MaxParams allows
func insertChunked(ctx context.Context, q repokit.Queryer, table string, cols []string, n int, row func(i int, args []any) []any) (int64, error) {
	per := MaxParams / len(cols)
	var total int64
	for start := 0; start < n; start += per {
		end := min(start+per, n)
		args := make([]any, 0, (end-start)*len(cols))
		for i := start; i < end; i++ {
			args = row(i, args)
		}
		tag, err := store.Exec(ctx, q, InsertSQL(table, cols, end-start), args...)
		if err != nil {
			return total, err
		}
		total += tag.RowsAffected()
	}
	return total, nil
}

// InsertSQL renders a multi row INSERT ... ON CONFLICT (id) DO NOTHING for rows rows
func InsertSQL(table string, cols []string, rows int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(") VALUES ")
	n := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		for c := range cols {
			if c > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			n++
		}
		b.WriteByte(')')
	}
	b.WriteString(" ON CONFLICT (id) DO NOTHING")
	return b.String()
}
