// Package domain holds the dataset file records and the loader ports
package domain

import (
	"context"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Video is one record of the dataset file with its nested snapshots
type Video struct {
	ID             string     `json:"id" validate:"notblank,max=64"`
	CreatorID      string     `json:"creator_id" validate:"notblank,max=64"`
	VideoCreatedAt Timestamp  `json:"video_created_at" validate:"required"`
	ViewsCount     int64      `json:"views_count" validate:"gte=0"`
	LikesCount     int64      `json:"likes_count" validate:"gte=0"`
	CommentsCount  int64      `json:"comments_count" validate:"gte=0"`
	ReportsCount   int64      `json:"reports_count" validate:"gte=0"`
	CreatedAt      Timestamp  `json:"created_at" validate:"required"`
	UpdatedAt      Timestamp  `json:"updated_at" validate:"required"`
	Snapshots      []Snapshot `json:"snapshots" validate:"dive"`
}

// Snapshot is one hourly measurement; deltas may be negative
type Snapshot struct {
	ID                 string    `json:"id" validate:"notblank,max=64"`
	VideoID            string    `json:"video_id" validate:"notblank,max=64"`
	ViewsCount         int64     `json:"views_count" validate:"gte=0"`
	LikesCount         int64     `json:"likes_count" validate:"gte=0"`
	CommentsCount      int64     `json:"comments_count" validate:"gte=0"`
	ReportsCount       int64     `json:"reports_count" validate:"gte=0"`
	DeltaViewsCount    int64     `json:"delta_views_count"`
	DeltaLikesCount    int64     `json:"delta_likes_count"`
	DeltaCommentsCount int64     `json:"delta_comments_count"`
	DeltaReportsCount  int64     `json:"delta_reports_count"`
	CreatedAt          Timestamp `json:"created_at" validate:"required"`
	UpdatedAt          Timestamp `json:"updated_at" validate:"required"`
}

// timestampLayouts are tried in order; zone-less values are read as UTC
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Timestamp accepts RFC 3339 and the space separated postgres text form
type Timestamp struct{ time.Time }

// UnmarshalJSON parses any of timestampLayouts; null leaves the zero value
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	var firstErr error
	for _, layout := range timestampLayouts {
		v, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			t.Time = v
			return nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// MarshalJSON writes RFC 3339
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// Report counts what one load attempted and what the database kept
type Report struct {
	VideosAttempted    int64 `json:"videos_attempted"`
	VideosInserted     int64 `json:"videos_inserted"`
	SnapshotsAttempted int64 `json:"snapshots_attempted"`
	SnapshotsInserted  int64 `json:"snapshots_inserted"`
	Batches            int   `json:"batches"`
}

// Add folds b into r
func (r *Report) Add(b Report) {
	r.VideosAttempted += b.VideosAttempted
	r.VideosInserted += b.VideosInserted
	r.SnapshotsAttempted += b.SnapshotsAttempted
	r.SnapshotsInserted += b.SnapshotsInserted
	r.Batches += b.Batches
}

// LoaderPort loads a dataset file into postgres
type LoaderPort interface {
	EnsureSchema(ctx context.Context) error
	Load(ctx context.Context, videos []Video) (Report, error)
}
