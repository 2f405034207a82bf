// Package service loads the dataset file into postgres in idempotent batches
package service

import (
	"context"
	"io"
	"time"

	"videobot/internal/modkit/repokit"
	perr "videobot/internal/platform/errors"
	"videobot/internal/platform/logger"
	"videobot/internal/services/dataset/domain"
	"videobot/internal/services/dataset/repo"
)

// DefaultBatchSize is how many videos go into one transaction
const DefaultBatchSize = 500

// Config for the loader
type Config struct {
	BatchSize int
}

// Service implements domain.LoaderPort
type Service struct {
	db     repokit.TxRunner
	writer repokit.TxRunner
	binder repokit.Binder[repo.Repo]
	cfg    Config
	log    *logger.Logger
}

// New constructs the loader service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config) *Service {
	if db == nil {
		panic("dataset.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("dataset.Service requires a non nil Repo binder")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Service{
		db: db,
		// bulk batches are replayable, so trade durability for speed
		writer: repokit.WithBeginHooks(db, repokit.SetLocal("synchronous_commit", "off")),
		binder: binder,
		cfg:    cfg,
		log:    logger.Named("dataset"),
	}
}

// EnsureSchema applies the embedded DDL; safe to run repeatedly
func (s *Service) EnsureSchema(ctx context.Context) error {
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		return repokit.MustBind(s.binder, q).ApplySchema(ctx)
	})
	return perr.FromPostgres(err, "apply schema")
}

// LoadFile decodes, validates and loads r
func (s *Service) LoadFile(ctx context.Context, r io.Reader) (domain.Report, error) {
	vs, err := Decode(r)
	if err != nil {
		return domain.Report{}, err
	}
	s.log.Info().Int("videos", len(vs)).Msg("dataset decoded")
	return s.Load(ctx, vs)
}

// Load validates every record, then writes batches of cfg.BatchSize videos
// each in its own transaction; the report covers the batches that committed
func (s *Service) Load(ctx context.Context, vs []domain.Video) (domain.Report, error) {
	var total domain.Report
	if err := Validate(vs); err != nil {
		return total, err
	}

	start := time.Now()
	for lo := 0; lo < len(vs); lo += s.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return total, perr.FromContext(err, "load cancelled")
		}
		hi := min(lo+s.cfg.BatchSize, len(vs))
		b, err := s.flush(ctx, vs[lo:hi])
		if err != nil {
			return total, perr.FromPostgresWithField(err, "load batch")
		}
		total.Add(b)
		s.log.Info().
			Int64("videos_attempted", total.VideosAttempted).
			Int64("snapshots_attempted", total.SnapshotsAttempted).
			Msg("batch committed")
	}

	s.log.Info().
		Int64("videos_attempted", total.VideosAttempted).
		Int64("videos_inserted", total.VideosInserted).
		Int64("snapshots_attempted", total.SnapshotsAttempted).
		Int64("snapshots_inserted", total.SnapshotsInserted).
		Int("batches", total.Batches).
		Dur("took", time.Since(start)).
		Msg("dataset loaded")
	return total, nil
}

func (s *Service) flush(ctx context.Context, vs []domain.Video) (domain.Report, error) {
	var snaps []domain.Snapshot
	for i := range vs {
		snaps = append(snaps, vs[i].Snapshots...)
	}
	rep := domain.Report{
		VideosAttempted:    int64(len(vs)),
		SnapshotsAttempted: int64(len(snaps)),
		Batches:            1,
	}

	err := s.writer.Tx(ctx, func(q repokit.Queryer) error {
		r := repokit.MustBind(s.binder, q)
		n, err := r.InsertVideos(ctx, vs)
		if err != nil {
			return err
		}
		rep.VideosInserted = n
		if len(snaps) == 0 {
			return nil
		}
		n, err = r.InsertSnapshots(ctx, snaps)
		rep.SnapshotsInserted = n
		return err
	})
	if err != nil {
		return domain.Report{}, err
	}
	return rep, nil
}
