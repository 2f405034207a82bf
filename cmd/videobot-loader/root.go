package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"videobot/internal/core/version"
	"videobot/internal/platform/config"
	"videobot/internal/platform/logger"
	"videobot/internal/platform/store"
	"videobot/internal/services/dataset/domain"
	"videobot/internal/services/dataset/repo"
	"videobot/internal/services/dataset/service"

	"github.com/spf13/cobra"
)

const serviceName = "videobot-loader"

// loader is the part of the dataset service the CLI drives
type loader interface {
	EnsureSchema(ctx context.Context) error
	LoadFile(ctx context.Context, r io.Reader) (domain.Report, error)
}

// app carries the seams the commands run against
type app struct {
	root config.Conf
	// open connects to dsn (empty means resolve from env) and returns a closer
	open func(ctx context.Context, dsn string, batch int) (loader, func(), error)
}

func defaultApp() *app {
	root := config.New()
	return &app{
		root: root,
		open: func(ctx context.Context, dsn string, batch int) (loader, func(), error) {
			cfg := store.ConfigFromEnv(serviceName, root)
			if dsn != "" {
				cfg.PG.URL = dsn
			}
			st, err := store.Open(ctx, cfg, store.WithLogger(*logger.Get()))
			if err != nil {
				return nil, nil, err
			}
			closer := func() {
				if err := st.Close(context.Background()); err != nil {
					logger.Get().Error().Err(err).Msg("failed to close store")
				}
			}
			return service.New(st.PG, repo.NewPG(), service.Config{BatchSize: batch}), closer, nil
		},
	}
}

type loadFlags struct {
	file       string
	dsn        string
	batch      int
	initSchema bool
}

func newRootCmd(a *app) *cobra.Command {
	var f loadFlags

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Load the videos dataset into postgres",
		Version:       version.Info(serviceName).String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd.Context(), a, f, cmd.OutOrStdout())
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.Flags().StringVar(&f.file, "file", "", "Path to the dataset JSON ({\"videos\": [...]} or [...])")
	root.Flags().StringVar(&f.dsn, "dsn", "", "Postgres DSN; defaults to SERVICE_PGSQL_DBURL and friends")
	root.Flags().IntVar(&f.batch, "batch", service.DefaultBatchSize, "Videos per transaction")
	root.Flags().BoolVar(&f.initSchema, "init-schema", false, "Create tables and indexes before loading")
	_ = root.MarkFlagRequired("file")

	root.AddCommand(newCompileCmd(a))
	return root
}

func runLoad(ctx context.Context, a *app, f loadFlags, out io.Writer) error {
	if f.batch <= 0 {
		return errors.New("--batch must be positive")
	}
	fh, err := os.Open(f.file)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer fh.Close()

	l, closeStore, err := a.open(ctx, f.dsn, f.batch)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer closeStore()

	if f.initSchema {
		if err := l.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	rep, err := l.LoadFile(ctx, fh)
	// committed batches stay committed, so report them even on failure
	fmt.Fprintf(out, "videos %d/%d, snapshots %d/%d inserted in %d batches\n",
		rep.VideosInserted, rep.VideosAttempted,
		rep.SnapshotsInserted, rep.SnapshotsAttempted, rep.Batches)
	return err
}
