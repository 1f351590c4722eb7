package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/siteboard/internal/server"
	"github.com/sells-group/siteboard/internal/store"
)

var (
	servePort     int
	serveManifest string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := buildStore(serveManifest)
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           server.New(cfg.Server, st).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			zap.L().Info("starting dashboard server",
				zap.Int("port", port),
				zap.Int("records", st.Len()),
			)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return eris.Wrap(err, "server listen")
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			zap.L().Info("shutting down dashboard server")
			return srv.Shutdown(cmd.Context())
		})

		return g.Wait()
	},
}

// buildStore generates records from config, or seeds from a manifest when
// one is given.
func buildStore(manifestPath string) (*store.Store, error) {
	st := store.New(store.Config{Count: cfg.Store.Count, Seed: cfg.Store.Seed})
	if manifestPath == "" {
		return st, nil
	}

	m, err := store.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	records, err := m.LoadRecords()
	if err != nil {
		return nil, err
	}
	if err := st.Replace(records); err != nil {
		return nil, err
	}
	return st, nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveManifest, "manifest", "", "seed manifest instead of generated records")
	rootCmd.AddCommand(serveCmd)
}
