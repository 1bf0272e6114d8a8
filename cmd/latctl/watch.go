package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/polisai/seclib/pkg/lattice"
	"github.com/polisai/seclib/pkg/telemetry"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [lattice-file]",
		Short: "Re-validate a lattice declaration whenever it changes",
		Long: `Watches the declaration file and re-validates on every change. Each
validation pushes the declared edges through the proof gate, so grants are
audit-logged and, when metrics.address is configured, counted on a
Prometheus endpoint.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			metrics := telemetry.NewMetrics()
			observer := telemetry.Multi(metrics, telemetry.NewAuditLogger(logger))

			if cfg.Metrics.Address != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", metrics.Handler())
				srv := &http.Server{
					Addr:              cfg.Metrics.Address,
					Handler:           mux,
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("Metrics server failed", "error", err)
					}
				}()
				defer srv.Close()
				logger.Info("Serving crossing metrics", "address", cfg.Metrics.Address)
			}

			reload := func(path string) error {
				lat, err := lattice.LoadFile(path, lattice.WithObserver(observer))
				if err != nil {
					return err
				}
				if err := proveDeclaredEdges(lat); err != nil {
					return err
				}
				reportLattice(cmd.OutOrStdout(), lat)
				return nil
			}

			w, err := newLatticeWatcher(latticeFile(cfg, args), reload, logger)
			if err != nil {
				return err
			}
			defer w.Close()

			// Validate once up front so a broken file is reported immediately.
			if err := w.reloadFunc(w.path); err != nil {
				logger.Error("Initial validation failed", "error", err)
			}

			return w.Run(ctx)
		},
	}
}

// proveDeclaredEdges pushes every declared edge through the proof gate. It
// cannot fail for a lattice that Build accepted; it exists so each watch
// cycle emits one observable grant per edge the file actually authorizes.
func proveDeclaredEdges(lat *lattice.Lattice) error {
	for _, e := range lat.Edges() {
		if _, err := lat.Prove(e[0], e[1]); err != nil {
			return fmt.Errorf("declared edge %s >= %s failed the gate: %w", e[0], e[1], err)
		}
	}
	return nil
}

// latticeWatcher watches a lattice declaration file for changes and triggers
// re-validation callbacks.
type latticeWatcher struct {
	path         string
	watcher      *fsnotify.Watcher
	reloadFunc   func(string) error
	logger       *slog.Logger
	debounceTime time.Duration
}

// newLatticeWatcher creates the watcher and registers the watch. It watches
// the file's directory, not the file: editors typically write a temp file
// and rename it over the original, which drops a file-level watch.
func newLatticeWatcher(path string, reloadFunc func(string) error, logger *slog.Logger) (*latticeWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &latticeWatcher{
		path:         path,
		watcher:      watcher,
		reloadFunc:   reloadFunc,
		logger:       logger,
		debounceTime: 500 * time.Millisecond, // Debounce multiple rapid changes
	}, nil
}

// Run consumes watch events until the context is cancelled.
func (lw *latticeWatcher) Run(ctx context.Context) error {
	lw.logger.Info("Watching lattice file", "path", lw.path)

	var debounce *time.Timer
	var debounceC <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-lw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(lw.path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(lw.debounceTime)
			} else {
				debounce.Reset(lw.debounceTime)
			}
			debounceC = debounce.C

		case <-debounceC:
			debounceC = nil
			lw.logger.Info("Lattice file changed, re-validating", "path", lw.path)
			if err := lw.reloadFunc(lw.path); err != nil {
				lw.logger.Error("Validation failed", "path", lw.path, "error", err)
			}

		case err, ok := <-lw.watcher.Errors:
			if !ok {
				return nil
			}
			lw.logger.Error("Watcher error", "error", err)
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (lw *latticeWatcher) Close() error {
	return lw.watcher.Close()
}
