package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"sync"

	"github.com/hammamikhairi/deliciously/internal/admin"
	"github.com/hammamikhairi/deliciously/internal/app"
	"github.com/hammamikhairi/deliciously/internal/blob"
	"github.com/hammamikhairi/deliciously/internal/config"
	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/export"
	"github.com/hammamikhairi/deliciously/internal/logger"
	"github.com/hammamikhairi/deliciously/internal/metrics"
	"github.com/hammamikhairi/deliciously/internal/recipe"
	"github.com/hammamikhairi/deliciously/internal/router"
	"github.com/hammamikhairi/deliciously/internal/storage"
)

// runtime holds every wired dependency of one process.
type runtime struct {
	log        *logger.Logger
	kv         domain.KeyValueStore
	blobs      blob.Store
	metrics    *metrics.Metrics
	dispatcher *export.Dispatcher
	exports    *exportOutcome
	app        *app.App
}

// exportOutcome remembers the most recent failed export job so one-shot
// commands can exit non-zero.
type exportOutcome struct {
	mu  sync.Mutex
	err error
}

func (o *exportOutcome) observe(kind string, err error) {
	if err == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.err = fmt.Errorf("%s export: %w", kind, err)
}

// Err returns the last recorded failure, if any.
func (o *exportOutcome) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// newLogger writes to a rotated file by default so the terminal UI stays
// clean.
func newLogger(cfg config.LogConfig) *logger.Logger {
	level := logger.ParseLevel(cfg.Level)
	if cfg.File == "" || cfg.File == "stderr" {
		return logger.New(level, os.Stderr)
	}
	if dir := filepath.Dir(cfg.File); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not create log dir %s: %v (falling back to stderr)\n", dir, err)
			return logger.New(level, os.Stderr)
		}
	}
	return logger.NewRotating(level, cfg.File)
}

// wire builds the catalog from cfg. notifier receives export outcomes.
// The caller must call close.
func wire(ctx context.Context, cfg config.Config, notifier func(*logger.Logger) domain.Notifier) (*runtime, error) {
	log := newLogger(cfg.Log)

	// Third-party packages that use the standard logger go to the
	// discard sink at LevelOff and to stderr otherwise.
	if log.GetLevel() == logger.LevelOff {
		stdlog.SetOutput(io.Discard)
	}

	if dir := filepath.Dir(cfg.Storage.Path); cfg.Storage.Driver != string(storage.DriverMemory) && dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	kv, err := storage.Open(storage.Driver(cfg.Storage.Driver), cfg.Storage.Path, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	blobs, err := blob.Open(ctx, blob.Config{
		Driver: blob.Driver(cfg.Blob.Driver),
		Root:   cfg.Blob.Root,
		S3: blob.S3Config{
			Region:          cfg.Blob.S3.Region,
			Bucket:          cfg.Blob.S3.Bucket,
			Endpoint:        cfg.Blob.S3.Endpoint,
			AccessKeyID:     cfg.Blob.S3.AccessKeyID,
			SecretAccessKey: cfg.Blob.S3.SecretAccessKey,
			PathStyle:       cfg.Blob.S3.PathStyle,
		},
	})
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("open export store: %w", err)
	}

	m := metrics.New()
	outcome := &exportOutcome{}
	adapter := export.NewAdapter(export.NewPDFExporter(), blobs, log)
	dispatcher, err := export.NewDispatcher(adapter, notifier(log), log,
		export.WithPoolSize(cfg.Export.PoolSize),
		export.WithObserver(func(kind string, err error) {
			m.ObserveExport(kind, err)
			outcome.observe(kind, err)
		}),
	)
	if err != nil {
		kv.Close()
		return nil, err
	}

	records := storage.NewRecords(kv)
	a := app.New(
		recipe.New(records, log),
		admin.NewGate(records, log),
		router.New(cfg.Route),
		dispatcher,
		log,
		app.WithMetrics(m),
	)
	a.Load(ctx)

	log.Info("catalog ready (storage=%s, exports=%s)", cfg.Storage.Driver, blobs.Driver())
	return &runtime{
		log:        log,
		kv:         kv,
		blobs:      blobs,
		metrics:    m,
		dispatcher: dispatcher,
		exports:    outcome,
		app:        a,
	}, nil
}

// close waits for pending exports and releases storage.
func (r *runtime) close() {
	r.app.Close()
	r.dispatcher.Close()
	if err := r.kv.Close(); err != nil {
		r.log.Error("closing storage: %v", err)
	}
	_ = r.log.Sync()
}
