package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/praveenr-web/AutoJudge/internal/domain/port"
)

// Compile-time assertion that Store implements port.PipelineProvider.
var _ port.PipelineProvider = (*Store)(nil)

// LoadFunc loads both pipelines.
type LoadFunc func(ctx context.Context) (port.Pipelines, error)

// LoadRecorder is notified after every load attempt.
type LoadRecorder interface {
	RecordModelLoad(ctx context.Context, result string)
}

// Store is the process-wide holder of the loaded pipelines. The first call
// to Pipelines loads them; concurrent callers share that load. A failed
// load is not remembered, so the next call tries again. A successful load
// is kept for the lifetime of the Store.
type Store struct {
	load     LoadFunc
	logger   *slog.Logger
	recorder LoadRecorder
	group    singleflight.Group
	loaded   atomic.Pointer[port.Pipelines]
}

// NewStore creates a Store that reads the classifier and regressor
// artifacts from the given paths.
func NewStore(classifierPath, regressorPath string, logger *slog.Logger) *Store {
	return NewStoreWithLoader(FileLoader(classifierPath, regressorPath), logger)
}

// NewStoreWithLoader creates a Store around an arbitrary load function.
func NewStoreWithLoader(load LoadFunc, logger *slog.Logger) *Store {
	return &Store{
		load:   load,
		logger: logger,
	}
}

// SetRecorder attaches a recorder for load attempts.
func (s *Store) SetRecorder(r LoadRecorder) {
	s.recorder = r
}

// Pipelines returns the loaded pipelines, loading them if necessary.
func (s *Store) Pipelines(ctx context.Context) (port.Pipelines, error) {
	if p := s.loaded.Load(); p != nil {
		return *p, nil
	}

	v, err, _ := s.group.Do("pipelines", func() (interface{}, error) {
		if p := s.loaded.Load(); p != nil {
			return *p, nil
		}

		start := time.Now()
		p, err := s.load(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to load difficulty models", "error", err)
			s.record(ctx, "failure")
			return nil, err
		}
		if p.Classifier == nil || p.Regressor == nil {
			s.record(ctx, "failure")
			return nil, fmt.Errorf("loader returned incomplete pipelines")
		}

		s.loaded.Store(&p)
		s.logger.InfoContext(ctx, "difficulty models loaded",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		s.record(ctx, "success")
		return p, nil
	})
	if err != nil {
		return port.Pipelines{}, err
	}

	return v.(port.Pipelines), nil
}

// Load forces the pipelines to be loaded now.
func (s *Store) Load(ctx context.Context) error {
	_, err := s.Pipelines(ctx)
	return err
}

// Loaded reports whether the pipelines have been loaded.
func (s *Store) Loaded() bool {
	return s.loaded.Load() != nil
}

func (s *Store) record(ctx context.Context, result string) {
	if s.recorder != nil {
		s.recorder.RecordModelLoad(ctx, result)
	}
}

// FileLoader returns a LoadFunc that reads both artifacts from disk.
func FileLoader(classifierPath, regressorPath string) LoadFunc {
	return func(_ context.Context) (port.Pipelines, error) {
		clfArtifact, err := ReadArtifact(classifierPath)
		if err != nil {
			return port.Pipelines{}, fmt.Errorf("classifier artifact: %w", err)
		}
		clf, err := NewClassifier(clfArtifact)
		if err != nil {
			return port.Pipelines{}, fmt.Errorf("classifier artifact %s: %w", classifierPath, err)
		}

		regArtifact, err := ReadArtifact(regressorPath)
		if err != nil {
			return port.Pipelines{}, fmt.Errorf("regressor artifact: %w", err)
		}
		reg, err := NewRegressor(regArtifact)
		if err != nil {
			return port.Pipelines{}, fmt.Errorf("regressor artifact %s: %w", regressorPath, err)
		}

		return port.Pipelines{Classifier: clf, Regressor: reg}, nil
	}
}
