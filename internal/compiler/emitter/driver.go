package emitter

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pld-lang/pld/internal/compiler/resolver"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Driver schedules one or more language Generators against a resolved
// resolver.Context in parallel, grounded on the teacher's
// cache.CompilationCoordinator batch-parallel shape but built on
// errgroup.Group rather than a raw sync.WaitGroup + mutex-protected map,
// because a failing generator here must keep siblings that have not
// started from running and surface its error as the run's single error —
// the teacher's coordinator never needed that
// because its batches can't fail per-generator.
type Driver struct {
	Logger *zap.Logger
}

// NewDriver returns a Driver that logs to logger, or to zap.NewNop() if
// logger is nil — the same fallback the teacher's LSP server uses when
// development logging can't be constructed.
func NewDriver(logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{Logger: logger}
}

// Run drives every (generator, options) pair to completion. Every run is
// tagged with a fresh correlation id so a CLI operator or LSP client can
// match every structured log line — including ones the generators
// themselves emit, if they're given the same logger — back to a single
// `generate` invocation. After the first failure, generators that have
// not started yet are skipped (ones already running finish), and Run
// returns that first error alone; callers that want partial
// results should inspect the Sink they supplied rather than relying on
// the error value.
func (d *Driver) Run(ctx context.Context, rc *resolver.Context, jobs []Job) error {
	runID := uuid.New().String()
	logger := d.Logger.With(zap.String("run_id", runID), zap.Int("generators", len(jobs)))
	logger.Info("emitter run starting")

	g, gctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			start := logger.With(zap.String("generator", job.Generator.Name()), zap.String("language", job.Options.Language))
			start.Info("generator starting")
			if err := job.Generator.Emit(rc, job.Options, job.Sink); err != nil {
				start.Error("generator failed", zap.Error(err))
				return fmt.Errorf("generator %s: %w", job.Generator.Name(), err)
			}
			start.Info("generator finished")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("emitter run failed", zap.Error(err))
		return err
	}
	logger.Info("emitter run finished")
	return nil
}

// Job pairs one Generator with the Options and Sink it should run
// against; a single Driver.Run call can mix languages writing to the
// filesystem with languages writing to an in-memory sink in the same
// invocation (e.g. one real `--targets client` pass plus an in-memory
// `--targets types` pass consumed by a macro-style host).
type Job struct {
	Generator Generator
	Options   Options
	Sink      Sink
}
