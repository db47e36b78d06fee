package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"gostream/internal"
	"gostream/internal/errors"
	"gostream/internal/sampler"
	"gostream/internal/source"
)

// Job is the work one worker does with its own stream.
type Job func(ctx context.Context, worker int, s *sampler.Sampler) error

// StreamInfo records which stream a worker received.
type StreamInfo struct {
	Worker int
	// Index is the tree index for sequence splitting sources, 0 otherwise.
	Index uint64
}

// RunReport describes a finished run
type RunReport struct {
	RunID    string
	Family   string
	Workers  int
	Streams  []StreamInfo
	Duration time.Duration
}

// Runner fans pre-split streams out to a bounded pool of workers. Worker i
// always receives the i-th stream derived from the root, so results do not
// depend on scheduling.
type Runner struct {
	root        source.Source
	concurrency int64
	logger      *internal.Logger
}

// NewRunner creates a runner splitting its streams off root
func NewRunner(root source.Source, concurrency int, logger *internal.Logger) *Runner {
	if concurrency <= 0 {
		concurrency = 1
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Runner{
		root:        root,
		concurrency: int64(concurrency),
		logger:      logger.Named("runner"),
	}
}

// Fan derives n sources from root, leaving root itself with the caller.
//
// Spacing sources are chained, each split off the previous one: a
// perservative spacing source returns the same child on every split, so
// splitting the root repeatedly would hand out one stream n times. Sequence
// splitting sources are split breadth first, which keeps the tree shallow;
// the number of jumps a split costs grows with the tree index.
func Fan(root source.Source, n int) []source.Source {
	if n <= 0 {
		return nil
	}
	out := make([]source.Source, 0, n)
	out = append(out, root.NewSource())

	if _, indexed := root.(source.TreeIndexer); !indexed {
		for len(out) < n {
			out = append(out, out[len(out)-1].NewSource())
		}
		return out
	}

	for len(out) < n {
		level := len(out)
		for i := 0; i < level && len(out) < n; i++ {
			out = append(out, out[i].NewSource())
		}
	}
	return out
}

// Run splits one stream per worker, then starts the workers. The first job
// error cancels the remaining workers and is returned.
func (r *Runner) Run(ctx context.Context, workers int, job Job) (*RunReport, error) {
	if workers <= 0 {
		return nil, errors.InvalidInput("worker count must be positive")
	}

	report := &RunReport{
		RunID:   uuid.NewString(),
		Family:  r.root.Family().Name,
		Workers: workers,
		Streams: make([]StreamInfo, workers),
	}
	start := time.Now()

	// All splitting happens here, before any worker samples.
	streams := Fan(r.root, workers)
	samplers := make([]*sampler.Sampler, workers)
	for i, src := range streams {
		report.Streams[i] = StreamInfo{Worker: i}
		if ix, ok := src.(source.TreeIndexer); ok {
			report.Streams[i].Index = ix.Index()
		}
		samplers[i] = src.Generator()
		r.logger.Debug("run %s: worker %d stream index=%d", report.RunID, i, report.Streams[i].Index)
	}

	r.logger.Info("run %s: starting %d workers (concurrency %d, family %s)",
		report.RunID, workers, r.concurrency, report.Family)

	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(r.concurrency)
	for i := range samplers {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		worker, s := i, samplers[i]
		g.Go(func() error {
			defer sem.Release(1)
			if err := job(gctx, worker, s); err != nil {
				return fmt.Errorf("worker %d: %w", worker, err)
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	report.Duration = time.Since(start)
	if err != nil {
		r.logger.Error("run %s failed after %s: %v", report.RunID, report.Duration, err)
		return report, errors.Wrapf(err, "run %s", report.RunID)
	}

	r.logger.Info("run %s: completed in %s", report.RunID, report.Duration)
	return report, nil
}
