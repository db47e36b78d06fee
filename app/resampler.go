package app

import (
	"context"

	"github.com/montanaflynn/stats"

	"gostream/internal/errors"
	"gostream/internal/sampler"
)

// Statistic reduces one resample to a number
type Statistic func(sample []float64) (float64, error)

// MeanStatistic is the arithmetic mean of a resample
func MeanStatistic(sample []float64) (float64, error) {
	return stats.Mean(sample)
}

// BootstrapConfig configures a bootstrap run
type BootstrapConfig struct {
	Replicates int     // Number of resamples (default: 1000)
	Workers    int     // Number of streams the replicates are spread over (default: 4)
	Fraction   float64 // Resample size relative to the data (default: 1.0)
	Confidence float64 // Two-sided interval coverage (default: 0.95)
}

// BootstrapResult summarises the bootstrap distribution of a statistic
type BootstrapResult struct {
	RunID     string
	Estimates []float64
	Mean      float64
	StdErr    float64
	Lower     float64
	Upper     float64
}

// Resampler draws bootstrap resamples on independent streams. Replicate k
// always runs on stream k mod Workers, after the lower-numbered replicates of
// that stream, and writes only slot k of the result. A given root seed and
// worker count therefore give the same estimates whatever the concurrency.
type Resampler struct {
	runner *Runner
	config BootstrapConfig
}

// NewResampler creates a resampler on top of a runner
func NewResampler(runner *Runner, config BootstrapConfig) *Resampler {
	if config.Replicates == 0 {
		config.Replicates = 1000
	}
	if config.Workers == 0 {
		config.Workers = 4
	}
	if config.Workers > config.Replicates {
		config.Workers = config.Replicates
	}
	if config.Fraction == 0 {
		config.Fraction = 1.0
	}
	if config.Confidence == 0 {
		config.Confidence = 0.95
	}
	return &Resampler{runner: runner, config: config}
}

// Bootstrap evaluates stat on resamples of data drawn with replacement
func (r *Resampler) Bootstrap(ctx context.Context, data []float64, stat Statistic) (*BootstrapResult, error) {
	if len(data) == 0 {
		return nil, errors.InvalidInput("bootstrap needs data")
	}
	if r.config.Replicates < 2 {
		return nil, errors.InvalidInput("bootstrap needs at least 2 replicates")
	}
	size := int(float64(len(data)) * r.config.Fraction)
	if size <= 0 {
		return nil, errors.InvalidInput("bootstrap resample size is zero")
	}

	estimates := make([]float64, r.config.Replicates)
	workers := r.config.Workers
	report, err := r.runner.Run(ctx, workers, func(ctx context.Context, worker int, s *sampler.Sampler) error {
		for k := worker; k < len(estimates); k += workers {
			if err := ctx.Err(); err != nil {
				return err
			}
			value, err := stat(Resample(s, data, size))
			if err != nil {
				return errors.Wrapf(err, "replicate %d", k)
			}
			estimates[k] = value
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "bootstrap")
	}

	mean, err := stats.Mean(estimates)
	if err != nil {
		return nil, errors.Wrap(err, "bootstrap mean")
	}
	stdErr, err := stats.StandardDeviationSample(estimates)
	if err != nil {
		return nil, errors.Wrap(err, "bootstrap standard error")
	}
	tail := (1 - r.config.Confidence) / 2 * 100
	lower, err := stats.Percentile(estimates, tail)
	if err != nil {
		return nil, errors.Wrap(err, "bootstrap lower bound")
	}
	upper, err := stats.Percentile(estimates, 100-tail)
	if err != nil {
		return nil, errors.Wrap(err, "bootstrap upper bound")
	}

	return &BootstrapResult{
		RunID:     report.RunID,
		Estimates: estimates,
		Mean:      mean,
		StdErr:    stdErr,
		Lower:     lower,
		Upper:     upper,
	}, nil
}

// Resample draws size elements of data with replacement
func Resample(s *sampler.Sampler, data []float64, size int) []float64 {
	out := make([]float64, size)
	for i := range out {
		out[i] = data[sampler.RandRange(s, 0, len(data))]
	}
	return out
}
