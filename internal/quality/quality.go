// Package quality runs quick statistical sanity checks on streams: moments
// and a chi-square goodness-of-fit test for uniform draws, and correlation
// between two streams. These are smoke tests for wiring mistakes (a stream
// reused where a split was intended, a broken reduction), not a substitute
// for a full test battery.
package quality

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"gostream/internal/errors"
	"gostream/internal/sampler"
)

// UniformityReport summarises a sample that should be uniform on [0, 1).
type UniformityReport struct {
	N         int
	Bins      int
	Mean      float64
	StdDev    float64
	ChiSquare float64
	PValue    float64
}

// Uniform reports whether the sample is consistent with uniformity at alpha.
func (r UniformityReport) Uniform(alpha float64) bool {
	return r.PValue >= alpha
}

// Uniformity bins values from [0, 1] into equal-width bins and tests the
// counts against a uniform expectation.
func Uniformity(values []float64, bins int) (UniformityReport, error) {
	if bins < 2 {
		return UniformityReport{}, errors.InvalidInput("uniformity test needs at least 2 bins")
	}
	if len(values) < 5*bins {
		return UniformityReport{}, errors.Newf(errors.CodeInvalidInput,
			"uniformity test needs at least %d values for %d bins, got %d", 5*bins, bins, len(values))
	}

	counts := make([]float64, bins)
	for _, v := range values {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return UniformityReport{}, errors.Newf(errors.CodeInvalidInput, "value %v outside [0, 1]", v)
		}
		b := int(v * float64(bins))
		if b == bins {
			b--
		}
		counts[b]++
	}

	expected := float64(len(values)) / float64(bins)
	chi := 0.0
	for _, c := range counts {
		d := c - expected
		chi += d * d / expected
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return UniformityReport{}, errors.Wrap(err, "mean")
	}
	sd, err := stats.StandardDeviation(values)
	if err != nil {
		return UniformityReport{}, errors.Wrap(err, "standard deviation")
	}

	chiDist := distuv.ChiSquared{K: float64(bins - 1)}
	return UniformityReport{
		N:         len(values),
		Bins:      bins,
		Mean:      mean,
		StdDev:    sd,
		ChiSquare: chi,
		PValue:    1 - chiDist.CDF(chi),
	}, nil
}

// CheckSampler draws n floats from s and runs Uniformity on them.
func CheckSampler(s *sampler.Sampler, n, bins int) (UniformityReport, error) {
	return Uniformity(sampler.Slice[float64](s, n), bins)
}

// Correlation is the Pearson correlation of two equally long samples.
func Correlation(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.Newf(errors.CodeInvalidInput, "samples differ in length: %d and %d", len(a), len(b))
	}
	r, err := stats.Pearson(a, b)
	if err != nil {
		return 0, errors.Wrap(err, "pearson correlation")
	}
	return r, nil
}

// StreamCorrelation draws n floats from each sampler and correlates them.
func StreamCorrelation(a, b *sampler.Sampler, n int) (float64, error) {
	return Correlation(sampler.Slice[float64](a, n), sampler.Slice[float64](b, n))
}

// Overlap counts positions at which two word sequences agree. Independent
// 64-bit streams essentially never agree.
func Overlap(a, b []uint64) int {
	n := min(len(a), len(b))
	same := 0
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			same++
		}
	}
	return same
}
