package app

import (
	"gonum.org/v1/gonum/stat/distuv"

	"gostream/internal/sampler"
	"gostream/internal/source"
)

// Distributions draws from continuous and discrete distributions using one
// stream as the randomness source for gonum's distuv.
type Distributions struct {
	src *streamSource
}

// NewDistributions samples from the current stream of src. Reseeding the
// underlying source (distuv never does it on its own) restarts it through a
// perservative spacing source of the same family.
func NewDistributions(src source.Source) *Distributions {
	family := src.Family().Name
	return &Distributions{src: &streamSource{
		s: src.Generator(),
		reseed: func(seed uint64) *sampler.Sampler {
			root, _, err := source.Open(source.Options{
				Family:       family,
				Policy:       source.PolicySpacing,
				Perservative: true,
				Seed:         &seed,
			})
			if err != nil {
				panic(err)
			}
			return root.Generator()
		},
	}}
}

// Normal draws from N(mu, sigma^2)
func (d *Distributions) Normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: d.src}.Rand()
}

// Exponential draws from an exponential distribution with the given rate
func (d *Distributions) Exponential(rate float64) float64 {
	return distuv.Exponential{Rate: rate, Src: d.src}.Rand()
}

// Uniform draws from U(min, max)
func (d *Distributions) Uniform(min, max float64) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: d.src}.Rand()
}

// Poisson draws a count with mean lambda
func (d *Distributions) Poisson(lambda float64) float64 {
	return distuv.Poisson{Lambda: lambda, Src: d.src}.Rand()
}

// NormalSlice fills n draws from N(mu, sigma^2)
func (d *Distributions) NormalSlice(n int, mu, sigma float64) []float64 {
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: d.src}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

// streamSource satisfies the source interfaces gonum has used across
// versions: Uint64 alone, or Uint64 with Seed(uint64).
type streamSource struct {
	s      *sampler.Sampler
	reseed func(uint64) *sampler.Sampler
}

func (s *streamSource) Uint64() uint64 { return s.s.Uint64() }

func (s *streamSource) Seed(seed uint64) { s.s = s.reseed(seed) }
