package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gostream/adapters/bitgen"
	"gostream/adapters/rng"
	"gostream/app"
	"gostream/internal"
	"gostream/internal/config"
	"gostream/internal/quality"
	"gostream/internal/random"
	"gostream/internal/sampler"
	"gostream/internal/source"
	"gostream/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// streamFlags override the environment configuration when set
type streamFlags struct {
	family       string
	policy       string
	seed         string
	perservative string
	workers      int
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	flags := &streamFlags{}
	rootCmd := &cobra.Command{
		Use:   "gostream-cli",
		Short: "Inspect reproducible random streams and their splitting trees",
		Long: `Inspect reproducible random streams built from one seed.

Configuration is read from the environment and may be overridden by flags:
- PRNG_FAMILY       generator family (` + strings.Join(bitgen.Names(), ", ") + `)
- PRNG_POLICY       spacing | splitting (default: splitting)
- PRNG_PERSERVATIVE true | false (default: true)
- PRNG_SEED         decimal or 0x-prefixed seed (default: non-deterministic)
- PRNG_WORKERS      number of worker streams (default: 4)
- LOG_LEVEL         ERROR | WARN | INFO | DEBUG | TRACE`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.family, "family", "", "Generator family")
	rootCmd.PersistentFlags().StringVar(&flags.policy, "policy", "", "Splitting policy: spacing|splitting")
	rootCmd.PersistentFlags().StringVar(&flags.seed, "seed", "", "Root seed")
	rootCmd.PersistentFlags().StringVar(&flags.perservative, "perservative", "", "Keep each source's sampler fixed across splits (true|false)")
	rootCmd.PersistentFlags().IntVar(&flags.workers, "workers", 0, "Number of worker streams")

	rootCmd.AddCommand(
		newSampleCmd(flags),
		newTreeCmd(flags),
		newCheckCmd(flags),
		newResampleCmd(flags),
		newFamiliesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig merges environment configuration with command line overrides
func loadConfig(flags *streamFlags) (*config.Config, *internal.Logger, error) {
	if flags.family != "" {
		os.Setenv("PRNG_FAMILY", flags.family)
	}
	if flags.policy != "" {
		os.Setenv("PRNG_POLICY", flags.policy)
	}
	if flags.seed != "" {
		os.Setenv("PRNG_SEED", flags.seed)
	}
	if flags.perservative != "" {
		os.Setenv("PRNG_PERSERVATIVE", flags.perservative)
	}
	if flags.workers > 0 {
		os.Setenv("PRNG_WORKERS", strconv.Itoa(flags.workers))
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, internal.NewLogger(cfg.Log.Level), nil
}

func openRoot(cfg *config.Config, logger *internal.Logger) (source.Source, error) {
	root, seed, err := source.Open(cfg.SourceOptions())
	if err != nil {
		return nil, err
	}
	logger.Info("root source: family=%s policy=%s perservative=%t seed=%d",
		cfg.Stream.Family, cfg.Stream.Policy, cfg.Stream.Perservative, seed)
	return root, nil
}

func newSampleCmd(flags *streamFlags) *cobra.Command {
	var count int
	var kind string
	var key ports.StreamKey

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print draws from the root stream",
		Long: `Print draws from the root stream.

With --run, --stage or --key the draws come from the named stream of that
run/stage/key triple instead, derived from the same seed.

Example: gostream-cli sample --family xorshift1024star --policy spacing --seed 18334 --kind float64 --count 5
Example: gostream-cli sample --seed 7 --run nightly --stage bootstrap --key region-3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if key != (ports.StreamKey{}) {
				s, err := namedStream(cmd.Context(), cfg, logger, key)
				if err != nil {
					return err
				}
				return runSample(s, kind, count)
			}
			root, err := openRoot(cfg, logger)
			if err != nil {
				return err
			}
			return runSample(root.Generator(), kind, count)
		},
	}

	cmd.Flags().IntVar(&count, "count", 10, "Number of draws")
	cmd.Flags().StringVar(&kind, "kind", "uint64", "Value kind: uint64|int|int32|float32|float64")
	cmd.Flags().StringVar(&key.RunID, "run", "", "Run identifier of a named stream")
	cmd.Flags().StringVar(&key.Stage, "stage", "", "Stage of a named stream")
	cmd.Flags().StringVar(&key.Key, "key", "", "Key of a named stream")
	return cmd
}

func namedStream(ctx context.Context, cfg *config.Config, logger *internal.Logger, key ports.StreamKey) (*sampler.Sampler, error) {
	adapter, err := rng.NewStreamAdapter(cfg.Stream.Family, cfg.Stream.Policy, cfg.Stream.Perservative, logger)
	if err != nil {
		return nil, err
	}
	var seed uint64
	if cfg.Stream.Seed != nil {
		seed = *cfg.Stream.Seed
	} else {
		seed = random.MustSeed()
		logger.Info("named stream: no PRNG_SEED set, using seed=%d", seed)
	}
	return adapter.Sampler(ctx, key, int64(seed))
}

func runSample(s *sampler.Sampler, kind string, count int) error {
	for i := 0; i < count; i++ {
		switch kind {
		case "uint64":
			fmt.Printf("%#016x\n", s.Uint64())
		case "int":
			fmt.Println(s.Int())
		case "int32":
			fmt.Println(s.Int32())
		case "float32":
			fmt.Println(s.Float32())
		case "float64":
			fmt.Println(s.Float64())
		default:
			return fmt.Errorf("unknown kind %q", kind)
		}
	}
	return nil
}

func newTreeCmd(flags *streamFlags) *cobra.Command {
	var streams int

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Split the root into worker streams and show where each one starts",
		Long: `Split the root into worker streams the way the parallel runner does and
print each stream's tree index (sequence splitting only) and first word.

Example: gostream-cli tree --policy splitting --seed 42 --streams 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(flags)
			if err != nil {
				return err
			}
			root, err := openRoot(cfg, logger)
			if err != nil {
				return err
			}
			if streams <= 0 {
				streams = cfg.Workers.Count
			}

			fmt.Printf("%-8s %-8s %s\n", "stream", "index", "first word")
			for i, src := range app.Fan(root, streams) {
				index := "-"
				if ix, ok := src.(source.TreeIndexer); ok {
					index = strconv.FormatUint(ix.Index(), 10)
				}
				fmt.Printf("%-8d %-8s %#016x\n", i, index, src.Generator().Next())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&streams, "streams", 0, "Number of streams (default: PRNG_WORKERS)")
	return cmd
}

func newCheckCmd(flags *streamFlags) *cobra.Command {
	var draws int
	var bins int
	var alpha float64

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run uniformity and cross-correlation checks on worker streams",
		Long: `Draw from every worker stream, test each for uniformity and report the
largest absolute correlation between any two streams.

Example: gostream-cli check --workers 8 --draws 100000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(flags)
			if err != nil {
				return err
			}
			root, err := openRoot(cfg, logger)
			if err != nil {
				return err
			}
			return runCheck(cmd.Context(), root, cfg, logger, draws, bins, alpha)
		},
	}

	cmd.Flags().IntVar(&draws, "draws", 100000, "Draws per stream")
	cmd.Flags().IntVar(&bins, "bins", 64, "Histogram bins for the chi-square test")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.001, "Significance level")
	return cmd
}

func runCheck(ctx context.Context, root source.Source, cfg *config.Config, logger *internal.Logger, draws, bins int, alpha float64) error {
	samples := make([][]float64, cfg.Workers.Count)
	runner := app.NewRunner(root, cfg.Workers.Concurrency, logger)
	report, err := runner.Run(ctx, cfg.Workers.Count, func(ctx context.Context, worker int, s *sampler.Sampler) error {
		samples[worker] = sampler.Slice[float64](s, draws)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("run %s (%s, %d streams)\n", report.RunID, report.Family, report.Workers)
	failed := 0
	for i, sample := range samples {
		r, err := quality.Uniformity(sample, bins)
		if err != nil {
			return err
		}
		status := "ok"
		if !r.Uniform(alpha) {
			status = "FAIL"
			failed++
		}
		fmt.Printf("stream %-4d index=%-6d mean=%.5f sd=%.5f chi2=%.2f p=%.4f %s\n",
			i, report.Streams[i].Index, r.Mean, r.StdDev, r.ChiSquare, r.PValue, status)
	}

	worst := 0.0
	for i := range samples {
		for j := i + 1; j < len(samples); j++ {
			c, err := quality.Correlation(samples[i], samples[j])
			if err != nil {
				return err
			}
			if c < 0 {
				c = -c
			}
			worst = max(worst, c)
		}
	}
	fmt.Printf("largest |correlation| between streams: %.5f\n", worst)

	if failed > 0 {
		return fmt.Errorf("%d of %d streams failed the uniformity test at alpha=%g", failed, len(samples), alpha)
	}
	return nil
}

func newResampleCmd(flags *streamFlags) *cobra.Command {
	var n int
	var replicates int
	var mu, sigma float64

	cmd := &cobra.Command{
		Use:   "resample",
		Short: "Bootstrap the mean of a normal sample",
		Long: `Draw a normal sample from the root stream, then bootstrap its mean over the
worker streams. Results depend only on the seed and worker count.

Example: gostream-cli resample --seed 7 --n 500 --replicates 2000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(flags)
			if err != nil {
				return err
			}
			root, err := openRoot(cfg, logger)
			if err != nil {
				return err
			}

			data := app.NewDistributions(root).NormalSlice(n, mu, sigma)
			resampler := app.NewResampler(
				app.NewRunner(root, cfg.Workers.Concurrency, logger),
				app.BootstrapConfig{Replicates: replicates, Workers: cfg.Workers.Count},
			)
			result, err := resampler.Bootstrap(cmd.Context(), data, app.MeanStatistic)
			if err != nil {
				return err
			}

			fmt.Printf("run %s\n", result.RunID)
			fmt.Printf("bootstrap mean:  %.6f\n", result.Mean)
			fmt.Printf("standard error:  %.6f\n", result.StdErr)
			fmt.Printf("95%% interval:    [%.6f, %.6f]\n", result.Lower, result.Upper)
			return nil
		},
	}

	cmd.Flags().IntVar(&n, "n", 200, "Sample size")
	cmd.Flags().IntVar(&replicates, "replicates", 1000, "Bootstrap replicates")
	cmd.Flags().Float64Var(&mu, "mu", 0, "Normal mean")
	cmd.Flags().Float64Var(&sigma, "sigma", 1, "Normal standard deviation")
	return cmd
}

func newFamiliesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List generator families and their capabilities",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%-26s %-6s %-6s %s\n", "family", "bits", "words", "jump")
			for _, name := range bitgen.Names() {
				d, _ := bitgen.Lookup(name)
				fmt.Printf("%-26s %-6d %-6d %t\n", d.Name, d.WordBits, d.StateWords, d.Jumpable)
			}
		},
	}
}
