// Command sparsebench compares the sparse set containers against Go maps and slices. It is
// configured through SPARSEBENCH_* environment variables and logs one line per measurement.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/argus-labs/sparseset/internal/bench"
	"github.com/argus-labs/sparseset/pkg/telemetry"
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

func main() {
	tel, err := telemetry.New(telemetry.Options{ServiceName: "sparsebench"})
	if err != nil {
		// Logging isn't set up yet, so fall back to a bare JSON logger on stderr.
		logger := zerolog.New(os.Stderr)
		logger.Error().Err(err).Msg("failed to set up telemetry")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, tel)
	stop()

	if err != nil {
		tel.Logger.Error().Err(err).Msg("benchmark failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, tel telemetry.Telemetry) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := cfg.options(uint64(time.Now().UnixNano())) //nolint:gosec // clock is positive

	logger := tel.GetLogger("bench")
	logger.Info().
		Ints("sizes", opts.Sizes).
		Int("rounds", opts.Rounds).
		Uint64("seed", opts.Seed).
		Bool("validate", opts.Validate).
		Msg("starting benchmark")

	results, err := bench.Run(ctx, opts, func(r bench.Result) {
		logger.Info().
			Str("workload", string(r.Workload)).
			Str("subject", string(r.Subject)).
			Int("size", r.Size).
			Int("ops", r.Ops).
			Dur("per_op", r.PerOp).
			Msg("measured")
	})
	if err != nil {
		return eris.Wrap(err, "failed to run benchmark")
	}

	if cfg.Report != "" {
		if err := writeReport(cfg.Report, opts.Seed, results); err != nil {
			return err
		}
		logger.Info().Str("path", cfg.Report).Int("results", len(results)).Msg("wrote report")
	}
	return nil
}

type report struct {
	Seed    uint64         `json:"seed"`
	Results []bench.Result `json:"results"`
}

// writeReport writes the results as indented JSON to path, replacing any existing file.
func writeReport(path string, seed uint64, results []bench.Result) error {
	bz, err := json.MarshalIndent(report{Seed: seed, Results: results}, "", "  ")
	if err != nil {
		return eris.Wrap(err, "failed to encode report")
	}
	if err := os.WriteFile(path, bz, 0o600); err != nil {
		return eris.Wrapf(err, "failed to write report to %s", path)
	}
	return nil
}
