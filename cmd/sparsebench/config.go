package main

import (
	"github.com/argus-labs/sparseset/internal/bench"
	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
)

type config struct {
	// Store sizes to benchmark, comma separated.
	Sizes []int `env:"SPARSEBENCH_SIZES" envDefault:"1000,10000,100000" envSeparator:","`

	// Repetitions per workload, subject and size.
	Rounds int `env:"SPARSEBENCH_ROUNDS" envDefault:"5"`

	// Workloads to run, comma separated. Empty runs all of them.
	Workloads []string `env:"SPARSEBENCH_WORKLOADS" envSeparator:","`

	// Subjects to measure, comma separated. Empty measures all of them.
	Subjects []string `env:"SPARSEBENCH_SUBJECTS" envSeparator:","`

	// Seed for the random key orders. 0 picks one from the clock.
	Seed uint64 `env:"SPARSEBENCH_SEED" envDefault:"0"`

	// Check container invariants after every round.
	Validate bool `env:"SPARSEBENCH_VALIDATE" envDefault:"true"`

	// Path of a JSON report with every result. Empty skips the report.
	Report string `env:"SPARSEBENCH_REPORT"`
}

// loadConfig loads the configuration from environment variables.
func loadConfig() (config, error) {
	cfg := config{}

	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse sparsebench config")
	}

	if err := cfg.validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate sparsebench config")
	}

	return cfg, nil
}

// validate performs validation on the loaded configuration.
func (cfg *config) validate() error {
	if len(cfg.Sizes) == 0 {
		return eris.New("SPARSEBENCH_SIZES cannot be empty")
	}
	for _, size := range cfg.Sizes {
		if size <= 0 {
			return eris.Errorf("invalid size: %d (must be positive)", size)
		}
	}
	if cfg.Rounds <= 0 {
		return eris.Errorf("invalid rounds: %d (must be positive)", cfg.Rounds)
	}
	for _, w := range cfg.Workloads {
		if _, err := bench.ParseWorkload(w); err != nil {
			return err
		}
	}
	for _, s := range cfg.Subjects {
		if _, err := bench.ParseSubject(s); err != nil {
			return err
		}
	}
	return nil
}

// options converts a validated config into benchmark options. seed replaces a zero Seed.
func (cfg *config) options(seed uint64) bench.Options {
	opts := bench.Options{
		Sizes:    cfg.Sizes,
		Rounds:   cfg.Rounds,
		Seed:     cfg.Seed,
		Validate: cfg.Validate,
	}
	if opts.Seed == 0 {
		opts.Seed = seed
	}
	for _, w := range cfg.Workloads {
		opts.Workloads = append(opts.Workloads, bench.Workload(w))
	}
	for _, s := range cfg.Subjects {
		opts.Subjects = append(opts.Subjects, bench.Subject(s))
	}
	return opts
}
