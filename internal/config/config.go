// Package config loads the settings of the oneshot commands.
//
// Settings come from three layers, later layers winning:
//  1. Default()
//  2. an optional YAML file (-config), decoded strictly: unknown keys fail
//  3. command-line flags that were set explicitly
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/randomizedcoder/go-oneshot/internal/tick"
)

// Accepted values.
var (
	Tiers      = []string{"raw", "checked", "typestate"}
	Ownerships = []string{"borrowed", "shared"}
	Wakes      = []string{"park", "poll"}
	Tickers    = []string{tick.KindAtomic, tick.KindBatch}
	LogLevels  = []string{"debug", "info", "warn", "error"}
)

// Config holds the settings of a stress run.
type Config struct {
	// Iterations is the number of send/receive rounds. 0 runs until
	// interrupted.
	Iterations int `yaml:"iterations"`

	Tier      string `yaml:"tier"`
	Ownership string `yaml:"ownership"`
	Wake      string `yaml:"wake"`

	// Ticker selects the progress ticker kind.
	Ticker         string        `yaml:"ticker"`
	ReportInterval time.Duration `yaml:"report_interval"`

	LogLevel string `yaml:"log_level"`

	// MetricsAddr is the listen address of the /metrics endpoint. Empty
	// disables it.
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Iterations:     100_000,
		Tier:           "typestate",
		Ownership:      "borrowed",
		Wake:           "park",
		Ticker:         tick.KindBatch,
		ReportInterval: time.Second,
		LogLevel:       "info",
	}
}

// Decode overlays the YAML document read from r onto c. An empty document
// leaves c unchanged.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decode: %w", err)
	}
	return nil
}

// LoadFile overlays the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return c.Decode(f)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("config: iterations must be >= 0, got %d", c.Iterations)
	}
	if c.ReportInterval <= 0 {
		return fmt.Errorf("config: report_interval must be positive, got %v", c.ReportInterval)
	}
	for _, f := range []struct {
		name, value string
		allowed     []string
	}{
		{"tier", c.Tier, Tiers},
		{"ownership", c.Ownership, Ownerships},
		{"wake", c.Wake, Wakes},
		{"ticker", c.Ticker, Tickers},
		{"log_level", c.LogLevel, LogLevels},
	} {
		if !slices.Contains(f.allowed, f.value) {
			return fmt.Errorf("config: %s must be one of %v, got %q", f.name, f.allowed, f.value)
		}
	}
	return nil
}

// Load builds a Config from command-line args: defaults, then the file
// named by -config, then every flag set in args. The result is validated.
func Load(name string, args []string) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	path := fs.String("config", "", "YAML config file")
	var flags Config
	def := Default()
	fs.IntVar(&flags.Iterations, "n", def.Iterations, "Number of rounds (0 = until interrupted)")
	fs.StringVar(&flags.Tier, "tier", def.Tier, "Channel tier: raw, checked, typestate")
	fs.StringVar(&flags.Ownership, "ownership", def.Ownership, "Typestate ownership: borrowed, shared")
	fs.StringVar(&flags.Wake, "wake", def.Wake, "Typestate waiting: park, poll")
	fs.StringVar(&flags.Ticker, "ticker", def.Ticker, "Progress ticker: atomic, batch")
	fs.DurationVar(&flags.ReportInterval, "report", def.ReportInterval, "Progress report interval")
	fs.StringVar(&flags.LogLevel, "log-level", def.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&flags.MetricsAddr, "metrics-addr", def.MetricsAddr, "Serve Prometheus metrics on this address")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg := def
	if *path != "" {
		if err := cfg.LoadFile(*path); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.Iterations = flags.Iterations
		case "tier":
			cfg.Tier = flags.Tier
		case "ownership":
			cfg.Ownership = flags.Ownership
		case "wake":
			cfg.Wake = flags.Wake
		case "ticker":
			cfg.Ticker = flags.Ticker
		case "report":
			cfg.ReportInterval = flags.ReportInterval
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		case "metrics-addr":
			cfg.MetricsAddr = flags.MetricsAddr
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
