package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultDataURL is the public launch dataset the dashboard was built around.
const DefaultDataURL = "https://cf-courses-data.s3.us.cloud-object-storage.appdomain.cloud/IBM-DS0321EN-SkillsNetwork/datasets/spacex_launch_dash.csv"

type Config struct {
	DataURL      string        `yaml:"data_url"`
	Addr         string        `yaml:"addr"`
	Debug        bool          `yaml:"debug"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	ChartWidth   int           `yaml:"chart_width"`
	ChartHeight  int           `yaml:"chart_height"`
	SnapshotPath string        `yaml:"snapshot_path"`
	Log          LogConfig     `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

func Default() Config {
	return Config{
		DataURL:      DefaultDataURL,
		Addr:         "127.0.0.1:8050",
		Debug:        true,
		FetchTimeout: 30 * time.Second,
		ChartWidth:   640,
		ChartHeight:  480,
		SnapshotPath: "launchdash.db",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load returns defaults overlaid with the YAML file at path (when non-empty)
// and then with LAUNCHDASH_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("LAUNCHDASH_DATA_URL"); ok && strings.TrimSpace(v) != "" {
		c.DataURL = strings.TrimSpace(v)
	}
	if v, ok := lookup("LAUNCHDASH_ADDR"); ok && strings.TrimSpace(v) != "" {
		c.Addr = strings.TrimSpace(v)
	}
	if v, ok := lookup("LAUNCHDASH_DEBUG"); ok && strings.TrimSpace(v) != "" {
		debug, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("LAUNCHDASH_DEBUG: %w", err)
		}
		c.Debug = debug
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DataURL) == "" {
		errs = append(errs, errors.New("data_url is required"))
	}
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, errors.New("fetch_timeout must be positive"))
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		errs = append(errs, errors.New("chart size must be positive"))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unsupported log format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
