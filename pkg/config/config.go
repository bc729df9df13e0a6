package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

const (
	// EnvConfig the environment variable naming the config file when -config is not given
	EnvConfig = "OTPCTL_CONFIG"
	// DefaultFile read when it exists and no other file is named
	DefaultFile = "/etc/otpctl/config.yaml"

	DefaultCountPath  = "/sys/module/otp/parameters/count"
	DefaultListPath   = "/sys/module/otp/parameters/list"
	DefaultStatusPath = "/proc/otp"
)

// ParameterPaths the driver's parameter files
type ParameterPaths struct {
	// Count number of /dev/otpN devices the driver exposes
	Count string `yaml:"count"`
	// List the shared password list
	List string `yaml:"list"`
}

// Paths every fixed path otpctl touches
type Paths struct {
	Parameters ParameterPaths `yaml:"parameters"`
	// Status aggregate status of all devices
	Status string `yaml:"status"`
}

type LogConfig struct {
	// Level a logrus level name
	Level string `yaml:"level"`
	// Format text or json
	Format string `yaml:"format"`
}

type AuditConfig struct {
	// DSN of the audit journal. Empty disables the journal. See audit.NewDb for the forms.
	DSN string `yaml:"dsn"`
}

type Config struct {
	Paths `yaml:",inline"`
	Log   LogConfig   `yaml:"log"`
	Audit AuditConfig `yaml:"audit"`
}

// Default the configuration used when no file is found
func Default() *Config {
	return &Config{
		Paths: Paths{
			Parameters: ParameterPaths{
				Count: DefaultCountPath,
				List:  DefaultListPath,
			},
			Status: DefaultStatusPath,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads the config at path. An empty path falls back to $OTPCTL_CONFIG, then to DefaultFile
// if it exists, then to Default(). A file named explicitly or by the environment must exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return Default(), nil
		}
		path = DefaultFile
	}

	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}
	defer func() { _ = fp.Close() }()

	cfg, err := Decode(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.WithField("path", path).Debug("loaded config")

	return cfg, nil
}

// Decode reads YAML from r over the defaults and validates the result
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values a file may have broken
func (c *Config) Validate() error {
	if c.Parameters.Count == "" || c.Parameters.List == "" || c.Status == "" {
		return errors.New("invalid config: parameter and status paths must not be empty")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid config: unknown log format %q", c.Log.Format)
	}
	return nil
}
