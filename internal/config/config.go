package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"textstats/internal/textstats/decoder"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv
const EnvPrefix = "TEXTSTATS_"

// Config is the complete service configuration
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Upload      UploadConfig      `toml:"upload"`
	Processing  ProcessingConfig  `toml:"processing"`
	Logging     LoggingConfig     `toml:"logging"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Compression CompressionConfig `toml:"compression"`
}

type ServerConfig struct {
	Host            string        `toml:"host"`
	Port            int           `toml:"port"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	IdleTimeout     time.Duration `toml:"idle_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

type UploadConfig struct {
	MaxFileSize   int64 `toml:"max_file_size"`   // bytes accepted in one request body
	MaxMemorySize int64 `toml:"max_memory_size"` // multipart bytes kept in memory before spilling to disk
}

type ProcessingConfig struct {
	Encodings []string `toml:"encodings"` // fallback chain, tried in order
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type CompressionConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the configuration used when no file or override is given
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Upload: UploadConfig{
			MaxFileSize:   100 * 1024 * 1024,
			MaxMemorySize: 10 * 1024 * 1024,
		},
		Processing: ProcessingConfig{
			Encodings: []string{decoder.UTF8Name, decoder.Latin1Name},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Compression: CompressionConfig{
			Enabled: true,
		},
	}
}

// Load reads the TOML file at path on top of Default. An empty path yields
// the defaults. Keys the file sets but Config does not know are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}

		return cfg, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	return cfg, nil
}

// LoadEnvFiles loads KEY=VALUE pairs into the process environment. Missing
// files are skipped; variables already set are not overwritten.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		err := godotenv.Load(path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}

		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}

	return nil
}

// ApplyEnv overrides cfg with TEXTSTATS_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "HOST"); ok {
		c.Server.Host = v
	}

	if v, ok := lookup(EnvPrefix + "PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sPORT value %q: %w", EnvPrefix, v, err)
		}

		c.Server.Port = port
	}

	if v, ok := lookup(EnvPrefix + "MAX_FILE_SIZE"); ok {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sMAX_FILE_SIZE value %q: %w", EnvPrefix, v, err)
		}

		c.Upload.MaxFileSize = size
	}

	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.Logging.Level = v
	}

	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok {
		c.Logging.Format = v
	}

	if v, ok := lookup(EnvPrefix + "ENCODINGS"); ok {
		c.Processing.Encodings = splitList(v)
	}

	if v, ok := lookup(EnvPrefix + "METRICS_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sMETRICS_ENABLED value %q: %w", EnvPrefix, v, err)
		}

		c.Metrics.Enabled = enabled
	}

	return nil
}

// FromEnvironment is Load followed by ApplyEnv with the process environment.
func FromEnvironment(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Server.Port)
	}

	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("invalid max_file_size %d: must be positive", c.Upload.MaxFileSize)
	}

	if c.Upload.MaxMemorySize <= 0 {
		return fmt.Errorf("invalid max_memory_size %d: must be positive", c.Upload.MaxMemorySize)
	}

	if len(c.Processing.Encodings) == 0 {
		return errors.New("processing.encodings must list at least one encoding")
	}

	for _, name := range c.Processing.Encodings {
		if _, err := decoder.ForName(name); err != nil {
			return fmt.Errorf("invalid processing.encodings: %w", err)
		}
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid log format %q: must be text or json", c.Logging.Format)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("invalid metrics path %q: must start with /", c.Metrics.Path)
	}

	return nil
}

// Addr is the listen address in host:port form
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SlogLevel parses Level into a slog.Level
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}

	return level, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))

	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
