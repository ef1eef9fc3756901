package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/exprfront/foundation/core/error"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "EXPRFRONT_CONFIG"

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Parser  ParserConfig  `toml:"parser" yaml:"parser"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
	REPL    REPLConfig    `toml:"repl" yaml:"repl"`

	path   string
	format Format
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// ParserConfig holds front end limits
type ParserConfig struct {
	// MaxInputLength in bytes, negative disables the limit
	MaxInputLength int `toml:"max_input_length" yaml:"max_input_length"`
}

// OutputConfig controls how parse results are printed
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
	Color  bool   `toml:"color" yaml:"color"`
}

// ServerConfig holds parse service settings
type ServerConfig struct {
	Host             string   `toml:"host" yaml:"host"`
	Port             int      `toml:"port" yaml:"port"`
	EnableReflection bool     `toml:"enable_reflection" yaml:"enable_reflection"`
	MaxRecvMsgSize   int      `toml:"max_recv_msg_size" yaml:"max_recv_msg_size"`
	RequestTimeout   Duration `toml:"request_timeout" yaml:"request_timeout"`
	ShutdownTimeout  Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`

	// CacheSize bounds cached parse results, negative disables the cache
	CacheSize int      `toml:"cache_size" yaml:"cache_size"`
	CacheTTL  Duration `toml:"cache_ttl" yaml:"cache_ttl"`
}

// REPLConfig holds interactive shell settings
type REPLConfig struct {
	Prompt     string `toml:"prompt" yaml:"prompt"`
	HistoryMax int    `toml:"history_max" yaml:"history_max"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mdwerror.Newf("config file not found: %s", path).
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.Load")
		}
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg, err := LoadFromString(string(content), detectFormat(path))
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").WithDetail("path", path)
	}
	cfg.path = path
	return cfg, nil
}

// LoadFromString loads configuration from content in the given format
func LoadFromString(content string, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(content, &cfg); err != nil {
			return nil, mdwerror.Wrap(err, "TOML parse error").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.LoadFromString")
		}
	case FormatYAML:
		if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
			return nil, mdwerror.Wrap(err, "YAML parse error").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.LoadFromString")
		}
	default:
		return nil, mdwerror.Newf("unsupported format: %s", format).
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.LoadFromString")
	}

	cfg.format = format
	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from the EXPRFRONT_CONFIG environment
// variable or the first default location that exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = findDefault()
	}

	if path == "" {
		return nil, mdwerror.Newf("no config file found, set %s or create configs/config.toml", EnvConfigPath).
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.LoadFromEnv")
	}

	return Load(path)
}

// LoadOrDefault loads path when given, otherwise tries LoadFromEnv and
// falls back to Default when no file exists anywhere
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if os.Getenv(EnvConfigPath) == "" && findDefault() == "" {
		return Default(), nil
	}
	return LoadFromEnv()
}

func findDefault() string {
	defaultPaths := []string{
		"./configs/config.toml",
		"./configs/config.yaml",
		"./config.toml",
		"./config.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		defaultPaths = append(defaultPaths,
			filepath.Join(home, ".config/exprfront/config.toml"),
			filepath.Join(home, ".config/exprfront/config.yaml"),
		)
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// detectFormat determines the configuration format from file extension
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "exprfront"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	// Parser
	if c.Parser.MaxInputLength == 0 {
		c.Parser.MaxInputLength = 1 << 20
	}

	// Output
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9300
	}
	if c.Server.MaxRecvMsgSize == 0 {
		c.Server.MaxRecvMsgSize = 4 * 1024 * 1024
	}
	if c.Server.RequestTimeout.Duration == 0 {
		c.Server.RequestTimeout.Duration = 10 * time.Second
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 5 * time.Second
	}
	if c.Server.CacheSize == 0 {
		c.Server.CacheSize = 256
	}
	if c.Server.CacheTTL.Duration == 0 {
		c.Server.CacheTTL.Duration = 5 * time.Minute
	}

	// REPL
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "expr> "
	}
	if c.REPL.HistoryMax == 0 {
		c.REPL.HistoryMax = 200
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.Server.Host = os.ExpandEnv(c.Server.Host)
	c.REPL.Prompt = os.ExpandEnv(c.REPL.Prompt)
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return mdwerror.Newf("unsupported output format %q", c.Output.Format).
			WithCode(mdwerror.CodeConfigError).
			WithDetail("field", "output.format")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return mdwerror.Newf("server port out of range: %d", c.Server.Port).
			WithCode(mdwerror.CodeConfigError).
			WithDetail("field", "server.port")
	}
	return nil
}

// Path returns the file the configuration was loaded from, if any
func (c *Config) Path() string {
	return c.path
}

// Format returns the format the configuration was decoded from
func (c *Config) Format() Format {
	return c.format
}
