package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Rules     RulesConfig  `mapstructure:"rules"`
	Server    ServerConfig `mapstructure:"server"`
	LogLevel  string       `mapstructure:"log_level"`
	LogFormat string       `mapstructure:"log_format"`
}

type RulesConfig struct {
	// Path to a JSON or TOML rule table. Empty selects the embedded table.
	Path string `mapstructure:"path"`
	// Seed makes every translation reproducible. 0 means unseeded.
	Seed          uint64 `mapstructure:"seed"`
	InterludeRate int    `mapstructure:"interlude_rate"`
	Language      string `mapstructure:"language"`
}

type ServerConfig struct {
	ListenAddr      string        `mapstructure:"listen_addr"`
	Workers         int           `mapstructure:"workers"`
	MaxTextBytes    int           `mapstructure:"max_text_bytes"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Rules: RulesConfig{
			Path:          "",
			Seed:          0,
			InterludeRate: 100,
			Language:      "de",
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			Workers:         4,
			MaxTextBytes:    4096,
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		LogLevel:  "info",
		LogFormat: LogFormatJSON,
	}
}

// flagKeys maps each registered flag to its config key.
var flagKeys = map[string]string{
	"rules":                   "rules.path",
	"seed":                    "rules.seed",
	"interlude-rate":          "rules.interlude_rate",
	"language":                "rules.language",
	"server-listen-addr":      "server.listen_addr",
	"workers":                 "server.workers",
	"max-text-bytes":          "server.max_text_bytes",
	"request-timeout":         "server.request_timeout",
	"server-shutdown-timeout": "server.shutdown_timeout",
	"log-level":               "log_level",
	"log-format":              "log_format",
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("rules", defaults.Rules.Path, "Path to a JSON or TOML rule table (empty: embedded table)")
	fs.Uint64("seed", defaults.Rules.Seed, "Seed for reproducible translations (0: random)")
	fs.Int("interlude-rate", defaults.Rules.InterludeRate, "1-in-N chance per word of appending the interlude (0 disables)")
	fs.String("language", defaults.Rules.Language, "BCP 47 language tag used for case mapping")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("workers", defaults.Server.Workers, "Max concurrent translation requests")
	fs.Int("max-text-bytes", defaults.Server.MaxTextBytes, "Max request text size in bytes")
	fs.Duration("request-timeout", defaults.Server.RequestTimeout, "Per-request translation timeout")
	fs.Duration("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown timeout")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.String("log-format", defaults.LogFormat, "Log format (json|text)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("MEDDL")
	replacer := strings.NewReplacer("-", "_", ".", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("meddl")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	format, err := NormalizeLogFormat(cfg.LogFormat)
	if err != nil {
		return Config{}, err
	}
	cfg.LogFormat = format

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("rules.path", c.Rules.Path)
	v.SetDefault("rules.seed", c.Rules.Seed)
	v.SetDefault("rules.interlude_rate", c.Rules.InterludeRate)
	v.SetDefault("rules.language", c.Rules.Language)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("log_format", c.LogFormat)
}

// bindFlags binds every registered flag that fs knows to its nested key, so
// an explicitly set flag beats env and config file values while an unset
// one does not.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
