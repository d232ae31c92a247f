package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix is a prefix of ENV variables overriding config values,
// e.g. EOSPING_EOS_KEY for "eos.key".
const EnvPrefix = "eosping"

// EnvSeparator is a section separator in ENV variables.
const EnvSeparator = "_"

const separator = "."

// Config configures the ping application.
type Config struct {
	Logger Logger `mapstructure:"logger" yaml:"logger"`

	EOS EOS `mapstructure:"eos" yaml:"eos"`

	Web Web `mapstructure:"web" yaml:"web"`

	Pprof BasicService `mapstructure:"pprof" yaml:"pprof"`

	Prometheus BasicService `mapstructure:"prometheus" yaml:"prometheus"`
}

// Logger configures logger settings.
type Logger struct {
	Level     string  `mapstructure:"level" yaml:"level"`
	Encoding  string  `mapstructure:"encoding" yaml:"encoding"`
	Timestamp bool    `mapstructure:"timestamp" yaml:"timestamp"`
	File      LogFile `mapstructure:"file" yaml:"file"`
}

// LogFile configures rotated log file. Logs are written to stdout
// if Path is empty.
type LogFile struct {
	Path       string `mapstructure:"path" yaml:"path"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// EOS configures the remote chain and the ping call.
type EOS struct {
	// HTTP endpoint of nodeos chain API.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// WIF private key of the actor.
	//
	// Required.
	Key string `mapstructure:"key" yaml:"key"`

	Contract      string   `mapstructure:"contract" yaml:"contract"`
	Actor         string   `mapstructure:"actor" yaml:"actor"`
	Authorization []string `mapstructure:"authorization" yaml:"authorization"`
}

// Web configures HTTP server of the ping page.
type Web struct {
	Address         string        `mapstructure:"address" yaml:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// BasicService configures settings of basic external service like pprof or prometheus.
type BasicService struct {
	Enabled         bool          `mapstructure:"enabled" yaml:"enabled"`
	Address         string        `mapstructure:"address" yaml:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Default values of the config parameters.
const (
	LoggerLevelDefault    = "info"
	LoggerEncodingDefault = "console"
	LogFileMaxSizeDefault = 10

	EOSEndpointDefault = "http://127.0.0.1:8888"
	EOSContractDefault = "ping.ctr"
	EOSActorDefault    = "tester"

	WebAddressDefault        = "localhost:8080"
	PprofAddressDefault      = "localhost:6060"
	PrometheusAddressDefault = "localhost:9090"

	ShutdownTimeoutDefault = 30 * time.Second
)

// New reads configuration from the file (if path is not empty) and ENV.
// Missing values are set to defaults. Config is not validated, see Validate.
func New(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(separator, EnvSeparator))

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// authorization defaults to the actor
	if len(cfg.EOS.Authorization) == 0 {
		cfg.EOS.Authorization = []string{cfg.EOS.Actor}
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", LoggerLevelDefault)
	v.SetDefault("logger.encoding", LoggerEncodingDefault)
	v.SetDefault("logger.timestamp", false)
	v.SetDefault("logger.file.path", "")
	v.SetDefault("logger.file.max_size", LogFileMaxSizeDefault)
	v.SetDefault("logger.file.max_backups", 0)
	v.SetDefault("logger.file.max_age", 0)
	v.SetDefault("logger.file.compress", false)

	v.SetDefault("eos.endpoint", EOSEndpointDefault)
	v.SetDefault("eos.key", "")
	v.SetDefault("eos.contract", EOSContractDefault)
	v.SetDefault("eos.actor", EOSActorDefault)
	v.SetDefault("eos.authorization", []string{})

	v.SetDefault("web.address", WebAddressDefault)
	v.SetDefault("web.shutdown_timeout", ShutdownTimeoutDefault)

	v.SetDefault("pprof.enabled", false)
	v.SetDefault("pprof.address", PprofAddressDefault)
	v.SetDefault("pprof.shutdown_timeout", ShutdownTimeoutDefault)

	v.SetDefault("prometheus.enabled", false)
	v.SetDefault("prometheus.address", PrometheusAddressDefault)
	v.SetDefault("prometheus.shutdown_timeout", ShutdownTimeoutDefault)
}

// Validate checks that all required values are set and have valid format.
func (c *Config) Validate() error {
	if _, err := zap.ParseAtomicLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("logger.level: %w", err)
	}

	switch c.Logger.Encoding {
	case "console", "json":
	default:
		return fmt.Errorf("logger.encoding: unsupported value %q", c.Logger.Encoding)
	}

	u, err := url.Parse(c.EOS.Endpoint)
	if err != nil {
		return fmt.Errorf("eos.endpoint: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("eos.endpoint: unsupported scheme %q", u.Scheme)
	}

	switch {
	case c.EOS.Key == "":
		return errors.New("eos.key: missing private key")
	case c.EOS.Contract == "":
		return errors.New("eos.contract: empty contract name")
	case c.EOS.Actor == "":
		return errors.New("eos.actor: empty actor name")
	case c.Web.Address == "":
		return errors.New("web.address: empty address")
	}

	for name, to := range map[string]time.Duration{
		"web":        c.Web.ShutdownTimeout,
		"pprof":      c.Pprof.ShutdownTimeout,
		"prometheus": c.Prometheus.ShutdownTimeout,
	} {
		if to <= 0 {
			return fmt.Errorf("%s.shutdown_timeout: must be positive, got %s", name, to)
		}
	}

	return nil
}

// Redacted returns copy of the Config without secrets.
func (c Config) Redacted() Config {
	if c.EOS.Key != "" {
		c.EOS.Key = "<redacted>"
	}

	c.EOS.Authorization = append([]string(nil), c.EOS.Authorization...)

	return c
}
