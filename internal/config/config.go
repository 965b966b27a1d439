package config

import (
	stderrors "errors"
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kbc-construction/site/internal/errors"
	"github.com/kbc-construction/site/internal/logging"
	"github.com/kbc-construction/site/pkg/live"
	"github.com/kbc-construction/site/pkg/publish"
	"github.com/kbc-construction/site/pkg/server"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "kbc.json"

	// EnvPrefix prefixes environment overrides, e.g. KBC_SERVER_PORT.
	EnvPrefix = "KBC"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost binds every interface.
	DefaultHost = ""

	// DefaultPublicDir holds images and videos.
	DefaultPublicDir = "public"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Live      LiveConfig      `mapstructure:"live"`
	Content   ContentConfig   `mapstructure:"content"`
	PublicDir string          `mapstructure:"public_dir"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Publish   PublishConfig   `mapstructure:"publish"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	DevMode         bool          `mapstructure:"dev_mode"`
}

// LiveConfig holds live session settings.
type LiveConfig struct {
	FrameInterval     time.Duration `mapstructure:"frame_interval"`
	CarouselInterval  time.Duration `mapstructure:"carousel_interval"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
	MaxSessions       int           `mapstructure:"max_sessions"`
}

// ContentConfig locates the page content. An empty path uses the
// built-in content.
type ContentConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// TelemetryConfig toggles metrics and tracing.
type TelemetryConfig struct {
	Metrics bool `mapstructure:"metrics"`
	Tracing bool `mapstructure:"tracing"`
}

// PublishConfig holds the static publishing target.
type PublishConfig struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	PathStyle bool   `mapstructure:"path_style"`
}

// New creates a Config with default values.
func New() *Config {
	liveDefaults := live.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: 15 * time.Second,
		},
		Live: LiveConfig{
			FrameInterval:     liveDefaults.FrameInterval,
			CarouselInterval:  liveDefaults.CarouselInterval,
			WriteTimeout:      liveDefaults.WriteTimeout,
			HeartbeatInterval: liveDefaults.HeartbeatInterval,
			MaxSessions:       liveDefaults.MaxSessions,
		},
		PublicDir: DefaultPublicDir,
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
		},
		Telemetry: TelemetryConfig{
			Metrics: true,
		},
	}
}

// setDefaults registers every key with v. AutomaticEnv only overrides keys
// viper already knows, so each one is listed.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("server.host", c.Server.Host)
	v.SetDefault("server.port", c.Server.Port)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("server.allowed_origins", c.Server.AllowedOrigins)
	v.SetDefault("server.dev_mode", c.Server.DevMode)

	v.SetDefault("live.frame_interval", c.Live.FrameInterval)
	v.SetDefault("live.carousel_interval", c.Live.CarouselInterval)
	v.SetDefault("live.write_timeout", c.Live.WriteTimeout)
	v.SetDefault("live.heartbeat_interval", c.Live.HeartbeatInterval)
	v.SetDefault("live.max_sessions", c.Live.MaxSessions)

	v.SetDefault("content.path", c.Content.Path)
	v.SetDefault("public_dir", c.PublicDir)

	v.SetDefault("logging.level", c.Logging.Level)
	v.SetDefault("logging.format", c.Logging.Format)
	v.SetDefault("logging.file", c.Logging.File)

	v.SetDefault("telemetry.metrics", c.Telemetry.Metrics)
	v.SetDefault("telemetry.tracing", c.Telemetry.Tracing)

	v.SetDefault("publish.bucket", c.Publish.Bucket)
	v.SetDefault("publish.region", c.Publish.Region)
	v.SetDefault("publish.prefix", c.Publish.Prefix)
	v.SetDefault("publish.endpoint", c.Publish.Endpoint)
	v.SetDefault("publish.path_style", c.Publish.PathStyle)
}

// Load reads configuration from path, or from kbc.json in dir when path is
// empty. A missing kbc.json in dir is not an error; a missing explicit path
// is. KBC_ environment variables override file values.
func Load(dir, path string) (*Config, error) {
	cfg := New()
	v := viper.New()
	setDefaults(v, cfg)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(ConfigFileName, filepath.Ext(ConfigFileName)))
		v.SetConfigType("json")
		if dir == "" {
			dir = "."
		}
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return nil, errors.New("KBC002").
				WithDetail("Failed to read configuration: " + err.Error()).
				Wrap(err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New("KBC002").
			WithDetail("Failed to decode configuration: " + err.Error()).
			Wrap(err)
	}
	cfg.configPath = v.ConfigFileUsed()
	cfg.applyDefaults()
	return cfg, nil
}

// Path returns the path where the config was loaded from, empty when only
// defaults and environment were used.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in zero values a file or env var may have cleared.
func (c *Config) applyDefaults() {
	d := New()
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Live.FrameInterval == 0 {
		c.Live.FrameInterval = d.Live.FrameInterval
	}
	if c.Live.CarouselInterval == 0 {
		c.Live.CarouselInterval = d.Live.CarouselInterval
	}
	if c.Live.WriteTimeout == 0 {
		c.Live.WriteTimeout = d.Live.WriteTimeout
	}
	if c.Live.HeartbeatInterval == 0 {
		c.Live.HeartbeatInterval = d.Live.HeartbeatInterval
	}
	if c.PublicDir == "" {
		c.PublicDir = d.PublicDir
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = d.Logging.Format
	}
}

// Validate checks that every value is in range.
func (c *Config) Validate() error {
	var problems []string
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ShutdownTimeout < 0 {
		problems = append(problems, "server.shutdown_timeout must not be negative")
	}
	if c.Live.FrameInterval < time.Millisecond || c.Live.FrameInterval > time.Second {
		problems = append(problems, fmt.Sprintf("live.frame_interval must be between 1ms and 1s, got %s", c.Live.FrameInterval))
	}
	if c.Live.CarouselInterval < 500*time.Millisecond {
		problems = append(problems, fmt.Sprintf("live.carousel_interval must be at least 500ms, got %s", c.Live.CarouselInterval))
	}
	if c.Live.MaxSessions < 0 {
		problems = append(problems, "live.max_sessions must not be negative")
	}
	if c.Live.WriteTimeout < 0 || c.Live.HeartbeatInterval < 0 {
		problems = append(problems, "live timeouts must not be negative")
	}
	if !logging.ValidLevel(c.Logging.Level) {
		problems = append(problems, fmt.Sprintf("logging.level %q is not one of DEBUG, INFO, WARN, ERROR", c.Logging.Level))
	}
	if f := strings.ToLower(c.Logging.Format); f != "json" && f != "text" {
		problems = append(problems, fmt.Sprintf("logging.format %q must be json or text", c.Logging.Format))
	}

	if len(problems) == 0 {
		return nil
	}
	err := errors.New("KBC001").WithDetail(strings.Join(problems, "; "))
	if c.configPath != "" {
		err.Location = &errors.Location{File: c.configPath}
	}
	return err
}

// Address returns the listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ServerConfig converts the configuration into server.Config.
func (c *Config) ServerConfig() server.Config {
	cfg := server.DefaultConfig()
	cfg.Address = c.Address()
	cfg.PublicDir = c.PublicDir
	cfg.DevMode = c.Server.DevMode
	cfg.Metrics = c.Telemetry.Metrics
	cfg.Tracing = c.Telemetry.Tracing
	cfg.ShutdownTimeout = c.Server.ShutdownTimeout

	cfg.Live.FrameInterval = c.Live.FrameInterval
	cfg.Live.CarouselInterval = c.Live.CarouselInterval
	cfg.Live.WriteTimeout = c.Live.WriteTimeout
	cfg.Live.HeartbeatInterval = c.Live.HeartbeatInterval
	cfg.Live.MaxSessions = c.Live.MaxSessions
	cfg.Live.AllowedOrigins = c.Server.AllowedOrigins
	return cfg
}

// LoggingOptions converts the logging section.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		File:   c.Logging.File,
	}
}

// S3Config converts the publish section into the S3 client config.
func (c *Config) S3Config() publish.S3Config {
	return publish.S3Config{
		Region:       c.Publish.Region,
		Endpoint:     c.Publish.Endpoint,
		UsePathStyle: c.Publish.PathStyle,
	}
}
