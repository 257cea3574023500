package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Printing PrintingConfig `yaml:"printing"`
	Bridge   BridgeConfig   `yaml:"bridge"`
	Spooler  SpoolerConfig  `yaml:"spooler"`
	Render   RenderConfig   `yaml:"render"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type DatabaseConfig struct {
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
}

type PrintingConfig struct {
	ChunkSize      int           `yaml:"chunk_size"`
	SettleDelay    time.Duration `yaml:"settle_delay"`
	ChannelTimeout time.Duration `yaml:"channel_timeout"`
}

type BridgeConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type SpoolerConfig struct {
	Binary string `yaml:"binary"`
}

type RenderConfig struct {
	OutputDir string        `yaml:"output_dir"`
	Timeout   time.Duration `yaml:"timeout"`
	NoSandbox bool          `yaml:"no_sandbox"`
}

type WebhookConfig struct {
	URL         string        `yaml:"url"`
	Secret      string        `yaml:"secret"`
	Timeout     time.Duration `yaml:"timeout"`
	WorkerCount int           `yaml:"worker_count"`
	QueueSize   int           `yaml:"queue_size"`
}

type AuthConfig struct {
	PasswordHash string `yaml:"password_hash"`
	JWTSecret    string `yaml:"jwt_secret"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8085,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Path:          "./data/printd.db",
			RetentionDays: 90,
		},
		Printing: PrintingConfig{
			ChunkSize:      64,
			SettleDelay:    2 * time.Second,
			ChannelTimeout: 30 * time.Second,
		},
		Bridge: BridgeConfig{
			Timeout: 10 * time.Second,
		},
		Spooler: SpoolerConfig{
			Binary: "lp",
		},
		Render: RenderConfig{
			OutputDir: "./data/rendered",
			Timeout:   30 * time.Second,
		},
		Webhook: WebhookConfig{
			Timeout:     10 * time.Second,
			WorkerCount: 2,
			QueueSize:   100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func Load(configPath string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

func LoadFromEnv() *Config {
	cfg := defaults()

	if v := os.Getenv("PRINTD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("PRINTD_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}

	if v := os.Getenv("PRINTD_BRIDGE_URL"); v != "" {
		cfg.Bridge.URL = v
	}

	if v := os.Getenv("PRINTD_RENDER_DIR"); v != "" {
		cfg.Render.OutputDir = v
	}

	if v := os.Getenv("PRINTD_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	return cfg
}

func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.ReadTimeout < 0 {
		return fmt.Errorf("server read timeout must be non-negative")
	}

	if c.Server.WriteTimeout < 0 {
		return fmt.Errorf("server write timeout must be non-negative")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Database.RetentionDays < 0 {
		return fmt.Errorf("retention days must be non-negative")
	}

	if c.Printing.ChunkSize < 1 {
		return fmt.Errorf("chunk size must be at least 1, got %d", c.Printing.ChunkSize)
	}

	if c.Printing.SettleDelay < 0 {
		return fmt.Errorf("settle delay must be non-negative")
	}

	if c.Printing.ChannelTimeout < 0 {
		return fmt.Errorf("channel timeout must be non-negative")
	}

	if c.Bridge.Timeout < 0 {
		return fmt.Errorf("bridge timeout must be non-negative")
	}

	if c.Render.OutputDir == "" {
		return fmt.Errorf("render output dir is required")
	}

	if c.Webhook.URL != "" && c.Webhook.Secret == "" {
		return fmt.Errorf("webhook secret is required when webhook url is set")
	}

	if c.Auth.PasswordHash != "" && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth jwt secret is required when password hash is set")
	}

	if c.Webhook.WorkerCount < 1 {
		return fmt.Errorf("webhook worker count must be at least 1")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}

	validFormats := map[string]bool{
		"json": true,
		"text": true,
	}

	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format: %s (valid: json, text)", c.Logging.Format)
	}

	return nil
}
