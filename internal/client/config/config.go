package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// AvatarStorage describes the S3-compatible bucket avatars are uploaded to.
type AvatarStorage struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

// Enabled reports whether uploads are configured.
func (a AvatarStorage) Enabled() bool {
	return a.Bucket != ""
}

// Config holds runtime settings for the IgniteGym CLI.
type Config struct {
	ServerURL      string
	DatabasePath   string
	RequestTimeout time.Duration
	LogLevel       string
	Avatar         AvatarStorage
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3333"
	c.DatabasePath = "ignitegym.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.Avatar = AvatarStorage{Region: "us-east-1"}
}

// SlogLevel maps LogLevel to a slog level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
