// Package config handles configuration for the point-of-sale terminal,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for a terminal.
//
// Fields:
//   - ServerEndpointAddr: base URL of the central ticket service.
//   - DatabaseDSN: path of the local SQLite database file.
//   - DeviceID: stable identifier reported with every ticket; when empty a
//     generated id is persisted in the local kv store on first start.
//   - SyncInterval / SyncBatchSize: background sync cadence and batch bound.
//   - MaxSyncAttempts: rejections tolerated before a record needs review.
//   - BackoffBase / MaxBackoff: transport-failure backoff envelope.
//   - SessionGraceWindow: how long after token expiry offline sales are
//     still allowed.
//   - OnlineCheckInterval: reachability probe cadence.
//   - RequestTimeout: per-request HTTP timeout.
//   - ImageDir: local cache directory for catalog images.
type Config struct {
	ServerEndpointAddr  string
	DatabaseDSN         string
	DeviceID            string
	SyncInterval        time.Duration
	SyncBatchSize       int
	MaxSyncAttempts     int
	BackoffBase         time.Duration
	MaxBackoff          time.Duration
	SessionGraceWindow  time.Duration
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	ImageDir            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.DatabaseDSN = "terminal.db"
	c.DeviceID = ""
	c.SyncInterval = 30 * time.Second
	c.SyncBatchSize = 100
	c.MaxSyncAttempts = 5
	c.BackoffBase = time.Second
	c.MaxBackoff = 2 * time.Minute
	c.SessionGraceWindow = 4 * time.Hour
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.ImageDir = "images"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
