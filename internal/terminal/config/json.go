package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/flagx"
	"github.com/dmitrijs2005/hammampos/internal/timex"
)

// JsonConfig is the DTO used for reading JSON configuration files. Interval
// fields use timex.Duration so both "30s" and integer nanoseconds parse.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	DatabaseDSN         string         `json:"database_dsn"`
	DeviceID            string         `json:"device_id"`
	SyncInterval        timex.Duration `json:"sync_interval"`
	SyncBatchSize       int            `json:"sync_batch_size"`
	MaxSyncAttempts     int            `json:"max_sync_attempts"`
	BackoffBase         timex.Duration `json:"backoff_base"`
	MaxBackoff          timex.Duration `json:"max_backoff"`
	SessionGraceWindow  timex.Duration `json:"session_grace_window"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	ImageDir            string         `json:"image_dir"`
}

// parseJson overlays configuration values from the JSON file named by the
// -c/-config flags, when present. Invalid files panic: starting with half a
// config is worse than not starting.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	cfg.ServerEndpointAddr = c.ServerEndpointAddr
	cfg.DatabaseDSN = c.DatabaseDSN
	cfg.DeviceID = c.DeviceID
	cfg.SyncInterval = time.Duration(c.SyncInterval.Duration)
	cfg.SyncBatchSize = c.SyncBatchSize
	cfg.MaxSyncAttempts = c.MaxSyncAttempts
	cfg.BackoffBase = time.Duration(c.BackoffBase.Duration)
	cfg.MaxBackoff = time.Duration(c.MaxBackoff.Duration)
	cfg.SessionGraceWindow = time.Duration(c.SessionGraceWindow.Duration)
	cfg.OnlineCheckInterval = time.Duration(c.OnlineCheckInterval.Duration)
	cfg.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
	cfg.ImageDir = c.ImageDir
}
