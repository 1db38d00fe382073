package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/flagx"
)

// parseFlags populates selected terminal Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the central service
//	-d string   local SQLite database path
//	-v string   device id
//	-i int      sync interval, seconds
//	-n int      sync batch size
//	-m int      max sync attempts before review
//	-g int      session grace window, minutes
//	-o int      online check interval, seconds
//
// Args are first filtered with flagx.FilterArgs so flags owned by other
// components are left alone.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-v", "-i", "-n", "-m", "-g", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address of the central service")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "local database path")
	fs.StringVar(&cfg.DeviceID, "v", cfg.DeviceID, "device id")
	syncInterval := fs.Int("i", int(cfg.SyncInterval.Seconds()), "sync interval (in seconds)")
	fs.IntVar(&cfg.SyncBatchSize, "n", cfg.SyncBatchSize, "sync batch size")
	fs.IntVar(&cfg.MaxSyncAttempts, "m", cfg.MaxSyncAttempts, "max sync attempts before review")
	graceWindow := fs.Int("g", int(cfg.SessionGraceWindow.Minutes()), "session grace window (in minutes)")
	onlineCheckInterval := fs.Int("o", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SyncInterval = time.Duration(*syncInterval) * time.Second
	cfg.SessionGraceWindow = time.Duration(*graceWindow) * time.Minute
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
