package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/hammampos/internal/logging"
	"github.com/dmitrijs2005/hammampos/internal/terminal/cli"
	"github.com/dmitrijs2005/hammampos/internal/terminal/config"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.LoadConfig()

	// background services log to a file so the operator prompt stays clean
	logOut := io.Writer(os.Stderr)
	if f, err := os.OpenFile("terminal.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
		defer f.Close()
		logOut = f
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(logOut, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
