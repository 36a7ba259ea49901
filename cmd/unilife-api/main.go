package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/unilife-dev/unilife/internal/config"
	"github.com/unilife-dev/unilife/internal/logger"
	"github.com/unilife-dev/unilife/internal/router"
	"github.com/unilife-dev/unilife/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}

	r := router.New(deps)

	// PORT env var wins over config so PaaS deployments just work
	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = fmt.Sprintf("%d", cfg.Public.Port)
	}

	logger.Log.Info("server started", "port", httpPort)
	if err := http.ListenAndServe(":"+httpPort, r); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
