package main

import (
	"github.com/sirupsen/logrus"

	"github.com/wanderbook/backend/config"
	"github.com/wanderbook/backend/internal/appServer"
)

func main() {

	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfgFile, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("LoadConfig: %v", err)
	}

	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		logrus.Fatalf("ParseConfig: %v", err)
	}

	logrus.Infof("Starting wanderbook server, version: %s, mode: %s", cfg.Server.AppVersion, cfg.Server.Mode)

	appServer.NewServer(cfg)
}
