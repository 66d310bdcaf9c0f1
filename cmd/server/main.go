package main

import (
	"log"

	_ "tasktracker/docs"
	"tasktracker/internal/config"
	"tasktracker/internal/logger"
	"tasktracker/internal/server"

	"go.uber.org/zap"
)

// @title           Task Tracker API
// @version         1.0
// @description     Personal task tracker: accounts, profiles and per-user task lists.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

// @schemes http
func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.GinMode, cfg.LogLevel)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	s, err := server.Init(cfg, zlog)
	if err != nil {
		zlog.Fatal("server initialization failed", zap.Error(err))
	}

	s.Run()
}
