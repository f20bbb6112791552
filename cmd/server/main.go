package main

import (
	"fmt"
	"os"

	httpapi "mahjong-solitaire/internal/api/http"
	"mahjong-solitaire/internal/api/ws"
	"mahjong-solitaire/internal/config"
	"mahjong-solitaire/internal/logging"
	"mahjong-solitaire/internal/session"
	"mahjong-solitaire/internal/store"
)

// @title Mahjong Solitaire API
// @version 1.0
// @description Solvable Mahjong Solitaire deals, play and live updates (Go + Gin)
// @BasePath /
func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		log.WithError(err).Fatal("invalid layouts")
	}

	mem := store.NewMemoryStore()
	sm := session.NewManager(mem, *cfg, catalog, log)
	hub := ws.NewHub(sm, log)
	sm.SetHub(hub)
	r := httpapi.SetupRouter(sm, hub)

	log.WithField("layouts", catalog.Names()).Infof("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
