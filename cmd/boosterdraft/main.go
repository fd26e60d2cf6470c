package main

import (
	"flag"
	"net/http"

	"github.com/cardtable/boosterdraft/internal/catalogstore"
	"github.com/cardtable/boosterdraft/internal/config"
	"github.com/cardtable/boosterdraft/internal/gateway"
	"github.com/cardtable/boosterdraft/internal/httpapi"
	"github.com/cardtable/boosterdraft/internal/logging"
	"github.com/cardtable/boosterdraft/internal/registry"
	"github.com/cardtable/boosterdraft/internal/transport/ws"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML server config file")
	flag.Parse()

	logger := logging.Get()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalw("loading config", "error", err)
	}

	cat, err := catalogstore.Load(cfg.CatalogDSN)
	if err != nil {
		logger.Fatalw("loading catalog", "error", err)
	}

	hub := ws.NewHub()
	reg := registry.New(cat, hub)
	gw := gateway.New(reg, hub)

	mux := http.NewServeMux()
	mux.Handle("/ws", ws.Handler(hub, gw.Dispatch))
	mux.Handle("/", httpapi.NewRouter(reg, cfg.DebugSecret))

	logger.Infow("starting server", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		logger.Fatalw("server exited", "error", err)
	}
}
