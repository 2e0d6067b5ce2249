package main

import (
	"log"

	"resumegen/internal/bootstrap"
	"resumegen/internal/shared/config"
	"resumegen/internal/shared/server"
)

func main() {
	cfg := config.Load()
	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	if app.DB != nil {
		defer app.DB.Close()
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s (env=%s store=%s credentials=%s)", addr, cfg.Env, cfg.ObjectStoreType, cfg.CredentialSource)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
