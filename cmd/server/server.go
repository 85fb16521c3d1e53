// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/powerplayhq/powerplay/internal/api"
	"github.com/powerplayhq/powerplay/internal/config"
)

func newServer(cfg *config.Config, handlers *api.Handlers) *http.Server {
	port := cfg.App.Port
	if port == 0 {
		port = 8080
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      api.NewRouter(handlers),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
