// @title           Task Manager API
// @version         0.1.0
// @description     A simple REST API for managing tasks and todos
// @host            localhost:8000
// @BasePath        /api
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"taskmanager/internal/app"
	"taskmanager/internal/config"

	_ "taskmanager/docs"

	gfshutdown "github.com/gelmium/graceful-shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Redis.Enabled() {
		log.Printf("config loaded, connecting to Redis at %s...", cfg.Redis.Addr)
	} else {
		log.Printf("config loaded, search cache disabled")
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("app init: %v", err)
	}
	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	go func() {
		log.Printf("%s %s listening on %s", cfg.App.Name, cfg.App.Version, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.App.ShutdownTimeout.Duration(),
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Println("shutting down HTTP server")
				return server.Shutdown(ctx)
			},
			"app": func(ctx context.Context) error {
				return application.Close(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("exited with code %d", exitCode)
	os.Exit(exitCode)
}
