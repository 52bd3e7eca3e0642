// README: Entry point; loads config, wires the inference service, starts HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farecast/internal/artifact"
	"farecast/internal/config"
	httptransport "farecast/internal/http"
	"farecast/internal/infra"
	"farecast/internal/inference"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store artifact.Store
	switch cfg.Artifact.Backend {
	case "redis":
		store = artifact.NewRedisStore(infra.NewRedis(cfg.Redis.Addr), cfg.Artifact.Bucket, cfg.Artifact.Key)
	case "file":
		store = artifact.FileStore{Path: cfg.Artifact.Path}
	default:
		log.Fatalf("unknown artifact backend %q", cfg.Artifact.Backend)
	}

	svc := inference.NewService(store)
	// Warm the cache so the first request doesn't pay the load; a missing
	// artifact is not fatal here, the handler reports model unavailable.
	if err := svc.Reload(ctx); err != nil {
		log.Printf("artifact not loaded yet: %v", err)
	}

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: httptransport.NewRouter(svc)}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
