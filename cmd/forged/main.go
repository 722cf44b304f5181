package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blueprintforge/internal/config"
	"blueprintforge/internal/forge"
	"blueprintforge/internal/forge/hostfs"
	"blueprintforge/internal/llm"
	llmclient "blueprintforge/internal/llmClient"
	"blueprintforge/internal/server"
	"blueprintforge/internal/service"
)

func main() {
	port := flag.String("port", "", "override PORT")
	flag.Parse()

	cfg := config.Load(os.Getenv)
	if *port != "" {
		cfg.Port = *port
	}

	ctx := context.Background()

	host, err := hostfs.New(cfg.OutDir)
	if err != nil {
		log.Fatal(err)
	}

	client, err := llmclient.New(ctx, llmclient.Options{
		Provider: cfg.Provider,
		Endpoint: cfg.EndpointURL,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	mws := []llm.Middleware{llm.WithLogging(nil)}
	if cfg.MaxAttempts > 1 {
		mws = append([]llm.Middleware{llm.Retry(cfg.MaxAttempts, cfg.RetryBaseDelay)}, mws...)
	}

	gen := forge.NewGenerator(host, forge.Options{
		DefaultFolder:      cfg.DefaultFolder,
		AllowShapeFallback: cfg.AllowShapeFallback,
	})
	svc := service.New(llm.Wrap(client, mws...), gen)

	srv := server.New(cfg.Port, server.NewHandler(svc, host))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal(err)
		}
	case sig := <-sigCh:
		log.Printf("received %s, shutting down", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}
