package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"blueprintforge/internal/config"
	"blueprintforge/internal/forge"
	"blueprintforge/internal/forge/hostfs"
	"blueprintforge/internal/forge/hostmem"
	"blueprintforge/internal/llm"
	llmclient "blueprintforge/internal/llmClient"
	"blueprintforge/internal/service"
)

func main() {
	prompt := flag.String("prompt", "", "natural-language description of the assets to create")
	planFile := flag.String("plan", "", "build from a plan JSON file instead of calling the model")
	provider := flag.String("provider", "", "override FORGE_PROVIDER (openai|gemini)")
	model := flag.String("model", "", "override FORGE_MODEL")
	outDir := flag.String("out", "", "override FORGE_OUT_DIR")
	dry := flag.Bool("dry", false, "build in memory only, write nothing to disk")
	flag.Parse()

	cfg := config.Load(os.Getenv)
	if *provider != "" {
		cfg.Provider = *provider
	}
	if *model != "" {
		cfg.Model = *model
	}
	if *outDir != "" {
		cfg.OutDir = *outDir
	}
	if *prompt == "" && *planFile == "" {
		log.Fatal("either -prompt or -plan is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var host forge.ObjectGraphHost
	var docs *hostfs.Host
	if *dry {
		host = hostmem.New()
	} else {
		h, err := hostfs.New(cfg.OutDir)
		if err != nil {
			log.Fatal(err)
		}
		host = h
		docs = h
	}

	gen := forge.NewGenerator(host, forge.Options{
		DefaultFolder:      cfg.DefaultFolder,
		AllowShapeFallback: cfg.AllowShapeFallback,
	})

	var out service.Outcome
	var err error
	if *planFile != "" {
		raw, readErr := os.ReadFile(*planFile)
		if readErr != nil {
			log.Fatal(readErr)
		}
		out, err = service.New(nil, gen).GenerateFromPlan(string(raw))
	} else {
		client, cliErr := llmclient.New(ctx, llmclient.Options{
			Provider: cfg.Provider,
			Endpoint: cfg.EndpointURL,
			Model:    cfg.Model,
			APIKey:   cfg.APIKey,
		})
		if cliErr != nil {
			log.Fatal(cliErr)
		}
		defer client.Close()

		mws := []llm.Middleware{llm.WithLogging(nil)}
		if cfg.MaxAttempts > 1 {
			mws = append([]llm.Middleware{llm.Retry(cfg.MaxAttempts, cfg.RetryBaseDelay)}, mws...)
		}
		out, err = service.New(llm.Wrap(client, mws...), gen).Generate(ctx, *prompt)
	}

	fmt.Println(out.Status)
	for _, a := range out.Assets {
		if a.Skipped {
			fmt.Printf("  skipped %q: %s\n", a.Name, a.Reason)
		} else {
			fmt.Printf("  created %s\n", a.Identifier)
		}
	}
	if docs != nil && len(out.Created) > 0 {
		fmt.Printf("assets written under %s\n", strings.TrimSuffix(cfg.OutDir, "/"))
	}
	if err != nil {
		os.Exit(1)
	}
}
