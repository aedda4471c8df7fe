package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"newstagger/internal/app"
	"newstagger/internal/config"
	"newstagger/internal/handler"
	"newstagger/internal/model"

	"github.com/prometheus/client_golang/prometheus"
)

type output struct {
	handler.NewsResponse
	Error string `json:"error,omitempty"`
}

// fetcher runs one pipeline pass per category given on the command line, or
// for every category when none is given, and prints the result as JSON.
func main() {

	cfg, err := config.Load()
	if errors.Is(err, config.ErrMissingCredential) {
		log.Fatalf("tag service credential not configured: %v", err)
	}
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	a, err := app.New(cfg, prometheus.NewRegistry())
	if err != nil {
		log.Fatalf("error building pipeline: %v", err)
	}

	var categories []model.Category
	for _, id := range os.Args[1:] {
		c, err := a.Categories.Resolve(id)
		if err != nil {
			log.Fatalf("%v", err)
		}
		categories = append(categories, c)
	}
	if len(categories) == 0 {
		categories = a.Categories.All()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var results []output
	failed := 0
	for _, c := range categories {
		articles, err := a.Pipeline.HandleCategoryRequest(ctx, c.ID)
		out := output{NewsResponse: handler.BuildNewsResponse(c, articles)}
		if err != nil {
			slog.Error("error fetching category", "category", c.ID, "error", err)
			out.Error = err.Error()
			failed++
		}
		results = append(results, out)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(results); err != nil {
		log.Fatalf("error writing output: %v", err)
	}

	if failed == len(categories) {
		os.Exit(1)
	}
}
