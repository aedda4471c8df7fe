package main

import (
	"errors"
	"log"
	"log/slog"
	"os"

	"newstagger/internal/app"
	"newstagger/internal/config"
	"newstagger/internal/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {

	cfg, err := config.Load()
	if errors.Is(err, config.ErrMissingCredential) {
		log.Fatalf("tag service credential not configured: %v", err)
	}
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := app.New(cfg, reg)
	if err != nil {
		log.Fatalf("error building pipeline: %v", err)
	}

	newsHandler := handler.NewNewsHandler(a.Categories, a.Pipeline)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	newsHandler.Register(r)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	slog.Info("starting server", "addr", cfg.Addr(), "tagger", a.Annotator.TaggerName())

	err = r.Run(cfg.Addr())
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
