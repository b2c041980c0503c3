package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"billingform/internal/api"
	"billingform/internal/api/handlers"
	"billingform/internal/api/middleware"
	"billingform/internal/engine/forms"
	"billingform/internal/engine/transparent"
	"billingform/internal/pkg/logger"
	"billingform/internal/platform/auth"
	"billingform/internal/platform/config"
	"billingform/internal/platform/database"
	"billingform/internal/platform/metrics"
	"billingform/internal/platform/repositories"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	hashSecret := flag.String("hash-secret", "", "Print the bcrypt hash of a client secret and exit")
	flag.Parse()

	if *hashSecret != "" {
		hash, err := auth.HashSecret(*hashSecret)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to hash secret")
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.Logging)

	site, err := cfg.Site.Site()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid site configuration")
	}
	if len(site.PrivateKey()) == 0 {
		log.Warn().Msg("site.private_key is not set; form requests will fail until it is configured")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open issuance database")
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db, "up"); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate issuance database")
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Repositories and services
	issuanceRepo := repositories.NewIssuanceRepository(db)
	tokenSvc := auth.NewTokenService(cfg.Auth)
	formSvc := forms.NewService(transparent.NewBuilder(site), issuanceRepo, m)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.FormsPerMinute)
	go sweepLoop(rateLimiter)

	deps := &api.Dependencies{
		AuthHandler:     handlers.NewAuthHandler(auth.NewClientStore(cfg.Auth.Clients), tokenSvc),
		FormHandler:     handlers.NewFormHandler(formSvc),
		IssuanceHandler: handlers.NewIssuanceHandler(issuanceRepo),
		HealthHandler:   handlers.NewHealthHandler(db, site),
		MetricsHandler:  handlers.NewMetricsHandler(reg),
		AuthMiddleware:  middleware.NewAuthMiddleware(tokenSvc),
		RateLimiter:     rateLimiter,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", addr).
			Str("subdomain", site.Subdomain()).
			Str("environment", string(site.Environment())).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func sweepLoop(rl *middleware.RateLimiter) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.Sweep()
	}
}
