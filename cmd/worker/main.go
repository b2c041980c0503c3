package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"billingform/internal/pkg/logger"
	"billingform/internal/platform/config"
	"billingform/internal/platform/database"
	"billingform/internal/platform/repositories"
	"billingform/internal/workers"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	once := flag.Bool("once", false, "Prune once and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.Logging)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open issuance database")
	}
	defer db.Close()

	repo := repositories.NewIssuanceRepository(db)
	prune := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		workers.PruneIssuances(ctx, repo, cfg.Issuance.Retention, time.Now())
	}

	if *once {
		prune()
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.Issuance.PruneSchedule, prune); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.Issuance.PruneSchedule).Msg("invalid prune schedule")
	}

	log.Info().
		Str("schedule", cfg.Issuance.PruneSchedule).
		Dur("retention", cfg.Issuance.Retention).
		Msg("starting issuance pruner")
	c.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	<-c.Stop().Done()
	log.Info().Msg("issuance pruner stopped")
}
