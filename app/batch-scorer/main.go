package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"homeMatch/business/recommend"
	"homeMatch/business/scoring"
	"homeMatch/business/taste"
	psqlRepo "homeMatch/internal/repository/postgres"
	"homeMatch/pkg/config"
	"homeMatch/pkg/database"
	"homeMatch/pkg/logger"
)

func main() {
	from := flag.Uint64("from", 0, "first taste id to rebuild (0 means no lower bound)")
	to := flag.Uint64("to", 0, "last taste id to rebuild (0 means no upper bound)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting recommendation cache rebuild", "from", *from, "to", *to)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	// The rebuild writes straight to Postgres. Redis stays out of the
	// loop here, live traffic repopulates its entries on demand.
	tasteStore := psqlRepo.NewTasteConfigRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)

	tasteService := taste.NewService(tasteStore)

	scoringCfg := scoring.DefaultConfig()
	scoringCfg.MinScoreFloor = cfg.Recommend.MinScoreFloor
	scorer := scoring.NewScorer(scoring.NewBuilder(), scoringCfg)

	recommendService := recommend.NewService(tasteService, productRepo, tasteStore, scorer, recommend.Config{
		TopKDefault:   cfg.Recommend.TopKDefault,
		TopKMax:       cfg.Recommend.TopKMax,
		CandidateCap:  cfg.Recommend.CandidateCap,
		MinScoreFloor: cfg.Recommend.MinScoreFloor,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := recommendService.RebuildCache(ctx, recommend.BatchOptions{
		TasteFrom: *from,
		TasteTo:   *to,
		Sink:      recommend.LogProgressSink{},
	})
	if err != nil {
		logger.Error("Rebuild did not finish", "error", err,
			"processed", report.Processed, "failed", report.Failed)
		os.Exit(1)
	}

	logger.Info("Rebuild finished",
		"processed", report.Processed,
		"failed", report.Failed,
		"duration", report.Duration.String())
	if report.Failed > 0 {
		os.Exit(1)
	}
}
