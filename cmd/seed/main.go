// Command seed imports a content bundle into the database. Without --file the
// bundle compiled into the binary is used.
//
// Flags:
//
//	--file     path to a JSON bundle
//	--dry-run  apply inside a transaction and roll it back
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"mangafandb/database"
	"mangafandb/database/seed"
	"mangafandb/internal/config"
	"mangafandb/internal/logger"

	"gorm.io/gorm"
)

var errDryRun = errors.New("dry run")

func main() {
	fileFlag := flag.String("file", "", "path to a JSON bundle (default: embedded bundle)")
	dryRunFlag := flag.Bool("dry-run", false, "roll back after applying")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	var bundle *seed.Bundle
	if *fileFlag != "" {
		bundle, err = seed.Load(*fileFlag)
	} else {
		bundle, err = seed.Default()
	}
	if err != nil {
		logger.Error("load bundle", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close(db)

	start := time.Now()
	var report seed.Report
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var applyErr error
		report, applyErr = seed.Apply(ctx, tx, bundle)
		if applyErr != nil {
			return applyErr
		}
		if *dryRunFlag {
			return errDryRun
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDryRun) {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	attrs := []any{slog.Int("total", report.Total()), slog.Bool("dry_run", *dryRunFlag), slog.Duration("took", time.Since(start))}
	for kind, n := range report {
		attrs = append(attrs, slog.Int(kind, n))
	}
	logger.Info("seed applied", attrs...)
}
