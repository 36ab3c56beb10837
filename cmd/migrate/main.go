package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"calldesk/internal/config"
	"calldesk/internal/db"
	applog "calldesk/internal/logger"
	gormrepository "calldesk/internal/repository/gorm"
	"calldesk/internal/service"
	"calldesk/internal/visibility"
)

const usage = `usage: migrate <command> [flags]

commands:
  schema            create or update tables and indexes
  fix-call-dates    rewrite trading days that are not IST midnight
  cap-max-targets   lower per-user target overrides to their tier limit
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "report changes without writing them")
	batch := fs.Int("batch", 200, "rows read per page")
	_ = fs.Parse(os.Args[2:])

	if err := config.LoadDotEnv(os.Getenv("CD_DOTENV")); err != nil {
		panic(err)
	}
	cfgPath := os.Getenv("CD_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	envOnly := false
	if envOnlyRaw := os.Getenv("CD_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}
	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := applog.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer func() {
		_ = db.Close(dbConn)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := gormrepository.New(dbConn.Gorm)
	table := visibility.NewTable(cfg.Visibility.DefaultLimit, cfg.Visibility.TierLimits)
	maintenance := &service.MaintenanceService{Calls: store, Users: store, Visibility: &table, Logger: logger}

	switch command {
	case "schema":
		if err := db.AutoMigrate(dbConn); err != nil {
			logger.Fatal("schema migration failed", zap.Error(err))
		}
		logger.Info("schema up to date")
	case "fix-call-dates":
		res, err := maintenance.FixCallDates(ctx, *batch, *dryRun)
		if err != nil {
			logger.Fatal("fix call dates failed", zap.Error(err))
		}
		logger.Info("fix call dates done",
			zap.Int("scanned", res.Scanned),
			zap.Int("fixed", res.Fixed),
			zap.Bool("dry_run", *dryRun),
		)
	case "cap-max-targets":
		if *dryRun {
			logger.Fatal("cap-max-targets has no dry run")
		}
		n, err := maintenance.CapMaxTargets(ctx)
		if err != nil {
			logger.Fatal("cap max targets failed", zap.Error(err))
		}
		logger.Info("cap max targets done", zap.Int64("users", n))
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}
