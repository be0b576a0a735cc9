package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"fundwatch/internal/config"
	"fundwatch/internal/journal"
	"fundwatch/internal/logging"
	"fundwatch/internal/market"
	"fundwatch/internal/notify"
	"fundwatch/internal/portfolio"
	"fundwatch/internal/scheduler"
	"fundwatch/internal/server"
	"fundwatch/internal/signal"
	"fundwatch/internal/tracker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, cfg.LogPretty)

	pf, err := portfolio.Load(cfg.PortfolioFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.PortfolioFile).Msg("portfolio load failed")
	}
	log.Info().Int("holdings", len(pf)).Str("file", cfg.PortfolioFile).Msg("portfolio loaded")

	// Ensure parent directory for the DB exists
	_ = os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755)
	db, err := journal.Open("file:" + cfg.DBPath + "?_fk=1")
	if err != nil {
		log.Fatal().Err(err).Msg("journal open failed")
	}
	defer db.Close()
	if err := journal.InitSchema(db); err != nil {
		log.Fatal().Err(err).Msg("journal schema failed")
	}

	notifier, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, log)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram init failed")
	}

	jr := journal.New(db)
	tr := tracker.New(tracker.Options{
		Portfolio:       pf,
		Engine:          signal.NewEngine(market.NewYahoo(log), signal.Convention(cfg.WeightConvention), log),
		Evaluator:       signal.NewEvaluator(cfg.Threshold, log),
		Notifier:        notifier,
		Journal:         jr,
		Cooldown:        cfg.AlertCooldown,
		MarketHoursOnly: cfg.MarketHoursOnly,
		Log:             log,
	})

	if cfg.WatchSchedule == "" {
		if err := tr.RunOnce(context.Background()); err != nil {
			log.Error().Err(err).Msg("evaluation pass failed")
			os.Exit(1)
		}
		return
	}

	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.WatchSchedule, tr); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.WatchSchedule).Msg("invalid schedule")
	}
	sched.Start()
	defer sched.Stop()

	addr := ":" + strconv.Itoa(cfg.Port)
	log.Info().Str("addr", addr).Msg("status server listening")
	if err := server.ListenAndServe(addr, server.NewMux(jr, log)); err != nil {
		log.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
}
