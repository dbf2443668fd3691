package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nyashahama/square-sales-report/internal/config"
	"github.com/nyashahama/square-sales-report/internal/email"
	"github.com/nyashahama/square-sales-report/internal/square"
	"github.com/nyashahama/square-sales-report/internal/worker"
)

func main() {
	// ── Config ────────────────────────────────────────────────────────────────
	// Loaded first so ENV from .env picks the log format. Validated before any
	// network call. Load returns the parsed Config alongside a validation
	// error, so the logger can still be built from it.
	cfg, cfgErr := config.Load()
	env := "development"
	if cfg != nil {
		env = cfg.Env
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := newLogger(os.Stdout, env)
	slog.SetDefault(logger)

	if cfgErr != nil {
		logger.Error("fatal", "error", fmt.Errorf("config: %w", cfgErr))
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// newLogger returns JSON at Info in production, pretty text at Debug
// otherwise.
func newLogger(w io.Writer, env string) *slog.Logger {
	if env == "production" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("config loaded",
		"env", cfg.Env,
		"square_environment", cfg.SquareEnvironment,
		"location_id", cfg.SquareLocationID,
	)

	// ── Square ────────────────────────────────────────────────────────────────
	baseURL, err := square.BaseURLFor(cfg.SquareEnvironment)
	if err != nil {
		return fmt.Errorf("square: %w", err)
	}
	squareClient := square.NewClient(cfg.SquareAccessToken, baseURL)

	// ── Email (SMTP) ──────────────────────────────────────────────────────────
	mailer := email.NewSMTPSender(
		cfg.SMTPServer,
		cfg.SMTPPort,
		cfg.EmailUsername,
		cfg.EmailPassword,
		cfg.CCEmail,
	)

	// ── Job ───────────────────────────────────────────────────────────────────
	job := worker.NewJob(squareClient, mailer, worker.JobConfig{
		LocationID:       cfg.SquareLocationID,
		TicketCategoryID: cfg.TicketCategoryID,
		OwnerEmail:       cfg.OwnerEmail,
		OwnerSubject:     cfg.OwnerReportSubject,
		ReportEmail:      cfg.ReportEmail,
		TicketSubject:    cfg.TicketReportSubject,
	}, logger)

	// Ctrl-C aborts whichever request is in flight.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := job.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("run complete",
		"run_id", res.RunID,
		"payments", res.PaymentsListed,
		"payments_failed", res.PaymentsFailed,
		"orders_resolved", res.OrdersResolved,
		"orders_skipped", res.OrdersSkipped,
		"items", res.ItemsSold,
		"ticket_items", res.TicketItemsSold,
	)
	return nil
}
