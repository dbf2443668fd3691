// Package worker contains the daily report pipeline: fetch the day's
// payments and orders from Square, summarize line items, and email the owner
// and ticket reports. It runs once per invocation; scheduling is left to
// cron or whatever starts the binary.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nyashahama/square-sales-report/internal/email"
	"github.com/nyashahama/square-sales-report/internal/report"
	"github.com/nyashahama/square-sales-report/internal/square"
)

// JobConfig holds the per-deployment values the pipeline needs. It is built
// once from config.Config in main and passed in; nothing here reads the
// environment.
type JobConfig struct {
	LocationID       string
	TicketCategoryID string

	OwnerEmail   string
	OwnerSubject string

	ReportEmail   string
	TicketSubject string
}

// RunResult counts what a run saw, for the closing log line.
type RunResult struct {
	RunID           uuid.UUID
	PaymentsListed  int
	PaymentsFailed  bool
	OrdersResolved  int
	OrdersSkipped   int
	ItemsSold       int
	TicketItemsSold int
}

// Job holds the dependencies for the fetch-summarize-email pipeline. Each
// step is a separate function in the report package so they can be tested
// independently and so the Run method reads like a checklist.
type Job struct {
	square square.Client
	mailer email.Sender
	cfg    JobConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewJob constructs a Job with all required dependencies.
func NewJob(
	client square.Client,
	mailer email.Sender,
	cfg JobConfig,
	logger *slog.Logger,
) *Job {
	return &Job{
		square: client,
		mailer: mailer,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the wall clock. Used by tests to pin "today".
func (j *Job) WithClock(now func() time.Time) *Job {
	j.now = now
	return j
}

// Run executes the full pipeline once:
//
//  1. Resolve today's window in Eastern time.
//  2. List payments → order ids. A Square rejection degrades to no payments.
//  3. Resolve each order, skipping ids Square rejects.
//  4. Summarize line items.
//  5. Email the owner report.
//  6. Resolve ticket item names from the catalog.
//  7. Filter the summary to tickets and email the ticket report.
//
// Any returned error ends the run. An error after step 5 means the owner
// report was already sent.
func (j *Job) Run(ctx context.Context) (RunResult, error) {
	res := RunResult{RunID: uuid.New()}
	log := j.logger.With("run_id", res.RunID)

	// ── 1. Window ─────────────────────────────────────────────────────────────
	now := j.now()
	window := report.TodayWindow(now)
	log.Info("job: starting", "begin_time", window.BeginTime(), "end_time", window.EndTime())

	// ── 2. Payments ───────────────────────────────────────────────────────────
	payments, err := report.FetchPayments(ctx, j.square, window, j.cfg.LocationID, log)
	if err != nil {
		return res, fmt.Errorf("job: %w", err)
	}
	res.PaymentsListed = len(payments.OrderIDs)
	res.PaymentsFailed = payments.Degraded
	if payments.Degraded {
		log.Warn("job: continuing with no payments", "error", payments.Err)
	}

	// ── 3. Orders ─────────────────────────────────────────────────────────────
	outcomes, err := report.FetchOrders(ctx, j.square, payments.OrderIDs)
	if err != nil {
		return res, fmt.Errorf("job: %w", err)
	}
	orders := report.Resolved(outcomes)
	res.OrdersResolved = len(orders)
	res.OrdersSkipped = len(outcomes) - len(orders)

	log.Debug("job: resolved orders", "resolved", res.OrdersResolved, "skipped", res.OrdersSkipped)

	// ── 4. Summarize ──────────────────────────────────────────────────────────
	summary, err := report.Summarize(orders)
	if err != nil {
		return res, fmt.Errorf("job: %w", err)
	}
	res.ItemsSold = len(summary)

	// ── 5. Owner report ───────────────────────────────────────────────────────
	if err := j.mailer.Send(ctx, email.Message{
		To:      j.cfg.OwnerEmail,
		Subject: j.cfg.OwnerSubject,
		Body:    report.OwnerBody(summary),
	}); err != nil {
		return res, fmt.Errorf("job: send owner report: %w", err)
	}
	log.Info("job: owner report sent", "to", j.cfg.OwnerEmail, "items", res.ItemsSold)

	// ── 6. Ticket names ───────────────────────────────────────────────────────
	ticketNames, err := report.TicketItemNames(ctx, j.square, j.cfg.TicketCategoryID)
	if err != nil {
		return res, fmt.Errorf("job: %w", err)
	}

	// ── 7. Ticket report ──────────────────────────────────────────────────────
	tickets := report.FilterTickets(summary, ticketNames)
	res.TicketItemsSold = len(tickets)

	if err := j.mailer.Send(ctx, email.Message{
		To:      j.cfg.ReportEmail,
		Subject: j.cfg.TicketSubject,
		Body:    report.TicketBody(tickets, now),
	}); err != nil {
		return res, fmt.Errorf("job: send ticket report: %w", err)
	}
	log.Info("job: ticket report sent", "to", j.cfg.ReportEmail, "items", res.TicketItemsSold)

	return res, nil
}
