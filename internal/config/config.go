// Package config loads and validates all environment variables at startup.
// Every other package receives typed values; nothing reads os.Getenv directly.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/nyashahama/square-sales-report/internal/square"
)

// Config is the fully-parsed application configuration.
type Config struct {
	// ── Runtime ───────────────────────────────────────────────────────────────
	Env string // "development" | "production"; selects the log format

	// ── Square ────────────────────────────────────────────────────────────────
	SquareAccessToken string
	SquareLocationID  string
	SquareEnvironment string // "production" | "sandbox", default "production"

	// TicketCategoryID is the catalog category whose items make up the
	// ticket report.
	TicketCategoryID string

	// ── SMTP ──────────────────────────────────────────────────────────────────
	SMTPServer    string
	SMTPPort      string
	EmailUsername string // login and From address
	EmailPassword string

	// ── Recipients ────────────────────────────────────────────────────────────
	OwnerEmail          string
	ReportEmail         string
	CCEmail             string
	OwnerReportSubject  string // default "Daily Sales Summary"
	TicketReportSubject string
}

// Load reads all environment variables and returns a validated Config.
// A .env file in the working directory is loaded first when present; real
// environment variables always take precedence over .env values.
func Load() (*Config, error) {
	// godotenv.Load never overrides variables that are already set. A missing
	// file is not an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}

	c := &Config{
		Env:                 getEnv("ENV", "development"),
		SquareAccessToken:   os.Getenv("SQUARE_ACCESS_TOKEN"),
		SquareLocationID:    os.Getenv("SQUARE_LOCATION_ID"),
		SquareEnvironment:   getEnv("SQUARE_ENVIRONMENT", "production"),
		TicketCategoryID:    os.Getenv("SQUARE_TICKET_CAT"),
		SMTPServer:          os.Getenv("SMTP_SERVER"),
		SMTPPort:            os.Getenv("SMTP_PORT"),
		EmailUsername:       os.Getenv("EMAIL_USERNAME"),
		EmailPassword:       os.Getenv("EMAIL_PASSWORD"),
		OwnerEmail:          os.Getenv("OWNER_EMAIL"),
		ReportEmail:         os.Getenv("REPORT_EMAIL"),
		CCEmail:             os.Getenv("CC_EMAIL"),
		OwnerReportSubject:  getEnv("OWNER_REPORT_SUBJECT", "Daily Sales Summary"),
		TicketReportSubject: os.Getenv("TICKET_REPORT_SUBJECT"),
	}

	return c, c.validate()
}

func (c *Config) validate() error {
	var errs []error

	// Ordered so the error message is stable.
	required := []struct{ name, val string }{
		{"SQUARE_TICKET_CAT", c.TicketCategoryID},
		{"SQUARE_ACCESS_TOKEN", c.SquareAccessToken},
		{"SQUARE_LOCATION_ID", c.SquareLocationID},
		{"EMAIL_USERNAME", c.EmailUsername},
		{"EMAIL_PASSWORD", c.EmailPassword},
		{"CC_EMAIL", c.CCEmail},
		{"OWNER_EMAIL", c.OwnerEmail},
		{"REPORT_EMAIL", c.ReportEmail},
		{"TICKET_REPORT_SUBJECT", c.TicketReportSubject},
		{"SMTP_SERVER", c.SMTPServer},
		{"SMTP_PORT", c.SMTPPort},
	}
	for _, r := range required {
		if r.val == "" {
			errs = append(errs, fmt.Errorf("missing required env var: %s", r.name))
		}
	}

	if c.SMTPPort != "" {
		if p, err := strconv.Atoi(c.SMTPPort); err != nil || p < 1 || p > 65535 {
			errs = append(errs, fmt.Errorf("SMTP_PORT must be a port number, got %q", c.SMTPPort))
		}
	}

	if _, err := square.BaseURLFor(c.SquareEnvironment); err != nil {
		errs = append(errs, fmt.Errorf("SQUARE_ENVIRONMENT: %w", err))
	}

	return errors.Join(errs...)
}

// ─── HELPERS ─────────────────────────────────────────────────────────────────

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
