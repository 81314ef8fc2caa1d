package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/clinicdir"
	"github.com/fwojciec/clinicdir/crawl"
	"github.com/fwojciec/clinicdir/fs"
	"github.com/fwojciec/clinicdir/goquery"
	lochttp "github.com/fwojciec/clinicdir/http"
	locslog "github.com/fwojciec/clinicdir/slog"
	"github.com/fwojciec/clinicdir/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env is not an error.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, opened when --db is set.
	DB *sqlite.DB

	// Base of the exponential backoff between fetch attempts.
	RetryUnit time.Duration
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{RetryUnit: time.Second}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments. Only setup failures are
// returned as errors; crawl failures are logged.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("clinicdir"),
		kong.Description("Crawl a clinic directory into a CSV file"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(yamlConfig),
		kong.Vars{
			"default_base_url":   DefaultBaseURL,
			"default_user_agent": lochttp.DefaultUserAgent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if err := cli.Validate(); err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Debug, cli.LogJSON)

	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
	}

	fetcher := lochttp.NewFetcher(
		lochttp.WithTimeout(cli.Timeout),
		lochttp.WithUserAgent(cli.UserAgent),
	)
	defer fetcher.Close()

	crawler := &crawl.Crawler{
		BaseURL: cli.BaseURL,
		Fetcher: locslog.NewLoggingFetcher(fetcher, logger),
		Parser:  goquery.NewParser(goquery.WithLogger(logger)),
		Throttle: &crawl.Throttle{
			MinDelay: cli.MinDelay,
			MaxDelay: cli.MaxDelay,
			Limiter:  crawl.NewDomainLimiter(cli.RPS),
		},
		Logger:      logger,
		MaxRetries:  cli.MaxRetries,
		RetryDelays: crawl.BackoffDelays(cli.MaxRetries, m.RetryUnit),
	}

	logger.Info("starting crawl", "base_url", cli.BaseURL, "output", cli.Output)

	result, err := crawler.Run(ctx, m.opener(ctx, cli, logger))
	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn("crawl interrupted")
	case err != nil:
		return err
	}

	logger.Info("crawl finished",
		"regions", result.Regions,
		"saved", result.Saved,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	fmt.Fprintf(stdout, "Completed: %d clinics saved to %s\n", result.Saved, cli.Output)

	return nil
}

// opener returns the sink factory for the crawl: the CSV file, plus the
// database when one is open.
func (m *Main) opener(ctx context.Context, cli *CLI, logger *slog.Logger) crawl.OpenFunc {
	return func() (clinicdir.ClinicWriter, error) {
		csvWriter, err := fs.Create(cli.Output, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}

		if m.DB == nil {
			return locslog.NewLoggingWriter(csvWriter, logger), nil
		}

		dbWriter, err := sqlite.NewClinicWriter(ctx,
			sqlite.NewRunService(m.DB), sqlite.NewClinicService(m.DB), cli.BaseURL)
		if err != nil {
			csvWriter.Close()
			return nil, fmt.Errorf("failed to start database run: %w", err)
		}
		logger.Info("recording run", "run_id", dbWriter.Run.ID, "db", cli.DB)

		return locslog.NewLoggingWriter(clinicdir.MultiWriter{csvWriter, dbWriter}, logger), nil
	}
}
