// Command useradmin runs the user administration example against PostgreSQL.
//
// It creates users, changes each of them a number of times and finally prints the users and
// the audit log. Metrics are exposed for Prometheus while the scenario runs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultUsers        = 3
	defaultUpdates      = 2
	defaultApplications = "CRM,ERP,HR"
	defaultDriver       = driverPGX
	metricsNamespace    = "useradmin"
)

// Config holds the command line configuration.
type Config struct {
	Driver       string
	Users        int
	Updates      int
	Applications []string
	MetricsAddr  string
	Debug        bool
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	registry := prometheus.NewRegistry()

	if cfg.MetricsAddr != "" {
		server := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", serveErr.Error())
			}
		}()

		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	app, closeApp, err := NewApp(ctx, cfg, logger, registry)
	if err != nil {
		log.Fatalf("Failed to wire application: %v", err)
	}
	defer closeApp()

	if err = app.RunScenario(ctx); err != nil {
		logger.Error("scenario failed", "error", err.Error())
		return
	}

	logger.Info("scenario finished")
}

func parseFlags(args []string) (Config, error) {
	flags := flag.NewFlagSet("useradmin", flag.ContinueOnError)

	var (
		driver       = flags.String("driver", defaultDriver, "Database driver: pgx, sql or sqlx")
		users        = flags.Int("users", defaultUsers, "Number of users to create")
		updates      = flags.Int("updates", defaultUpdates, "Number of updates per user")
		applications = flags.String("applications", defaultApplications, "Comma-separated application codes to seed")
		metricsAddr  = flags.String("metrics-addr", "", "Address to expose Prometheus metrics on, e.g. :2112")
		debug        = flags.Bool("debug", false, "Log executed SQL and transaction details")
	)

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	switch *driver {
	case driverPGX, driverSQL, driverSQLX:
	default:
		return Config{}, fmt.Errorf("unknown driver %q", *driver)
	}

	if *users < 0 || *updates < 0 {
		return Config{}, errors.New("users and updates must not be negative")
	}

	codes, err := parseApplicationCodes(*applications)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Driver:       *driver,
		Users:        *users,
		Updates:      *updates,
		Applications: codes,
		MetricsAddr:  *metricsAddr,
		Debug:        *debug,
	}, nil
}

func parseApplicationCodes(codesStr string) ([]string, error) {
	codes := make([]string, 0)
	for _, part := range strings.Split(codesStr, ",") {
		if code := strings.TrimSpace(part); code != "" {
			codes = append(codes, code)
		}
	}

	if len(codes) == 0 {
		return nil, errors.New("at least one application code is required")
	}

	return codes, nil
}
