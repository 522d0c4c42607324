/*
main.go - Application entry point

PURPOSE:
  Boots the attendance server: configuration, logging, store, holiday
  provider, service, router, graceful shutdown. Also carries a small
  operator command that prints a month summary straight from the store.

COMMANDS:
  serve    Run the HTTP API (default when no command is given)
  report   Print one user-month summary to stdout and exit

CONFIGURATION:
  --config names a YAML file; see config/config.go for keys, defaults and
  ATTEND_* environment overrides.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM the listener stops accepting, in-flight requests get
  15 seconds to finish, then the database closes.

SEE ALSO:
  - api/server.go: router configuration
  - config/config.go: configuration keys
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kk0ga/employee-time-attendance/api"
	"github.com/kk0ga/employee-time-attendance/config"
	"github.com/kk0ga/employee-time-attendance/holiday"
	"github.com/kk0ga/employee-time-attendance/store/sqlite"
	"github.com/kk0ga/employee-time-attendance/timesheet"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "attendance-server",
		Short: "Employee time-attendance engine",
		Long:  "Punch clock, work-rule rounding, holiday-aware month aggregation and printable reports over a REST API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default ./config.yaml)")

	rootCmd.AddCommand(serveCmd(), reportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := sqlite.New(cfg.Store.SQLitePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	svc := timesheet.NewService(store, holidayProvider(cfg, logger), logger)
	handler := api.NewHandler(svc, logger)
	router := api.NewRouter(handler, api.NewAuthenticator(cfg.Auth.JWTSecret))

	if cfg.Auth.JWTSecret == "" {
		logger.Warn("no jwt secret configured, running in single-user development mode")
	}

	server := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("listen", cfg.Server.Listen))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func reportCmd() *cobra.Command {
	var userID string
	var year, month int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a month summary for one user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger := zap.NewNop()

			store, err := sqlite.New(cfg.Store.SQLitePath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()

			svc := timesheet.NewService(store, holidayProvider(cfg, logger), logger)
			view, err := svc.MonthView(cmd.Context(), userID, year, month)
			if err != nil {
				return err
			}

			s := view.Summary
			fmt.Printf("Attendance %04d-%02d for %s\n", year, month, userID)
			fmt.Printf("  business days:      %d (attended %d, %d min)\n",
				s.BusinessDayCount, s.BusinessAttendedCount, s.BusinessMinutes)
			fmt.Printf("  holiday attendance: %d of %d (%d min)\n",
				s.HolidayAttendedCount, s.HolidayCount, s.HolidayMinutes)
			fmt.Printf("  total:              %d days, %d min\n",
				s.TotalAttendedCount, s.TotalMinutes)
			for _, a := range view.Advisories {
				fmt.Printf("  warning: %s\n", a.Message())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id (required)")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "year (required)")
	cmd.Flags().IntVarP(&month, "month", "m", 0, "month 1-12 (required)")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("year")
	cmd.MarkFlagRequired("month")
	return cmd
}

// holidayProvider picks the configured holiday source. No API key means
// weekend-only classification.
func holidayProvider(cfg *config.Config, logger *zap.Logger) holiday.Provider {
	if cfg.Calendar.GoogleAPIKey == "" {
		return holiday.None{}
	}
	return holiday.NewGoogleClient(cfg.Calendar.GoogleAPIKey, cfg.Calendar.CalendarID, logger)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}
