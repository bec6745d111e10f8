package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/coolbeans/quotecheck/pkg/history"
	"github.com/coolbeans/quotecheck/pkg/server"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Analysis history is stored in Postgres when history.database_url (or
DATABASE_URL) is set; migrations are applied at startup.

Examples:
  quotecheck serve
  quotecheck serve --addr :9090 --config quotecheck.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			analyzer, err := cfg.NewAnalyzer()
			if err != nil {
				return err
			}

			log.SetPrefix("[quotecheck] ")
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var recorder history.Recorder
			if cfg.History.DatabaseURL != "" {
				store, err := openStore(ctx, cfg.History.DatabaseURL)
				if err != nil {
					return err
				}
				defer store.Close()
				recorder = store
				log.Printf("analysis history enabled")
			}

			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           server.New(analyzer, recorder, cfg.Sensitivity()).Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			log.Printf("listening on %s", cfg.Server.Addr)

			select {
			case <-ctx.Done():
				log.Printf("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutting down server: %w", err)
				}
				return nil
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)
			}
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides config and QUOTECHECK_ADDR)")

	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the history database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			databaseURL, _ := cmd.Flags().GetString("database-url")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if databaseURL != "" {
				cfg.History.DatabaseURL = databaseURL
			}
			if cfg.History.DatabaseURL == "" {
				return fmt.Errorf("%w: set history.database_url or DATABASE_URL", history.ErrNoStore)
			}

			store, err := openStore(cmd.Context(), cfg.History.DatabaseURL)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	cmd.Flags().String("database-url", "", "Postgres URL (overrides config and DATABASE_URL)")

	return cmd
}

// openStore connects to the history database and brings its schema up to
// date.
func openStore(ctx context.Context, url string) (*history.Store, error) {
	store, err := history.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
