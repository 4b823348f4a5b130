package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/todo/internal/cli/formatter"
	"github.com/alexanderramin/todo/internal/db"
	"github.com/alexanderramin/todo/internal/mockapi"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a mock todo store for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeRepo, err := openRepo(app.Config.Serve.DBPath)
			if err != nil {
				return err
			}
			defer closeRepo()

			gin.SetMode(gin.ReleaseMode)
			srv := &http.Server{
				Addr:              app.Config.Serve.Addr,
				Handler:           mockapi.NewRouter(repo, app.logger()),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			backend := "memory"
			if app.Config.Serve.DBPath != "" {
				backend = app.Config.Serve.DBPath
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s mock store on %s %s\n",
				formatter.StyleGreen.Render("●"), formatter.Bold(srv.Addr), formatter.Dim("("+backend+")"))

			return serve(ctx, srv)
		},
	}

	cmd.Flags().StringVar(&app.Config.Serve.Addr, "addr", app.Config.Serve.Addr, "listen address")
	cmd.Flags().StringVar(&app.Config.Serve.DBPath, "db", app.Config.Serve.DBPath, "SQLite file (empty keeps records in memory)")
	return cmd
}

func openRepo(path string) (mockapi.Repository, func() error, error) {
	if path == "" {
		return mockapi.NewMemoryRepo(), func() error { return nil }, nil
	}
	database, err := db.OpenDB(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return mockapi.NewSQLiteRepo(database), database.Close, nil
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
