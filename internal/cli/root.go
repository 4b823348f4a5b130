package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/todo/internal/config"
	"github.com/alexanderramin/todo/internal/remote"
	"github.com/alexanderramin/todo/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds configuration and the lazily built client state shared by all
// commands.
type App struct {
	Config config.Config
	Logger *slog.Logger

	// Remote overrides the HTTP client, e.g. with an in-memory fake.
	Remote service.TodoRemote
	// Todos is built on first use from Config and Remote.
	Todos *service.TodoState

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// Now is the clock used for completion dates and display.
	Now func() time.Time

	closers []func() error
}

// NewApp returns an App for cfg with a discarding logger.
func NewApp(cfg config.Config) *App {
	return &App{
		Config:        cfg,
		IsInteractive: func() bool { return false },
		Now:           time.Now,
	}
}

// NewRootCmd creates the top-level "todo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "todo",
		Short:         "Terminal todo list backed by a remote REST store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.openLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	bindConfigFlags(root.PersistentFlags(), &app.Config)

	root.AddCommand(
		newListCmd(app),
		newAddCmd(app),
		newEditCmd(app),
		newRemoveCmd(app),
		newDoneCmd(app),
		newTUICmd(app),
		newServeCmd(app),
	)

	return root
}

// bindConfigFlags lets flags override the environment-derived config.
func bindConfigFlags(flags *pflag.FlagSet, cfg *config.Config) {
	flags.StringVar(&cfg.API.BaseURL, "api-url", cfg.API.BaseURL, "base URL of the todo store")
	flags.DurationVar(&cfg.API.Timeout, "timeout", cfg.API.Timeout, "per-request timeout")
	flags.StringVar(&cfg.Log.File, "log-file", cfg.Log.File, "write structured logs to this file")
}

// State returns the client state, building the remote client on first use.
func (a *App) State() (*service.TodoState, error) {
	if a.Todos != nil {
		return a.Todos, nil
	}
	if a.Remote == nil {
		if err := a.Config.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		client := remote.NewClient(remote.Config{
			BaseURL:    a.Config.API.BaseURL,
			Timeout:    a.Config.API.Timeout,
			RatePerSec: a.Config.API.RatePerSec,
		}, remote.NewLogObserver(a.logger()))
		a.logger().Info("remote store configured", "base_url", client.BaseURL(), "timeout", a.Config.API.Timeout)
		a.Remote = client
	}
	opts := []service.Option{service.WithObserver(service.NewLogUseCaseObserver(a.logger()))}
	if a.Now != nil {
		opts = append(opts, service.WithClock(a.Now))
	}
	a.Todos = service.NewTodoState(a.Remote, opts...)
	return a.Todos, nil
}

// Close releases resources opened while running commands.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func (a *App) openLogger() error {
	if a.Logger != nil {
		return nil
	}
	logger, closeFn, err := config.OpenLogger(a.Config.Log)
	if err != nil {
		return err
	}
	a.Logger = logger
	a.closers = append(a.closers, closeFn)
	return nil
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}
