package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/todo/internal/cli/formatter"
	"github.com/alexanderramin/todo/internal/domain"
	"github.com/alexanderramin/todo/internal/service"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var group bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := app.loadState(cmd)
			if err != nil {
				return err
			}
			todos := state.Snapshot()

			body := formatter.FormatTodoTable(todos, app.now())
			if group {
				body = formatter.FormatTodoGroups(todos)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("Todos", body))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&group, "group", "g", false, "group by pending and done")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add [TITLE...]",
		Short: "Create a todo",
		Long:  "Create a todo. With no title on a terminal, prompts for one.",
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			if strings.TrimSpace(title) == "" && app.interactive() {
				if err := titleForm(&title).Run(); err != nil {
					return err
				}
			}
			title = strings.TrimSpace(title)
			if title == "" {
				return fmt.Errorf("adding todo: %w", service.ErrEmptyTitle)
			}

			state, err := app.loadState(cmd)
			if err != nil {
				return err
			}
			res := app.withSpinner(cmd, "Adding...", func(ctx context.Context) service.Result {
				return state.Create(ctx, title)
			})
			if res.Err != nil {
				return fmt.Errorf("adding todo: %w", res.Err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s\n", formatter.StyleGreen.Render("✔"), formatter.FormatTodoLine(res.Todo))
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID TITLE...",
		Short: "Change the title of a todo",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.ID(args[0])
			title := strings.TrimSpace(strings.Join(args[1:], " "))
			if title == "" {
				return fmt.Errorf("editing todo %s: %w", id, service.ErrEmptyTitle)
			}

			state, err := app.loadState(cmd)
			if err != nil {
				return err
			}
			res := app.withSpinner(cmd, "Saving...", func(ctx context.Context) service.Result {
				return state.Edit(ctx, id, title)
			})
			if res.Err != nil {
				return fmt.Errorf("editing todo %s: %w", id, res.Err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated %s\n", formatter.StyleGreen.Render("✔"), formatter.FormatTodoLine(res.Todo))
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.ID(args[0])

			state, err := app.loadState(cmd)
			if err != nil {
				return err
			}
			res := app.withSpinner(cmd, "Removing...", func(ctx context.Context) service.Result {
				return state.Remove(ctx, id)
			})
			if res.Err != nil {
				return fmt.Errorf("removing todo %s: %w", id, res.Err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", formatter.StyleGreen.Render("✔"), formatter.Dim("#"+id.String()))
			return nil
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark a todo as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.ID(args[0])

			state, err := app.loadState(cmd)
			if err != nil {
				return err
			}
			res := app.withSpinner(cmd, "Completing...", func(ctx context.Context) service.Result {
				return state.Complete(ctx, id)
			})
			switch {
			case res.Err != nil:
				return fmt.Errorf("completing todo %s: %w", id, res.Err)
			case res.Skipped:
				t, ok := state.Get(id)
				if !ok {
					return fmt.Errorf("todo %s not found", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s already completed on %s\n",
					formatter.FormatTodoLine(t), t.DateCompleted)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Completed %s\n", formatter.StyleGreen.Render("✔"), formatter.FormatTodoLine(res.Todo))
			return nil
		},
	}
}

// loadState builds the client state and loads the collection, which every
// one-shot command needs before acting.
func (a *App) loadState(cmd *cobra.Command) (*service.TodoState, error) {
	state, err := a.State()
	if err != nil {
		return nil, err
	}
	res := a.withSpinner(cmd, "Loading todos...", state.Load)
	if res.Err != nil {
		return nil, fmt.Errorf("loading todos: %w", res.Err)
	}
	return state, nil
}

// withSpinner runs fn, animating a spinner on stderr when attached to a
// terminal.
func (a *App) withSpinner(cmd *cobra.Command, msg string, fn func(ctx context.Context) service.Result) service.Result {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if !a.interactive() {
		return fn(ctx)
	}
	stop := formatter.StartSpinner(cmd.ErrOrStderr(), msg)
	defer stop()
	return fn(ctx)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
