package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive todo list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
}

// runTUI runs the full-screen list until the user quits.
func runTUI(app *App) error {
	todos, err := app.State()
	if err != nil {
		return err
	}
	state := &SharedState{Todos: todos, Now: app.Now}
	p := tea.NewProgram(newAppModel(state), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
