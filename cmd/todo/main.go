package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/todo/internal/cli"
	"github.com/alexanderramin/todo/internal/config"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := cli.NewApp(config.Load())
	defer app.Close()

	// Detect interactive terminal for the TUI entrypoint and prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
