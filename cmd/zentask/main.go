// Package main is the entry point for the Zentask TUI application.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/zentask/zentask/internal/api"
	"github.com/zentask/zentask/internal/config"
	"github.com/zentask/zentask/internal/session"
	"github.com/zentask/zentask/internal/tui"
)

const version = "0.1.0"

const helpText = `zentask - Terminal client for the Zentask to-do server

USAGE:
    zentask [OPTIONS]

OPTIONS:
    -h, --help      Show this help message
    -v, --version   Show version information
    --init          Create a template config file
    --server URL    Override the server URL for this run

CONFIGURATION:
    Config file: ~/.config/zentask/config.yaml

KEYBINDINGS:
    Navigation:
        j/k         Move down/up
        g/G         Go to top/bottom
        Ctrl+d/u    Half page down/up
        Tab         Switch between panes
        Enter       Toggle completion

    Task Actions:
        a           Add new task
        e           Edit selected task
        d           Delete task (with confirmation)
        Space       Complete/uncomplete task
        y           Copy task title to clipboard

    Other:
        r           Refresh
        S           Seed mock tasks
        Ctrl+l      Log out
        ?           Show help
        q           Quit
`

const configTemplate = `# Zentask Configuration
# Location: ~/.config/zentask/config.yaml

server:
  # URL of the zentaskd server
  url: "http://localhost:3001"

ui:
  # Enable Vim-style keybindings (default: true)
  vim_mode: true
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showHelp    bool
		showVersion bool
		initConfig  bool
		serverURL   string
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create template config file")
	flag.StringVar(&serverURL, "server", "", "Override server URL")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	if showHelp {
		fmt.Print(helpText)
		return nil
	}
	if showVersion {
		fmt.Printf("zentask version %s\n", version)
		return nil
	}
	if initConfig {
		return createConfigTemplate()
	}

	return runApp(serverURL)
}

// createConfigTemplate creates a template configuration file.
func createConfigTemplate() error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if _, err := config.ConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n", path)
	return nil
}

// runApp starts the main TUI application.
func runApp(serverURL string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}

	tokens := config.NewCredentials()
	client := api.NewClient(cfg.Server.URL, tokens)

	// The program is created after the controller, so navigation events
	// are forwarded through this indirection.
	var program *tea.Program
	sessions := session.NewController(client, tokens, func(route session.Route) {
		if program != nil {
			program.Send(tui.RouteChangedMsg{Route: route})
		}
	})

	app := tui.NewApp(client, sessions, cfg)
	program = tea.NewProgram(app, tea.WithAltScreen())

	go func() {
		for range client.Unauthorized() {
			sessions.HandleUnauthorized()
			_ = beeep.Notify("Zentask", "Session expired, please log in again", "")
			program.Send(tui.ForcedLogoutMsg{})
		}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
