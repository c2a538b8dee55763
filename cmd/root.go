// Package cmd provides the CLI commands for the todo application.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/xvierd/todo-cli/internal/adapters/tui"
)

var (
	// Version info (set at build time via ldflags)
	Version = "dev"

	// Global flags
	configPath  string
	storeFlag   string
	logFileFlag string
	logLevel    string
)

// errNoTerminal is returned when the screen is started without a TTY.
var errNoTerminal = errors.New("todo needs an interactive terminal")

// stdoutIsTerminal reports whether the screen can take over stdout.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(os.Stdout.Fd())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "Todo - a minimal to-do screen for the terminal",
	Long: `Todo is a single interactive to-do screen: add, edit, complete and
delete items, each with optional notes and a date and time.

Nothing is kept once the screen closes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runScreen,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.todo/config.toml)")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Store backend: memory or sqlite")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", `Log file path, or "off"`)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Todo CLI\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(configCmd)
}

// runScreen starts the interactive to-do screen. Cobra skips
// PersistentPostRunE when RunE fails, so resources are released here too.
func runScreen(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		err = errors.Join(err, cleanupServices())
	}()

	if !stdoutIsTerminal() {
		return errNoTerminal
	}

	ctx := setupSignalHandler()

	screen := tui.NewScreen(app.todos, app.editor, app.completions, tui.Options{
		TimeStep:       app.config.Editor.TimeStep,
		DateTimeLayout: app.config.Editor.DateTimeLayout,
		Theme:          &app.config.Theme,
		Logger:         app.logger,
	})

	app.logger.Info("screen started", "store", app.config.Storage.Backend)
	if err := screen.Run(ctx); err != nil {
		return err
	}
	app.logger.Info("screen closed")
	return nil
}
