package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/todo-cli/internal/config"
	"github.com/xvierd/todo-cli/internal/domain"
)

// exampleDate shows what the configured layout looks like.
var exampleDate = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.Local)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration after merging defaults, the config file,
TODO_* environment variables and flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return err
			}
		}

		cfg := app.config
		logFile := cfg.Logging.File
		if logFile == "" {
			logFile = "off"
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Config file:      %s\n", path)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Store:            %s\n", cfg.Storage.Backend)
		fmt.Fprintf(out, "  Time step:        %dm\n", cfg.Editor.TimeStep)
		fmt.Fprintf(out, "  Date format:      %s\n", domain.FormatDateTimeLayout(&exampleDate, cfg.Editor.DateTimeLayout))
		fmt.Fprintf(out, "  Fade:             %s\n", cfg.Completion.FadeDuration)
		fmt.Fprintf(out, "  Log file:         %s (%s)\n", logFile, cfg.Logging.Level)
		fmt.Fprintln(out)
		return nil
	},
}
