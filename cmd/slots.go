package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/todo-cli/internal/domain"
)

var (
	slotsStep int
	slotsJSON bool
)

// slotsCmd prints the time slots offered by the time list.
var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Print the selectable time slots",
	Long: `Print the "HH:MM" slots the time list offers, from 00:00 up to but
excluding 24:00. The step defaults to editor.time_step from the config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		step := slotsStep
		if step == 0 {
			step = app.config.Editor.TimeStep
		}

		slots, err := domain.GenerateTimeSlots(step)
		if err != nil {
			return fmt.Errorf("failed to generate slots: %w", err)
		}

		out := cmd.OutOrStdout()
		if slotsJSON {
			data := map[string]interface{}{
				"step":  step,
				"slots": slots,
				"count": len(slots),
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal slots: %w", err)
			}
			fmt.Fprintln(out, string(jsonData))
			return nil
		}

		fmt.Fprintln(out, strings.Join(slots, "\n"))
		return nil
	},
}

func init() {
	slotsCmd.Flags().IntVar(&slotsStep, "step", 0, "Minutes between slots (default: editor.time_step)")
	slotsCmd.Flags().BoolVar(&slotsJSON, "json", false, "Output results in JSON format")
}
