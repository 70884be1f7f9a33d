package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all progress for the enrolled course",
	Long: "Deletes the persisted position, playback progress, completed-lesson " +
		"set, drafts, and submitted set for this user and course, resetting to " +
		"module 0, lesson 0. Destructive.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to clear progress without --yes")
		}

		eng, cleanup, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		eng.ClearProgress(cmd.Context())
		fmt.Println("Progress cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the destructive reset")
}
