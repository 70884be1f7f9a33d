package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete <lessonID>",
	Short: "Mark a lesson as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cleanup, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		lessonID := args[0]
		if _, ok := eng.Outline().Lookup(lessonID); !ok {
			return fmt.Errorf("lesson %q not found in the loaded outline", lessonID)
		}

		eng.CompleteLesson(cmd.Context(), lessonID)
		eng.PushProgress(cmd.Context())

		fmt.Printf("Completed %s. Overall progress: %d%%\n", lessonID, eng.OverallProgress())
		return nil
	},
}
