package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/courseflow/internal/submission"
)

var submitCmd = &cobra.Command{
	Use:   "submit <assignmentID>",
	Short: "Submit assignment work to the backend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cleanup, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		desc, _ := cmd.Flags().GetString("description")
		github, _ := cmd.Flags().GetString("github")
		live, _ := cmd.Flags().GetString("live")

		assignmentID := args[0]
		eng.Workflow().SetDraft(cmd.Context(), assignmentID, submission.Draft{
			Description: desc,
			GithubLink:  github,
			LiveLink:    live,
		})

		rec, err := eng.SubmitAssignment(cmd.Context(), assignmentID)
		if err != nil {
			return err
		}
		fmt.Printf("Submitted %s (submission %s, status %s)\n",
			assignmentID, rec.SubmissionID, rec.Status)
		return nil
	},
}

func init() {
	submitCmd.Flags().String("description", "", "Submission description (min 10 characters)")
	submitCmd.Flags().String("github", "", "GitHub repository link")
	submitCmd.Flags().String("live", "", "Live deployment link")
}
