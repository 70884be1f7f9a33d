package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show unlock state and progress for the enrolled course",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cleanup, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		outline := eng.Outline()
		pos := eng.Position()

		fmt.Printf("%s  (%d%% complete, %d/%d modules loaded)\n\n",
			outline.Title, eng.OverallProgress(), len(outline.Modules), outline.TotalModules)

		for mi := range outline.Modules {
			m := &outline.Modules[mi]
			lock := "locked"
			if eng.IsModuleUnlocked(mi) {
				lock = "open"
			}
			fmt.Printf("[%d] %s  %3d%%  (%s)\n", mi, m.Title, eng.ModuleProgress(mi), lock)

			for _, ref := range m.ActiveSorted() {
				marker := " "
				if eng.IsLessonUnlocked(mi, ref.StorageIndex) {
					marker = "·"
				}
				if pos.ModuleIndex == mi && pos.LessonIndex == ref.StorageIndex {
					marker = ">"
				}
				fmt.Printf("  %s %s (%s) [%s]\n", marker, ref.Lesson.Title,
					ref.Lesson.Content.Kind, ref.Lesson.ID)
			}
			for ai := range m.Assignments {
				state := "locked"
				if eng.IsAssignmentUnlocked(mi) {
					state = "open"
				}
				a := &m.Assignments[ai]
				if rec, ok := eng.Workflow().Record(a.ID); ok {
					state = string(rec.Status)
				}
				fmt.Printf("  * %s (assignment, %s) [%s]\n", a.Title, state, a.ID)
			}
		}
		return nil
	},
}
