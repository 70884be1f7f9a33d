package progress

import (
	"math"

	"github.com/abhisek/courseflow/internal/course"
)

// ModuleProgress computes a module's completion percentage from its
// active lessons. A module with zero active lessons has progress 0 and
// can never reach 100, which deliberately keeps the following module
// locked.
func ModuleProgress(m *course.Module, r *Record) int {
	total := m.ActiveLessonCount()
	if total == 0 {
		return 0
	}
	done := completedInModule(m, r)
	return roundPct(done, total)
}

// OverallProgress computes the course completion percentage as the
// share of fully completed modules over the authoritative
// TotalModules count. Modules the client never received count as
// incomplete.
func OverallProgress(c *course.Course, r *Record) int {
	if c.TotalModules <= 0 {
		return 0
	}
	done := 0
	for i := range c.Modules {
		if ModuleProgress(&c.Modules[i], r) == 100 {
			done++
		}
	}
	return roundPct(done, c.TotalModules)
}

// OverallWithAssignments is the variant used after an assignment
// submission: a module counts as complete only when its lessons are at
// 100 and every one of its assignments is in the submitted set.
// Modules without assignments degrade to the plain definition, so the
// two calculators never disagree for assignment-free courses.
func OverallWithAssignments(c *course.Course, r *Record, submitted map[string]bool) int {
	if c.TotalModules <= 0 {
		return 0
	}
	done := 0
	for i := range c.Modules {
		m := &c.Modules[i]
		if ModuleProgress(m, r) != 100 {
			continue
		}
		complete := true
		for ai := range m.Assignments {
			if !submitted[m.Assignments[ai].ID] {
				complete = false
				break
			}
		}
		if complete {
			done++
		}
	}
	return roundPct(done, c.TotalModules)
}

func roundPct(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(part) / float64(whole)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
