// Package course defines the immutable course outline: the tree of
// modules, lessons, and assignments decoded once from an enrollment
// payload at session start.
package course

import "time"

// Course is the top-level outline for a single enrollment.
type Course struct {
	// ID identifies the course on the backend.
	ID string

	// Title is the display name of the course.
	Title string

	// TotalModules is the authoritative module count reported by the
	// backend. It may exceed len(Modules) when the client received a
	// partial outline, and it is the denominator for overall progress.
	TotalModules int

	// Modules holds the modules actually loaded, in payload order.
	Modules []Module
}

// Module is a top-level course section containing lessons and
// optional assignments.
type Module struct {
	ID          string
	Title       string
	Duration    time.Duration
	Order       int
	Lessons     []Lesson
	Assignments []Assignment
}

// Lesson is an atomic learning unit within a module.
type Lesson struct {
	ID       string
	Title    string
	Order    int
	Active   bool
	Content  Content
	Duration time.Duration
}

// Assignment describes a task the learner submits work for. The links
// here are the instructor's reference links, not submission data.
type Assignment struct {
	ID          string
	Title       string
	Description string
	TotalMarks  int
	DueDate     time.Time
	GithubLink  string
	LiveLink    string
}

// Lookup finds a lesson by id across all loaded modules. The boolean
// reports whether the lesson exists in the current outline.
func (c *Course) Lookup(lessonID string) (*Lesson, bool) {
	for mi := range c.Modules {
		m := &c.Modules[mi]
		for li := range m.Lessons {
			if m.Lessons[li].ID == lessonID {
				return &m.Lessons[li], true
			}
		}
	}
	return nil, false
}

// AssignmentByID finds an assignment by id across all loaded modules.
func (c *Course) AssignmentByID(assignmentID string) (*Assignment, bool) {
	for mi := range c.Modules {
		m := &c.Modules[mi]
		for ai := range m.Assignments {
			if m.Assignments[ai].ID == assignmentID {
				return &m.Assignments[ai], true
			}
		}
	}
	return nil, false
}
