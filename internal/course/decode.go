package course

import (
	"encoding/json"
	"fmt"
	"time"
)

// Enrollment links a learner to a course and carries the backend's
// view of overall progress.
type Enrollment struct {
	ID       string
	Progress int
	Course   Course
}

// Wire shapes for the enrollment payload. Only the fields the engine
// needs are decoded; everything else in the payload is ignored.
type enrollmentPayload struct {
	ID       string        `json:"id"`
	Progress int           `json:"progress"`
	Course   coursePayload `json:"course"`
}

type coursePayload struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	TotalModules int             `json:"totalModules"`
	Modules      []modulePayload `json:"modules"`
}

type modulePayload struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Duration    float64             `json:"duration"`
	Order       int                 `json:"order"`
	Lessons     []lessonPayload     `json:"lessons"`
	Assignments []assignmentPayload `json:"assignments"`
}

type lessonPayload struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Order    int     `json:"order"`
	IsActive *bool   `json:"isActive"`
	VideoURL string  `json:"videoUrl"`
	FileURL  string  `json:"fileUrl"`
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

type assignmentPayload struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TotalMarks  int       `json:"totalMarks"`
	DueDate     time.Time `json:"dueDate"`
	GithubLink  string    `json:"githubLink"`
	LiveLink    string    `json:"liveLink"`
}

// DecodeEnrollment parses an enrollment payload into the session's
// immutable outline. Modules are sorted into display order here, once;
// lesson arrays keep payload order so persisted positions stay valid.
func DecodeEnrollment(data []byte) (*Enrollment, error) {
	var p enrollmentPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode enrollment: %w", err)
	}
	if p.Course.ID == "" {
		return nil, fmt.Errorf("decode enrollment: missing course id")
	}

	c := Course{
		ID:           p.Course.ID,
		Title:        p.Course.Title,
		TotalModules: p.Course.TotalModules,
		Modules:      make([]Module, 0, len(p.Course.Modules)),
	}
	for _, mp := range p.Course.Modules {
		m := Module{
			ID:       mp.ID,
			Title:    mp.Title,
			Duration: secondsToDuration(mp.Duration),
			Order:    mp.Order,
			Lessons:  make([]Lesson, 0, len(mp.Lessons)),
		}
		for _, lp := range mp.Lessons {
			active := true
			if lp.IsActive != nil {
				active = *lp.IsActive
			}
			m.Lessons = append(m.Lessons, Lesson{
				ID:       lp.ID,
				Title:    lp.Title,
				Order:    lp.Order,
				Active:   active,
				Content:  DetectContent(lp.VideoURL, lp.FileURL, lp.Text),
				Duration: secondsToDuration(lp.Duration),
			})
		}
		for _, ap := range mp.Assignments {
			m.Assignments = append(m.Assignments, Assignment{
				ID:          ap.ID,
				Title:       ap.Title,
				Description: ap.Description,
				TotalMarks:  ap.TotalMarks,
				DueDate:     ap.DueDate,
				GithubLink:  ap.GithubLink,
				LiveLink:    ap.LiveLink,
			})
		}
		c.Modules = append(c.Modules, m)
	}
	sortModules(c.Modules)

	// TotalModules defaults to the loaded count when the backend
	// omits it, so progress math never divides by zero.
	if c.TotalModules < len(c.Modules) {
		c.TotalModules = len(c.Modules)
	}

	return &Enrollment{ID: p.ID, Progress: p.Progress, Course: c}, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
