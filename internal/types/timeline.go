package types

import "fmt"

// PathKey names one of the three generated career paths.
type PathKey string

// The three paths every timeline plan carries.
const (
	PathTheorist PathKey = "theorist"
	PathEngineer PathKey = "engineer"
	PathBalanced PathKey = "balanced"
)

// PathKeys lists the path keys in display order.
var PathKeys = []PathKey{PathTheorist, PathEngineer, PathBalanced}

// ParsePathKey converts a string to a PathKey, rejecting unknown names.
func ParsePathKey(s string) (PathKey, error) {
	switch PathKey(s) {
	case PathTheorist, PathEngineer, PathBalanced:
		return PathKey(s), nil
	default:
		return "", fmt.Errorf("unknown path %q (expected theorist, engineer or balanced)", s)
	}
}

// TimelineCourse is one recommended course inside a semester.
type TimelineCourse struct {
	Code   string `json:"code"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// TimelineSemester is an ordered list of courses for one term.
// Course order is not meaningful but is preserved for stable rendering.
type TimelineSemester struct {
	Name    string           `json:"name"`
	Courses []TimelineCourse `json:"courses"`
}

// TimelinePath is a named career path: semesters in chronological order.
type TimelinePath struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	TargetCareer string             `json:"target_career"`
	Semesters    []TimelineSemester `json:"semesters"`
}

// TimelineAnalysis summarizes the career goal the plan was generated for.
type TimelineAnalysis struct {
	CareerField     string   `json:"career_field"`
	KeySkillsNeeded []string `json:"key_skills_needed"`
	CurrentLevel    string   `json:"current_level"`
}

// TimelinePaths holds exactly the three named paths.
type TimelinePaths struct {
	Theorist TimelinePath `json:"theorist"`
	Engineer TimelinePath `json:"engineer"`
	Balanced TimelinePath `json:"balanced"`
}

// TimelinePlan is the output of the timeline-generation provider.
type TimelinePlan struct {
	Analysis TimelineAnalysis `json:"analysis"`
	Paths    TimelinePaths    `json:"paths"`
}

// Path returns the path stored under key.
func (p *TimelinePlan) Path(key PathKey) (TimelinePath, bool) {
	switch key {
	case PathTheorist:
		return p.Paths.Theorist, true
	case PathEngineer:
		return p.Paths.Engineer, true
	case PathBalanced:
		return p.Paths.Balanced, true
	default:
		return TimelinePath{}, false
	}
}

// Courses returns every course of the path in semester order.
func (p TimelinePath) Courses() []TimelineCourse {
	var out []TimelineCourse
	for _, sem := range p.Semesters {
		out = append(out, sem.Courses...)
	}
	return out
}

// TimelineRequest is the input of the timeline-generation provider.
type TimelineRequest struct {
	CareerGoal       string   `json:"career_goal" validate:"required,max=500"`
	CompletedCourses []string `json:"completed_courses"`
	CurrentSemester  string   `json:"current_semester,omitempty"`
}

// DefaultCurrentSemester is assumed when a request omits the current semester.
const DefaultCurrentSemester = "Sophomore Fall"
