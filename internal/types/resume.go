package types

import "strings"

// AcademicLevel is the standing inferred from a resume.
type AcademicLevel string

// Academic levels reported by the resume provider
const (
	LevelFreshman  AcademicLevel = "freshman"
	LevelSophomore AcademicLevel = "sophomore"
	LevelJunior    AcademicLevel = "junior"
	LevelSenior    AcademicLevel = "senior"
	LevelGraduate  AcademicLevel = "graduate"
)

var levelSemesters = map[AcademicLevel]string{
	LevelFreshman:  "Freshman Spring",
	LevelSophomore: "Sophomore Fall",
	LevelJunior:    "Junior Fall",
	LevelSenior:    "Senior Fall",
	LevelGraduate:  "Graduate Fall",
}

// StartingSemester maps a reported level (any casing) to the semester a
// generated timeline should start from. Unknown levels start at Sophomore Fall.
func StartingSemester(level string) string {
	if sem, ok := levelSemesters[AcademicLevel(strings.ToLower(strings.TrimSpace(level)))]; ok {
		return sem
	}
	return DefaultCurrentSemester
}

// ResumeProfile is the structured output of the resume provider.
type ResumeProfile struct {
	Skills          []string `json:"skills"`
	Courses         []string `json:"courses"`
	ExperienceYears int      `json:"experience_years"`
	Summary         string   `json:"summary"`
	CareerGoal      string   `json:"career_goal"`
	Interests       []string `json:"interests"`
	CurrentLevel    string   `json:"current_level"`
}

// TimelineRequest builds the timeline request implied by the profile.
// goal overrides the inferred career goal when non-empty.
func (p *ResumeProfile) TimelineRequest(goal string) TimelineRequest {
	if strings.TrimSpace(goal) == "" {
		goal = p.CareerGoal
	}
	return TimelineRequest{
		CareerGoal:       goal,
		CompletedCourses: append([]string(nil), p.Courses...),
		CurrentSemester:  StartingSemester(p.CurrentLevel),
	}
}
