package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartingSemester(t *testing.T) {
	tests := []struct {
		level    string
		expected string
	}{
		{"freshman", "Freshman Spring"},
		{"sophomore", "Sophomore Fall"},
		{"Junior", "Junior Fall"},
		{" SENIOR ", "Senior Fall"},
		{"graduate", "Graduate Fall"},
		{"postdoc", "Sophomore Fall"},
		{"", "Sophomore Fall"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, StartingSemester(tt.level))
		})
	}
}

func TestResumeProfile_TimelineRequest(t *testing.T) {
	profile := &ResumeProfile{
		Courses:      []string{"CS 2110", "MATH 1920"},
		CareerGoal:   "Data Scientist",
		CurrentLevel: "junior",
	}

	req := profile.TimelineRequest("")
	assert.Equal(t, "Data Scientist", req.CareerGoal)
	assert.Equal(t, "Junior Fall", req.CurrentSemester)
	assert.Equal(t, []string{"CS 2110", "MATH 1920"}, req.CompletedCourses)

	req.CompletedCourses[0] = "changed"
	assert.Equal(t, "CS 2110", profile.Courses[0], "request must not alias the profile")

	assert.Equal(t, "Robotics at NVIDIA", profile.TimelineRequest("Robotics at NVIDIA").CareerGoal)
}
