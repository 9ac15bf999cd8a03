package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathKey(t *testing.T) {
	for _, key := range PathKeys {
		got, err := ParsePathKey(string(key))
		require.NoError(t, err)
		assert.Equal(t, key, got)
	}

	_, err := ParsePathKey("wizard")
	assert.Error(t, err)
}

func TestTimelinePlan_JSONUnmarshaling(t *testing.T) {
	jsonInput := `{
		"analysis": {
			"career_field": "Machine Learning",
			"key_skills_needed": ["linear algebra", "python"],
			"current_level": "strong foundation"
		},
		"paths": {
			"theorist": {"title": "The Theorist", "semesters": [{"name": "Junior Fall", "courses": [{"code": "CS 4820", "title": "Algorithms", "reason": "core"}]}]},
			"engineer": {"title": "The Engineer", "semesters": []},
			"balanced": {"title": "The Balanced", "target_career": "Versatile roles", "semesters": []}
		}
	}`

	var plan TimelinePlan
	require.NoError(t, json.Unmarshal([]byte(jsonInput), &plan))

	assert.Equal(t, "Machine Learning", plan.Analysis.CareerField)
	assert.Len(t, plan.Analysis.KeySkillsNeeded, 2)

	theorist, ok := plan.Path(PathTheorist)
	require.True(t, ok)
	require.Len(t, theorist.Semesters, 1)
	assert.Equal(t, "CS 4820", theorist.Semesters[0].Courses[0].Code)

	balanced, ok := plan.Path(PathBalanced)
	require.True(t, ok)
	assert.Equal(t, "Versatile roles", balanced.TargetCareer)

	_, ok = plan.Path("unknown")
	assert.False(t, ok)
}

func TestTimelinePath_Courses(t *testing.T) {
	path := TimelinePath{
		Semesters: []TimelineSemester{
			{Name: "A", Courses: []TimelineCourse{{Code: "CS 2110"}, {Code: "MATH 2210"}}},
			{Name: "B"},
			{Name: "C", Courses: []TimelineCourse{{Code: "CS 3110"}}},
		},
	}

	codes := []string{}
	for _, c := range path.Courses() {
		codes = append(codes, c.Code)
	}
	assert.Equal(t, []string{"CS 2110", "MATH 2210", "CS 3110"}, codes)
}
