package materials

import "github.com/jonathan/course-compass/internal/types"

// Fallback returns the static list served when generation fails.
func Fallback(title string) []types.StudyMaterial {
	return []types.StudyMaterial{
		{
			Title:       title + " - Course Website",
			Type:        types.MaterialDocumentation,
			URL:         "https://classes.cornell.edu",
			Description: "Official course website with lectures, assignments, and resources",
			Difficulty:  types.DifficultyIntermediate,
		},
		{
			Title:       "Cornell CS Department Resources",
			Type:        types.MaterialDocumentation,
			URL:         "https://www.cs.cornell.edu",
			Description: "General CS department resources and study guides",
			Difficulty:  types.DifficultyBeginner,
		},
		{
			Title:       "Introduction to " + title,
			Type:        types.MaterialVideo,
			URL:         "https://www.youtube.com",
			Description: "Video tutorials covering course fundamentals",
			Difficulty:  types.DifficultyBeginner,
			Duration:    "Variable",
		},
		{
			Title:       "Practice Problems",
			Type:        types.MaterialPractice,
			URL:         "https://leetcode.com",
			Description: "Coding exercises to reinforce course concepts",
			Difficulty:  types.DifficultyIntermediate,
		},
		{
			Title:       "Advanced Topics and Research Papers",
			Type:        types.MaterialArticle,
			URL:         "https://arxiv.org",
			Description: "Research papers and advanced materials for deeper understanding",
			Difficulty:  types.DifficultyAdvanced,
		},
	}
}
