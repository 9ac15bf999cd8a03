package types

// MaterialType categorizes a study resource.
type MaterialType string

// Material types
const (
	MaterialVideo         MaterialType = "video"
	MaterialArticle       MaterialType = "article"
	MaterialPractice      MaterialType = "practice"
	MaterialDocumentation MaterialType = "documentation"
	MaterialBook          MaterialType = "book"
)

// MaterialDifficulty is the target audience of a study resource.
type MaterialDifficulty string

// Difficulty levels
const (
	DifficultyBeginner     MaterialDifficulty = "beginner"
	DifficultyIntermediate MaterialDifficulty = "intermediate"
	DifficultyAdvanced     MaterialDifficulty = "advanced"
)

// StudyMaterial is a single recommended resource for a course.
type StudyMaterial struct {
	Title       string             `json:"title" validate:"required"`
	Type        MaterialType       `json:"type" validate:"required,oneof=video article practice documentation book"`
	URL         string             `json:"url" validate:"required,url"`
	Description string             `json:"description"`
	Difficulty  MaterialDifficulty `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	Duration    string             `json:"duration,omitempty"`
}

// CourseStudyMaterials groups the materials returned for one course.
type CourseStudyMaterials struct {
	CourseCode  string          `json:"course_code"`
	CourseTitle string          `json:"course_title"`
	Materials   []StudyMaterial `json:"materials"`
}
