package roster

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/course-compass/internal/extract"
	"github.com/jonathan/course-compass/internal/llm"
)

// PrereqParser turns prerequisite text into course codes.
type PrereqParser interface {
	Parse(ctx context.Context, text string) []string
}

// RegexParser extracts codes with the course-code pattern.
type RegexParser struct{}

// Parse implements PrereqParser.
func (RegexParser) Parse(_ context.Context, text string) []string {
	return extract.UniqueCodes(text)
}

// LLMParser asks a model for the codes and falls back to RegexParser on any
// failure.
type LLMParser struct {
	Client llm.Client
	Logger *zap.Logger
}

// Parse implements PrereqParser.
func (p LLMParser) Parse(ctx context.Context, text string) []string {
	if text == "" {
		return []string{}
	}
	var out struct {
		Courses []string `json:"courses"`
	}
	if err := llm.Extract(ctx, p.Client, llm.TierLite, llm.PrerequisiteSchema(), text, &out); err != nil {
		if p.Logger != nil {
			p.Logger.Warn("prerequisite parsing failed, using regex", zap.Error(err))
		}
		return RegexParser{}.Parse(ctx, text)
	}
	codes := make([]string, 0, len(out.Courses))
	for _, c := range out.Courses {
		if code, ok := extract.NormalizeCode(c); ok {
			codes = append(codes, code)
		}
	}
	return extract.Dedupe(codes)
}
