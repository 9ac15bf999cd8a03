package timeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/course-compass/internal/extract"
	"github.com/jonathan/course-compass/internal/llm"
	"github.com/jonathan/course-compass/internal/prompts"
	"github.com/jonathan/course-compass/internal/schemas"
	"github.com/jonathan/course-compass/internal/types"
	rootschemas "github.com/jonathan/course-compass/schemas"
)

// maxCatalogCourses bounds how many catalog entries are listed in the prompt.
const maxCatalogCourses = 60

// Planner generates the three career timelines for a goal.
type Planner struct {
	client   llm.Client
	courses  func() []types.Course
	tier     llm.ModelTier
	validate *validator.Validate
	logger   *zap.Logger
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithCatalog lists the courses returned by fn in the prompt so the model
// prefers real catalog entries. fn is called once per request.
func WithCatalog(fn func() []types.Course) PlannerOption {
	return func(p *Planner) { p.courses = fn }
}

// WithLogger sets the planner logger.
func WithLogger(l *zap.Logger) PlannerOption {
	return func(p *Planner) { p.logger = l }
}

// WithTier overrides the model tier (standard by default).
func WithTier(t llm.ModelTier) PlannerOption {
	return func(p *Planner) { p.tier = t }
}

// NewPlanner creates a planner. A nil client yields a planner whose every
// call fails with an APICallError, mirroring a missing API key.
func NewPlanner(client llm.Client, opts ...PlannerOption) *Planner {
	p := &Planner{
		client:   client,
		tier:     llm.TierStandard,
		validate: validator.New(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GenerateTimeline implements the timeline-generation provider.
func (p *Planner) GenerateTimeline(ctx context.Context, req types.TimelineRequest) (*types.TimelinePlan, error) {
	req, err := p.normalizeRequest(req)
	if err != nil {
		return nil, err
	}
	if p.client == nil {
		return nil, &APICallError{Message: "Gemini API key required for timeline planning"}
	}

	prompt, err := p.buildPrompt(req)
	if err != nil {
		return nil, err
	}

	raw, err := p.client.GenerateJSON(ctx, prompt, p.tier)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate timeline", Cause: err}
	}

	plan, err := ParsePlan(raw)
	if err != nil {
		p.logger.Warn("timeline response rejected", zap.Error(err), zap.Int("response_bytes", len(raw)))
		return nil, err
	}

	p.logger.Info("timeline generated",
		zap.String("career_field", plan.Analysis.CareerField),
		zap.Int("completed_courses", len(req.CompletedCourses)))
	return plan, nil
}

func (p *Planner) normalizeRequest(req types.TimelineRequest) (types.TimelineRequest, error) {
	req.CareerGoal = strings.TrimSpace(req.CareerGoal)
	if err := p.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return req, &ValidationError{Field: "career_goal", Message: verrs[0].Tag() + " constraint failed", Cause: err}
		}
		return req, &ValidationError{Message: "invalid request", Cause: err}
	}

	codes := make([]string, 0, len(req.CompletedCourses))
	for _, c := range req.CompletedCourses {
		code, _ := extract.NormalizeCode(c)
		if code != "" {
			codes = append(codes, code)
		}
	}
	req.CompletedCourses = extract.Dedupe(codes)

	req.CurrentSemester = strings.TrimSpace(req.CurrentSemester)
	if req.CurrentSemester == "" {
		req.CurrentSemester = types.DefaultCurrentSemester
	}
	return req, nil
}

func (p *Planner) buildPrompt(req types.TimelineRequest) (string, error) {
	completed := "None"
	if len(req.CompletedCourses) > 0 {
		completed = strings.Join(req.CompletedCourses, ", ")
	}

	available := ""
	if p.courses != nil {
		if list := catalogLines(p.courses(), req.CompletedCourses); list != "" {
			available = prompts.Format(prompts.MustGet(prompts.Courses, "timeline-available-courses"),
				map[string]string{"Courses": list})
		}
	}

	prompt, err := prompts.Render(prompts.Courses, "timeline-plan", map[string]string{
		"CareerGoal":       req.CareerGoal,
		"CompletedCourses": completed,
		"CurrentSemester":  req.CurrentSemester,
		"AvailableCourses": available,
	})
	if err != nil {
		return "", fmt.Errorf("build timeline prompt: %w", err)
	}
	return prompt, nil
}

func catalogLines(courses []types.Course, completed []string) string {
	done := make(map[string]struct{}, len(completed))
	for _, c := range completed {
		done[c] = struct{}{}
	}
	var sb strings.Builder
	n := 0
	for _, c := range courses {
		if _, ok := done[c.ID]; ok {
			continue
		}
		if n == maxCatalogCourses {
			break
		}
		fmt.Fprintf(&sb, "- %s: %s\n", c.ID, c.Title)
		n++
	}
	return sb.String()
}

// ParsePlan decodes a model response into a plan. The response may be
// wrapped in markdown fences or surrounded by prose. It must validate against
// the timeline plan schema, which requires all three paths; a schema
// violation is a ParseError wrapping a ValidationError.
func ParsePlan(raw string) (*types.TimelinePlan, error) {
	text := llm.ExtractJSON(raw)
	if text == "" {
		return nil, &ParseError{Message: "empty response"}
	}

	if err := schemas.ValidateDocument(rootschemas.TimelinePlan, []byte(text)); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			field := ""
			if len(ve.Errors) > 0 {
				field = ve.Errors[0].Field
			}
			return nil, &ParseError{
				Message: "response does not match the timeline plan schema",
				Cause:   &ValidationError{Field: field, Message: "schema violation", Cause: err},
			}
		}
		return nil, &ParseError{Message: "invalid JSON response", Cause: err}
	}

	var plan types.TimelinePlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return nil, &ParseError{Message: "failed to decode timeline plan", Cause: err}
	}

	for _, key := range types.PathKeys {
		path := pathRef(&plan, key)
		for i := range path.Semesters {
			for j := range path.Semesters[i].Courses {
				c := &path.Semesters[i].Courses[j]
				c.Code, _ = extract.NormalizeCode(c.Code)
			}
		}
	}
	return &plan, nil
}

func pathRef(plan *types.TimelinePlan, key types.PathKey) *types.TimelinePath {
	switch key {
	case types.PathTheorist:
		return &plan.Paths.Theorist
	case types.PathEngineer:
		return &plan.Paths.Engineer
	default:
		return &plan.Paths.Balanced
	}
}
