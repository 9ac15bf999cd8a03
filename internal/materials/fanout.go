package materials

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/course-compass/internal/extract"
	"github.com/jonathan/course-compass/internal/types"
)

// PlanLimit is the number of courses of a path fetched by FetchForPlan.
const PlanLimit = 6

// Provider fetches the materials for one course.
type Provider interface {
	StudyMaterials(ctx context.Context, code string) (*types.CourseStudyMaterials, error)
}

// PlanCodes returns the unique course codes of path in order of first
// appearance, truncated to limit.
func PlanCodes(path types.TimelinePath, limit int) []string {
	var codes []string
	for _, c := range path.Courses() {
		codes = append(codes, c.Code)
	}
	codes = extract.Dedupe(codes)
	if limit >= 0 && len(codes) > limit {
		codes = codes[:limit]
	}
	return codes
}

// FetchForPlan fetches materials for the first PlanLimit unique courses of
// path in parallel. A course whose fetch fails is omitted; the result keeps
// the path order and never returns an error of its own.
func FetchForPlan(ctx context.Context, p Provider, path types.TimelinePath) []types.CourseStudyMaterials {
	codes := PlanCodes(path, PlanLimit)
	results := make([]*types.CourseStudyMaterials, len(codes))

	g, gctx := errgroup.WithContext(ctx)
	for i, code := range codes {
		g.Go(func() error {
			m, err := p.StudyMaterials(gctx, code)
			if err == nil {
				results[i] = m
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]types.CourseStudyMaterials, 0, len(results))
	for _, m := range results {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out
}
