package roster

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/course-compass/internal/types"
)

// Neutral sentiment assigned to courses without reviews.
const NeutralConfidence = "none"

// parseConcurrency bounds concurrent prerequisite parser calls.
const parseConcurrency = 4

// Build turns raw roster classes into a node-link snapshot. Duplicate ids
// keep the first class. Edges run prerequisite -> course and are added only
// when the prerequisite is itself in the roster.
func Build(ctx context.Context, raw []RawCourse, parser PrereqParser) (types.GraphData, error) {
	if parser == nil {
		parser = RegexParser{}
	}

	seen := make(map[string]int, len(raw))
	courses := make([]RawCourse, 0, len(raw))
	for _, r := range raw {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = len(courses)
		courses = append(courses, r)
	}

	prereqs := make([][]string, len(courses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parseConcurrency)
	for i, c := range courses {
		if c.Prerequisites == "" {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			prereqs[i] = parser.Parse(gctx, c.Prerequisites)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.GraphData{}, err
	}

	data := types.GraphData{
		Directed:   true,
		Multigraph: false,
		Graph:      map[string]any{},
		Nodes:      make([]types.Course, len(courses)),
		Links:      []types.Edge{},
	}
	for i, c := range courses {
		data.Nodes[i] = types.Course{
			ID:              c.ID,
			Title:           c.Title,
			Description:     c.Description,
			Subject:         c.Subject,
			CatalogNumber:   c.CatalogNumber,
			DifficultyScore: types.NeutralScore,
			EnjoymentScore:  types.NeutralScore,
			CommentCount:    0,
			Confidence:      NeutralConfidence,
		}
	}

	edgeSeen := map[types.Edge]struct{}{}
	for i, codes := range prereqs {
		target := courses[i].ID
		for _, src := range codes {
			if src == target {
				continue
			}
			if _, ok := seen[src]; !ok {
				continue
			}
			e := types.Edge{Source: src, Target: target}
			if _, dup := edgeSeen[e]; dup {
				continue
			}
			edgeSeen[e] = struct{}{}
			data.Links = append(data.Links, e)
			data.Nodes[seen[src]].OutDegree++
			data.Nodes[i].InDegree++
		}
	}

	for i, rank := range PageRank(len(data.Nodes), data.Links, seen) {
		data.Nodes[i].Centrality = math.Round(rank*10000) / 10000
	}
	return data, nil
}

// PageRank computes PageRank with damping 0.85 over n nodes, where index maps
// node ids to positions. Dangling nodes spread their rank uniformly.
func PageRank(n int, edges []types.Edge, index map[string]int) []float64 {
	const (
		damping = 0.85
		maxIter = 100
		tol     = 1e-6
	)
	if n == 0 {
		return nil
	}

	out := make([][]int, n)
	for _, e := range edges {
		s, okS := index[e.Source]
		t, okT := index[e.Target]
		if okS && okT {
			out[s] = append(out[s], t)
		}
	}

	rank := make([]float64, n)
	for i := range rank {
		rank[i] = 1 / float64(n)
	}
	next := make([]float64, n)

	for iter := 0; iter < maxIter; iter++ {
		dangling := 0.0
		for i, targets := range out {
			if len(targets) == 0 {
				dangling += rank[i]
			}
		}
		base := (1-damping)/float64(n) + damping*dangling/float64(n)
		for i := range next {
			next[i] = base
		}
		for i, targets := range out {
			if len(targets) == 0 {
				continue
			}
			share := damping * rank[i] / float64(len(targets))
			for _, t := range targets {
				next[t] += share
			}
		}

		diff := 0.0
		for i := range rank {
			diff += math.Abs(next[i] - rank[i])
		}
		rank, next = next, rank
		if diff < float64(n)*tol {
			break
		}
	}
	return rank
}
