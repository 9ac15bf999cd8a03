// Package client talks to the course-compass HTTP API. Each provider is
// described by a small interface so the session can be driven by this HTTP
// client or by in-process implementations.
package client

import (
	"context"
	"io"

	"github.com/jonathan/course-compass/internal/types"
)

// GraphProvider supplies the course graph snapshot.
type GraphProvider interface {
	FetchGraph(ctx context.Context) (types.GraphData, error)
}

// ChatProvider answers one assistant turn.
type ChatProvider interface {
	SendMessage(ctx context.Context, message string, history []types.HistoryEntry) (string, error)
}

// TimelineProvider turns a career goal into a three-path plan.
type TimelineProvider interface {
	GenerateTimeline(ctx context.Context, req types.TimelineRequest) (*types.TimelinePlan, error)
}

// MaterialsProvider returns study materials for one course.
type MaterialsProvider interface {
	StudyMaterials(ctx context.Context, code string) (*types.CourseStudyMaterials, error)
}

// ResumeProvider parses an uploaded resume into a profile.
type ResumeProvider interface {
	ParseResume(ctx context.Context, filename string, r io.Reader) (*types.ResumeProfile, error)
}

// Providers groups every collaborator the session needs. Nil members disable
// the matching feature.
type Providers struct {
	Graph     GraphProvider
	Chat      ChatProvider
	Timeline  TimelineProvider
	Materials MaterialsProvider
	Resume    ResumeProvider
}
