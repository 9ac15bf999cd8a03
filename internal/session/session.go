// Package session drives the state containers from the providers: it loads
// the graph, runs the assistant conversation, generates timelines and
// gathers study materials, discarding responses that a newer request has
// superseded.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/course-compass/internal/client"
	"github.com/jonathan/course-compass/internal/extract"
	"github.com/jonathan/course-compass/internal/graph"
	"github.com/jonathan/course-compass/internal/materials"
	"github.com/jonathan/course-compass/internal/state"
	"github.com/jonathan/course-compass/internal/timeline"
	"github.com/jonathan/course-compass/internal/types"
)

// ChatErrorReply is the assistant message shown when the chat provider fails.
const ChatErrorReply = "Sorry, I encountered an error. Please try again."

// ChatHistoryLimit is the number of earlier messages sent with each turn.
const ChatHistoryLimit = 5

// ErrStale is returned when a response arrived after a newer request was
// issued and was therefore discarded.
var ErrStale = errors.New("response superseded by a newer request")

// ErrUnavailable is returned when the provider for a feature is not configured.
var ErrUnavailable = errors.New("provider not configured")

// Session owns the four state containers.
type Session struct {
	Graph    *state.Store[state.GraphState]
	Chat     *state.Store[state.ChatState]
	Timeline *state.Store[state.TimelineState]
	Resume   *state.Store[state.ResumeState]

	providers   client.Providers
	graphSeq    state.Sequencer
	timelineSeq state.Sequencer
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock overrides the message timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a session with fresh state containers.
func New(p client.Providers, opts ...Option) *Session {
	s := &Session{
		Graph:     state.NewStore(state.InitialGraphState()),
		Chat:      state.NewStore(state.InitialChatState()),
		Timeline:  state.NewStore(state.InitialTimelineState()),
		Resume:    state.NewStore(state.InitialResumeState()),
		providers: p,
		logger:    zap.NewNop(),
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Providers returns the providers the session was built with.
func (s *Session) Providers() client.Providers {
	return s.providers
}

// LoadGraph fetches a snapshot and replaces the graph. Failures land in
// GraphState.Error. A response overtaken by a later LoadGraph is dropped.
func (s *Session) LoadGraph(ctx context.Context) error {
	if s.providers.Graph == nil {
		s.Graph.Dispatch(state.SetGraphError(ErrUnavailable.Error()))
		return ErrUnavailable
	}
	token := s.graphSeq.Next()
	s.Graph.Dispatch(state.SetGraphLoading(true))

	data, err := s.providers.Graph.FetchGraph(ctx)
	if !s.graphSeq.IsCurrent(token) {
		return ErrStale
	}
	if err != nil {
		s.logger.Error("failed to load graph", zap.Error(err))
		s.Graph.Dispatch(state.SetGraphError(err.Error()))
		return err
	}
	g := graph.New(data, s.logger)
	s.Graph.Dispatch(state.SetGraph(g))
	s.logger.Info("graph loaded", zap.Int("courses", g.Len()), zap.Int("edges", g.EdgeCount()))
	return nil
}

// DisplayGraph returns the renderable form of the loaded graph.
func (s *Session) DisplayGraph() (graph.DisplayGraph, bool) {
	g := s.Graph.Get().Graph
	if g == nil {
		return graph.DisplayGraph{}, false
	}
	return graph.EnhanceForDisplay(g), true
}

// SelectCourse selects the course with id, or clears the selection when id
// is empty. It reports false when id is not in the loaded graph.
func (s *Session) SelectCourse(id string) bool {
	if id == "" {
		s.Graph.Dispatch(state.SelectCourse(nil))
		return true
	}
	g := s.Graph.Get().Graph
	if g == nil {
		return false
	}
	c, ok := g.Course(id)
	if !ok {
		return false
	}
	s.Graph.Dispatch(state.SelectCourse(&c))
	return true
}

// FocusView builds the focused display graph around the selected course.
func (s *Session) FocusView() (graph.DisplayGraph, bool) {
	st := s.Graph.Get()
	if st.Graph == nil || st.Selected == nil {
		return graph.DisplayGraph{}, false
	}
	return graph.FocusView(*st.Selected, st.Graph.Courses()), true
}

// SendMessage runs one assistant turn. The user message is appended first;
// the reply (or ChatErrorReply on failure) follows. Course codes in the
// reply replace the graph highlight set when there are any. The returned
// message is the assistant entry.
func (s *Session) SendMessage(ctx context.Context, text string) (types.ChatMessage, error) {
	history := types.ToHistory(s.Chat.Get().Recent(ChatHistoryLimit))

	s.Chat.Dispatch(state.AddMessage(types.ChatMessage{
		ID:        s.newID(),
		Role:      types.RoleUser,
		Content:   text,
		Timestamp: s.now(),
	}))
	s.Chat.Dispatch(state.SetTyping(true))
	defer s.Chat.Dispatch(state.SetTyping(false))

	var (
		reply string
		err   error
	)
	if s.providers.Chat == nil {
		err = ErrUnavailable
	} else {
		reply, err = s.providers.Chat.SendMessage(ctx, text, history)
	}
	if err != nil {
		s.logger.Error("chat failed", zap.Error(err))
		msg := types.ChatMessage{
			ID:        s.newID(),
			Role:      types.RoleAssistant,
			Content:   ChatErrorReply,
			Timestamp: s.now(),
		}
		s.Chat.Dispatch(state.AddMessage(msg))
		return msg, err
	}

	codes := extract.CourseCodes(reply)
	msg := types.ChatMessage{
		ID:                 s.newID(),
		Role:               types.RoleAssistant,
		Content:            reply,
		Timestamp:          s.now(),
		HighlightedCourses: codes,
	}
	s.Chat.Dispatch(state.AddMessage(msg))
	if len(codes) > 0 {
		s.Graph.Dispatch(state.HighlightCourses(codes))
	}
	return msg, nil
}

// GenerateTimeline requests a plan. Only the newest request may store its
// result; older responses return ErrStale and leave the state alone.
func (s *Session) GenerateTimeline(ctx context.Context, req types.TimelineRequest) error {
	if s.providers.Timeline == nil {
		s.Timeline.Dispatch(state.SetTimelineError(ErrUnavailable.Error()))
		return ErrUnavailable
	}
	token := s.timelineSeq.Next()
	s.Timeline.Dispatch(state.SetGenerating(true))

	plan, err := s.providers.Timeline.GenerateTimeline(ctx, req)
	if !s.timelineSeq.IsCurrent(token) {
		s.logger.Debug("discarding stale timeline response")
		return ErrStale
	}
	if err != nil {
		s.logger.Error("timeline generation failed", zap.Error(err))
		s.Timeline.Dispatch(state.SetTimelineError(err.Error()))
		return err
	}
	s.Timeline.Dispatch(state.SetPlan(plan))
	s.Timeline.Dispatch(state.SetGenerating(false))
	return nil
}

// SelectPath switches the displayed path. key is one of theorist, engineer
// or balanced.
func (s *Session) SelectPath(key string) error {
	k, err := types.ParsePathKey(key)
	if err != nil {
		return err
	}
	s.Timeline.Dispatch(state.SelectPath(k))
	return nil
}

// CurrentLayout lays out the selected path of the loaded plan.
func (s *Session) CurrentLayout() (timeline.RenderGraph, bool) {
	path, ok := s.Timeline.Get().CurrentPath()
	if !ok {
		return timeline.RenderGraph{}, false
	}
	return timeline.Layout(path, timeline.DefaultSpacing), true
}

// StudyMaterials fetches materials for the selected path's leading courses.
// Courses whose fetch fails are omitted.
func (s *Session) StudyMaterials(ctx context.Context) ([]types.CourseStudyMaterials, error) {
	if s.providers.Materials == nil {
		return nil, ErrUnavailable
	}
	path, ok := s.Timeline.Get().CurrentPath()
	if !ok {
		return []types.CourseStudyMaterials{}, nil
	}
	return materials.FetchForPlan(ctx, s.providers.Materials, path), nil
}

// Reset clears the timeline and resume state. A timeline request still in
// flight is made stale so its response cannot refill the cleared plan.
func (s *Session) Reset() {
	s.timelineSeq.Next()
	s.Timeline.Dispatch(state.ResetTimeline)
	s.Resume.Dispatch(state.ResetResume)
}
