package advisor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/course-compass/internal/graph"
	"github.com/jonathan/course-compass/internal/llm"
	"github.com/jonathan/course-compass/internal/types"
)

type fakeLLM struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeLLM) GetModel(llm.ModelTier) string { return "fake" }
func (f *fakeLLM) Close() error                  { return nil }

type staticGraph struct{ g *graph.Graph }

func (s staticGraph) Graph() *graph.Graph { return s.g }

func testGraph() *graph.Graph {
	return graph.New(types.GraphData{
		Nodes: []types.Course{
			{ID: "CS 2110", Title: "Object-Oriented Programming and Data Structures", Subject: types.SubjectCS},
			{ID: "CS 3110", Title: "Data Structures and Functional Programming", Subject: types.SubjectCS,
				DifficultyScore: 7.5, EnjoymentScore: 8, CommentCount: 12},
		},
		Links: []types.Edge{{Source: "CS 2110", Target: "CS 3110"}},
	}, nil)
}

func TestSendMessage_Placeholder(t *testing.T) {
	a := New(nil, nil, nil)

	reply, err := a.SendMessage(t.Context(), "What should I take?", nil)
	require.NoError(t, err)
	assert.Equal(t, PlaceholderReply, reply)
	assert.False(t, a.Enabled())
}

func TestSendMessage_EmptyMessage(t *testing.T) {
	_, err := New(&fakeLLM{}, nil, nil).SendMessage(t.Context(), "  ", nil)
	var advErr *Error
	assert.ErrorAs(t, err, &advErr)
}

func TestSendMessage_PromptCarriesHistoryAndContext(t *testing.T) {
	client := &fakeLLM{reply: "  Take CS 3110 next.  "}
	a := New(client, staticGraph{testGraph()}, nil)

	var history []types.HistoryEntry
	for i := 1; i <= 7; i++ {
		role := types.RoleUser
		if i%2 == 0 {
			role = types.RoleAssistant
		}
		history = append(history, types.HistoryEntry{Role: string(role), Content: fmt.Sprintf("turn %d", i)})
	}

	reply, err := a.SendMessage(t.Context(), "Is CS 3110 hard after CS2110?", history)
	require.NoError(t, err)
	assert.Equal(t, "Take CS 3110 next.", reply)

	assert.NotContains(t, client.prompt, "turn 2")
	assert.Contains(t, client.prompt, "Student: turn 3")
	assert.Contains(t, client.prompt, "Advisor: turn 4")
	assert.Contains(t, client.prompt, "Student: turn 7")
	assert.Contains(t, client.prompt, "Student question: Is CS 3110 hard after CS2110?")
	assert.Contains(t, client.prompt, "- CS 3110: Data Structures and Functional Programming (prerequisites: CS 2110)")
	assert.Contains(t, client.prompt, "difficulty 7.5/10")
	assert.Contains(t, client.prompt, "- CS 2110: Object-Oriented Programming and Data Structures (unlocks: CS 3110)")
}

func TestSendMessage_NoGraphYet(t *testing.T) {
	client := &fakeLLM{reply: "ok"}
	a := New(client, staticGraph{}, nil)

	_, err := a.SendMessage(t.Context(), "CS 2110?", nil)
	require.NoError(t, err)
	assert.Contains(t, client.prompt, "(none)")
	assert.NotContains(t, client.prompt, "Known courses")
}

func TestSendMessage_ProviderError(t *testing.T) {
	cause := errors.New("deadline exceeded")
	_, err := New(&fakeLLM{err: cause}, nil, nil).SendMessage(t.Context(), "hi", nil)
	assert.ErrorIs(t, err, cause)
}
