// Package advisor answers student questions about courses through an LLM,
// grounding the prompt with catalog entries for the courses mentioned.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/course-compass/internal/extract"
	"github.com/jonathan/course-compass/internal/graph"
	"github.com/jonathan/course-compass/internal/llm"
	"github.com/jonathan/course-compass/internal/prompts"
	"github.com/jonathan/course-compass/internal/types"
)

// PlaceholderReply is returned when no LLM is configured.
const PlaceholderReply = "Chat functionality requires a Gemini API key. Please configure GEMINI_API_KEY in your .env file."

// HistoryLimit is the number of prior messages included in a prompt.
const HistoryLimit = 5

// GraphSource supplies the current course graph, or nil before one is loaded.
type GraphSource interface {
	Graph() *graph.Graph
}

// Error is a failed chat completion.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("advisor: %s: %v", e.Message, e.Cause)
	}
	return "advisor: " + e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Advisor implements the chat provider.
type Advisor struct {
	client llm.Client
	graphs GraphSource
	logger *zap.Logger
}

// New creates an advisor. client may be nil, in which case every message is
// answered with PlaceholderReply. graphs may be nil.
func New(client llm.Client, graphs GraphSource, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{client: client, graphs: graphs, logger: logger}
}

// Enabled reports whether an LLM is configured.
func (a *Advisor) Enabled() bool { return a.client != nil }

// SendMessage returns the assistant reply to message given prior history.
func (a *Advisor) SendMessage(ctx context.Context, message string, history []types.HistoryEntry) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", &Error{Message: "message is required"}
	}
	if a.client == nil {
		return PlaceholderReply, nil
	}

	prompt := a.buildPrompt(message, history)
	reply, err := a.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		a.logger.Error("chat completion failed", zap.Error(err))
		return "", &Error{Message: "chat completion failed", Cause: err}
	}
	return strings.TrimSpace(reply), nil
}

func (a *Advisor) buildPrompt(message string, history []types.HistoryEntry) string {
	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}

	var hist strings.Builder
	for _, h := range history {
		speaker := "Student"
		if h.Role == string(types.RoleAssistant) {
			speaker = "Advisor"
		}
		fmt.Fprintf(&hist, "%s: %s\n", speaker, strings.TrimSpace(h.Content))
	}
	if hist.Len() == 0 {
		hist.WriteString("(none)\n")
	}

	prompt := prompts.Format(prompts.MustGet(prompts.Courses, "advisor-chat"), map[string]string{
		"History": strings.TrimRight(hist.String(), "\n"),
		"Message": message,
	})

	if ctxText := a.courseContext(message); ctxText != "" {
		prompt = prompts.Format(prompts.MustGet(prompts.Courses, "advisor-course-context"),
			map[string]string{"Courses": ctxText}) + "\n" + prompt
	}
	return prompt
}

// courseContext describes the catalog entries for codes in message.
func (a *Advisor) courseContext(message string) string {
	if a.graphs == nil {
		return ""
	}
	g := a.graphs.Graph()
	if g == nil {
		return ""
	}

	var sb strings.Builder
	for _, code := range extract.UniqueCodes(message) {
		c, ok := g.Course(code)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "- %s: %s", c.ID, c.Title)
		if len(c.Prerequisites) > 0 {
			fmt.Fprintf(&sb, " (prerequisites: %s)", strings.Join(c.Prerequisites, ", "))
		}
		if len(c.Unlocks) > 0 {
			fmt.Fprintf(&sb, " (unlocks: %s)", strings.Join(c.Unlocks, ", "))
		}
		if c.HasReviews() {
			fmt.Fprintf(&sb, " (difficulty %.1f/10, enjoyment %.1f/10 from %d reviews)",
				c.DifficultyScore, c.EnjoymentScore, c.CommentCount)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
