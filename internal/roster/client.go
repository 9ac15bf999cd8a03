// Package roster ingests the public class roster into a course graph
// snapshot: it fetches classes per subject, parses prerequisite text into
// edges and computes degrees and PageRank centrality.
package roster

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/course-compass/internal/fetch"
	"github.com/jonathan/course-compass/internal/types"
)

// Roster API defaults.
const (
	DefaultBaseURL  = "https://classes.cornell.edu/api/2.0"
	DefaultSemester = "FA25"
	DefaultDelay    = time.Second
)

// DefaultSubjects are the departments ingested.
var DefaultSubjects = []types.Subject{types.SubjectCS, types.SubjectMath}

// RawCourse is one roster class before graph construction.
type RawCourse struct {
	ID            string
	Subject       types.Subject
	CatalogNumber string
	Title         string
	Description   string
	Prerequisites string
}

type searchResponse struct {
	Status string `json:"status"`
	Data   struct {
		Classes []rosterClass `json:"classes"`
	} `json:"data"`
}

type rosterClass struct {
	CatalogNbr           string `json:"catalogNbr"`
	TitleLong            string `json:"titleLong"`
	Description          string `json:"description"`
	CatalogPrereqCoreq   string `json:"catalogPrereqCoreq"`
	CatalogPrerequisites string `json:"catalogPrerequisites"`
}

// Client reads the class roster API.
type Client struct {
	baseURL string
	opts    *fetch.Options
	delay   time.Duration
	logger  *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithDelay sets the pause between subject requests.
func WithDelay(d time.Duration) ClientOption {
	return func(c *Client) { c.delay = d }
}

// WithFetchOptions overrides the HTTP options.
func WithFetchOptions(o *fetch.Options) ClientOption {
	return func(c *Client) { c.opts = o }
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a roster client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		opts:    fetch.DefaultOptions(),
		delay:   DefaultDelay,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchSubject returns every class of subject offered in semester.
func (c *Client) FetchSubject(ctx context.Context, semester string, subject types.Subject) ([]RawCourse, error) {
	q := url.Values{}
	q.Set("roster", semester)
	q.Set("subject", string(subject))
	endpoint := c.baseURL + "/search/classes.json?" + q.Encode()

	var resp searchResponse
	if err := fetch.JSON(ctx, endpoint, c.opts, &resp); err != nil {
		return nil, fmt.Errorf("fetch %s classes: %w", subject, err)
	}

	out := make([]RawCourse, 0, len(resp.Data.Classes))
	for _, cl := range resp.Data.Classes {
		nbr := strings.TrimSpace(cl.CatalogNbr)
		if nbr == "" {
			continue
		}
		prereq := cl.CatalogPrereqCoreq
		if strings.TrimSpace(prereq) == "" {
			prereq = cl.CatalogPrerequisites
		}
		out = append(out, RawCourse{
			ID:            string(subject) + " " + nbr,
			Subject:       subject,
			CatalogNumber: nbr,
			Title:         strings.TrimSpace(cl.TitleLong),
			Description:   fetch.HTMLToText(cl.Description),
			Prerequisites: fetch.HTMLToText(prereq),
		})
	}
	c.logger.Info("fetched roster subject",
		zap.String("subject", string(subject)),
		zap.String("semester", semester),
		zap.Int("classes", len(out)))
	return out, nil
}

// FetchAll fetches subjects one after another, pausing between requests.
// A failed subject is logged and skipped; the error is returned only when
// every subject failed.
func (c *Client) FetchAll(ctx context.Context, semester string, subjects []types.Subject) ([]RawCourse, error) {
	var (
		all     []RawCourse
		lastErr error
		failed  int
	)
	for i, subject := range subjects {
		if i > 0 && c.delay > 0 {
			select {
			case <-ctx.Done():
				return all, ctx.Err()
			case <-time.After(c.delay):
			}
		}
		courses, err := c.FetchSubject(ctx, semester, subject)
		if err != nil {
			c.logger.Error("roster subject failed", zap.String("subject", string(subject)), zap.Error(err))
			lastErr = err
			failed++
			continue
		}
		all = append(all, courses...)
	}
	if len(subjects) > 0 && failed == len(subjects) {
		return nil, lastErr
	}
	return all, nil
}
