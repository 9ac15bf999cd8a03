// Package materials curates study resources for known courses. Resources are
// generated by an LLM, validated, cached in Postgres and replaced by a static
// fallback list when generation fails.
package materials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/course-compass/internal/db"
	"github.com/jonathan/course-compass/internal/llm"
	"github.com/jonathan/course-compass/internal/prompts"
	"github.com/jonathan/course-compass/internal/schemas"
	"github.com/jonathan/course-compass/internal/types"
	rootschemas "github.com/jonathan/course-compass/schemas"
)

// Lookup sources reported to the Observer.
const (
	SourceCache     = "cache"
	SourceGenerated = "generated"
	SourceFallback  = "fallback"
)

// NotFoundError is returned for codes outside the known course table.
type NotFoundError struct {
	Code string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no study materials found for course %s", e.Code)
}

// Cache stores generated materials. *db.DB implements it.
type Cache interface {
	GetStudyMaterials(ctx context.Context, code string) (*db.CachedMaterials, error)
	SaveStudyMaterials(ctx context.Context, m types.CourseStudyMaterials, generated bool) error
}

// Observer is told where each answer came from.
type Observer interface {
	ObserveMaterials(source string)
}

// Service implements the study-materials provider.
type Service struct {
	client   llm.Client
	cache    Cache
	ttl      time.Duration
	observer Observer
	validate *validator.Validate
	logger   *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables the Postgres cache with entries expiring after ttl.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.ttl = ttl
	}
}

// WithObserver reports lookup sources, typically to metrics.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates the service. A nil client always serves the fallback list.
func NewService(client llm.Client, opts ...Option) *Service {
	s := &Service{
		client:   client,
		validate: validator.New(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StudyMaterials returns the materials for code, which may be written as
// "CS 2110" or "cs2110".
func (s *Service) StudyMaterials(ctx context.Context, code string) (*types.CourseStudyMaterials, error) {
	canonical, title, ok := Lookup(code)
	if !ok {
		return nil, &NotFoundError{Code: code}
	}

	if s.cache != nil {
		cached, err := s.cache.GetStudyMaterials(ctx, canonical)
		switch {
		case err != nil:
			s.logger.Warn("materials cache read failed", zap.String("course", canonical), zap.Error(err))
		case cached != nil && !cached.IsStale(s.ttl):
			s.observe(SourceCache)
			out := cached.CourseStudyMaterials
			return &out, nil
		}
	}

	out := &types.CourseStudyMaterials{CourseCode: canonical, CourseTitle: title}
	items, err := s.generate(ctx, canonical, title)
	if err != nil {
		s.logger.Warn("materials generation failed, serving fallback",
			zap.String("course", canonical), zap.Error(err))
		out.Materials = Fallback(title)
		s.observe(SourceFallback)
		return out, nil
	}
	out.Materials = items
	s.observe(SourceGenerated)

	if s.cache != nil {
		if err := s.cache.SaveStudyMaterials(ctx, *out, true); err != nil {
			s.logger.Warn("materials cache write failed", zap.String("course", canonical), zap.Error(err))
		}
	}
	return out, nil
}

func (s *Service) generate(ctx context.Context, code, title string) ([]types.StudyMaterial, error) {
	if s.client == nil {
		return nil, llm.ErrNoAPIKey
	}

	prompt, err := prompts.Render(prompts.Courses, "study-materials", map[string]string{
		"CourseCode":  code,
		"CourseTitle": title,
	})
	if err != nil {
		return nil, err
	}

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}
	return s.decode(llm.ExtractJSON(raw))
}

// decode validates the response envelope and keeps only well-formed items.
func (s *Service) decode(text string) ([]types.StudyMaterial, error) {
	if err := schemas.ValidateDocument(rootschemas.StudyMaterials, []byte(text)); err != nil {
		return nil, err
	}
	var envelope struct {
		Materials []types.StudyMaterial `json:"materials"`
	}
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return nil, fmt.Errorf("decode materials: %w", err)
	}

	kept := make([]types.StudyMaterial, 0, len(envelope.Materials))
	for i, m := range envelope.Materials {
		if err := s.validate.Struct(m); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				s.logger.Debug("dropping invalid material", zap.Int("index", i), zap.String("field", verrs[0].Field()))
			}
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) == 0 {
		return nil, errors.New("no valid materials in response")
	}
	return kept, nil
}

func (s *Service) observe(source string) {
	if s.observer != nil {
		s.observer.ObserveMaterials(source)
	}
}
