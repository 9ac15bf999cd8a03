package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/course-compass/internal/advisor"
	"github.com/jonathan/course-compass/internal/catalog"
	"github.com/jonathan/course-compass/internal/llm"
	"github.com/jonathan/course-compass/internal/materials"
	"github.com/jonathan/course-compass/internal/timeline"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation   *ErrValidation
		notFound     *materials.NotFoundError
		planInvalid  *timeline.ValidationError
		planParse    *timeline.ParseError
		planAPI      *timeline.APICallError
		advisorError *advisor.Error
	)
	// a ParseError may wrap a ValidationError, so it is checked first
	switch {
	case errors.As(err, &planParse):
		return http.StatusBadGateway
	case errors.As(err, &validation), errors.As(err, &planInvalid):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.Is(err, catalog.ErrNotLoaded):
		return http.StatusNotFound
	case errors.Is(err, llm.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &planAPI), errors.As(err, &advisorError):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
