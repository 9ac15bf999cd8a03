package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jonathan/course-compass/internal/types"
)

var errNotConfigured = errors.New("provider not configured")

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "Course Compass API",
		"version": Version,
	})
}

// handleReady reports whether backing stores are reachable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.Ready != nil {
		if err := s.deps.Ready(r.Context()); err != nil {
			s.errorResponse(w, http.StatusServiceUnavailable, err.Error())
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleGraph returns the course graph in node-link format.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	if s.deps.Graph == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, errNotConfigured.Error())
		return
	}
	data, err := s.deps.Graph.FetchGraph(r.Context())
	if err != nil {
		s.providerError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, data)
}

// handleChat answers one assistant turn.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.deps.Chat == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, errNotConfigured.Error())
		return
	}
	var req types.ChatRequest
	if !s.decode(w, r, &req) {
		return
	}
	reply, err := s.deps.Chat.SendMessage(r.Context(), req.Message, req.History)
	if err != nil {
		s.providerError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.ChatResponse{Response: reply})
}

// handlePlanTimeline generates the three timeline paths for a career goal.
func (s *Server) handlePlanTimeline(w http.ResponseWriter, r *http.Request) {
	if s.deps.Timeline == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, errNotConfigured.Error())
		return
	}
	var req types.TimelineRequest
	if !s.decode(w, r, &req) {
		return
	}
	plan, err := s.deps.Timeline.GenerateTimeline(r.Context(), req)
	if err != nil {
		s.providerError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, plan)
}

// handleStudyMaterials returns curated resources for one course.
func (s *Server) handleStudyMaterials(w http.ResponseWriter, r *http.Request) {
	if s.deps.Materials == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, errNotConfigured.Error())
		return
	}
	m, err := s.deps.Materials.StudyMaterials(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.providerError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, m)
}

// decode reads a JSON body into dst and validates it, writing a 400 and
// returning false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			verr := &ErrValidation{Field: verrs[0].Field(), Message: verrs[0].Tag() + " constraint failed"}
			s.errorResponse(w, HTTPStatus(verr), verr.Error())
			return false
		}
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
