package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/course-compass/internal/state"
	"github.com/jonathan/course-compass/internal/types"
)

// MaxResumeBytes is the largest resume accepted for upload.
const MaxResumeBytes = 5 << 20

// ErrNoResume is returned when planning from a resume before one is uploaded.
var ErrNoResume = errors.New("no resume uploaded")

var resumeExtensions = map[string]struct{}{".pdf": {}, ".docx": {}, ".txt": {}}

// ResumeFileError rejects a resume before it is uploaded.
type ResumeFileError struct {
	Filename string
	Message  string
}

func (e *ResumeFileError) Error() string {
	return fmt.Sprintf("resume %q: %s", e.Filename, e.Message)
}

// UploadResume sends a resume to the resume provider and stores the parsed
// profile. Only PDF, DOCX and TXT files up to MaxResumeBytes are accepted.
func (s *Session) UploadResume(ctx context.Context, filename string, r io.Reader) (*types.ResumeProfile, error) {
	if _, ok := resumeExtensions[strings.ToLower(filepath.Ext(filename))]; !ok {
		err := &ResumeFileError{Filename: filename, Message: "please upload a PDF, DOCX, or TXT file"}
		s.Resume.Dispatch(state.SetResumeError(err.Message))
		return nil, err
	}
	if s.providers.Resume == nil {
		s.Resume.Dispatch(state.SetResumeError(ErrUnavailable.Error()))
		return nil, ErrUnavailable
	}

	body, err := io.ReadAll(io.LimitReader(r, MaxResumeBytes+1))
	if err != nil {
		s.Resume.Dispatch(state.SetResumeError(err.Error()))
		return nil, fmt.Errorf("read resume: %w", err)
	}
	if len(body) > MaxResumeBytes {
		err := &ResumeFileError{Filename: filename, Message: "file size must be less than 5MB"}
		s.Resume.Dispatch(state.SetResumeError(err.Message))
		return nil, err
	}

	s.Resume.Dispatch(state.SetUploading(true))
	profile, err := s.providers.Resume.ParseResume(ctx, filename, bytes.NewReader(body))
	if err != nil {
		s.logger.Error("resume parsing failed", zap.String("filename", filename), zap.Error(err))
		s.Resume.Dispatch(state.SetResumeError(err.Error()))
		return nil, err
	}
	s.Resume.Dispatch(state.SetProfile(profile))
	s.Resume.Dispatch(state.SetUploading(false))
	return profile, nil
}

// PlanFromResume generates a timeline from the uploaded profile. goal
// overrides the profile's inferred career goal when non-empty.
func (s *Session) PlanFromResume(ctx context.Context, goal string) error {
	profile := s.Resume.Get().Profile
	if profile == nil {
		return ErrNoResume
	}
	return s.GenerateTimeline(ctx, profile.TimelineRequest(goal))
}
