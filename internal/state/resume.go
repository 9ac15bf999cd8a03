package state

import "github.com/jonathan/course-compass/internal/types"

// ResumeState backs the resume upload form.
type ResumeState struct {
	Profile   *types.ResumeProfile
	Uploading bool
	Error     *string
}

// InitialResumeState is the state Reset returns to.
func InitialResumeState() ResumeState {
	return ResumeState{}
}

// SetProfile stores a parsed resume and clears any error.
func SetProfile(p *types.ResumeProfile) func(ResumeState) ResumeState {
	return func(s ResumeState) ResumeState {
		s.Profile = p
		s.Error = nil
		return s
	}
}

// SetUploading marks an upload as in flight or done.
func SetUploading(uploading bool) func(ResumeState) ResumeState {
	return func(s ResumeState) ResumeState {
		s.Uploading = uploading
		return s
	}
}

// SetResumeError records (or clears, with "") an upload error and ends the upload.
func SetResumeError(msg string) func(ResumeState) ResumeState {
	return func(s ResumeState) ResumeState {
		s.Error = errorPtr(msg)
		s.Uploading = false
		return s
	}
}

// ResetResume discards the parsed resume.
func ResetResume(ResumeState) ResumeState {
	return InitialResumeState()
}
