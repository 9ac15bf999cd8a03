package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/course-compass/internal/types"
)

func TestResumeState(t *testing.T) {
	s := SetUploading(true)(InitialResumeState())
	assert.True(t, s.Uploading)

	s = SetResumeError("unsupported file type")(s)
	require.NotNil(t, s.Error)
	assert.False(t, s.Uploading)

	profile := &types.ResumeProfile{CareerGoal: "SWE"}
	s = SetProfile(profile)(s)
	assert.Nil(t, s.Error)
	assert.Same(t, profile, s.Profile)

	assert.Equal(t, InitialResumeState(), ResetResume(s))
}
