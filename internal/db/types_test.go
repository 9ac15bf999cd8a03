package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCachedMaterials_IsStale(t *testing.T) {
	fresh := &CachedMaterials{FetchedAt: time.Now().Add(-time.Minute)}
	old := &CachedMaterials{FetchedAt: time.Now().Add(-48 * time.Hour)}

	assert.False(t, fresh.IsStale(time.Hour))
	assert.True(t, old.IsStale(24*time.Hour))
	assert.False(t, old.IsStale(0), "zero max age never expires")
	assert.False(t, old.IsStale(-time.Hour))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	v := nullIfEmpty("high")
	if assert.NotNil(t, v) {
		assert.Equal(t, "high", *v)
	}
}

func TestSchemaStatements(t *testing.T) {
	assert.Len(t, schemaStatements, 3)
	assert.Contains(t, schemaStatements[0], "CREATE TABLE IF NOT EXISTS courses")
	assert.Contains(t, schemaStatements[1], "REFERENCES courses(id)")
	assert.Contains(t, schemaStatements[2], "study_materials")
}
