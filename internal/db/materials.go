package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/course-compass/internal/types"
)

// GetStudyMaterials returns the cached materials for code, or nil when none
// are stored.
func (db *DB) GetStudyMaterials(ctx context.Context, code string) (*CachedMaterials, error) {
	var (
		m   CachedMaterials
		raw []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT course_code, course_title, materials, generated, fetched_at
		 FROM study_materials WHERE course_code = $1`, code,
	).Scan(&m.CourseCode, &m.CourseTitle, &raw, &m.Generated, &m.FetchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get study materials for %s: %w", code, err)
	}
	if err := json.Unmarshal(raw, &m.Materials); err != nil {
		return nil, fmt.Errorf("failed to decode study materials for %s: %w", code, err)
	}
	return &m, nil
}

// SaveStudyMaterials upserts the materials for m.CourseCode.
func (db *DB) SaveStudyMaterials(ctx context.Context, m types.CourseStudyMaterials, generated bool) error {
	raw, err := json.Marshal(m.Materials)
	if err != nil {
		return fmt.Errorf("failed to marshal study materials: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO study_materials (course_code, course_title, materials, generated, fetched_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (course_code) DO UPDATE
		 SET course_title = $2, materials = $3, generated = $4, fetched_at = NOW()`,
		m.CourseCode, m.CourseTitle, raw, generated,
	)
	if err != nil {
		return fmt.Errorf("failed to save study materials for %s: %w", m.CourseCode, err)
	}
	return nil
}

// DeleteStudyMaterials removes the cached entry for code.
func (db *DB) DeleteStudyMaterials(ctx context.Context, code string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM study_materials WHERE course_code = $1`, code); err != nil {
		return fmt.Errorf("failed to delete study materials for %s: %w", code, err)
	}
	return nil
}
