package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/course-compass/internal/types"
)

// SaveGraph replaces the stored course graph with data in one transaction.
// Edges that reference unknown courses are skipped.
func (db *DB) SaveGraph(ctx context.Context, data types.GraphData) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM course_edges`); err != nil {
		return fmt.Errorf("failed to clear edges: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM courses`); err != nil {
		return fmt.Errorf("failed to clear courses: %w", err)
	}

	known := make(map[string]struct{}, len(data.Nodes))
	courseRows := make([][]any, 0, len(data.Nodes))
	for i, c := range data.Nodes {
		if _, dup := known[c.ID]; dup {
			continue
		}
		known[c.ID] = struct{}{}
		courseRows = append(courseRows, []any{
			c.ID, i, c.Title, c.Description, string(c.Subject), c.CatalogNumber,
			c.DifficultyScore, c.EnjoymentScore, c.CommentCount, nullIfEmpty(c.Confidence),
			c.InDegree, c.OutDegree, c.Centrality,
		})
	}
	_, err = tx.CopyFrom(ctx, pgx.Identifier{"courses"},
		[]string{"id", "position", "title", "description", "subject", "catalog_number",
			"difficulty_score", "enjoyment_score", "comment_count", "confidence",
			"in_degree", "out_degree", "centrality"},
		pgx.CopyFromRows(courseRows))
	if err != nil {
		return fmt.Errorf("failed to insert courses: %w", err)
	}

	batch := &pgx.Batch{}
	for i, e := range data.Links {
		_, okS := known[e.Source]
		_, okT := known[e.Target]
		if !okS || !okT {
			continue
		}
		batch.Queue(`INSERT INTO course_edges (source, target, position) VALUES ($1, $2, $3)
			ON CONFLICT (source, target) DO NOTHING`, e.Source, e.Target, i)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert edges: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit graph: %w", err)
	}
	return nil
}

// LoadGraph reads the stored graph in its original order. An empty database
// yields an empty snapshot.
func (db *DB) LoadGraph(ctx context.Context) (types.GraphData, error) {
	data := types.GraphData{Directed: true, Nodes: []types.Course{}, Links: []types.Edge{}}

	rows, err := db.pool.Query(ctx,
		`SELECT id, title, description, subject, catalog_number, difficulty_score,
		        enjoyment_score, comment_count, COALESCE(confidence, ''), in_degree,
		        out_degree, centrality
		 FROM courses ORDER BY position`)
	if err != nil {
		return data, fmt.Errorf("failed to query courses: %w", err)
	}
	data.Nodes, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.Course, error) {
		var c types.Course
		var subject string
		err := row.Scan(&c.ID, &c.Title, &c.Description, &subject, &c.CatalogNumber,
			&c.DifficultyScore, &c.EnjoymentScore, &c.CommentCount, &c.Confidence,
			&c.InDegree, &c.OutDegree, &c.Centrality)
		c.Subject = types.Subject(subject)
		return c, err
	})
	if err != nil {
		return data, fmt.Errorf("failed to scan courses: %w", err)
	}

	rows, err = db.pool.Query(ctx, `SELECT source, target FROM course_edges ORDER BY position`)
	if err != nil {
		return data, fmt.Errorf("failed to query edges: %w", err)
	}
	data.Links, err = pgx.CollectRows(rows, pgx.RowToStructByPos[types.Edge])
	if err != nil {
		return data, fmt.Errorf("failed to scan edges: %w", err)
	}
	return data, nil
}

// GraphStats counts the stored courses and edges.
func (db *DB) GraphStats(ctx context.Context) (SnapshotStats, error) {
	var s SnapshotStats
	err := db.pool.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM courses),
		        (SELECT COUNT(*) FROM course_edges),
		        (SELECT MAX(updated_at) FROM courses)`,
	).Scan(&s.Courses, &s.Edges, &s.UpdatedAt)
	if err != nil {
		return s, fmt.Errorf("failed to read graph stats: %w", err)
	}
	return s, nil
}
