// Package store archives completed distillation runs in PostgreSQL so past
// selections stay queryable after the PDFs leave the machine.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Store manages the PostgreSQL connection for the run archive.
type Store struct {
	conn *pgx.Conn
}

// Run is one archived distillation pass.
type Run struct {
	ID        int64
	InputDir  string
	Output    string
	FramesIn  int
	SlidesOut int
	CreatedAt time.Time
}

// Slide is one selected representative within a run.
type Slide struct {
	Position    int    // order within the document, starting at 0
	FrameIndex  int    // capture-order index in the original input
	Source      string // source image path
	Fingerprint uint64 // pHash bits
}

// New establishes a connection to the database and ensures the schema is initialized.
func New(ctx context.Context, connString string) (*Store, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Initialize schema (Auto-Migration)
	if err := initSchema(ctx, conn); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

func initSchema(ctx context.Context, conn *pgx.Conn) error {
	query := `
		CREATE TABLE IF NOT EXISTS distill_runs (
			id BIGSERIAL PRIMARY KEY,
			input_dir TEXT NOT NULL,
			output_path TEXT NOT NULL,
			frames_in INT NOT NULL,
			slides_out INT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS distill_slides (
			id BIGSERIAL PRIMARY KEY,
			run_id BIGINT REFERENCES distill_runs(id) ON DELETE CASCADE,
			position INT NOT NULL,
			frame_index INT NOT NULL,
			source TEXT NOT NULL,
			fingerprint BIGINT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS distill_slides_run_id_idx ON distill_slides (run_id);
	`
	_, err := conn.Exec(ctx, query)
	return err
}

// Close terminates the database connection.
func (s *Store) Close(ctx context.Context) {
	s.conn.Close(ctx)
}

// RecordRun archives a completed run and its selected slides atomically,
// returning the new run ID.
func (s *Store) RecordRun(ctx context.Context, run Run, slides []Slide) (int64, error) {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO distill_runs (input_dir, output_path, frames_in, slides_out)
		VALUES ($1, $2, $3, $4) RETURNING id
	`, run.InputDir, run.Output, run.FramesIn, run.SlidesOut).Scan(&id)
	if err != nil {
		return 0, err
	}

	for _, sl := range slides {
		// Fingerprints are 64 raw bits; BIGINT stores them via int64 cast.
		_, err = tx.Exec(ctx, `
			INSERT INTO distill_slides (run_id, position, frame_index, source, fingerprint)
			VALUES ($1, $2, $3, $4, $5)
		`, id, sl.Position, sl.FrameIndex, sl.Source, int64(sl.Fingerprint))
		if err != nil {
			return 0, err
		}
	}

	return id, tx.Commit(ctx)
}

// ListRuns returns all archived runs, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT id, input_dir, output_path, frames_in, slides_out, created_at
		FROM distill_runs ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.InputDir, &r.Output, &r.FramesIn, &r.SlidesOut, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetSlides returns the slide sequence of one run in document order.
func (s *Store) GetSlides(ctx context.Context, runID int64) ([]Slide, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT position, frame_index, source, fingerprint
		FROM distill_slides WHERE run_id = $1 ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slides []Slide
	for rows.Next() {
		var sl Slide
		var bits int64
		if err := rows.Scan(&sl.Position, &sl.FrameIndex, &sl.Source, &bits); err != nil {
			return nil, err
		}
		sl.Fingerprint = uint64(bits)
		slides = append(slides, sl)
	}
	return slides, rows.Err()
}

// Reset drops all archive tables to clear the database state.
// This is useful for development to force a schema refresh without migrations.
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.conn.Exec(ctx, `
		DROP TABLE IF EXISTS distill_slides CASCADE;
		DROP TABLE IF EXISTS distill_runs CASCADE;
	`)
	return err
}
