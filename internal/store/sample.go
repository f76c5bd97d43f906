package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/gestr/internal/touch"
)

// Sample is a finalized gesture sample stored in the database.
type Sample struct {
	ID          string        `json:"id"`
	GestureID   string        `json:"gesture_id"`
	SampleIndex int           `json:"sample_index"`
	FrameCount  int           `json:"frame_count"`
	Fingers     int           `json:"fingers"`
	Frames      []touch.Frame `json:"frames"`
	CreatedAt   time.Time     `json:"created_at"`
}

// SampleRepository provides access to gesture samples.
type SampleRepository struct {
	db *sql.DB
}

// Samples returns the sample repository for this store.
func (s *Store) Samples() *SampleRepository {
	return &SampleRepository{db: s.db}
}

// Create stores a finalized sample for a gesture in a single transaction.
// The sample is numbered after the gesture's existing samples and the
// gesture's sample count is incremented.
func (r *SampleRepository) Create(gestureID string, ts *touch.Sample) (*Sample, error) {
	frames := ts.Frames()
	data, err := json.Marshal(frames)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frames: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var next int
	err = tx.QueryRow(
		`SELECT COALESCE(MAX(sample_index) + 1, 0) FROM gesture_samples WHERE gesture_id = ?`,
		gestureID,
	).Scan(&next)
	if err != nil {
		return nil, err
	}

	s := &Sample{
		ID:          uuid.New().String(),
		GestureID:   gestureID,
		SampleIndex: next,
		FrameCount:  len(frames),
		Fingers:     ts.NumFingers(),
		Frames:      frames,
		CreatedAt:   time.Now(),
	}

	_, err = tx.Exec(
		`INSERT INTO gesture_samples (id, gesture_id, sample_index, frame_count, fingers, frames, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.GestureID, s.SampleIndex, s.FrameCount, s.Fingers, string(data), s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	result, err := tx.Exec(`UPDATE gestures SET samples = samples + 1, updated_at = ? WHERE id = ?`,
		time.Now(), gestureID)
	if err != nil {
		return nil, err
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s, nil
}

const sampleColumns = `id, gesture_id, sample_index, frame_count, fingers, frames, created_at`

func scanSample(row interface{ Scan(...any) error }) (*Sample, error) {
	s := &Sample{}
	var data string
	err := row.Scan(&s.ID, &s.GestureID, &s.SampleIndex, &s.FrameCount, &s.Fingers, &data, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &s.Frames); err != nil {
		return nil, fmt.Errorf("sample %s: failed to decode frames: %w", s.ID, err)
	}
	return s, nil
}

// GetByID retrieves a sample by its ID.
func (r *SampleRepository) GetByID(id string) (*Sample, error) {
	return scanSample(r.db.QueryRow(`SELECT `+sampleColumns+` FROM gesture_samples WHERE id = ?`, id))
}

// GetByGestureID retrieves all samples for a gesture in recording order.
func (r *SampleRepository) GetByGestureID(gestureID string) ([]*Sample, error) {
	rows, err := r.db.Query(
		`SELECT `+sampleColumns+`
		 FROM gesture_samples
		 WHERE gesture_id = ?
		 ORDER BY sample_index`,
		gestureID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []*Sample
	for rows.Next() {
		s, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}

// TouchSample converts a stored sample back into a touch.Sample.
func (s *Sample) TouchSample() *touch.Sample {
	return touch.NewSample(s.Frames...)
}
