package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Gesture is a named gesture with a summary of its recorded samples.
type Gesture struct {
	ID        string
	Name      string
	Samples   int
	CreatedAt time.Time
	UpdatedAt time.Time

	// Derived from gesture_samples, zero until the first sample is saved.
	Fingers     int // Fingers of the latest sample
	LastFrames  int // Frames in the latest sample
	TotalFrames int // Frames across all samples
}

// GestureRepository provides access to gestures.
type GestureRepository struct {
	db *sql.DB
}

// Gestures returns the gesture repository for this store.
func (s *Store) Gestures() *GestureRepository {
	return &GestureRepository{db: s.db}
}

// selectGestures reads gestures along with the summary of their samples.
const selectGestures = `SELECT g.id, g.name, g.samples, g.created_at, g.updated_at,
	COALESCE((SELECT s.fingers FROM gesture_samples s WHERE s.gesture_id = g.id ORDER BY s.sample_index DESC LIMIT 1), 0),
	COALESCE((SELECT s.frame_count FROM gesture_samples s WHERE s.gesture_id = g.id ORDER BY s.sample_index DESC LIMIT 1), 0),
	COALESCE((SELECT SUM(s.frame_count) FROM gesture_samples s WHERE s.gesture_id = g.id), 0)
	FROM gestures g`

func scanGesture(row interface{ Scan(...any) error }) (*Gesture, error) {
	g := &Gesture{}
	err := row.Scan(&g.ID, &g.Name, &g.Samples, &g.CreatedAt, &g.UpdatedAt,
		&g.Fingers, &g.LastFrames, &g.TotalFrames)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

// Ensure returns the gesture with the given name, creating it if it does not exist.
func (r *GestureRepository) Ensure(name string) (*Gesture, error) {
	g, err := r.GetByName(name)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	g = &Gesture{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = r.db.Exec(
		`INSERT INTO gestures (id, name, samples, created_at, updated_at) VALUES (?, ?, 0, ?, ?)`,
		g.ID, g.Name, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GetByID retrieves a gesture by its ID.
func (r *GestureRepository) GetByID(id string) (*Gesture, error) {
	return scanGesture(r.db.QueryRow(selectGestures+` WHERE g.id = ?`, id))
}

// GetByName retrieves a gesture by its name.
func (r *GestureRepository) GetByName(name string) (*Gesture, error) {
	return scanGesture(r.db.QueryRow(selectGestures+` WHERE g.name = ?`, name))
}

// List retrieves all gestures ordered by name.
func (r *GestureRepository) List() ([]*Gesture, error) {
	rows, err := r.db.Query(selectGestures + ` ORDER BY g.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gestures []*Gesture
	for rows.Next() {
		g, err := scanGesture(rows)
		if err != nil {
			return nil, err
		}
		gestures = append(gestures, g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return gestures, nil
}

// Delete removes a gesture and all of its samples.
func (r *GestureRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM gestures WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
