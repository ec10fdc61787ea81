package store

import (
	"database/sql"
	"errors"
	"time"
)

// Profile is a classifier calibration profile. Thresholds vary between
// users, lighting conditions, and camera placements, so they are stored
// rather than compiled in.
type Profile struct {
	ID                string
	Name              string
	FingerUpThreshold float64
	ThumbOutThreshold float64
	SmoothingWindow   int
	CooldownTicks     int
	MinMoveDist       float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DefaultProfile returns a profile carrying the built-in thresholds.
func DefaultProfile() *Profile {
	return &Profile{
		Name:              "default",
		FingerUpThreshold: 0.5,
		ThumbOutThreshold: 0.25,
		SmoothingWindow:   3,
		CooldownTicks:     10,
		MinMoveDist:       4.0,
	}
}

// ProfileRepository provides CRUD operations for calibration profiles.
type ProfileRepository struct {
	db *sql.DB
}

// Profiles returns the profile repository for this store.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{db: s.db}
}

// Create inserts a new profile into the database.
func (r *ProfileRepository) Create(p *Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO profiles (id, name, finger_up_threshold, thumb_out_threshold,
		 smoothing_window, cooldown_ticks, min_move_dist, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.FingerUpThreshold, p.ThumbOutThreshold,
		p.SmoothingWindow, p.CooldownTicks, p.MinMoveDist, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(id string) (*Profile, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, name, finger_up_threshold, thumb_out_threshold,
		 smoothing_window, cooldown_ticks, min_move_dist, created_at, updated_at
		 FROM profiles WHERE id = ?`, id,
	))
}

// GetByName retrieves a profile by its name.
func (r *ProfileRepository) GetByName(name string) (*Profile, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, name, finger_up_threshold, thumb_out_threshold,
		 smoothing_window, cooldown_ticks, min_move_dist, created_at, updated_at
		 FROM profiles WHERE name = ?`, name,
	))
}

// List retrieves all profiles from the database.
func (r *ProfileRepository) List() ([]*Profile, error) {
	rows, err := r.db.Query(
		`SELECT id, name, finger_up_threshold, thumb_out_threshold,
		 smoothing_window, cooldown_ticks, min_move_dist, created_at, updated_at
		 FROM profiles ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p := &Profile{}
		if err := rows.Scan(
			&p.ID, &p.Name, &p.FingerUpThreshold, &p.ThumbOutThreshold,
			&p.SmoothingWindow, &p.CooldownTicks, &p.MinMoveDist,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

// Update updates an existing profile in the database.
func (r *ProfileRepository) Update(p *Profile) error {
	p.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE profiles SET name = ?, finger_up_threshold = ?, thumb_out_threshold = ?,
		 smoothing_window = ?, cooldown_ticks = ?, min_move_dist = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.FingerUpThreshold, p.ThumbOutThreshold,
		p.SmoothingWindow, p.CooldownTicks, p.MinMoveDist, p.UpdatedAt, p.ID,
	)
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

// Delete removes a profile from the database by its ID.
func (r *ProfileRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
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

func (r *ProfileRepository) scanOne(row *sql.Row) (*Profile, error) {
	p := &Profile{}
	err := row.Scan(
		&p.ID, &p.Name, &p.FingerUpThreshold, &p.ThumbOutThreshold,
		&p.SmoothingWindow, &p.CooldownTicks, &p.MinMoveDist,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
