package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Settings table - application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Profiles table - classifier calibration profiles. Thresholds
		// and smoothing parameters are tunable per user/environment.
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			finger_up_threshold REAL NOT NULL DEFAULT 0.5,
			thumb_out_threshold REAL NOT NULL DEFAULT 0.25,
			smoothing_window INTEGER NOT NULL DEFAULT 3,
			cooldown_ticks INTEGER NOT NULL DEFAULT 10,
			min_move_dist REAL NOT NULL DEFAULT 4.0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_profiles_name ON profiles(name)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
