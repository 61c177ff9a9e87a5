package store

import (
	"fmt"
	"os"
	"time"
)

// Snapshot returns the raw bytes of the database file for download.
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read database file: %w", err)
	}
	return data, nil
}

// Restore swaps in an uploaded database file. The live connection is closed,
// the current file is kept as a timestamped backup next to it, and the store
// reopens on the new file. If the uploaded file does not open as a valid
// database the previous one is put back.
func (s *Store) Restore(content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("access connection: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close connection: %w", err)
	}

	backup := fmt.Sprintf("%s.bak-%s", s.path, time.Now().Format("20060102T150405"))
	hadPrevious := true
	if err := os.Rename(s.path, backup); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("back up current database: %w", err)
		}
		hadPrevious = false
	}

	if err := os.WriteFile(s.path, content, 0o644); err != nil {
		return fmt.Errorf("write uploaded database: %w", err)
	}

	db, err := openDB(s.path)
	if err != nil {
		// Put the previous file back so the store stays usable.
		if hadPrevious {
			_ = os.Rename(backup, s.path)
			if prev, prevErr := openDB(s.path); prevErr == nil {
				s.db = prev
			}
		}
		return fmt.Errorf("open uploaded database: %w", err)
	}

	s.db = db
	return nil
}
