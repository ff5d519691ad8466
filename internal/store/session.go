package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/sadopc/streamwall/internal/model"
)

// Session record keys; the shapes stored under them match the
// original browser sessions byte for byte, so an imported save loads
// unchanged.
const (
	keyModels  = "streamwall_models"
	keyHistory = "streamwall_history"
)

// SaveSession persists the full item collection together with the
// derived username history, in one transaction.
func (s *Store) SaveSession(items []model.Item) error {
	modelsJSON, err := model.MarshalItems(items)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	historyJSON, err := json.Marshal(model.Usernames(items))
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO sessions (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.Exec(upsert, keyModels, string(modelsJSON)); err != nil {
		return fmt.Errorf("save models: %w", err)
	}
	if _, err := tx.Exec(upsert, keyHistory, string(historyJSON)); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return tx.Commit()
}

// ClearSession erases the full-session record. The username history
// is kept so the next setup screen can prefill from it.
func (s *Store) ClearSession() error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE key = ?`, keyModels)
	return err
}

// LoadSession reads back a prior session. When a non-empty session
// record exists it is returned and the history is skipped; otherwise
// the username history (possibly empty) is returned for the setup
// screen. Malformed stored data is treated as absent, never fatal.
func (s *Store) LoadSession() ([]model.Item, []string) {
	if raw, ok := s.readSessionValue(keyModels); ok {
		items, err := model.UnmarshalItems([]byte(raw))
		if err != nil {
			s.log.Warn("discarding malformed session record",
				zap.String("key", keyModels), zap.Error(err))
		} else if len(items) > 0 {
			return items, nil
		}
	}

	raw, ok := s.readSessionValue(keyHistory)
	if !ok {
		return nil, nil
	}
	var history []string
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		s.log.Warn("discarding malformed history record",
			zap.String("key", keyHistory), zap.Error(err))
		return nil, nil
	}
	return nil, history
}

func (s *Store) readSessionValue(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM sessions WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		s.log.Warn("read session record", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, true
}
