package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/erkineren/homework-monitor/internal/models"
)

type Store struct {
	db     *sql.DB
	chatID int64
}

func New(ctx context.Context, path string, chatID int64) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single writer is all the poll loop needs.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode = WAL", "PRAGMA busy_timeout = 5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS notification_state (
		chat_id INTEGER PRIMARY KEY,
		homework_name TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL DEFAULT '',
		checkpoint INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Store{
		db:     db,
		chatID: chatID,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Load(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	err := s.db.QueryRowContext(ctx, `
		SELECT homework_name, message, checkpoint
		FROM notification_state
		WHERE chat_id = ?
	`, s.chatID).Scan(&snap.State.Name, &snap.State.Message, &snap.Checkpoint)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Snapshot{}, nil
	} else if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load notification state: %w", err)
	}

	return snap, nil
}

func (s *Store) Save(ctx context.Context, snapshot models.Snapshot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notification_state (chat_id, homework_name, message, checkpoint, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (chat_id) DO UPDATE
		SET homework_name = excluded.homework_name,
			message = excluded.message,
			checkpoint = excluded.checkpoint,
			updated_at = excluded.updated_at
	`, s.chatID, snapshot.State.Name, snapshot.State.Message, snapshot.Checkpoint)

	if err != nil {
		return fmt.Errorf("failed to save notification state: %w", err)
	}

	return nil
}
