package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/erkineren/homework-monitor/internal/models"
)

type Store struct {
	db     *sql.DB
	chatID int64
}

func New(ctx context.Context, dbURL string, chatID int64) (*Store, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := initDatabase(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Store{
		db:     db,
		chatID: chatID,
	}, nil
}

func initDatabase(ctx context.Context, db *sql.DB) error {
	query := `CREATE TABLE IF NOT EXISTS notification_state (
		chat_id BIGINT PRIMARY KEY,
		homework_name TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL DEFAULT '',
		checkpoint BIGINT NOT NULL DEFAULT 0,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to execute query %q: %w", query, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Load(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	err := s.db.QueryRowContext(ctx, `
		SELECT homework_name, message, checkpoint
		FROM notification_state
		WHERE chat_id = $1
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
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		ON CONFLICT (chat_id) DO UPDATE
		SET homework_name = EXCLUDED.homework_name,
			message = EXCLUDED.message,
			checkpoint = EXCLUDED.checkpoint,
			updated_at = EXCLUDED.updated_at
	`, s.chatID, snapshot.State.Name, snapshot.State.Message, snapshot.Checkpoint)

	if err != nil {
		return fmt.Errorf("failed to save notification state: %w", err)
	}

	return nil
}
