package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/markdave123-py/reflectcoach/internal/models"
)

func (c *DatabaseClient) AppendTurn(ctx context.Context, userID string, emitter models.Emitter, content string) (*models.Turn, error) {
	if userID == "" {
		return nil, errors.New("missing user_id")
	}
	if !emitter.Valid() {
		return nil, fmt.Errorf("unknown emitter %q", emitter)
	}
	if content == "" {
		return nil, errors.New("empty turn content")
	}

	const q = `
		INSERT INTO conversation (id, user_id, emitter, message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	t := models.Turn{
		ID:      uuid.NewString(),
		UserID:  userID,
		Emitter: emitter,
		Content: content,
	}
	if err := c.db.QueryRowContext(ctx, q, t.ID, t.UserID, string(t.Emitter), t.Content).Scan(&t.CreatedAt); err != nil {
		return nil, fmt.Errorf("append turn: %w", err)
	}
	return &t, nil
}

func (c *DatabaseClient) ListTurns(ctx context.Context, userID string) ([]models.Turn, error) {
	const q = `
		SELECT id::text, user_id, emitter, message, created_at
		FROM conversation
		WHERE user_id = $1
		ORDER BY created_at ASC, seq ASC
	`
	rows, err := c.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	defer rows.Close()

	out := []models.Turn{}
	for rows.Next() {
		var (
			t       models.Turn
			emitter string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &emitter, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t.Emitter = models.Emitter(emitter)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	return out, nil
}

func (c *DatabaseClient) PurgeTurns(ctx context.Context, userID string) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM conversation WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("purge turns: %w", err)
	}
	n, _ := res.RowsAffected()
	c.log.Info("conversation purged", "user_id", userID, "turns", n)
	return n, nil
}
