package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/markdave123-py/reflectcoach/internal/core"
	"github.com/markdave123-py/reflectcoach/internal/models"
)

const defaultGoalStatus = "pending"

const goalColumns = `id::text, goal, user_id, parent::text, status, deleted, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(s rowScanner) (models.Goal, error) {
	var (
		g      models.Goal
		parent sql.NullString
	)
	if err := s.Scan(&g.ID, &g.Text, &g.UserID, &parent, &g.Status, &g.Deleted, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return models.Goal{}, err
	}
	if parent.Valid {
		p := parent.String
		g.Parent = &p
	}
	return g, nil
}

// ListGoals returns the user's live goals as a one-level tree. No rows yields an empty slice.
func (c *DatabaseClient) ListGoals(ctx context.Context, userID string) ([]models.GoalWithChildren, error) {
	q := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE user_id = $1 AND deleted = FALSE
		ORDER BY created_at ASC, seq ASC
	`
	rows, err := c.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var flat []models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		flat = append(flat, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return BuildGoalTree(flat), nil
}

// CreateGoal inserts the parent row and its children in one transaction.
// Children keep the order of childTexts.
func (c *DatabaseClient) CreateGoal(ctx context.Context, userID, text string, childTexts []string) (string, error) {
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}

	const q = `
		INSERT INTO goals (id, goal, user_id, parent, status, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, clock_timestamp(), clock_timestamp())
	`
	parentID := uuid.NewString()
	if _, err := tx.ExecContext(ctx, q, parentID, text, userID, nil, defaultGoalStatus); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("insert goal: %w", err)
	}

	if len(childTexts) > 0 {
		stmt, err := tx.PrepareContext(ctx, q)
		if err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("prepare sub-goal insert: %w", err)
		}
		defer stmt.Close()

		for _, child := range childTexts {
			if _, err := stmt.ExecContext(ctx, uuid.NewString(), child, userID, parentID, defaultGoalStatus); err != nil {
				_ = tx.Rollback()
				return "", fmt.Errorf("insert sub-goal: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit goal: %w", err)
	}
	return parentID, nil
}

// UpdateGoal overwrites text and owner of a live goal. An empty status keeps the current one.
func (c *DatabaseClient) UpdateGoal(ctx context.Context, id string, upd models.GoalUpdate) (*models.Goal, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, core.ErrNotFound
	}

	q := `
		UPDATE goals
		SET goal = $2, user_id = $3, status = COALESCE(NULLIF($4, ''), status), updated_at = now()
		WHERE id = $1 AND deleted = FALSE
		RETURNING ` + goalColumns

	g, err := scanGoal(c.db.QueryRowContext(ctx, q, id, upd.Text, upd.UserID, upd.Status))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	return &g, nil
}

// SoftDeleteGoal flags the goal as deleted. Unknown or already deleted ids are not an error.
func (c *DatabaseClient) SoftDeleteGoal(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	const q = `
		UPDATE goals
		SET deleted = TRUE, updated_at = now()
		WHERE id = $1 AND deleted = FALSE
	`
	if _, err := c.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}
