package core

import (
	"context"
	"io"

	"github.com/markdave123-py/reflectcoach/internal/models"
)

// HistoryStore is the append-only log of conversation turns.
type HistoryStore interface {
	AppendTurn(ctx context.Context, userID string, emitter models.Emitter, content string) (*models.Turn, error)
	// ListTurns returns turns in ascending created_at order, ties broken by insertion order.
	ListTurns(ctx context.Context, userID string) ([]models.Turn, error)
	PurgeTurns(ctx context.Context, userID string) (int64, error)
}

// GoalStore keeps goal trees with soft deletion.
type GoalStore interface {
	ListGoals(ctx context.Context, userID string) ([]models.GoalWithChildren, error)
	// CreateGoal inserts the parent and one child per text in a single transaction.
	CreateGoal(ctx context.Context, userID, text string, childTexts []string) (string, error)
	UpdateGoal(ctx context.Context, id string, upd models.GoalUpdate) (*models.Goal, error)
	SoftDeleteGoal(ctx context.Context, id string) error
}

// DbClient defines all persistence operations the services need.
// It abstracts Postgres so higher layers never depend on a specific DB.
type DbClient interface {
	HistoryStore
	GoalStore

	Close() error
}

// ObjectClient defines interactions with S3 or any object storage.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data io.Reader, contentType string) (url string, err error)
}
