package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/markdave123-py/reflectcoach/internal/core"
	"github.com/markdave123-py/reflectcoach/internal/models"
	"github.com/markdave123-py/reflectcoach/internal/pkg/logger"
)

// TranscriptArchiver exports a conversation to object storage before it is purged.
type TranscriptArchiver struct {
	log     *logger.Logger
	objects core.ObjectClient
	bucket  string
	now     func() time.Time
}

func NewTranscriptArchiver(log *logger.Logger, objects core.ObjectClient, bucket string) *TranscriptArchiver {
	return &TranscriptArchiver{
		log:     log.With("service", "TranscriptArchiver"),
		objects: objects,
		bucket:  bucket,
		now:     time.Now,
	}
}

type archivedTranscript struct {
	UserID     string        `json:"user_id"`
	ArchivedAt time.Time     `json:"archived_at"`
	Turns      []models.Turn `json:"turns"`
}

// Archive uploads the turns as JSON and returns the object URL.
func (a *TranscriptArchiver) Archive(ctx context.Context, userID string, turns []models.Turn) (string, error) {
	at := a.now().UTC()
	body, err := json.Marshal(archivedTranscript{UserID: userID, ArchivedAt: at, Turns: turns})
	if err != nil {
		return "", fmt.Errorf("encode transcript: %w", err)
	}

	key := archiveKey(userID, at)
	u, err := a.objects.UploadFile(ctx, a.bucket, key, bytes.NewReader(body), "application/json")
	if err != nil {
		return "", err
	}
	a.log.Info("transcript archived", "user_id", userID, "turns", len(turns), "url", u)
	return u, nil
}

func archiveKey(userID string, at time.Time) string {
	return fmt.Sprintf("transcripts/%s/%d.json", url.PathEscape(userID), at.UnixNano())
}
