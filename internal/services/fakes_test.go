package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/markdave123-py/reflectcoach/internal/models"
)

// memHistory is an in-memory HistoryStore for tests.
type memHistory struct {
	mu        sync.Mutex
	turns     map[string][]models.Turn
	appendErr error
	listErr   error
}

func newMemHistory() *memHistory {
	return &memHistory{turns: map[string][]models.Turn{}}
}

func (m *memHistory) AppendTurn(_ context.Context, userID string, emitter models.Emitter, content string) (*models.Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	t := models.Turn{
		ID:        fmt.Sprintf("turn-%d", len(m.turns[userID])),
		UserID:    userID,
		Emitter:   emitter,
		Content:   content,
		CreatedAt: time.Now(),
	}
	m.turns[userID] = append(m.turns[userID], t)
	return &t, nil
}

func (m *memHistory) ListTurns(_ context.Context, userID string) ([]models.Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.Turn, len(m.turns[userID]))
	copy(out, m.turns[userID])
	return out, nil
}

func (m *memHistory) PurgeTurns(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.turns[userID])
	delete(m.turns, userID)
	return int64(n), nil
}

// scriptedEngine replays fixed replies and records every transcript it receives.
type scriptedEngine struct {
	mu          sync.Mutex
	replies     []string
	err         error
	readyErr    error
	block       bool
	transcripts [][]models.ChatMessage
}

func (e *scriptedEngine) Ready(context.Context) error {
	return e.readyErr
}

func (e *scriptedEngine) Complete(ctx context.Context, transcript []models.ChatMessage) (string, error) {
	e.mu.Lock()
	e.transcripts = append(e.transcripts, transcript)
	e.mu.Unlock()

	if e.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if e.err != nil {
		return "", e.err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.replies) == 0 {
		return "", errors.New("no scripted reply left")
	}
	r := e.replies[0]
	e.replies = e.replies[1:]
	return r, nil
}

func (e *scriptedEngine) calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.transcripts)
}

type fakeObjects struct {
	err     error
	uploads map[string][]byte
}

func (f *fakeObjects) UploadFile(_ context.Context, bucket, key string, data io.Reader, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[key] = b
	return "https://" + bucket + ".example/" + key, nil
}

// memGoals is a GoalStore whose behaviour is scripted per test.
type memGoals struct {
	listed    []models.GoalWithChildren
	createdID string
	created   []string
	updateErr error
	deleted   []string
	deleteErr error
}

func (g *memGoals) ListGoals(context.Context, string) ([]models.GoalWithChildren, error) {
	return g.listed, nil
}

func (g *memGoals) CreateGoal(_ context.Context, _ string, text string, childTexts []string) (string, error) {
	g.created = append([]string{text}, childTexts...)
	return g.createdID, nil
}

func (g *memGoals) UpdateGoal(_ context.Context, id string, upd models.GoalUpdate) (*models.Goal, error) {
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	return &models.Goal{ID: id, Text: upd.Text, UserID: upd.UserID, Status: upd.Status}, nil
}

func (g *memGoals) SoftDeleteGoal(_ context.Context, id string) error {
	if g.deleteErr != nil {
		return g.deleteErr
	}
	g.deleted = append(g.deleted, id)
	return nil
}
