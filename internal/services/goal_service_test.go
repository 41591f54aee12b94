package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/reflectcoach/internal/core"
	"github.com/markdave123-py/reflectcoach/internal/models"
	"github.com/markdave123-py/reflectcoach/internal/pkg/logger"
)

func TestGoalServiceListNeverNil(t *testing.T) {
	s := NewGoalService(logger.Nop(), &memGoals{})

	goals, err := s.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, goals)
	assert.Empty(t, goals)

	_, err = s.List(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestGoalServiceCreate(t *testing.T) {
	store := &memGoals{createdID: "g-1"}
	s := NewGoalService(logger.Nop(), store)

	id, err := s.Create(context.Background(), "u1", "Get fit", []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, "g-1", id)
	assert.Equal(t, []string{"Get fit", "A", "B"}, store.created)
}

func TestGoalServiceCreateValidation(t *testing.T) {
	store := &memGoals{createdID: "g-1"}
	s := NewGoalService(logger.Nop(), store)
	ctx := context.Background()

	_, err := s.Create(ctx, "", "Get fit", nil)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	_, err = s.Create(ctx, "u1", " ", nil)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	_, err = s.Create(ctx, "u1", "Get fit", []string{"A", ""})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Nil(t, store.created)
}

func TestGoalServiceUpdate(t *testing.T) {
	s := NewGoalService(logger.Nop(), &memGoals{})
	g, err := s.Update(context.Background(), "g-1", models.GoalUpdate{Text: "Run 5k", UserID: "u1", Status: "done"})
	require.NoError(t, err)
	assert.Equal(t, "Run 5k", g.Text)
	assert.Equal(t, "done", g.Status)

	_, err = s.Update(context.Background(), "g-1", models.GoalUpdate{UserID: "u1"})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestGoalServiceUpdateNotFound(t *testing.T) {
	s := NewGoalService(logger.Nop(), &memGoals{updateErr: core.ErrNotFound})
	_, err := s.Update(context.Background(), "missing", models.GoalUpdate{Text: "x", UserID: "u1"})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestGoalServiceDelete(t *testing.T) {
	store := &memGoals{}
	s := NewGoalService(logger.Nop(), store)

	require.NoError(t, s.Delete(context.Background(), "g-1"))
	require.NoError(t, s.Delete(context.Background(), "g-1"))
	assert.Equal(t, []string{"g-1", "g-1"}, store.deleted)

	store.deleteErr = errors.New("db down")
	assert.Error(t, s.Delete(context.Background(), "g-1"))
}
