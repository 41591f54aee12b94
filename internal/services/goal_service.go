package services

import (
	"context"
	"strings"

	"github.com/markdave123-py/reflectcoach/internal/core"
	"github.com/markdave123-py/reflectcoach/internal/models"
	"github.com/markdave123-py/reflectcoach/internal/pkg/logger"
)

type GoalService struct {
	log   *logger.Logger
	store core.GoalStore
}

func NewGoalService(log *logger.Logger, store core.GoalStore) *GoalService {
	return &GoalService{log: log.With("service", "GoalService"), store: store}
}

func (s *GoalService) List(ctx context.Context, userID string) ([]models.GoalWithChildren, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, core.Invalid("user_id is required")
	}
	goals, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []models.GoalWithChildren{}
	}
	return goals, nil
}

// Create stores a goal and its sub-goals together and returns the new goal id.
func (s *GoalService) Create(ctx context.Context, userID, text string, childTexts []string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", core.Invalid("user_id is required")
	}
	if strings.TrimSpace(text) == "" {
		return "", core.Invalid("goal is required")
	}
	for i, child := range childTexts {
		if strings.TrimSpace(child) == "" {
			return "", core.Invalid("goals[%d] is empty", i)
		}
	}

	id, err := s.store.CreateGoal(ctx, userID, text, childTexts)
	if err != nil {
		return "", err
	}
	s.log.Info("goal created", "goal_id", id, "user_id", userID, "sub_goals", len(childTexts))
	return id, nil
}

// Update overwrites a live goal. Deleted and unknown ids both yield core.ErrNotFound.
func (s *GoalService) Update(ctx context.Context, id string, upd models.GoalUpdate) (*models.Goal, error) {
	if strings.TrimSpace(upd.Text) == "" {
		return nil, core.Invalid("goal is required")
	}
	if strings.TrimSpace(upd.UserID) == "" {
		return nil, core.Invalid("user_id is required")
	}
	return s.store.UpdateGoal(ctx, id, upd)
}

// Delete soft-deletes a goal. Repeating it is not an error.
func (s *GoalService) Delete(ctx context.Context, id string) error {
	if err := s.store.SoftDeleteGoal(ctx, id); err != nil {
		return err
	}
	s.log.Info("goal deleted", "goal_id", id)
	return nil
}
