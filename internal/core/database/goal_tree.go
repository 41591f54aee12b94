package db

import "github.com/markdave123-py/reflectcoach/internal/models"

// BuildGoalTree groups live goals one level deep: every goal without a parent is a root,
// and goals whose parent is a root become its children. Goals parented under a child,
// or under a goal missing from the input (e.g. deleted), are dropped.
// Input order is preserved for both roots and children.
func BuildGoalTree(goals []models.Goal) []models.GoalWithChildren {
	out := make([]models.GoalWithChildren, 0, len(goals))
	index := make(map[string]int, len(goals))

	for _, g := range goals {
		if g.Parent != nil {
			continue
		}
		index[g.ID] = len(out)
		out = append(out, models.GoalWithChildren{Goal: g, Goals: []models.Goal{}})
	}

	for _, g := range goals {
		if g.Parent == nil {
			continue
		}
		if i, ok := index[*g.Parent]; ok {
			out[i].Goals = append(out[i].Goals, g)
		}
	}
	return out
}
