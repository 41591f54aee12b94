package services

import (
	"fmt"
	"strings"

	"github.com/markdave123-py/reflectcoach/internal/core"
	"github.com/markdave123-py/reflectcoach/internal/models"
)

const (
	minRating = 0
	maxRating = 4
)

func validateSnapshot(s *models.EmotionalSnapshot) error {
	ratings := []struct {
		name  string
		value int
	}{
		{"work", s.Work},
		{"health", s.Health},
		{"relations", s.Relations},
		{"finance", s.Finance},
	}
	for _, r := range ratings {
		if r.value < minRating || r.value > maxRating {
			return core.Invalid("feelings.%s must be between %d and %d, got %d", r.name, minRating, maxRating, r.value)
		}
	}
	return nil
}

// snapshotNarrative folds the ratings and the user's comment into the text of a user turn.
// The snapshot's own description is used when no comment accompanies it.
func snapshotNarrative(s *models.EmotionalSnapshot, comment string) string {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		comment = strings.TrimSpace(s.Description)
	}

	var b strings.Builder
	b.WriteString("The user has rated how they feel in the following areas:\n")
	fmt.Fprintf(&b, "Work: %d/%d\n", s.Work, maxRating)
	fmt.Fprintf(&b, "Health: %d/%d\n", s.Health, maxRating)
	fmt.Fprintf(&b, "Relationships: %d/%d\n", s.Relations, maxRating)
	fmt.Fprintf(&b, "Finances: %d/%d\n", s.Finance, maxRating)
	if comment != "" {
		fmt.Fprintf(&b, "How they describe it: %s\n", comment)
	}
	b.WriteString("Please keep this in mind when opening the conversation and offering support.")
	return b.String()
}
