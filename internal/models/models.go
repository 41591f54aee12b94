package models

import (
	"time"
)

// Emitter identifies who produced a turn.
type Emitter string

const (
	EmitterUser      Emitter = "user"
	EmitterAssistant Emitter = "assistant"
)

// Valid reports whether e is one of the known emitters.
func (e Emitter) Valid() bool {
	return e == EmitterUser || e == EmitterAssistant
}

// Turn is one recorded message of a user's conversation. Turns are append-only.
type Turn struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Emitter   Emitter   `db:"emitter" json:"emitter"`
	Content   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ChatMessage is one entry of the transcript sent to the reasoning engine.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// EmotionalSnapshot carries the one-time ratings a user gives when opening a session.
// Each rating is on a 0..4 scale.
type EmotionalSnapshot struct {
	Work        int    `json:"work"`
	Health      int    `json:"health"`
	Relations   int    `json:"relations"`
	Finance     int    `json:"finance"`
	Description string `json:"description,omitempty"`
}

// Goal is a tracked task, optionally grouped under a parent goal.
type Goal struct {
	ID        string    `db:"id" json:"id"`
	Text      string    `db:"goal" json:"goal"`
	UserID    string    `db:"user_id" json:"user_id"`
	Parent    *string   `db:"parent" json:"parent"`
	Status    string    `db:"status" json:"status"`
	Deleted   bool      `db:"deleted" json:"deleted"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// GoalWithChildren is a top-level goal with its direct, non-deleted sub-goals.
type GoalWithChildren struct {
	Goal
	Goals []Goal `json:"goals"`
}

// GoalUpdate is the full replacement applied by an update; there is no partial patch.
type GoalUpdate struct {
	Text   string `json:"goal"`
	UserID string `json:"user_id"`
	Status string `json:"status"`
}
