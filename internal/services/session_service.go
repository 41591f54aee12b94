package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/markdave123-py/reflectcoach/internal/core"
	"github.com/markdave123-py/reflectcoach/internal/models"
	"github.com/markdave123-py/reflectcoach/internal/pkg/logger"
)

// TurnRequest is one inbound user turn. Feelings, when present, replaces Message
// with a narrative of the snapshot and Comment.
type TurnRequest struct {
	UserID   string
	Message  string
	Feelings *models.EmotionalSnapshot
	Comment  string
}

// SessionService runs conversation turns. It keeps no state between calls:
// every turn rebuilds the transcript from the history store.
type SessionService struct {
	log           *logger.Logger
	history       core.HistoryStore
	engine        core.ReasoningEngine
	fallback      *FallbackResponder
	archiver      *TranscriptArchiver
	engineTimeout time.Duration
}

// NewSessionService wires the session manager. archiver may be nil.
func NewSessionService(log *logger.Logger, history core.HistoryStore, engine core.ReasoningEngine, fallback *FallbackResponder, archiver *TranscriptArchiver, engineTimeout time.Duration) *SessionService {
	return &SessionService{
		log:           log.With("service", "SessionService"),
		history:       history,
		engine:        engine,
		fallback:      fallback,
		archiver:      archiver,
		engineTimeout: engineTimeout,
	}
}

// AdvanceTurn records the user's turn, asks the engine for a reply and records that too.
// A missing credential is reported before anything is stored. Once the user turn is
// stored, any engine failure is answered with a fallback reply; store failures are returned.
func (s *SessionService) AdvanceTurn(ctx context.Context, req TurnRequest) (string, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return "", core.Invalid("user_id is required")
	}

	text, err := userTurnText(req)
	if err != nil {
		return "", err
	}

	// Nothing is stored until a credential is known, so every user turn gets a reply.
	if err := s.engine.Ready(ctx); err != nil {
		s.log.Error("reasoning engine is not configured", "user_id", userID, "error", err)
		return "", err
	}

	if _, err := s.history.AppendTurn(ctx, userID, models.EmitterUser, text); err != nil {
		return "", fmt.Errorf("record user turn: %w", err)
	}

	turns, err := s.history.ListTurns(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load history: %w", err)
	}

	reply, err := s.complete(ctx, BuildTranscript(CoachSystemPrompt, turns))
	if err != nil {
		s.log.Warn("reasoning engine failed, answering with fallback", "user_id", userID, "error", err)
		reply = s.fallback.Pick()
	}

	// The user turn is already stored; keep the transcript paired even if the caller went away.
	if _, err := s.history.AppendTurn(context.WithoutCancel(ctx), userID, models.EmitterAssistant, reply); err != nil {
		return "", fmt.Errorf("record assistant turn: %w", err)
	}
	return reply, nil
}

func (s *SessionService) complete(ctx context.Context, transcript []models.ChatMessage) (string, error) {
	engineCtx, cancel := context.WithTimeout(ctx, s.engineTimeout)
	defer cancel()
	return s.engine.Complete(engineCtx, transcript)
}

// ResetConversation purges every turn of the user, archiving them first when an
// archive is configured. Goals are untouched.
func (s *SessionService) ResetConversation(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return core.Invalid("user_id is required")
	}

	if s.archiver != nil {
		turns, err := s.history.ListTurns(ctx, userID)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		if len(turns) > 0 {
			if _, err := s.archiver.Archive(ctx, userID, turns); err != nil {
				return fmt.Errorf("archive conversation: %w", err)
			}
		}
	}

	n, err := s.history.PurgeTurns(ctx, userID)
	if err != nil {
		return fmt.Errorf("purge conversation: %w", err)
	}
	s.log.Info("conversation reset", "user_id", userID, "turns", n)
	return nil
}

// History returns the user's turns in conversation order.
func (s *SessionService) History(ctx context.Context, userID string) ([]models.Turn, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, core.Invalid("user_id is required")
	}
	return s.history.ListTurns(ctx, userID)
}

func userTurnText(req TurnRequest) (string, error) {
	if req.Feelings != nil {
		if err := validateSnapshot(req.Feelings); err != nil {
			return "", err
		}
		return snapshotNarrative(req.Feelings, req.Comment), nil
	}
	if strings.TrimSpace(req.Message) == "" {
		return "", core.Invalid("message is required")
	}
	return req.Message, nil
}

// BuildTranscript prefixes the system instruction to the stored turns.
func BuildTranscript(system string, turns []models.Turn) []models.ChatMessage {
	out := make([]models.ChatMessage, 0, len(turns)+1)
	out = append(out, models.ChatMessage{Role: "system", Content: system})
	for _, t := range turns {
		out = append(out, models.ChatMessage{Role: string(t.Emitter), Content: t.Content})
	}
	return out
}
