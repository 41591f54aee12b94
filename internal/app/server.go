package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/markdave123-py/reflectcoach/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/reflectcoach/internal/api/middlewares"
	"github.com/markdave123-py/reflectcoach/internal/config"
	"github.com/markdave123-py/reflectcoach/internal/pkg/logger"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, log *logger.Logger, sessions handlers.ConversationService, goals handlers.GoalManager) *Server {
	chatHandler := handlers.NewChatHandler(sessions, log)
	goalHandler := handlers.NewGoalHandler(goals, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appMiddleware.RequestLogger(log))
	r.Use(middleware.Recoverer)
	// The engine call has its own deadline; leave room for the stores around it.
	r.Use(middleware.Timeout(cfg.EngineTimeout + 30*time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Hello, World!"})
	})

	r.Route("/chatbot", func(chat chi.Router) {
		chat.Post("/send_message", chatHandler.SendMessage)
		chat.Get("/reset_conversation/{user_id}", chatHandler.ResetConversation)
		chat.Post("/reset_conversation/{user_id}", chatHandler.ResetConversation)
		chat.Get("/history/{user_id}", chatHandler.GetHistory)
	})

	// One path parameter for every goal route: a user id on GET, a goal id otherwise.
	r.Route("/goals", func(g chi.Router) {
		g.Post("/", goalHandler.CreateGoal)
		g.Get("/{id}", goalHandler.ListGoals)
		g.Put("/{id}", goalHandler.UpdateGoal)
		g.Delete("/{id}", goalHandler.DeleteGoal)
	})

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{httpServer: httpSrv, log: log.With("component", "server")}
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.log.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
