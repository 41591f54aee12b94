// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/markdave123-py/reflectcoach/internal/config"
	"github.com/markdave123-py/reflectcoach/internal/core"
	db "github.com/markdave123-py/reflectcoach/internal/core/database"
	"github.com/markdave123-py/reflectcoach/internal/core/llm"
	objectclient "github.com/markdave123-py/reflectcoach/internal/core/object-client"
	"github.com/markdave123-py/reflectcoach/internal/core/secrets"
	"github.com/markdave123-py/reflectcoach/internal/pkg/logger"
	"github.com/markdave123-py/reflectcoach/internal/services"
)

type App struct {
	DBClient *db.DatabaseClient
	Engine   core.ReasoningEngine
	Server   *Server

	closers []func() error
	log     *logger.Logger
}

func NewApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(appCtx, cfg, log)
	if err != nil {
		return nil, err
	}
	log.Info("Database initialized and ready.")

	a := &App{DBClient: dbClient, log: log}
	a.closers = append(a.closers, dbClient.Close)

	var awsCfg aws.Config
	if cfg.SecretName != "" || cfg.ArchiveBucket != "" {
		awsCfg, err = cfg.AWSConfig(appCtx)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("couldn't load aws config: %w", err)
		}
	}

	creds := newCredentialProvider(cfg, log, awsCfg)
	engine, closeEngine := newReasoningEngine(cfg, log, creds)
	if closeEngine != nil {
		a.closers = append(a.closers, closeEngine)
	}
	a.Engine = engine
	log.Info("Reasoning engine configured.", "provider", cfg.EngineProvider, "model", cfg.EngineModel)

	var archiver *services.TranscriptArchiver
	if cfg.ArchiveBucket != "" {
		objClient, err := objectclient.NewS3Client(log, awsCfg)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("couldn't initialize the object client, %w", err)
		}
		archiver = services.NewTranscriptArchiver(log, objClient, cfg.ArchiveBucket)
		log.Info("Transcript archive enabled.", "bucket", cfg.ArchiveBucket)
	}

	sessions := services.NewSessionService(log, dbClient, engine, services.NewFallbackResponder(), archiver, cfg.EngineTimeout)
	goals := services.NewGoalService(log, dbClient)

	a.Server = NewServer(cfg, log, sessions, goals)
	return a, nil
}

// newCredentialProvider prefers Secrets Manager when a secret name is configured
// and falls back to the provider's environment key otherwise.
func newCredentialProvider(cfg *config.Config, log *logger.Logger, awsCfg aws.Config) core.CredentialProvider {
	if cfg.SecretName != "" {
		return secrets.NewSecretsManagerCredential(log, awsCfg, cfg.SecretName, cfg.SecretKeyField)
	}
	if cfg.EngineProvider == config.ProviderGemini {
		return secrets.NewEnvCredential(cfg.GeminiAPIKey)
	}
	return secrets.NewEnvCredential(cfg.OpenAIAPIKey)
}

func newReasoningEngine(cfg *config.Config, log *logger.Logger, creds core.CredentialProvider) (core.ReasoningEngine, func() error) {
	if cfg.EngineProvider == config.ProviderGemini {
		g := llm.NewGeminiChat(log, creds, cfg.EngineModel, cfg.EngineTemp)
		return g, g.Close
	}
	return llm.NewOpenAIChat(log, creds, cfg.EngineBaseURL, cfg.EngineModel, cfg.EngineTemp, cfg.EngineTimeout), nil
}

// Close releases everything NewApp acquired, in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}
