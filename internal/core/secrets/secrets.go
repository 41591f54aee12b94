package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/markdave123-py/reflectcoach/internal/core"
	"github.com/markdave123-py/reflectcoach/internal/pkg/logger"
)

// EnvCredential serves a key that came from the environment.
type EnvCredential struct {
	value string
}

func NewEnvCredential(value string) *EnvCredential {
	return &EnvCredential{value: strings.TrimSpace(value)}
}

func (e *EnvCredential) APIKey(context.Context) (string, error) {
	if e.value == "" {
		return "", core.ErrMissingCredential
	}
	return e.value, nil
}

type secretGetter interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerCredential reads the key from AWS Secrets Manager once and caches it.
// Failed lookups are not cached, so the next request retries.
type SecretsManagerCredential struct {
	log        *logger.Logger
	client     secretGetter
	secretName string
	field      string

	mu     sync.Mutex
	cached string
}

func NewSecretsManagerCredential(log *logger.Logger, awsCfg aws.Config, secretName, field string) *SecretsManagerCredential {
	return newSecretsManagerCredential(log, secretsmanager.NewFromConfig(awsCfg), secretName, field)
}

func newSecretsManagerCredential(log *logger.Logger, client secretGetter, secretName, field string) *SecretsManagerCredential {
	return &SecretsManagerCredential{
		log:        log.With("service", "SecretsManagerCredential"),
		client:     client,
		secretName: secretName,
		field:      field,
	}
}

func (s *SecretsManagerCredential) APIKey(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != "" {
		return s.cached, nil
	}

	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.secretName),
	})
	if err != nil {
		s.log.Error("secret lookup failed", "secret", s.secretName, "error", err)
		return "", fmt.Errorf("%w: get secret %q: %v", core.ErrMissingCredential, s.secretName, err)
	}

	var raw string
	switch {
	case out.SecretString != nil:
		raw = *out.SecretString
	case len(out.SecretBinary) > 0:
		raw = string(out.SecretBinary)
	}

	key := extractKey(raw, s.field)
	if key == "" {
		return "", fmt.Errorf("%w: secret %q has no value for %q", core.ErrMissingCredential, s.secretName, s.field)
	}
	s.cached = key
	return key, nil
}

// extractKey returns field from a JSON object secret, or the whole secret when it is not JSON.
func extractKey(raw, field string) string {
	raw = strings.TrimSpace(raw)
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return raw
	}
	if v, ok := obj[field].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
