package vault

import (
	"context"
	"fmt"

	"github.com/hashicorp/vault/api"
	"go.uber.org/zap"

	"github.com/seu-repo/tradeinsight/pkg/config"
)

// Secret paths under the KV v2 mount.
const (
	databasePath = "tradeinsight/database"
	jwtPath      = "tradeinsight/jwt"
	geminiPath   = "tradeinsight/gemini"
	sendgridPath = "tradeinsight/sendgrid"
)

// kvReader is the part of api.KVv2 the manager needs.
type kvReader interface {
	Get(ctx context.Context, secretPath string) (*api.KVSecret, error)
}

type SecretManager struct {
	kv  kvReader
	log *zap.Logger
}

func NewSecretManager(cfg config.VaultConfig, log *zap.Logger) (*SecretManager, error) {
	vc := api.DefaultConfig()
	vc.Address = cfg.Address

	client, err := api.NewClient(vc)
	if err != nil {
		return nil, fmt.Errorf("vault client: %w", err)
	}
	client.SetToken(cfg.Token)

	return &SecretManager{kv: client.KVv2(cfg.MountPath), log: log}, nil
}

func (sm *SecretManager) read(ctx context.Context, path, key string) (string, error) {
	secret, err := sm.kv.Get(ctx, path)
	if err != nil {
		return "", err
	}
	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("vault secret %s is empty", path)
	}
	value, ok := secret.Data[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("vault secret %s has no %q", path, key)
	}
	return value, nil
}

func (sm *SecretManager) GetDatabaseURL(ctx context.Context) (string, error) {
	return sm.read(ctx, databasePath, "connection_string")
}

func (sm *SecretManager) GetJWTSecret(ctx context.Context) (string, error) {
	return sm.read(ctx, jwtPath, "secret")
}

func (sm *SecretManager) GetGeminiAPIKey(ctx context.Context) (string, error) {
	return sm.read(ctx, geminiPath, "api_key")
}

func (sm *SecretManager) GetSendGridAPIKey(ctx context.Context) (string, error) {
	return sm.read(ctx, sendgridPath, "api_key")
}

// Apply overwrites cfg secrets with the ones found in Vault. Missing
// secrets keep the configured value and are only logged.
func (sm *SecretManager) Apply(ctx context.Context, cfg *config.Config) {
	overrides := []struct {
		name   string
		get    func(context.Context) (string, error)
		target *string
	}{
		{"database.url", sm.GetDatabaseURL, &cfg.Database.URL},
		{"jwt.secret", sm.GetJWTSecret, &cfg.JWT.Secret},
		{"gemini.api_key", sm.GetGeminiAPIKey, &cfg.Gemini.APIKey},
		{"email.api_key", sm.GetSendGridAPIKey, &cfg.Email.APIKey},
	}

	for _, o := range overrides {
		value, err := o.get(ctx)
		if err != nil {
			sm.log.Debug("Vault secret not applied", zap.String("key", o.name), zap.Error(err))
			continue
		}
		*o.target = value
		sm.log.Info("Secret loaded from Vault", zap.String("key", o.name))
	}
}
