// Package vault retrieves application secrets from HashiCorp Vault. When
// Vault is disabled the client falls back to values already present in the
// configuration, so local development needs no Vault server.
package vault

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/vault/api"

	"github.com/DragosCt10/trading-tracker-sub007/config"
)

// Secrets holds the application secrets fetched from Vault.
type Secrets struct {
	JWTSecret  string `json:"jwt_secret"`
	DBPassword string `json:"db_password"`
}

// Client wraps the HashiCorp Vault client
type Client struct {
	client *api.Client
	config config.VaultConfig
	mu     sync.RWMutex
	cached *Secrets
}

// NewClient creates a new Vault client
func NewClient(cfg config.VaultConfig) (*Client, error) {
	if !cfg.Enabled {
		return &Client{config: cfg}, nil
	}

	vaultConfig := api.DefaultConfig()
	vaultConfig.Address = cfg.Address

	if cfg.TLSEnabled && cfg.CACert != "" {
		tlsConfig := &api.TLSConfig{
			CACert: cfg.CACert,
		}
		if err := vaultConfig.ConfigureTLS(tlsConfig); err != nil {
			return nil, fmt.Errorf("failed to configure TLS: %w", err)
		}
	}

	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	client.SetToken(cfg.Token)

	return &Client{client: client, config: cfg}, nil
}

// IsEnabled returns whether Vault is enabled
func (c *Client) IsEnabled() bool {
	return c.config.Enabled
}

// FetchSecrets reads the application secrets from Vault. With Vault disabled
// it returns an empty Secrets, leaving configuration values in force.
func (c *Client) FetchSecrets(ctx context.Context) (*Secrets, error) {
	if !c.config.Enabled {
		return &Secrets{}, nil
	}

	c.mu.RLock()
	if c.cached != nil {
		defer c.mu.RUnlock()
		return c.cached, nil
	}
	c.mu.RUnlock()

	secret, err := c.client.Logical().ReadWithContext(ctx, c.config.SecretPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read secrets from vault: %w", err)
	}

	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("no secrets found at %s", c.config.SecretPath)
	}

	// KV v2 nests the payload under "data".
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		data = secret.Data
	}

	secrets := &Secrets{
		JWTSecret:  getString(data, "jwt_secret"),
		DBPassword: getString(data, "db_password"),
	}

	c.mu.Lock()
	c.cached = secrets
	c.mu.Unlock()

	return secrets, nil
}

// ApplyTo overlays fetched secrets onto the configuration, preferring Vault
// values over file and environment values.
func (s *Secrets) ApplyTo(cfg *config.Config) {
	if s.JWTSecret != "" {
		cfg.AuthConfig.JWTSecret = s.JWTSecret
	}
	if s.DBPassword != "" {
		cfg.DatabaseConfig.Password = s.DBPassword
	}
}

// ClearCache drops the cached secrets, forcing the next fetch to hit Vault.
func (c *Client) ClearCache() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

// Health checks the Vault connection
func (c *Client) Health(ctx context.Context) error {
	if !c.config.Enabled {
		return nil
	}

	health, err := c.client.Sys().HealthWithContext(ctx)
	if err != nil {
		return fmt.Errorf("vault health check failed: %w", err)
	}

	if health.Sealed {
		return fmt.Errorf("vault is sealed")
	}

	return nil
}

func getString(data map[string]interface{}, key string) string {
	if val, ok := data[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}
