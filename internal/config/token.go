package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GetAPIToken returns the bearer token protecting the admin API. An
// explicitly configured token wins; otherwise a generated token is persisted
// under the data dir so the CLI and server agree across restarts.
func GetAPIToken(cfg Config) (string, error) {
	if cfg.Server.BearerToken != "" {
		return cfg.Server.BearerToken, nil
	}

	path := filepath.Join(cfg.Storage.DataDir, "api-token")
	if data, err := os.ReadFile(path); err == nil {
		token := strings.TrimSpace(string(data))
		if token != "" {
			return token, nil
		}
	}

	token := uuid.New().String()
	if err := os.MkdirAll(cfg.Storage.DataDir, 0o700); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(token), 0o600); err != nil {
		return "", fmt.Errorf("writing token file: %w", err)
	}
	return token, nil
}
