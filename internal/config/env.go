package config

import (
	"os"
	"strconv"
)

// 環境変数名の定数
// NUTSTORE_* は元のデプロイ（坚果云）から引き継いだ名前
const (
	EnvWebDAVHost     = "NUTSTORE_HOST"
	EnvWebDAVLogin    = "NUTSTORE_EMAIL"
	EnvWebDAVPassword = "NUTSTORE_PASSWORD"
	EnvVaultPath      = "VAULT_PATH"
	EnvAuthToken      = "MEMOVAULT_TOKEN"
	EnvVaultStore     = "MEMOVAULT_STORE"
	EnvSQLitePath     = "MEMOVAULT_SQLITE_PATH"
	EnvServerPort     = "MEMOVAULT_PORT"
)

// ApplyEnvOverrides は環境変数による設定上書きを適用する
// config を直接変更する
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvWebDAVHost); v != "" {
		cfg.WebDAV.Host = v
	}
	if v := os.Getenv(EnvWebDAVLogin); v != "" {
		cfg.WebDAV.Login = v
	}
	if v := os.Getenv(EnvWebDAVPassword); v != "" {
		cfg.WebDAV.Password = v
	}
	if v := os.Getenv(EnvVaultPath); v != "" {
		cfg.Vault.Path = v
	}
	if v := os.Getenv(EnvAuthToken); v != "" {
		cfg.Auth.Token = v
	}
	if v := os.Getenv(EnvVaultStore); v != "" {
		cfg.Vault.Store = v
	}
	if v := os.Getenv(EnvSQLitePath); v != "" {
		cfg.Vault.SQLitePath = v
	}
	if v := os.Getenv(EnvServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}
