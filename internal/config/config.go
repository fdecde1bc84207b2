// Package config provides process configuration for memovault.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Store種別
const (
	StoreWebDAV = "webdav"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// DefaultToken は既知の弱いデフォルト値
// この値や未設定は起動時警告の対象（本番では必ず差し替える）
const DefaultToken = "change-me"

// Config はプロセス全体の設定
// 起動時に一度だけ構築し、以後は変更しない（各コンポーネントへ明示的に渡す）
type Config struct {
	Server ServerConfig `yaml:"server"`
	WebDAV WebDAVConfig `yaml:"webdav"`
	Vault  VaultConfig  `yaml:"vault"`
	Auth   AuthConfig   `yaml:"auth"`
	Search SearchConfig `yaml:"search"`
	Read   ReadConfig   `yaml:"read"`
}

// ServerConfig はHTTPサーバー設定
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// WebDAVConfig はWebDAV接続設定
type WebDAVConfig struct {
	Host     string `yaml:"host"`
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
}

// VaultConfig はノート保管先の設定
type VaultConfig struct {
	Path       string `yaml:"path"`        // Vaultディレクトリ（全ノートが直下に置かれる）
	Store      string `yaml:"store"`       // webdav | sqlite | memory
	SQLitePath string `yaml:"sqlite_path"` // sqlite backend使用時のDBパス
}

// AuthConfig は認証設定
type AuthConfig struct {
	Token string `yaml:"token"` // 共有シークレット（プロセス生存中は固定）
}

// SearchConfig は検索の制限値
type SearchConfig struct {
	ScanLimit  int `yaml:"scan_limit"`  // 本文マッチで読む最大バイト数
	MaxResults int `yaml:"max_results"` // 返却する最大件数（超過分は件数のみ報告）
	CacheSize  int `yaml:"cache_size"`  // 結果メモ化LRUの容量
}

// ReadConfig は読み出しの制限値
type ReadConfig struct {
	MaxLength int `yaml:"max_length"` // 返却本文の最大バイト数（超過時は切り詰めマーカー付与）
}

// Default はデフォルト設定を返す
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		WebDAV: WebDAVConfig{
			Host: "https://dav.jianguoyun.com/dav/",
		},
		Vault: VaultConfig{
			Path:       "/AI_Memory",
			Store:      StoreWebDAV,
			SQLitePath: "memovault.db",
		},
		Search: SearchConfig{
			ScanLimit:  2000,
			MaxResults: 3,
			CacheSize:  128,
		},
		Read: ReadConfig{
			MaxLength: 5000,
		},
	}
}

// Load は設定を構築する: デフォルト → YAMLファイル（あれば） → 環境変数
// pathが空の場合はファイル読み込みをスキップする
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	ApplyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定値を検証する
func (c *Config) Validate() error {
	switch c.Vault.Store {
	case StoreWebDAV, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("invalid vault store: %q (must be webdav, sqlite or memory)", c.Vault.Store)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Server.Port)
	}
	if c.Vault.Path == "" {
		return fmt.Errorf("vault path must not be empty")
	}
	if c.Search.ScanLimit <= 0 {
		return fmt.Errorf("search scan limit must be positive")
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search max results must be positive")
	}
	if c.Read.MaxLength <= 0 {
		return fmt.Errorf("read max length must be positive")
	}
	return nil
}

// Warnings は本番運用上の警告一覧を返す（起動時にログ出力される）
// 警告は起動を妨げない
func (c *Config) Warnings() []string {
	var warnings []string

	switch c.Auth.Token {
	case "":
		warnings = append(warnings, "auth token is not set; every /mcp request will be rejected")
	case DefaultToken:
		warnings = append(warnings, "auth token is the known default value; change it before production use")
	}

	if c.Vault.Store == StoreWebDAV && (c.WebDAV.Login == "" || c.WebDAV.Password == "") {
		warnings = append(warnings, "webdav credentials are missing; save/search/read will fail until configured")
	}

	return warnings
}
