// Package bootstrap provides common initialization logic for memovault.
package bootstrap

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ethanw/memovault/internal/cache"
	"github.com/ethanw/memovault/internal/config"
	"github.com/ethanw/memovault/internal/intent"
	"github.com/ethanw/memovault/internal/service"
	"github.com/ethanw/memovault/internal/vault"
)

// Services は初期化されたサービス群を保持
type Services struct {
	Memory service.MemoryService
	Vault  vault.Client
	Config *config.Config
}

// Initialize は設定からVault・キャッシュ・サービスを組み立てる
func Initialize(logger zerolog.Logger, cfg *config.Config) (*Services, func(), error) {
	// 運用警告（デフォルトトークンや資格情報欠落）は起動を妨げない
	for _, w := range cfg.Warnings() {
		logger.Warn().Msg(w)
	}

	// 1. Vault初期化
	var v vault.Client
	switch cfg.Vault.Store {
	case config.StoreSQLite:
		sv, err := vault.NewSQLiteVault(cfg.Vault.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create sqlite vault: %w", err)
		}
		v = sv
	case config.StoreMemory:
		v = vault.NewMemoryVault()
	default:
		v = vault.NewWebDAVVault(cfg.WebDAV.Host, cfg.WebDAV.Login, cfg.WebDAV.Password)
	}

	// 2. 検索メモ化キャッシュ初期化
	results, err := cache.New[*service.SearchResponse](cfg.Search.CacheSize)
	if err != nil {
		v.Close()
		return nil, nil, fmt.Errorf("failed to create search cache: %w", err)
	}

	// 3. サービス初期化
	memory := service.NewMemoryService(v, results, intent.NewRegexExtractor(), logger, service.Options{
		VaultPath:  cfg.Vault.Path,
		ScanLimit:  cfg.Search.ScanLimit,
		MaxResults: cfg.Search.MaxResults,
		ReadLimit:  cfg.Read.MaxLength,
	})

	cleanup := func() {
		if err := v.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close vault")
		}
	}

	return &Services{
		Memory: memory,
		Vault:  v,
		Config: cfg,
	}, cleanup, nil
}
