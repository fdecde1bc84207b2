package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ethanw/memovault/internal/config"
	"github.com/ethanw/memovault/internal/service"
	"github.com/ethanw/memovault/internal/vault"
)

func TestInitialize_MemoryStore(t *testing.T) {
	cfg := config.Default()
	cfg.Vault.Store = config.StoreMemory

	services, cleanup, err := Initialize(zerolog.Nop(), cfg)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	defer cleanup()

	if services.Memory == nil {
		t.Fatal("expected memory service to be initialized")
	}
	if _, ok := services.Vault.(*vault.MemoryVault); !ok {
		t.Errorf("expected *vault.MemoryVault, got %T", services.Vault)
	}
}

func TestInitialize_SQLiteStore(t *testing.T) {
	cfg := config.Default()
	cfg.Vault.Store = config.StoreSQLite
	cfg.Vault.SQLitePath = filepath.Join(t.TempDir(), "test.db")

	services, cleanup, err := Initialize(zerolog.Nop(), cfg)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	defer cleanup()

	if _, ok := services.Vault.(*vault.SQLiteVault); !ok {
		t.Errorf("expected *vault.SQLiteVault, got %T", services.Vault)
	}
}

func TestInitialize_WebDAVStoreDefault(t *testing.T) {
	cfg := config.Default()

	services, cleanup, err := Initialize(zerolog.Nop(), cfg)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	defer cleanup()

	if _, ok := services.Vault.(*vault.WebDAVVault); !ok {
		t.Errorf("expected *vault.WebDAVVault, got %T", services.Vault)
	}
}

// 組み立てたサービスが保存から検索まで一貫して動くこと
func TestInitialize_ServiceRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Vault.Store = config.StoreMemory

	services, cleanup, err := Initialize(zerolog.Nop(), cfg)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	defer cleanup()

	ctx := context.Background()
	saved, err := services.Memory.Save(ctx, &service.SaveRequest{
		Title:   "测试",
		Content: "内容",
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	result, err := services.Memory.Search(ctx, "测试")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(result.Matches) != 1 || result.Matches[0].Filename != saved.Filename {
		t.Errorf("expected saved note in search results, got %+v", result.Matches)
	}
}
