package vault

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"path"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteVault はSQLiteを使用したローカルClient実装
// WebDAVアカウントなしで運用するためのbackend
type SQLiteVault struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteVault はSQLiteVaultを作成する
func NewSQLiteVault(dbPath string) (*SQLiteVault, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WALモードを有効化
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	// ファイルテーブル作成
	// 挿入順（rowid）がList順になる。上書き時はrowidを維持する
	schema := `
	CREATE TABLE IF NOT EXISTS vault_files (
		dir        TEXT NOT NULL,
		name       TEXT NOT NULL,
		content    BLOB NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (dir, name)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create vault_files table: %w", err)
	}

	return &SQLiteVault{db: db}, nil
}

// Configured はローカルbackendのため常にtrue
func (v *SQLiteVault) Configured() bool {
	return true
}

// Upload はファイルを保存する（同名は上書き）
func (v *SQLiteVault) Upload(ctx context.Context, p string, data []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	dir, name := splitPath(p)
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := v.db.ExecContext(ctx, `
		INSERT INTO vault_files (dir, name, content, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(dir, name) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at
	`, dir, name, data, now)
	if err != nil {
		return fmt.Errorf("failed to store file: %w", err)
	}
	return nil
}

// List はdir直下のファイル名一覧を挿入順で返す
func (v *SQLiteVault) List(ctx context.Context, dir string) ([]string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	rows, err := v.db.QueryContext(ctx, `
		SELECT name FROM vault_files WHERE dir = ? ORDER BY rowid
	`, cleanDir(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan file name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate files: %w", err)
	}
	return names, nil
}

// Download はファイル内容の読み取りストリームを返す
func (v *SQLiteVault) Download(ctx context.Context, p string) (io.ReadCloser, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	dir, name := splitPath(p)

	var content []byte
	err := v.db.QueryRowContext(ctx, `
		SELECT content FROM vault_files WHERE dir = ? AND name = ?
	`, dir, name).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// Close はDBをクローズする
func (v *SQLiteVault) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.db != nil {
		return v.db.Close()
	}
	return nil
}

// splitPath はフルパスを(dir, name)に分割する
func splitPath(p string) (string, string) {
	cleaned := path.Clean(p)
	return path.Dir(cleaned), path.Base(cleaned)
}

// cleanDir はディレクトリキーを正規化する（末尾スラッシュ除去等）
func cleanDir(dir string) string {
	return path.Clean(dir)
}
