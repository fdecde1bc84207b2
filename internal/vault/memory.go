package vault

import (
	"bytes"
	"context"
	"io"
	"path"
	"sync"
)

// MemoryVault はテスト用のインメモリClient実装
// Listは挿入順を保持する
type MemoryVault struct {
	mu      sync.RWMutex
	order   []string          // 挿入順のフルパス
	files   map[string][]byte // key: フルパス
	readErr map[string]error  // Download時に注入するエラー（テスト用）
}

// NewMemoryVault はMemoryVaultを作成する
func NewMemoryVault() *MemoryVault {
	return &MemoryVault{
		files:   make(map[string][]byte),
		readErr: make(map[string]error),
	}
}

// Configured は常にtrue
func (v *MemoryVault) Configured() bool {
	return true
}

// Upload はファイルを保存する（同名は上書き、挿入順は初回のまま）
func (v *MemoryVault) Upload(ctx context.Context, p string, data []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	cleaned := path.Clean(p)
	if _, ok := v.files[cleaned]; !ok {
		v.order = append(v.order, cleaned)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	v.files[cleaned] = cp
	return nil
}

// List はdir直下のファイル名一覧を挿入順で返す
func (v *MemoryVault) List(ctx context.Context, dir string) ([]string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	cleaned := path.Clean(dir)
	var names []string
	for _, p := range v.order {
		if path.Dir(p) == cleaned {
			names = append(names, path.Base(p))
		}
	}
	return names, nil
}

// Download はファイル内容の読み取りストリームを返す
func (v *MemoryVault) Download(ctx context.Context, p string) (io.ReadCloser, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	cleaned := path.Clean(p)
	if err, ok := v.readErr[cleaned]; ok {
		return nil, err
	}
	data, ok := v.files[cleaned]
	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Close はストアをクリアする
func (v *MemoryVault) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.order = nil
	v.files = make(map[string][]byte)
	v.readErr = make(map[string]error)
	return nil
}

// FailReads は指定パスのDownloadを失敗させる（テスト用）
func (v *MemoryVault) FailReads(p string, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.readErr[path.Clean(p)] = err
}
