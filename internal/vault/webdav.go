package vault

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/studio-b12/gowebdav"
)

// requestTimeout はWebDAV HTTPクライアントのタイムアウト
// アプリ層でのリトライは行わない（1操作1試行）
const requestTimeout = 30 * time.Second

// WebDAVVault はWebDAV（坚果云等）を使用したClient実装
type WebDAVVault struct {
	client   *gowebdav.Client
	login    string
	password string
}

// NewWebDAVVault はWebDAVVaultを作成する
// 認証情報が空でも作成は成功する（Configuredがfalseを返す）
func NewWebDAVVault(host, login, password string) *WebDAVVault {
	c := gowebdav.NewClient(host, login, password)
	c.SetTimeout(requestTimeout)
	return &WebDAVVault{
		client:   c,
		login:    login,
		password: password,
	}
}

// Configured はログイン情報が揃っているかを返す
func (v *WebDAVVault) Configured() bool {
	return v.login != "" && v.password != ""
}

// Upload はファイルをWebDAVへアップロードする
// 本文は一時ファイルに退避してからストリームで送る
// 一時ファイルはアップロードの成否に関わらず必ず削除される
func (v *WebDAVVault) Upload(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp("", "memovault-*.md")
	if err != nil {
		return fmt.Errorf("failed to create staging file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to stage note: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind staging file: %w", err)
	}

	if err := v.client.WriteStream(path, tmp, 0644); err != nil {
		return fmt.Errorf("webdav upload failed: %w", err)
	}
	return nil
}

// List はディレクトリ直下のファイル名一覧を返す
func (v *WebDAVVault) List(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	infos, err := v.client.ReadDir(dir)
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		return nil, fmt.Errorf("webdav list failed: %w", err)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		names = append(names, info.Name())
	}
	return names, nil
}

// Download はファイルの読み取りストリームを返す
func (v *WebDAVVault) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := v.client.ReadStream(path)
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("webdav download failed: %w", err)
	}
	return rc, nil
}

// Close はクライアントを終了する（WebDAVはコネクションレスのため何もしない）
func (v *WebDAVVault) Close() error {
	return nil
}
