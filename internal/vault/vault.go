// Package vault provides remote note storage interfaces and implementations.
package vault

import (
	"context"
	"errors"
	"io"
)

// Client はVault（ノート保管先）の抽象インターフェース
// backendごとの実装: webdav（本番）、sqlite（ローカル）、memory（テスト）
type Client interface {
	// Configured は認証情報等が揃っていてネットワーク操作が可能かを返す
	// 呼び出し側はネットワーク操作の前に必ず確認する
	Configured() bool

	// Upload はpathへファイルを書き込む（既存ファイルは上書き）
	Upload(ctx context.Context, path string, data []byte) error

	// List はdir直下のファイル名一覧を返す
	// 順序はbackend定義（webdavはサーバーの列挙順、sqliteは挿入順）
	List(ctx context.Context, dir string) ([]string, error)

	// Download はpathのファイルを読み取りストリームで返す
	// 呼び出し側がCloseする責任を持つ
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Close はクライアントを終了する
	Close() error
}

// エラー定義
var (
	// ErrNotFound は対象ファイルがVaultに存在しない
	ErrNotFound = errors.New("file not found in vault")
)
