// Package service implements the note repository for memovault.
package service

import (
	"context"
	"errors"
)

// MemoryService はメモリノートの保存・検索・読み出しを提供
// 戻り値は型付きの結果であり、ユーザー向けテキストへの変換はjsonrpc層で行う
type MemoryService interface {
	Save(ctx context.Context, req *SaveRequest) (*SaveResponse, error)
	Search(ctx context.Context, keyword string) (*SearchResponse, error)
	Read(ctx context.Context, filename string) (*ReadResponse, error)
	CurrentTime() string
	SmartQuery(ctx context.Context, text string) (*SmartQueryResponse, error)
}

// SaveRequest はノート保存のリクエスト
type SaveRequest struct {
	Title   string // 必須
	Content string // 空でも可
}

// SaveResponse はノート保存の結果
type SaveResponse struct {
	Filename   string // 導出されたファイル名
	RemotePath string // Vault内のフルパス
}

// マッチ箇所の種別
const (
	MatchedInFilename = "filename"
	MatchedInContent  = "content"
)

// SearchMatch は検索結果の1件
type SearchMatch struct {
	Filename  string
	MatchedIn string // filename | content
}

// SearchResponse は検索の結果
// Matchesの順序はVaultの列挙順（backend定義、ソートなし）
type SearchResponse struct {
	Keyword  string
	Matches  []SearchMatch
	Overflow int // 上限超過で省略された件数
}

// ReadResponse はノート読み出しの結果
type ReadResponse struct {
	Filename  string
	Content   string
	Truncated bool
}

// SmartQueryResponse は自由文クエリの結果
type SmartQueryResponse struct {
	Searched bool   // 検索意図が検出されたか
	Keyword  string // 抽出された検索語（Searched時のみ）
	Result   *SearchResponse
}

// エラー定義
var (
	ErrTitleRequired      = errors.New("title is required")
	ErrKeywordRequired    = errors.New("keyword is required")
	ErrFilenameRequired   = errors.New("filename is required")
	ErrTextRequired       = errors.New("text is required")
	ErrInvalidFilename    = errors.New("filename must not contain path separators or '..'")
	ErrStoreNotConfigured = errors.New("storage credentials are not configured")
	ErrNoteNotFound       = errors.New("note not found")
)
