package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/ethanw/memovault/internal/cache"
	"github.com/ethanw/memovault/internal/intent"
	"github.com/ethanw/memovault/internal/note"
	"github.com/ethanw/memovault/internal/vault"
)

// TruncationMarker は読み出し本文が上限で切られたことを示すマーカー
const TruncationMarker = "\n\n...[truncated]"

// Options はmemoryServiceの動作設定
type Options struct {
	VaultPath  string           // Vaultディレクトリ
	ScanLimit  int              // 検索時に本文を読む最大バイト数
	MaxResults int              // 検索結果の最大件数
	ReadLimit  int              // 読み出し本文の最大バイト数
	Now        func() time.Time // テスト用の時刻注入、nilならtime.Now
}

// memoryService はMemoryServiceの実装
type memoryService struct {
	vault     vault.Client
	results   *cache.Results[*SearchResponse]
	extractor intent.Extractor
	logger    zerolog.Logger
	opts      Options
}

// NewMemoryService はMemoryServiceの新しいインスタンスを作成
func NewMemoryService(v vault.Client, results *cache.Results[*SearchResponse], ex intent.Extractor, logger zerolog.Logger, opts Options) MemoryService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &memoryService{
		vault:     v,
		results:   results,
		extractor: ex,
		logger:    logger,
		opts:      opts,
	}
}

// Save はノートをVaultへ保存する
// 同一秒・同一タイトルの保存は同名ファイルとなり上書きされる（許容済み）
func (s *memoryService) Save(ctx context.Context, req *SaveRequest) (*SaveResponse, error) {
	// バリデーション
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}

	// ネットワーク操作の前に設定を確認
	if !s.vault.Configured() {
		return nil, ErrStoreNotConfigured
	}

	now := s.opts.Now()
	filename := note.DeriveFilename(req.Title, now)
	body := note.RenderBody(req.Title, req.Content, now)
	remotePath := path.Join(s.opts.VaultPath, filename)

	if err := s.vault.Upload(ctx, remotePath, []byte(body)); err != nil {
		return nil, fmt.Errorf("failed to upload note: %w", err)
	}

	// 保存成功時は検索メモ化を全破棄（新しいノートが次の検索に現れるように）
	if s.results != nil {
		s.results.Purge()
	}

	s.logger.Info().Str("file", filename).Msg("note saved")

	return &SaveResponse{
		Filename:   filename,
		RemotePath: remotePath,
	}, nil
}

// Search はキーワードでノートを検索する
// ファイル名マッチを先に試し、ダメなら本文の先頭ScanLimitバイトを調べる
// 個別ファイルの読み取り失敗は警告ログのみでスキップし、検索全体は失敗させない
func (s *memoryService) Search(ctx context.Context, keyword string) (*SearchResponse, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, ErrKeywordRequired
	}

	// メモ化ヒットならネットワークに触らず返す
	if s.results != nil {
		if cached, ok := s.results.Get(keyword); ok {
			return cached, nil
		}
	}

	if !s.vault.Configured() {
		return nil, ErrStoreNotConfigured
	}

	names, err := s.vault.List(ctx, s.opts.VaultPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list vault: %w", err)
	}

	lowerKw := strings.ToLower(keyword)
	var matches []SearchMatch

	for _, name := range names {
		if !strings.HasSuffix(strings.ToLower(name), note.Extension) {
			continue
		}

		if strings.Contains(strings.ToLower(name), lowerKw) {
			matches = append(matches, SearchMatch{Filename: name, MatchedIn: MatchedInFilename})
			continue
		}

		// 本文は先頭のみ読む（全文スキャンはしない）
		prefix, err := s.readPrefix(ctx, path.Join(s.opts.VaultPath, name), s.opts.ScanLimit)
		if err != nil {
			s.logger.Warn().Err(err).Str("file", name).Msg("skipping unreadable note during search")
			continue
		}
		if strings.Contains(strings.ToLower(string(prefix)), lowerKw) {
			matches = append(matches, SearchMatch{Filename: name, MatchedIn: MatchedInContent})
		}
	}

	resp := &SearchResponse{Keyword: keyword}
	if len(matches) > s.opts.MaxResults {
		resp.Overflow = len(matches) - s.opts.MaxResults
		matches = matches[:s.opts.MaxResults]
	}
	resp.Matches = matches

	if s.results != nil {
		s.results.Add(keyword, resp)
	}
	return resp, nil
}

// Read はノート本文を読み出す
// パス区切りや".."を含む名前はネットワーク操作の前に拒否する
func (s *memoryService) Read(ctx context.Context, filename string) (*ReadResponse, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, ErrFilenameRequired
	}
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, "/\\") {
		return nil, ErrInvalidFilename
	}
	if !strings.HasSuffix(strings.ToLower(filename), note.Extension) {
		filename += note.Extension
	}

	if !s.vault.Configured() {
		return nil, ErrStoreNotConfigured
	}

	// 上限+1バイト読んで切り詰めの有無を判定する
	data, err := s.readPrefix(ctx, path.Join(s.opts.VaultPath, filename), s.opts.ReadLimit+1)
	if err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, filename)
		}
		return nil, fmt.Errorf("failed to download note: %w", err)
	}

	resp := &ReadResponse{Filename: filename}
	if len(data) > s.opts.ReadLimit {
		resp.Content = string(truncateUTF8(data, s.opts.ReadLimit)) + TruncationMarker
		resp.Truncated = true
	} else {
		resp.Content = string(data)
	}
	return resp, nil
}

// CurrentTime は現在時刻をUTC+8の表示形式で返す
func (s *memoryService) CurrentTime() string {
	return s.opts.Now().In(note.Zone).Format("2006-01-02 15:04:05") + " (UTC+8)"
}

// SmartQuery は自由文から検索意図を判定し、必要なら検索を実行する
func (s *memoryService) SmartQuery(ctx context.Context, text string) (*SmartQueryResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	keyword, ok := s.extractor.Extract(text)
	if !ok {
		return &SmartQueryResponse{Searched: false}, nil
	}

	result, err := s.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return &SmartQueryResponse{
		Searched: true,
		Keyword:  keyword,
		Result:   result,
	}, nil
}

// readPrefix はファイル先頭の最大limitバイトを読む
// ストリームは成否に関わらず必ずクローズされる
func (s *memoryService) readPrefix(ctx context.Context, p string, limit int) ([]byte, error) {
	rc, err := s.vault.Download(ctx, p)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(io.LimitReader(rc, int64(limit)))
}

// truncateUTF8 はlimitバイト以内でUTF-8境界を壊さないよう切り詰める
func truncateUTF8(data []byte, limit int) []byte {
	if len(data) <= limit {
		return data
	}
	cut := data[:limit]
	for len(cut) > 0 && !utf8.Valid(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
