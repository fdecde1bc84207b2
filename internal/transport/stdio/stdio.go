// Package stdio implements line-delimited JSON-RPC transport for memovault.
package stdio

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
)

// MaxBufferSize はScannerの最大バッファサイズ（1MB）
const MaxBufferSize = 1024 * 1024

// Handler はJSON-RPCリクエストを処理するインターフェース
type Handler interface {
	Handle(ctx context.Context, requestBytes []byte) []byte
}

// Server はstdio JSON-RPCサーバー
// MCPクライアント（エディタ等）からローカル起動される想定で、認証は掛けない
type Server struct {
	handler Handler
	reader  io.Reader
	writer  io.Writer
}

// Option はサーバーオプション
type Option func(*Server)

// WithReader はreaderを設定（テスト用）
func WithReader(r io.Reader) Option {
	return func(s *Server) {
		s.reader = r
	}
}

// WithWriter はwriterを設定（テスト用）
func WithWriter(w io.Writer) Option {
	return func(s *Server) {
		s.writer = w
	}
}

// New は新しいServerを生成
func New(handler Handler, opts ...Option) *Server {
	s := &Server{
		handler: handler,
		reader:  os.Stdin,
		writer:  os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run は標準入力を1行ずつ処理し、EOFかcontextキャンセルで終了する
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.reader)
	buf := make([]byte, MaxBufferSize)
	scanner.Buffer(buf, MaxBufferSize)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			// EOF: 正常終了
			return nil
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		response := s.handler.Handle(ctx, []byte(line))

		// 通知には返信しない
		if response == nil {
			continue
		}

		if _, err := s.writer.Write(response); err != nil {
			return err
		}
		if _, err := s.writer.Write([]byte("\n")); err != nil {
			return err
		}
	}
}
