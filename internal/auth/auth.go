// Package auth provides shared-secret authentication for the HTTP transport.
package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// Gate はAuthorizationヘッダーを検証するミドルウェア
type Gate struct {
	token string
}

// New は新しいGateを生成
// tokenが空の場合、すべてのリクエストが拒否される
func New(token string) *Gate {
	return &Gate{token: token}
}

// Middleware はnet/httpミドルウェアとして認証を適用する
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.authorize(r.Header.Get("Authorization")) {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authorize はヘッダー値を検証する
// 生トークンと "Bearer <token>" 形式の両方を受け付ける
func (g *Gate) authorize(header string) bool {
	// トークン未設定なら何も一致しない
	if g.token == "" {
		return false
	}
	if header == "" {
		return false
	}

	candidate := header
	if strings.HasPrefix(header, "Bearer ") {
		candidate = strings.TrimPrefix(header, "Bearer ")
	}

	// タイミング攻撃対策として定数時間比較
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(g.token)) == 1
}

// writeUnauthorized は401レスポンスを構造化JSONで返す
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"error":     "unauthorized",
		"code":      http.StatusUnauthorized,
		"detail":    "missing or invalid Authorization header",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
