// Package jsonrpc implements JSON-RPC 2.0 handlers for memovault.
package jsonrpc

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ethanw/memovault/internal/model"
	"github.com/ethanw/memovault/internal/service"
)

// Handler はJSON-RPCリクエストを処理する
type Handler struct {
	memory service.MemoryService
}

// New は新しいHandlerを生成
func New(memory service.MemoryService) *Handler {
	return &Handler{
		memory: memory,
	}
}

// Handle はJSON-RPCリクエストをパースしてディスパッチ
// 戻り値は *model.Response または *model.ErrorResponse のJSON bytes
// 通知（notifications/*）への応答はなし（nilを返す）
func (h *Handler) Handle(ctx context.Context, requestBytes []byte) []byte {
	// 1. パース
	var req model.Request
	if err := json.Unmarshal(requestBytes, &req); err != nil {
		return h.encode(model.NewParseError(err.Error()))
	}

	// 2. バージョン確認
	if req.JSONRPC != "2.0" {
		return h.encode(model.NewInvalidRequest(req.ID, "jsonrpc must be 2.0"))
	}

	// 3. method確認
	if req.Method == "" {
		return h.encode(model.NewInvalidRequest(req.ID, "method is required"))
	}

	// 4. 通知は処理せず応答もしない
	if strings.HasPrefix(req.Method, "notifications/") {
		return nil
	}

	// 5. ディスパッチ
	switch req.Method {
	case "initialize":
		return h.encode(model.NewResponse(req.ID, h.handleInitialize(ctx, req.Params)))
	case "ping":
		return h.encode(model.NewResponse(req.ID, map[string]any{}))
	case "tools/list":
		return h.encode(model.NewResponse(req.ID, h.handleToolsList(ctx)))
	case "tools/call":
		return h.handleToolsCall(ctx, req.ID, req.Params)
	default:
		return h.encode(model.NewMethodNotFound(req.ID, req.Method))
	}
}

// encode はレスポンスをJSONに変換する
func (h *Handler) encode(resp any) []byte {
	b, _ := json.Marshal(resp)
	return b
}
