package jsonrpc

import (
	"context"
	"fmt"

	"github.com/ethanw/memovault/internal/model"
)

// ServerVersion はサーバーのバージョン（ビルド時に設定可能）
var ServerVersion = "0.1.0"

// protocolVersion は対応するMCPプロトコルバージョン
const protocolVersion = "2024-11-05"

// handleInitialize は initialize メソッドを処理
func (h *Handler) handleInitialize(ctx context.Context, params any) *model.InitializeResult {
	// クライアント情報は検証しない（capabilityはこちらから一方的に宣言する）
	return &model.InitializeResult{
		ProtocolVersion: protocolVersion,
		ServerInfo: model.ServerInfo{
			Name:    "memovault",
			Version: ServerVersion,
		},
		Capabilities: model.Capabilities{
			Tools: &model.ToolsCapability{},
		},
	}
}

// handleToolsList は tools/list メソッドを処理
func (h *Handler) handleToolsList(ctx context.Context) *model.ToolsListResult {
	return &model.ToolsListResult{
		Tools: mcpTools,
	}
}

// handleToolsCall は tools/call メソッドを処理
// ツール実行内のあらゆる失敗はIsError付きテキストとして成功エンベロープで返す
// 呼び出し側（LLMランタイム）にトランスポートエラーを見せないための仕様
func (h *Handler) handleToolsCall(ctx context.Context, id any, params any) []byte {
	var p model.ToolsCallParams
	if err := mapParams(params, &p); err != nil {
		return h.encode(model.NewInvalidParams(id, fmt.Sprintf("invalid tools/call params: %v", err)))
	}

	// ツール名必須チェック
	if p.Name == "" {
		return h.encode(model.NewResponse(id, errorResult("Error: tool name is required")))
	}

	text, err := h.callTool(ctx, p.Name, p.Arguments)
	if err != nil {
		// ドメインエラーはユーザー向けテキストに変換してcontentに含める
		return h.encode(model.NewResponse(id, errorResult(renderError(err))))
	}

	return h.encode(model.NewResponse(id, &model.ToolsCallResult{
		Content: []model.ContentItem{model.NewTextContent(text)},
	}))
}

// errorResult はエラーテキストをIsError付きの結果に包む
func errorResult(text string) *model.ToolsCallResult {
	return &model.ToolsCallResult{
		Content: []model.ContentItem{model.NewTextContent(text)},
		IsError: true,
	}
}
