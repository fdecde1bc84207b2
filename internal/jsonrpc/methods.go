package jsonrpc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethanw/memovault/internal/service"
)

// callTool はツール名に応じてサービスを呼び出し、ユーザー向けテキストを返す
func (h *Handler) callTool(ctx context.Context, name string, args map[string]any) (string, error) {
	switch name {
	case ToolSaveMemory:
		return h.callSaveMemory(ctx, args)
	case ToolSearchMemory:
		return h.callSearchMemory(ctx, args)
	case ToolReadMemory:
		return h.callReadMemory(ctx, args)
	case ToolGetCurrentTime:
		return h.memory.CurrentTime(), nil
	case ToolSmartQuery:
		return h.callSmartQuery(ctx, args)
	default:
		return "", &unknownToolError{name: name}
	}
}

// callSaveMemory は save_memory を処理
func (h *Handler) callSaveMemory(ctx context.Context, args map[string]any) (string, error) {
	var p SaveMemoryParams
	if err := mapParams(args, &p); err != nil {
		return "", err
	}

	resp, err := h.memory.Save(ctx, &service.SaveRequest{
		Title:   p.Title,
		Content: p.Content,
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("记忆已归档: %s", resp.Filename), nil
}

// callSearchMemory は search_memory を処理
func (h *Handler) callSearchMemory(ctx context.Context, args map[string]any) (string, error) {
	var p SearchMemoryParams
	if err := mapParams(args, &p); err != nil {
		return "", err
	}

	resp, err := h.memory.Search(ctx, p.Keyword)
	if err != nil {
		return "", err
	}

	return renderSearchResult(resp), nil
}

// callReadMemory は read_memory を処理
func (h *Handler) callReadMemory(ctx context.Context, args map[string]any) (string, error) {
	var p ReadMemoryParams
	if err := mapParams(args, &p); err != nil {
		return "", err
	}

	resp, err := h.memory.Read(ctx, p.Filename)
	if err != nil {
		return "", err
	}

	return resp.Content, nil
}

// callSmartQuery は smart_query を処理
func (h *Handler) callSmartQuery(ctx context.Context, args map[string]any) (string, error) {
	var p SmartQueryParams
	if err := mapParams(args, &p); err != nil {
		return "", err
	}

	resp, err := h.memory.SmartQuery(ctx, p.Text)
	if err != nil {
		return "", err
	}

	if !resp.Searched {
		return "未检测到检索意图。如需查找笔记，请直接使用 search_memory 并提供关键词。", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "检索意图: 「%s」\n", resp.Keyword)
	b.WriteString(renderSearchResult(resp.Result))
	return b.String(), nil
}

// renderSearchResult は検索結果をユーザー向けテキストに整形する
func renderSearchResult(resp *service.SearchResponse) string {
	if len(resp.Matches) == 0 {
		return fmt.Sprintf("没有找到与「%s」相关的笔记。", resp.Keyword)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "找到与「%s」相关的笔记:\n", resp.Keyword)
	for i, m := range resp.Matches {
		indicator := "文件名匹配"
		if m.MatchedIn == service.MatchedInContent {
			indicator = "内容匹配"
		}
		fmt.Fprintf(&b, "%d. %s（%s）\n", i+1, m.Filename, indicator)
	}
	if resp.Overflow > 0 {
		fmt.Fprintf(&b, "……另有 %d 条匹配未显示。\n", resp.Overflow)
	}
	b.WriteString("可用 read_memory 按文件名读取全文。")
	return b.String()
}

// renderError はドメインエラーをユーザー向けテキストに変換する
// ここがドメインエラーとユーザー文言の唯一の境界
func renderError(err error) string {
	var ute *unknownToolError
	if errors.As(err, &ute) {
		return fmt.Sprintf("Tool not found: %s", ute.name)
	}

	switch {
	case errors.Is(err, service.ErrStoreNotConfigured):
		return "云端存储未配置（缺少 NUTSTORE_EMAIL / NUTSTORE_PASSWORD），请先设置环境变量。"
	case errors.Is(err, service.ErrNoteNotFound):
		return fmt.Sprintf("没有找到这条笔记: %v", err)
	case errors.Is(err, service.ErrTitleRequired):
		return "参数错误: 标题不能为空。"
	case errors.Is(err, service.ErrKeywordRequired):
		return "参数错误: 关键词不能为空。"
	case errors.Is(err, service.ErrFilenameRequired):
		return "参数错误: 文件名不能为空。"
	case errors.Is(err, service.ErrTextRequired):
		return "参数错误: 输入文本不能为空。"
	case errors.Is(err, service.ErrInvalidFilename):
		return "参数错误: 文件名不能包含路径分隔符或「..」。"
	default:
		return fmt.Sprintf("操作失败: %v", err)
	}
}

// unknownToolError は未知のツール名
type unknownToolError struct {
	name string
}

func (e *unknownToolError) Error() string {
	return "unknown tool: " + e.name
}
