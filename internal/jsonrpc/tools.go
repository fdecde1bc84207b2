package jsonrpc

import (
	"github.com/ethanw/memovault/internal/model"
)

// ツール名の定数
const (
	ToolSaveMemory     = "save_memory"
	ToolSearchMemory   = "search_memory"
	ToolReadMemory     = "read_memory"
	ToolGetCurrentTime = "get_current_time"
	ToolSmartQuery     = "smart_query"
)

// mcpTools は公開ツールの静的カタログ
// デプロイ版ごとに固定であり、リフレクションからは導出しない
var mcpTools = []model.Tool{
	{
		Name:        ToolSaveMemory,
		Description: "保存一条记忆到云端笔记库。标题用于生成文件名，内容以Markdown正文存储。",
		InputSchema: model.JSONSchema{
			Type: "object",
			Properties: map[string]model.JSONSchema{
				"title":   {Type: "string", Description: "记忆的标题"},
				"content": {Type: "string", Description: "记忆的内容，可以是Markdown"},
			},
			Required: []string{"title", "content"},
		},
	},
	{
		Name:        ToolSearchMemory,
		Description: "按关键词搜索云端记忆。匹配文件名和笔记开头的内容，最多返回3条。",
		InputSchema: model.JSONSchema{
			Type: "object",
			Properties: map[string]model.JSONSchema{
				"keyword": {Type: "string", Description: "搜索关键词"},
			},
			Required: []string{"keyword"},
		},
	},
	{
		Name:        ToolReadMemory,
		Description: "按文件名读取一条记忆的全文（超长内容会被截断）。",
		InputSchema: model.JSONSchema{
			Type: "object",
			Properties: map[string]model.JSONSchema{
				"filename": {Type: "string", Description: "笔记文件名，可省略.md后缀"},
			},
			Required: []string{"filename"},
		},
	},
	{
		Name:        ToolGetCurrentTime,
		Description: "获取当前时间（UTC+8）。",
		InputSchema: model.JSONSchema{
			Type:       "object",
			Properties: map[string]model.JSONSchema{},
		},
	},
	{
		Name:        ToolSmartQuery,
		Description: "从自然语言中识别检索意图，自动提取关键词并搜索记忆。",
		InputSchema: model.JSONSchema{
			Type: "object",
			Properties: map[string]model.JSONSchema{
				"text": {Type: "string", Description: "用户的自然语言输入"},
			},
			Required: []string{"text"},
		},
	},
}
