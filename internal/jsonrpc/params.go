package jsonrpc

import (
	"encoding/json"
)

// SaveMemoryParams は save_memory のパラメータ
type SaveMemoryParams struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SearchMemoryParams は search_memory のパラメータ
type SearchMemoryParams struct {
	Keyword string `json:"keyword"`
}

// ReadMemoryParams は read_memory のパラメータ
type ReadMemoryParams struct {
	Filename string `json:"filename"`
}

// SmartQueryParams は smart_query のパラメータ
type SmartQueryParams struct {
	Text string `json:"text"`
}

// mapParams はanyをターゲット構造体にマッピング
func mapParams(params any, target any) error {
	if params == nil {
		return nil
	}

	// anyをJSONに変換してから構造体にアンマーシャル
	b, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, target)
}
