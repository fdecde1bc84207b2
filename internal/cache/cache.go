// Package cache provides a bounded LRU memoization for search results.
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity はエントリ数の上限デフォルト
const DefaultCapacity = 128

// Results はキーワード文字列をキーとする有界LRUキャッシュ
// 並行アクセス安全。無効化は保存成功時のPurge一括のみ
type Results[V any] struct {
	lru *lru.Cache[string, V]
}

// New はResultsを作成する。capacityが0以下ならDefaultCapacityを使用
func New[V any](capacity int) (*Results[V], error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c, err := lru.New[string, V](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &Results[V]{lru: c}, nil
}

// Get はキーに対応する値を返す
func (r *Results[V]) Get(key string) (V, bool) {
	return r.lru.Get(key)
}

// Add は値を格納する（容量超過時は最も古いエントリを追い出す）
func (r *Results[V]) Add(key string, value V) {
	r.lru.Add(key, value)
}

// Purge は全エントリを破棄する
func (r *Results[V]) Purge() {
	r.lru.Purge()
}

// Len は現在のエントリ数を返す
func (r *Results[V]) Len() int {
	return r.lru.Len()
}
