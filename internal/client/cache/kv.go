// Package cache 提供客戶端的持久鏡像：以字串為鍵的 KV 儲存，
// 用來在行程重啟之間保留食譜快照與登入狀態。
package cache

import (
	"context"
	"errors"
)

// ErrKeyNotFound 表示鍵不存在
var ErrKeyNotFound = errors.New("cache: key not found")

// KV 字串鍵值儲存
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}
