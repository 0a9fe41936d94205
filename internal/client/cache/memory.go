package cache

import (
	"context"
	"sync"
)

// Memory 記憶體內的 KV 儲存，Redis 不可用或測試時使用
type Memory struct {
	mu    sync.RWMutex
	store map[string]string
}

// NewMemory 創建記憶體 KV 儲存
func NewMemory() *Memory {
	return &Memory{
		store: make(map[string]string),
	}
}

// Get 獲取快取值
func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.store[key]
	if !exists {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Set 設置快取值
func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store[key] = value
	return nil
}

// Del 刪除快取鍵
func (m *Memory) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.store, key)
	}
	return nil
}
