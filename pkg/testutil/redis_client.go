package testutil

import (
	"context"
	"sync"
	"time"
)

// MockRedisClient is an in-memory stand-in; ttls are ignored.
type MockRedisClient struct {
	mutex    sync.Mutex
	values   map[string]string
	counters map[string]int64
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		values:   make(map[string]string),
		counters: make(map[string]int64),
	}
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	_, ok := m.values[key]
	if !ok {
		_, ok = m.counters[key]
	}
	return ok, nil
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, key := range keys {
		delete(m.values, key)
		delete(m.counters, key)
	}
	return nil
}

func (m *MockRedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.values[key] = value
	return nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.values[key], nil
}

func (m *MockRedisClient) IncrWithExpire(
	ctx context.Context, key string, ttl time.Duration,
) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.counters[key]++
	return m.counters[key], nil
}
