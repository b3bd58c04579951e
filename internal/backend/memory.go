package backend

import (
	"fmt"
	"sync"
)

// Memory 是进程内的凭据存储，用于测试与 MockInit。
type Memory struct {
	mu    sync.RWMutex
	data  map[string]map[string][]byte // service -> user -> secret
	fault error
}

// NewMemory 返回一个空的内存存储。
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string][]byte)}
}

// NewFailingMemory 返回一个所有操作都失败并返回 err 的存储。
func NewFailingMemory(err error) *Memory {
	m := NewMemory()
	m.fault = err
	return m
}

func (m *Memory) Get(service, user string) ([]byte, error) {
	if m.fault != nil {
		return nil, m.fault
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[service][user]; ok {
		out := make([]byte, len(v))
		copy(out, v)
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, service, user)
}

func (m *Memory) Set(service, user string, secret []byte) error {
	if m.fault != nil {
		return m.fault
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[service] == nil {
		m.data[service] = make(map[string][]byte)
	}
	v := make([]byte, len(secret))
	copy(v, secret)
	m.data[service][user] = v
	return nil
}

func (m *Memory) Delete(service, user string) error {
	if m.fault != nil {
		return m.fault
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[service][user]; !ok {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, service, user)
	}
	delete(m.data[service], user)
	return nil
}
