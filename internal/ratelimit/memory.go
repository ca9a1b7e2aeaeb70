package ratelimit

import (
	"sync"
	"time"
)

// Limiter 未认证入口的软性限流。进程内近似即可，不是安全边界；
// 多实例部署可换成共享计数的实现，调用方不感知。
type Limiter interface {
	Allow(key string) bool
}

type entry struct {
	count   int
	resetAt time.Time
}

// Memory 固定窗口计数器，按 key（来源 IP）限 limit 次/window。
type Memory struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*entry
}

func NewMemory(limit int, window time.Duration) *Memory {
	m := &Memory{
		limit:   limit,
		window:  window,
		entries: make(map[string]*entry),
	}
	go m.sweepLoop()
	return m
}

func (m *Memory) Allow(key string) bool { return m.allowAt(key, time.Now()) }

func (m *Memory) allowAt(key string, now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok || now.After(e.resetAt) {
		m.entries[key] = &entry{count: 1, resetAt: now.Add(m.window)}
		return true
	}
	if e.count >= m.limit {
		return false
	}
	e.count++
	return true
}

// 定期清理过期条目，避免 map 无限增长
func (m *Memory) sweepLoop() {
	t := time.NewTicker(5 * m.window)
	defer t.Stop()
	for now := range t.C {
		m.sweep(now)
	}
}

func (m *Memory) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range m.entries {
		if now.After(e.resetAt) {
			delete(m.entries, k)
		}
	}
}
