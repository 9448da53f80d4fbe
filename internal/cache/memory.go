package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// entry — агрегат и момент его устаревания.
type entry struct {
	total     int
	expiresAt time.Time
}

// Memory — in-process LRU с TTL на запись. Годится для одного инстанса.
type Memory struct {
	lru *lru.Cache[int64, entry]
	ttl time.Duration
	now func() time.Time
}

// NewMemory создаёт LRU ёмкостью size.
func NewMemory(size int, ttl time.Duration) (*Memory, error) {
	l, err := lru.New[int64, entry](size)
	if err != nil {
		return nil, err
	}

	return &Memory{lru: l, ttl: ttlOrDefault(ttl), now: time.Now}, nil
}

// Get возвращает агрегат; просроченная запись удаляется и считается промахом.
func (m *Memory) Get(_ context.Context, rootID int64) (int, bool, error) {
	e, ok := m.lru.Get(rootID)
	if !ok {
		return 0, false, nil
	}

	if m.now().After(e.expiresAt) {
		m.lru.Remove(rootID)
		return 0, false, nil
	}

	return e.total, true, nil
}

func (m *Memory) Set(_ context.Context, rootID int64, total int) error {
	m.lru.Add(rootID, entry{total: total, expiresAt: m.now().Add(m.ttl)})
	return nil
}

func (m *Memory) Delete(_ context.Context, rootID int64) error {
	m.lru.Remove(rootID)
	return nil
}

func (m *Memory) Close() error {
	m.lru.Purge()
	return nil
}

var _ RollupCache = (*Memory)(nil)
