// Package cache хранит ключи "уже уведомили" с ограничением по размеру
// и времени жизни. Нужен, чтобы одно и то же напоминание не уходило
// пользователю дважды за день, даже если cron сработал повторно.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// NotifiedSet — множество ключей с атомарной операцией "добавить, если нет".
type NotifiedSet interface {
	// MarkIfNew добавляет ключ и возвращает true, если его ещё не было.
	MarkIfNew(ctx context.Context, key string) (bool, error)
}

type entry struct {
	key       string
	expiresAt time.Time
}

// MemorySet — NotifiedSet в памяти процесса: не больше capacity ключей,
// при переполнении вытесняется самый давно использованный (LRU).
type MemorySet struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List // front — самый свежий
	items    map[string]*list.Element
	now      func() time.Time
}

// NewMemorySet создаёт множество. ttl <= 0 — ключи не истекают.
func NewMemorySet(capacity int, ttl time.Duration) *MemorySet {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemorySet{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
		now:      time.Now,
	}
}

// MarkIfNew реализует NotifiedSet. Ошибок не бывает.
func (s *MemorySet) MarkIfNew(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if el, ok := s.items[key]; ok {
		e := el.Value.(*entry)
		if s.ttl <= 0 || now.Before(e.expiresAt) {
			s.order.MoveToFront(el)
			return false, nil
		}
		// истёк — считаем новым
		s.order.Remove(el)
		delete(s.items, key)
	}

	e := &entry{key: key}
	if s.ttl > 0 {
		e.expiresAt = now.Add(s.ttl)
	}
	s.items[key] = s.order.PushFront(e)

	for s.order.Len() > s.capacity {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.items, oldest.Value.(*entry).key)
	}
	return true, nil
}

// Len возвращает число ключей (включая ещё не вычищенные истёкшие).
func (s *MemorySet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}
