package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/session"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
)

// Проверка, что SessionCache удовлетворяет интерфейсу session.Cache.
var _ session.Cache = (*SessionCache)(nil)

type entry struct {
	id        string
	session   *session.Session
	expiresAt time.Time
}

// SessionCache — LRU-кэш живых сессий с TTL простоя.
// Вытеснение сессии — аналог закрытия страницы: корзина остаётся в хранилище,
// теряются только выбранные swatch'и и видимость панели.
type SessionCache struct {
	capacity int
	ttl      time.Duration

	ll    *list.List
	cache map[string]*list.Element

	mu sync.Mutex
}

// NewSessionCache — capacity <= 0 трактуется как 1; ttl <= 0 — без истечения.
func NewSessionCache(capacity int, ttl time.Duration) *SessionCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &SessionCache{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		cache:    make(map[string]*list.Element),
	}
}

// Get — сессия по id; каждое обращение продлевает TTL.
func (c *SessionCache) Get(_ context.Context, id string) (*session.Session, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.cache[id]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent, ok := elem.Value.(*entry)
	if !ok || c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(c.ll.Len()))
		return nil, false
	}
	c.ll.MoveToFront(elem)
	ent.expiresAt = c.expiryFrom(now)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return ent.session, true
}

// Set — сохранить/заменить сессию.
func (c *SessionCache) Set(_ context.Context, s *session.Session) error {
	if s == nil || s.ID == "" {
		return nil
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[s.ID]; ok {
		if ent, ok := elem.Value.(*entry); ok {
			ent.session = s
			ent.expiresAt = c.expiryFrom(now)
			c.ll.MoveToFront(elem)
			return nil
		}
		c.removeElement(elem)
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:        s.ID,
		session:   s,
		expiresAt: c.expiryFrom(now),
	})
	c.cache[s.ID] = elem
	metrics.CacheSize.Set(float64(c.ll.Len()))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

// Len — количество сессий в кэше (включая ещё не вычищенные истёкшие).
func (c *SessionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
