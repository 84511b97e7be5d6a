package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type lruEntry struct {
	value   []byte
	expires time.Time
}

// LRU, süreç içi, boyut sınırlı bir Store'dur. Her kaydın kendi bitiş
// zamanı vardır; süresi dolan kayıt ilk okumada silinir.
type LRU struct {
	cache *lru.Cache[string, lruEntry]
	mu    sync.Mutex
	now   func() time.Time
}

// NewLRU, en fazla size kayıt tutan bir LRU oluşturur.
func NewLRU(size int) (*LRU, error) {
	c, err := lru.New[string, lruEntry](size)
	if err != nil {
		return nil, err
	}
	return &LRU{cache: c, now: time.Now}, nil
}

// Get, Store arayüzünü uygular.
func (l *LRU) Get(_ context.Context, key string) ([]byte, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !entry.expires.IsZero() && !l.now().Before(entry.expires) {
		l.cache.Remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set, Store arayüzünü uygular.
func (l *LRU) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := lruEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expires = l.now().Add(ttl)
	}
	l.cache.Add(key, entry)
	return nil
}

// Delete, Store arayüzünü uygular.
func (l *LRU) Delete(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cache.Remove(key)
	return nil
}

// Len, önbellekteki kayıt sayısını döndürür (süresi dolmuş olanlar dahil).
func (l *LRU) Len() int {
	return l.cache.Len()
}

// Purge, bütün kayıtları siler.
func (l *LRU) Purge() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cache.Purge()
}
