package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/application/inventory"
)

var _ inventory.BalanceCache = (*BalanceCache)(nil)

// BalanceCache caché de saldos en proceso, con generación por producto.
type BalanceCache struct {
	mu      sync.Mutex
	entries map[string]cachedBalance
	gens    map[string]int64
	now     func() time.Time
}

type cachedBalance struct {
	balance   decimal.Decimal
	expiresAt time.Time
}

// NewBalanceCache crea la caché vacía.
func NewBalanceCache() *BalanceCache {
	return &BalanceCache{
		entries: make(map[string]cachedBalance),
		gens:    make(map[string]int64),
		now:     time.Now,
	}
}

func (c *BalanceCache) Get(_ context.Context, productID string) (decimal.Decimal, bool, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen := c.gens[productID]
	e, ok := c.entries[productID]
	if !ok || !c.now().Before(e.expiresAt) {
		delete(c.entries, productID)
		return decimal.Zero, false, gen, nil
	}
	return e.balance, true, gen, nil
}

func (c *BalanceCache) Store(_ context.Context, productID string, gen int64, balance decimal.Decimal, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen%2 != 0 || c.gens[productID] != gen {
		return nil
	}
	c.entries[productID] = cachedBalance{balance: balance, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *BalanceCache) Invalidate(_ context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[productID]++
	delete(c.entries, productID)
	return nil
}
