package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/application/inventory"
)

const keyPrefix = "kardex:balance:"

var _ inventory.BalanceCache = (*BalanceCache)(nil)

// storeIfCurrent guarda el saldo solo si la generación no cambió desde la lectura.
// KEYS[1] generación, KEYS[2] saldo; ARGV[1] generación leída, ARGV[2] saldo, ARGV[3] TTL en ms.
var storeIfCurrent = goredis.NewScript(`
local g = redis.call('GET', KEYS[1])
if (g or '0') ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// BalanceCache caché de saldos compartida entre réplicas.
type BalanceCache struct {
	rdb goredis.UniversalClient
}

// NewBalanceCache construye la caché sobre un cliente ya conectado.
func NewBalanceCache(rdb goredis.UniversalClient) *BalanceCache {
	return &BalanceCache{rdb: rdb}
}

// Las llaves de un producto comparten hash tag para caer en el mismo slot de Redis Cluster.
func balanceKey(productID string) string { return keyPrefix + "{" + productID + "}" }
func genKey(productID string) string { return keyPrefix + "gen:{" + productID + "}" }

// Get lee saldo y generación en un solo MGET.
func (c *BalanceCache) Get(ctx context.Context, productID string) (decimal.Decimal, bool, int64, error) {
	vals, err := c.rdb.MGet(ctx, genKey(productID), balanceKey(productID)).Result()
	if err != nil {
		return decimal.Zero, false, 0, fmt.Errorf("redis get balance: %w", err)
	}
	gen, err := parseGen(vals[0])
	if err != nil {
		return decimal.Zero, false, 0, err
	}
	raw, ok := vals[1].(string)
	if !ok {
		return decimal.Zero, false, gen, nil
	}
	balance, err := decimal.NewFromString(raw)
	if err != nil {
		// Valor corrupto: se trata como fallo de caché y se recalcula.
		return decimal.Zero, false, gen, nil
	}
	return balance, true, gen, nil
}

func (c *BalanceCache) Store(ctx context.Context, productID string, gen int64, balance decimal.Decimal, ttl time.Duration) error {
	if ttl <= 0 || gen%2 != 0 {
		return nil
	}
	keys := []string{genKey(productID), balanceKey(productID)}
	err := storeIfCurrent.Run(ctx, c.rdb, keys, strconv.FormatInt(gen, 10), balance.String(), ttl.Milliseconds()).Err()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("redis store balance: %w", err)
	}
	return nil
}

// Invalidate avanza la generación y borra el saldo en una transacción MULTI.
func (c *BalanceCache) Invalidate(ctx context.Context, productID string) error {
	_, err := c.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Incr(ctx, genKey(productID))
		p.Del(ctx, balanceKey(productID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate balance: %w", err)
	}
	return nil
}

func parseGen(v interface{}) (int64, error) {
	if v == nil {
		return 0, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("redis: generación con tipo inesperado %T", v)
	}
	gen, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis: generación inválida %q: %w", s, err)
	}
	return gen, nil
}
