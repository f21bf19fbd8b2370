// Package redis caché de totales por producto sobre Redis (cache-aside).
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/wms-ledger/internal/application/inventory"
	"github.com/jhoicas/wms-ledger/pkg/config"
)

var _ inventory.TotalsCache = (*TotalsCache)(nil)

// TotalsCache guarda el total de cada producto bajo "<prefix>:total:<product_id>" con TTL.
// Las mutaciones confirmadas borran la clave; el TTL acota lo que dure una invalidación perdida.
type TotalsCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewTotalsCache construye la caché sobre un cliente ya creado.
func NewTotalsCache(client *redis.Client, prefix string, ttl time.Duration) *TotalsCache {
	return &TotalsCache{client: client, prefix: prefix, ttl: ttl}
}

// NewClient crea el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (c *TotalsCache) key(productID int64) string {
	return c.prefix + ":total:" + strconv.FormatInt(productID, 10)
}

func (c *TotalsCache) GetProductTotal(ctx context.Context, productID int64) (int64, bool, error) {
	total, err := c.client.Get(ctx, c.key(productID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get total: %w", err)
	}
	return total, true, nil
}

func (c *TotalsCache) SetProductTotal(ctx context.Context, productID, total int64) error {
	if err := c.client.Set(ctx, c.key(productID), total, c.ttl).Err(); err != nil {
		return fmt.Errorf("set total: %w", err)
	}
	return nil
}

func (c *TotalsCache) Invalidate(ctx context.Context, productIDs ...int64) error {
	if len(productIDs) == 0 {
		return nil
	}
	keys := make([]string, len(productIDs))
	for i, id := range productIDs {
		keys[i] = c.key(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate totals: %w", err)
	}
	return nil
}
