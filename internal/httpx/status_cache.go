package httpx

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shuddhindia/storefront-api/internal/orders"
	"github.com/shuddhindia/storefront-api/internal/redisx"
)

// OrderStatusCache keeps fulfillment statuses for the order-status polling
// endpoint. Entries are scoped to the order's owner; reads for anyone else
// miss and fall through to the store, where ownership is enforced.
type OrderStatusCache interface {
	Read(ctx context.Context, userID, orderID string) (orders.Status, bool)
	Write(ctx context.Context, userID, orderID string, s orders.Status)
}

type RedisStatusCache struct{ Client *redis.Client }

func (c RedisStatusCache) Read(ctx context.Context, userID, orderID string) (orders.Status, bool) {
	s, err := c.Client.Get(ctx, fmt.Sprintf(redisx.KeyOrderStatus, userID, orderID)).Result()
	if err != nil || s == "" {
		return "", false
	}
	return orders.Status(s), true
}

func (c RedisStatusCache) Write(ctx context.Context, userID, orderID string, s orders.Status) {
	key := fmt.Sprintf(redisx.KeyOrderStatus, userID, orderID)
	_ = c.Client.Set(ctx, key, string(s), redisx.TTLStatusCache).Err()
}
