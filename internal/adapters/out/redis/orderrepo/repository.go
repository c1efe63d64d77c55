package orderrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/redis/go-redis/v9"
)

// indexKey is the set holding every stored order id.
const indexKey = "orders"

// RedisOrderRepository implements ports.OrderRepository on Redis.
type RedisOrderRepository struct {
	client *redis.Client
}

func NewRedisOrderRepository(client *redis.Client) *RedisOrderRepository {
	return &RedisOrderRepository{client: client}
}

// Save writes the document and indexes its id in one MULTI/EXEC.
func (r *RedisOrderRepository) Save(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	doc := fromDomain(aggregate)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal order failed: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, orderKey(doc.ID), data, 0)
		pipe.SAdd(ctx, indexKey, doc.ID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis save failed: %w", err)
	}

	return toDomain(doc)
}

// FindByID returns (nil, false, nil) on a missing key.
func (r *RedisOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, bool, error) {
	if err := id.Validate(); err != nil {
		return nil, false, err
	}

	data, err := r.client.Get(ctx, orderKey(id.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	aggregate, err := decode(data)
	if err != nil {
		return nil, false, err
	}
	return aggregate, true, nil
}

// FindAll reads the index and fetches every document with one MGET. Ids whose
// document has disappeared are skipped.
func (r *RedisOrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers failed: %w", err)
	}
	if len(ids) == 0 {
		return []*order.Order{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, orderKey(id))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget failed: %w", err)
	}

	orders := make([]*order.Order, 0, len(values))
	for _, value := range values {
		data, ok := value.(string)
		if !ok {
			continue
		}
		aggregate, decodeErr := decode([]byte(data))
		if decodeErr != nil {
			return nil, decodeErr
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}

func decode(data []byte) (*order.Order, error) {
	var doc orderDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal order failed: %w", err)
	}
	return toDomain(doc)
}

func orderKey(id string) string {
	return fmt.Sprintf("order:%s", id)
}
