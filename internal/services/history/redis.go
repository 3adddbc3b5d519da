package history

import (
	"context"
	"log"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"ctlpay/internal/models"
)

// historyKey holds the journal as a Redis list, newest entry first.
const historyKey = "ctlpay:historique"

// RedisStore keeps the journal in Redis so it survives restarts of the
// vending-machine process. Enabled when REDIS_ADDR is configured.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	if client == nil {
		panic("history: redis client is required")
	}
	return &RedisStore{client: client, key: historyKey}
}

func (s *RedisStore) Push(ctx context.Context, entry models.HistoryEntry, limit int) error {
	payload, err := sonic.Marshal(entry)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, payload)
	if limit > 0 {
		pipe.LTrim(ctx, s.key, 0, int64(limit)-1)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) List(ctx context.Context) ([]models.HistoryEntry, error) {
	raw, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]models.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry models.HistoryEntry
		if err := sonic.Unmarshal([]byte(item), &entry); err != nil {
			log.Printf("history: entrée corrompue ignorée: %v", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
