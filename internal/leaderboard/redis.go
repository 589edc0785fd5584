package leaderboard

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/GushALKDev/solana-pulsar-dao/internal/repository"
)

// RankingKey is the sorted set holding user scores.
const RankingKey = "pulsar:leaderboard:score"

// RedisBoard caches scores in a Redis sorted set.
type RedisBoard struct {
	rdb *redis.Client
	key string
}

func NewRedisBoard(rdb *redis.Client) *RedisBoard {
	return &RedisBoard{rdb: rdb, key: RankingKey}
}

// Connect opens a client and checks it with PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

func (b *RedisBoard) Record(ctx context.Context, user string, score uint64) error {
	return b.rdb.ZAdd(ctx, b.key, redis.Z{Score: float64(score), Member: user}).Err()
}

func (b *RedisBoard) Top(ctx context.Context, limit int) ([]Entry, error) {
	results, err := b.rdb.ZRevRangeWithScores(ctx, b.key, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(results))
	for i, z := range results {
		member, _ := z.Member.(string)
		entries = append(entries, Entry{Rank: i + 1, User: member, Score: uint64(z.Score)})
	}
	return entries, nil
}

// Rebuild replaces the sorted set with the top scores stored in the database.
func (b *RedisBoard) Rebuild(ctx context.Context, stats *repository.StatsRepository, limit int) (int, error) {
	rows, err := stats.TopByScore(ctx, limit)
	if err != nil {
		return 0, err
	}

	pipe := b.rdb.TxPipeline()
	pipe.Del(ctx, b.key)
	for _, s := range rows {
		pipe.ZAdd(ctx, b.key, redis.Z{Score: float64(s.Score), Member: s.User})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return len(rows), nil
}
