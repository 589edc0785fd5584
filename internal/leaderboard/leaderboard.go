// Package leaderboard ranks voters by participation score.
package leaderboard

import (
	"context"

	"github.com/GushALKDev/solana-pulsar-dao/internal/repository"
)

type Entry struct {
	Rank  int    `json:"rank"`
	User  string `json:"user"`
	Score uint64 `json:"score"`
}

// Board is refreshed after each committed vote and read by the leaderboard
// endpoint. UserStats rows stay the source of truth.
type Board interface {
	Record(ctx context.Context, user string, score uint64) error
	Top(ctx context.Context, limit int) ([]Entry, error)
}

// DBBoard reads rankings straight from user_stats.
type DBBoard struct {
	stats *repository.StatsRepository
}

func NewDBBoard(stats *repository.StatsRepository) *DBBoard {
	return &DBBoard{stats: stats}
}

// Record is a no-op: the score was already written with the vote.
func (b *DBBoard) Record(ctx context.Context, user string, score uint64) error {
	return nil
}

func (b *DBBoard) Top(ctx context.Context, limit int) ([]Entry, error) {
	stats, err := b.stats.TopByScore(ctx, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(stats))
	for i, s := range stats {
		entries = append(entries, Entry{Rank: i + 1, User: s.User, Score: s.Score})
	}
	return entries, nil
}
