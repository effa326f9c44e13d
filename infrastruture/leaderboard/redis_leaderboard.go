package leaderboard

import (
	"context"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/mazechase/domain"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "mazechase"
	defaultSize   = 100

	boardKeyFmt = "%s:leaderboard:%s"
	lockTimeout = 2 * time.Second
)

// RedisLeaderboard ranks escape times per difficulty in Redis sorted sets.
// Lower scores are better; each player keeps only their best time.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	size   int64
}

// NewRedisLeaderboard initializes a RedisLeaderboard that keeps at most size
// entries per difficulty.
func NewRedisLeaderboard(client *redis.Client, prefix string, size int64) (*RedisLeaderboard, error) {
	if prefix == "" {
		prefix = defaultPrefix
	}
	if size <= 0 {
		size = defaultSize
	}

	board := &RedisLeaderboard{
		client: client,
		prefix: prefix,
		size:   size,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

// Submit records seconds for the player if it beats their previous best and
// trims the board to its size.
func (rl *RedisLeaderboard) Submit(ctx context.Context, difficulty string, playerID uuid.UUID, seconds float64) error {
	key := rl.key(difficulty)

	// Add and trim must not interleave with another writer's trim.
	mutex := rl.locker.NewMutex(key+":trim_lock", redsync.WithExpiry(lockTimeout))
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("locking leaderboard %s: %w", key, err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	err := rl.client.ZAddArgs(ctx, key, redis.ZAddArgs{
		LT:      true,
		Members: []redis.Z{{Score: seconds, Member: playerID.String()}},
	}).Err()
	if err != nil {
		return fmt.Errorf("adding to leaderboard %s: %w", key, err)
	}

	if err := rl.client.ZRemRangeByRank(ctx, key, rl.size, -1).Err(); err != nil {
		return fmt.Errorf("trimming leaderboard %s: %w", key, err)
	}
	return nil
}

// Top returns up to n best entries, fastest first.
func (rl *RedisLeaderboard) Top(ctx context.Context, difficulty string, n int64) ([]dmn.LeaderboardEntry, error) {
	if n <= 0 || n > rl.size {
		n = rl.size
	}

	scores, err := rl.client.ZRangeWithScores(ctx, rl.key(difficulty), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard: %w", err)
	}

	entries := make([]dmn.LeaderboardEntry, 0, len(scores))
	for i, z := range scores {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		entries = append(entries, dmn.LeaderboardEntry{Rank: i + 1, PlayerID: id, Seconds: z.Score})
	}
	return entries, nil
}

// Count returns the number of ranked players for the difficulty.
func (rl *RedisLeaderboard) Count(ctx context.Context, difficulty string) (int64, error) {
	count, err := rl.client.ZCard(ctx, rl.key(difficulty)).Result()
	if err != nil {
		return 0, fmt.Errorf("counting leaderboard: %w", err)
	}
	return count, nil
}

func (rl *RedisLeaderboard) key(difficulty string) string {
	return fmt.Sprintf(boardKeyFmt, rl.prefix, difficulty)
}
