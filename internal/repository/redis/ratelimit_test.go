package redisrepo

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(db *redis.Client) *SlidingWindowLimiter {
	l := NewSlidingWindowLimiter(db, "rl", 2, time.Minute)
	l.now = func() time.Time { return time.UnixMilli(1_000_000) }
	l.member = func() string { return "m" }
	return l
}

func TestSlidingWindowLimiter_Allow(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := newTestLimiter(db)
	hash := redis.NewScript(luaSlidingWindow).Hash()

	mock.ExpectEvalSha(hash, []string{"rl:purchase:1"}, int64(1_000_000), int64(60_000), 2, "m").
		SetVal([]any{int64(1), int64(1), int64(0)})

	d, err := l.Allow(context.Background(), "purchase:1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, int64(1), d.Count)
	assert.Zero(t, d.RetryAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlidingWindowLimiter_Denied(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := newTestLimiter(db)
	hash := redis.NewScript(luaSlidingWindow).Hash()

	mock.ExpectEvalSha(hash, []string{"rl:purchase:1"}, int64(1_000_000), int64(60_000), 2, "m").
		SetVal([]any{int64(0), int64(3), int64(42_000)})

	d, err := l.Allow(context.Background(), "purchase:1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, int64(3), d.Count)
	assert.Equal(t, 42*time.Second, d.RetryAfter)
}

func TestSlidingWindowLimiter_BadReply(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := newTestLimiter(db)
	hash := redis.NewScript(luaSlidingWindow).Hash()

	mock.ExpectEvalSha(hash, []string{"rl:x"}, int64(1_000_000), int64(60_000), 2, "m").SetVal("OK")

	_, err := l.Allow(context.Background(), "x")
	assert.Error(t, err)
}
