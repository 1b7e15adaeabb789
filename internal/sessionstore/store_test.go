package sessionstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learntype/internal/questionbank"
	"github.com/abhisek/learntype/internal/session"
)

func setupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

// sampleSession returns a session two answers in.
func sampleSession(t *testing.T) *session.Session {
	t.Helper()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	e := session.NewEngine(questionbank.Default(),
		session.WithClock(func() time.Time { return start }),
		session.WithIDGenerator(func() string { return "sess-42" }),
	)
	s := e.Start("user-1")
	for _, opt := range []string{"A", "B"} {
		q, ok := e.Next(s)
		require.True(t, ok)
		_, err := e.Submit(s, q.ID, opt, 3*time.Second)
		require.NoError(t, err)
	}
	return s
}

func testStoreContract(t *testing.T, st Store) {
	ctx := context.Background()

	_, err := st.Load(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound), "Load(missing) = %v", err)

	s := sampleSession(t)
	require.NoError(t, st.Save(ctx, s))

	got, err := st.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.UserID, got.UserID)
	assert.Equal(t, session.StatusActive, got.Status)
	assert.Equal(t, s.BankVersion, got.BankVersion)
	assert.Equal(t, s.Scores, got.Scores)
	assert.True(t, s.StartedAt.Equal(got.StartedAt))
	require.Len(t, got.Answers, 2)
	assert.Equal(t, "motivation_source", got.Answers[0].QuestionID)
	assert.Equal(t, 3*time.Second, got.Answers[1].ResponseTime)

	// Loaded sessions are copies.
	got.Scores["openness"] = 99
	again, err := st.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Scores.Get("openness"), again.Scores.Get("openness"))

	// Save replaces.
	s.Status = session.StatusAbandoned
	require.NoError(t, st.Save(ctx, s))
	again, err = st.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, session.StatusAbandoned, again.Status)

	require.NoError(t, st.Delete(ctx, s.ID))
	_, err = st.Load(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, st.Delete(ctx, s.ID), "deleting twice")
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore(0))
}

func TestRedisStore(t *testing.T) {
	client, _ := setupRedis(t)
	testStoreContract(t, NewRedisStore(client, time.Hour))
}

func TestRedisStore_KeyAndTTL(t *testing.T) {
	client, mr := setupRedis(t)
	st := NewRedisStore(client, 10*time.Minute)
	ctx := context.Background()

	s := sampleSession(t)
	require.NoError(t, st.Save(ctx, s))

	assert.True(t, mr.Exists(KeyPrefix+s.ID))
	assert.Equal(t, 10*time.Minute, mr.TTL(KeyPrefix+s.ID))

	mr.FastForward(11 * time.Minute)
	_, err := st.Load(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_CorruptDocument(t *testing.T) {
	client, mr := setupRedis(t)
	st := NewRedisStore(client, 0)

	require.NoError(t, mr.Set(KeyPrefix+"bad", "{not json"))
	_, err := st.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestRedisStore_Unreachable(t *testing.T) {
	client, mr := setupRedis(t)
	st := NewRedisStore(client, 0)
	require.NoError(t, st.Ping(context.Background()))

	mr.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := st.Load(ctx, "any")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore_Expiry(t *testing.T) {
	st := NewMemoryStore(time.Minute)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }
	ctx := context.Background()

	s := sampleSession(t)
	require.NoError(t, st.Save(ctx, s))

	now = now.Add(59 * time.Second)
	_, err := st.Load(ctx, s.ID)
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = st.Load(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, st.Len())
}
