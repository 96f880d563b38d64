package session

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jonboulle/clockwork"
	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	season = 2024
	client = "dash-1"
)

// backends runs fn against every Backend implementation
func backends(t *testing.T, fn func(t *testing.T, b Backend)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryBackend(clockwork.NewFakeClock(), time.Hour))
	})
	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { rc.Close() })
		fn(t, NewRedisBackend(rc, time.Hour))
	})
}

func newStore(b Backend) *Store {
	return NewStore(b, rand.New(rand.NewSource(7)))
}

func TestFilterDefaultsEmpty(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		s := newStore(b)
		pos, err := s.Filter(context.Background(), season, client)
		require.NoError(t, err)
		assert.Equal(t, models.Position(""), pos)

		available, err := s.AvailablePositions(context.Background(), season, client)
		require.NoError(t, err)
		assert.Equal(t, models.FieldPositions, available)
	})
}

func TestSetFilterRemovesFieldPosition(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		ctx := context.Background()
		s := newStore(b)

		require.NoError(t, s.SetFilter(ctx, season, client, models.PositionDefender))
		pos, err := s.Filter(ctx, season, client)
		require.NoError(t, err)
		assert.Equal(t, models.PositionDefender, pos)

		available, err := s.AvailablePositions(ctx, season, client)
		require.NoError(t, err)
		assert.NotContains(t, available, models.PositionDefender)
		assert.Len(t, available, 4)

		// the rookie pool never leaves the cycle
		require.NoError(t, s.SetFilter(ctx, season, client, models.PositionRookie))
		available, err = s.AvailablePositions(ctx, season, client)
		require.NoError(t, err)
		assert.Len(t, available, 4)
	})
}

func TestSetFilterRejectsUnknownPosition(t *testing.T) {
	s := newStore(NewMemoryBackend(nil, 0))
	err := s.SetFilter(context.Background(), season, client, models.Position("WING"))
	assert.True(t, errors.Is(err, drafterr.ErrValidation))
}

func TestDrawFilterCyclesEveryPosition(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		ctx := context.Background()
		s := newStore(b)

		seen := map[models.Position]int{}
		for i := 0; i < len(models.FieldPositions); i++ {
			pos, err := s.DrawFilter(ctx, season, client)
			require.NoError(t, err)
			assert.True(t, pos.IsField())
			seen[pos]++
		}
		assert.Len(t, seen, len(models.FieldPositions))
		for _, n := range seen {
			assert.Equal(t, 1, n)
		}

		available, err := s.AvailablePositions(ctx, season, client)
		require.NoError(t, err)
		assert.Empty(t, available)

		// exhausted cycle starts over
		pos, err := s.DrawFilter(ctx, season, client)
		require.NoError(t, err)
		available, err = s.AvailablePositions(ctx, season, client)
		require.NoError(t, err)
		assert.Len(t, available, 4)
		assert.NotContains(t, available, pos)
	})
}

func TestResetFilter(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		ctx := context.Background()
		s := newStore(b)
		require.NoError(t, s.SetFilter(ctx, season, client, models.PositionRuck))
		require.NoError(t, s.ResetFilter(ctx, season, client))

		pos, err := s.Filter(ctx, season, client)
		require.NoError(t, err)
		assert.Empty(t, pos)
		available, err := s.AvailablePositions(ctx, season, client)
		require.NoError(t, err)
		assert.Len(t, available, 5)
	})
}

func TestRookieMemory(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		ctx := context.Background()
		s := newStore(b)

		require.NoError(t, s.RememberRookie(ctx, season, client, 42))
		require.NoError(t, s.RememberRookie(ctx, season, client, 7))

		ok, err := s.IsRookie(ctx, season, client, 42)
		require.NoError(t, err)
		assert.True(t, ok)

		// other dashboards and seasons are isolated
		ok, err = s.IsRookie(ctx, season, "dash-2", 42)
		require.NoError(t, err)
		assert.False(t, ok)
		ok, err = s.IsRookie(ctx, season+1, client, 42)
		require.NoError(t, err)
		assert.False(t, ok)

		ids, err := s.Rookies(ctx, season, client)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{7, 42}, ids)

		require.NoError(t, s.ForgetRookie(ctx, season, client, 42))
		ok, err = s.IsRookie(ctx, season, client, 42)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCurrentPlayer(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		ctx := context.Background()
		s := newStore(b)

		id, err := s.CurrentPlayer(ctx, season, client)
		require.NoError(t, err)
		assert.Zero(t, id)

		require.NoError(t, s.SetCurrentPlayer(ctx, season, client, 311))
		id, err = s.CurrentPlayer(ctx, season, client)
		require.NoError(t, err)
		assert.Equal(t, 311, id)

		require.NoError(t, s.ClearCurrentPlayer(ctx, season, client))
		id, err = s.CurrentPlayer(ctx, season, client)
		require.NoError(t, err)
		assert.Zero(t, id)

		assert.Error(t, s.SetCurrentPlayer(ctx, season, client, 0))
	})
}

func TestSnapshotAndClear(t *testing.T) {
	backends(t, func(t *testing.T, b Backend) {
		ctx := context.Background()
		s := newStore(b)
		require.NoError(t, s.SetFilter(ctx, season, client, models.PositionForward))
		require.NoError(t, s.RememberRookie(ctx, season, client, 5))
		require.NoError(t, s.SetCurrentPlayer(ctx, season, client, 9))

		state, err := s.Snapshot(ctx, season, client)
		require.NoError(t, err)
		assert.Equal(t, models.PositionForward, state.Filter)
		assert.Equal(t, []int{5}, state.Rookies)
		assert.Equal(t, 9, state.CurrentPlayerID)
		assert.Len(t, state.AvailablePositions, 4)

		require.NoError(t, s.Clear(ctx, season, client))
		state, err = s.Snapshot(ctx, season, client)
		require.NoError(t, err)
		assert.Empty(t, state.Filter)
		assert.Empty(t, state.Rookies)
		assert.Zero(t, state.CurrentPlayerID)
	})
}

func TestMissingClientID(t *testing.T) {
	s := newStore(NewMemoryBackend(nil, 0))
	_, err := s.Filter(context.Background(), season, "")
	assert.True(t, errors.Is(err, drafterr.ErrValidation))
	assert.True(t, errors.Is(s.RememberRookie(context.Background(), season, "", 1), drafterr.ErrValidation))
}

func TestMemoryBackendExpiry(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	b := NewMemoryBackend(clock, time.Minute)

	require.NoError(t, b.Set(ctx, "k", "v"))
	require.NoError(t, b.SAdd(ctx, "s", "a"))

	clock.Advance(59 * time.Second)
	v, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	// a write refreshes the TTL
	require.NoError(t, b.SAdd(ctx, "s", "b"))
	clock.Advance(2 * time.Second)

	_, err = b.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMissing)
	members, err := b.SMembers(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, members)
}

func TestRedisBackendTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rc.Close() })
	b := NewRedisBackend(rc, time.Minute)

	require.NoError(t, b.Ping(ctx))
	require.NoError(t, b.SAdd(ctx, "s", "a"))
	require.NoError(t, b.Set(ctx, "k", "v"))
	assert.Equal(t, time.Minute, mr.TTL("s"))
	assert.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(time.Minute + time.Second)
	_, err := b.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMissing)
}

func TestNewRedisClientURL(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := NewRedisClient("redis://"+mr.Addr()+"/0", 0)
	require.NoError(t, err)
	t.Cleanup(func() { rc.Close() })
	require.NoError(t, rc.Ping(context.Background()).Err())

	_, err = NewRedisClient("", 0)
	assert.Error(t, err)
}
