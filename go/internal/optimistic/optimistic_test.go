package optimistic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counts map[string]int

func cloneCounts(c counts) counts {
	out := make(counts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

func inc(key string) func(counts) counts {
	return func(c counts) counts {
		c[key]++
		return c
	}
}

func TestRunSettlesOnAuthoritativeState(t *testing.T) {
	v := NewView(counts{"C": 1}, cloneCounts)

	got, err := v.Run(context.Background(), Command[counts]{
		Name:    "sell",
		Predict: inc("C"),
		Execute: func(context.Context) (counts, error) {
			return counts{"C": 2, "D": 1}, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, counts{"C": 2, "D": 1}, got)
	assert.Equal(t, counts{"C": 2, "D": 1}, v.State())
}

func TestPredictionVisibleWhileInFlight(t *testing.T) {
	v := NewView(counts{}, cloneCounts)
	seen := make(chan counts, 1)

	_, err := v.Run(context.Background(), Command[counts]{
		Predict: inc("RK"),
		Execute: func(context.Context) (counts, error) {
			seen <- v.State()
			return counts{"RK": 1}, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, counts{"RK": 1}, <-seen)
}

func TestRunRollsBackOnFailure(t *testing.T) {
	v := NewView(counts{"F": 3}, cloneCounts)
	boom := errors.New("409 invalid sale")

	got, err := v.Run(context.Background(), Command[counts]{
		Predict: inc("F"),
		Execute: func(context.Context) (counts, error) { return nil, boom },
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, counts{"F": 3}, got)
	assert.False(t, v.Stale())
}

func TestFailureAfterNewerChangeMarksStale(t *testing.T) {
	v := NewView(counts{}, cloneCounts)

	_, err := v.Run(context.Background(), Command[counts]{
		Predict: inc("C"),
		Execute: func(context.Context) (counts, error) {
			// a refresh lands while the write is in flight
			v.Replace(counts{"OB": 4})
			return nil, errors.New("store unavailable")
		},
	})
	require.Error(t, err)
	assert.True(t, v.Stale())
	assert.Equal(t, counts{"OB": 4}, v.State())

	v.Replace(counts{})
	assert.False(t, v.Stale())
}

func TestStateIsACopy(t *testing.T) {
	v := NewView(counts{"D": 1}, cloneCounts)
	s := v.State()
	s["D"] = 99
	assert.Equal(t, 1, v.State()["D"])
}

func TestUnconfirmedKeepsPrediction(t *testing.T) {
	v := NewView(counts{"C": 1}, cloneCounts)
	lost := errors.New("connection reset")

	got, err := v.Run(context.Background(), Command[counts]{
		Name:    "sell",
		Predict: inc("C"),
		Execute: func(context.Context) (counts, error) {
			return nil, Unconfirmed(lost)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, counts{"C": 2}, got)
	assert.Equal(t, counts{"C": 2}, v.State())
	assert.True(t, v.Stale())
	assert.ErrorIs(t, Unconfirmed(lost), lost)
}
