package draftclient

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/ncalf/draftboard/go/internal/aggregates"
	"github.com/ncalf/draftboard/go/internal/draft/rules"
	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/ncalf/draftboard/go/internal/nomination"
	"github.com/ncalf/draftboard/go/internal/player"
	"github.com/ncalf/draftboard/go/internal/player/memstore"
	"github.com/ncalf/draftboard/go/internal/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const season = 2024

func seedPlayer(id int, pos models.Position, surname string) models.PlayerSeason {
	return models.PlayerSeason{
		Season:         season,
		PlayerSeasonID: id,
		PlayerID:       "CD_I10" + surname,
		FirstName:      "Test",
		Surname:        surname,
		Club:           "Geel",
		Position:       pos,
	}
}

// newServer wires the API the way the server binary does, on in-memory stores
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newRouter())
	t.Cleanup(srv.Close)
	return srv
}

func newRouter() http.Handler {
	store := memstore.New(clockwork.NewFakeClock())
	store.Seed(
		seedPlayer(1, models.PositionRuck, "Stanley"),
		seedPlayer(2, models.PositionRuck, "Marshall"),
		seedPlayer(3, models.PositionCentre, "Bontempelli"),
		seedPlayer(4, models.PositionRookie, "Newcombe"),
	)
	engine := rules.NewEngine(rules.DefaultConfig())
	sess := session.NewStore(session.NewMemoryBackend(nil, 0), rand.New(rand.NewSource(1)))
	lifecycle := player.NewApp(store, engine, sess)
	views := aggregates.NewApp(store, engine, aggregates.DefaultConfig())

	r := chi.NewRouter()
	player.NewService(lifecycle).RegisterRoutes(r)
	aggregates.NewService(views).RegisterRoutes(r)
	session.NewService(sess).RegisterRoutes(r)
	nomination.NewService(nomination.NewApp(store, lifecycle, sess, rand.New(rand.NewSource(2)))).RegisterRoutes(r)
	return r
}

func TestClientLifecycle(t *testing.T) {
	ctx := context.Background()
	c := NewClient(newServer(t).URL, "dash-1")

	require.NoError(t, c.MarkNominated(ctx, player.MarkNominatedRequest{
		Season: season, PlayerSeasonID: 3, Position: models.PositionCentre,
	}))

	sold, err := c.Sell(ctx, player.SellRequest{
		Season: season, PlayerSeasonID: 3, TeamID: 2,
		Price: decimal.RequireFromString("4.50"), Position: models.PositionCentre,
	})
	require.NoError(t, err)
	assert.True(t, sold.Sold)
	assert.Equal(t, 2, sold.TeamID)

	stats, err := c.TeamStats(ctx, season)
	require.NoError(t, err)
	require.Len(t, stats, len(models.TeamIDs))
	assert.Equal(t, 1, stats[1].C)
	assert.True(t, decimal.RequireFromString("4.50").Equal(stats[1].TotalPrice))

	mvps, err := c.MVPs(ctx, season)
	require.NoError(t, err)
	require.Len(t, mvps, 1)
	assert.Equal(t, 3, mvps[0].PlayerSeasonID)

	unsold, err := c.UnsoldByPosition(ctx, season, models.PositionRuck, 0, "")
	require.NoError(t, err)
	assert.Len(t, unsold, 2)

	check, err := c.CanSell(ctx, season, 2, models.PositionCentre, decimal.RequireFromString("1.00"))
	require.NoError(t, err)
	assert.True(t, check.OK)

	undone, err := c.UndoSale(ctx, player.UndoSaleRequest{Season: season, PlayerSeasonID: 3})
	require.NoError(t, err)
	assert.False(t, undone.Sold)

	moved, err := c.UpdatePosition(ctx, player.UpdatePositionRequest{
		Season: season, PlayerSeasonID: 3, Position: models.PositionForward,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PositionForward, moved.Position)
}

func TestClientErrorsCarrySentinels(t *testing.T) {
	ctx := context.Background()
	c := NewClient(newServer(t).URL, "dash-1")

	_, err := c.Sell(ctx, player.SellRequest{
		Season: season, PlayerSeasonID: 99, TeamID: 1,
		Price: decimal.NewFromInt(1), Position: models.PositionRuck,
	})
	assert.ErrorIs(t, err, drafterr.ErrNotFound)
	assert.True(t, IsStatus(err, http.StatusNotFound))

	_, err = c.Sell(ctx, player.SellRequest{
		Season: season, PlayerSeasonID: 1, TeamID: 1,
		Price: decimal.NewFromInt(60), Position: models.PositionRuck,
	})
	assert.ErrorIs(t, err, drafterr.ErrInvalidSale)
	var saleErr *drafterr.InvalidSaleError
	require.True(t, errors.As(err, &saleErr))
	assert.NotEmpty(t, saleErr.Reason)

	_, err = c.TeamStats(ctx, 24)
	assert.ErrorIs(t, err, drafterr.ErrValidation)
}

func TestClientUnreachable(t *testing.T) {
	srv := newServer(t)
	c := NewClient(srv.URL, "dash-1")
	srv.Close()

	_, err := c.SoldPlayers(context.Background(), season)
	assert.ErrorIs(t, err, drafterr.ErrStoreUnavailable)
}

func TestClientSessionAndNomination(t *testing.T) {
	ctx := context.Background()
	c := NewClient(newServer(t).URL, "dash-1")

	_, err := c.GenerateNomination(ctx, season)
	assert.ErrorIs(t, err, drafterr.ErrValidation)

	require.NoError(t, c.SetPosition(ctx, season, models.PositionRookie))
	picked, err := c.GenerateNomination(ctx, season)
	require.NoError(t, err)
	assert.Equal(t, 4, picked.PlayerSeasonID)

	state, err := c.Session(ctx, season)
	require.NoError(t, err)
	assert.Equal(t, models.PositionRookie, state.Filter)
	assert.Equal(t, 4, state.CurrentPlayerID)

	_, err = c.GenerateNomination(ctx, season)
	assert.ErrorIs(t, err, drafterr.ErrNotFound)
}
