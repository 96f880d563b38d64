package player_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/ncalf/draftboard/go/internal/draft/events"
	"github.com/ncalf/draftboard/go/internal/draft/rules"
	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/ncalf/draftboard/go/internal/player"
	"github.com/ncalf/draftboard/go/internal/player/memstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const season = 2025

type rookieSet struct {
	mu  sync.Mutex
	ids map[int]bool
}

func newRookieSet() *rookieSet {
	return &rookieSet{ids: make(map[int]bool)}
}

func (r *rookieSet) RememberRookie(_ context.Context, _ int, _ string, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids[id] = true
	return nil
}

func (r *rookieSet) ForgetRookie(_ context.Context, _ int, _ string, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ids, id)
	return nil
}

func (r *rookieSet) IsRookie(_ context.Context, _ int, _ string, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ids[id], nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedPlayer(id int, pos models.Position) models.PlayerSeason {
	return models.PlayerSeason{
		Season:         season,
		PlayerSeasonID: id,
		PlayerID:       "p" + string(rune('a'+id%26)),
		FirstName:      "First",
		Surname:        "Last",
		Club:           "Geel",
		Position:       pos,
	}
}

func newApp(t *testing.T, players ...models.PlayerSeason) (*player.App, *memstore.Store, *rookieSet) {
	t.Helper()
	store := memstore.New(clockwork.NewFakeClock())
	store.Seed(players...)
	rookies := newRookieSet()
	return player.NewApp(store, rules.NewEngine(rules.DefaultConfig()), rookies), store, rookies
}

func TestSellAssignsIncreasingSequence(t *testing.T) {
	ctx := context.Background()
	app, store, _ := newApp(t,
		seedPlayer(1, models.PositionForward),
		seedPlayer(2, models.PositionDefender),
	)

	first, err := app.Sell(ctx, player.SellRequest{Season: season, PlayerSeasonID: 1, TeamID: 3, Price: price("4.50"), Position: models.PositionForward})
	require.NoError(t, err)
	second, err := app.Sell(ctx, player.SellRequest{Season: season, PlayerSeasonID: 2, TeamID: 4, Price: price("2.00"), Position: models.PositionDefender})
	require.NoError(t, err)

	assert.Equal(t, 1, first.Sequence)
	assert.Equal(t, 2, second.Sequence)
	assert.True(t, first.Sold)
	assert.False(t, first.AvailableForSale)
	assert.Equal(t, "4.50", first.Price.StringFixed(2))

	evts := store.Events()
	require.Len(t, evts, 2)
	assert.Equal(t, events.TypePlayerSold, evts[0].Type)
}

func TestSellRejectsOverBudget(t *testing.T) {
	ctx := context.Background()
	app, store, _ := newApp(t, seedPlayer(1, models.PositionForward))

	_, err := app.Sell(ctx, player.SellRequest{Season: season, PlayerSeasonID: 1, TeamID: 1, Price: price("18.01"), Position: models.PositionForward})
	require.Error(t, err)
	assert.ErrorIs(t, err, drafterr.ErrInvalidSale)

	p, err := store.GetPlayer(ctx, season, 1)
	require.NoError(t, err)
	assert.False(t, p.Sold)
	assert.Equal(t, 0, p.Sequence)
	assert.Empty(t, store.Events())
}

func TestSellRejectsFullPosition(t *testing.T) {
	ctx := context.Background()
	app, _, _ := newApp(t,
		seedPlayer(1, models.PositionRuck),
		seedPlayer(2, models.PositionRuck),
	)

	_, err := app.Sell(ctx, player.SellRequest{Season: season, PlayerSeasonID: 1, TeamID: 2, Price: price("1.00"), Position: models.PositionRuck})
	require.NoError(t, err)

	_, err = app.Sell(ctx, player.SellRequest{Season: season, PlayerSeasonID: 2, TeamID: 2, Price: price("1.00"), Position: models.PositionRuck})
	var saleErr *drafterr.InvalidSaleError
	require.True(t, errors.As(err, &saleErr))
	assert.Contains(t, saleErr.Reason, "Ruck")
}

func TestSellAlreadySold(t *testing.T) {
	ctx := context.Background()
	app, _, _ := newApp(t, seedPlayer(1, models.PositionCentre))

	_, err := app.Sell(ctx, player.SellRequest{Season: season, PlayerSeasonID: 1, TeamID: 2, Price: price("1.00"), Position: models.PositionCentre})
	require.NoError(t, err)

	_, err = app.Sell(ctx, player.SellRequest{Season: season, PlayerSeasonID: 1, TeamID: 5, Price: price("1.00"), Position: models.PositionCentre})
	assert.ErrorIs(t, err, drafterr.ErrInvalidSale)
}

func TestSellValidation(t *testing.T) {
	ctx := context.Background()
	app, _, _ := newApp(t, seedPlayer(1, models.PositionCentre))

	tests := []struct {
		name string
		req  player.SellRequest
	}{
		{"team out of range", player.SellRequest{Season: season, PlayerSeasonID: 1, TeamID: 12, Price: price("1.00"), Position: models.PositionCentre}},
		{"three decimals", player.SellRequest{Season: season, PlayerSeasonID: 1, TeamID: 1, Price: price("1.005"), Position: models.PositionCentre}},
		{"zero price", player.SellRequest{Season: season, PlayerSeasonID: 1, TeamID: 1, Price: decimal.Zero, Position: models.PositionCentre}},
		{"rookie as target position", player.SellRequest{Season: season, PlayerSeasonID: 1, TeamID: 1, Price: price("1.00"), Position: models.PositionRookie}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.Sell(ctx, tt.req)
			assert.ErrorIs(t, err, drafterr.ErrValidation)
		})
	}
}

func TestSellMissingPlayer(t *testing.T) {
	app, _, _ := newApp(t)

	_, err := app.Sell(context.Background(), player.SellRequest{Season: season, PlayerSeasonID: 99, TeamID: 1, Price: price("1.00"), Position: models.PositionCentre})
	assert.ErrorIs(t, err, drafterr.ErrNotFound)
}

func TestSellStalePosition(t *testing.T) {
	app, _, _ := newApp(t, seedPlayer(1, models.PositionDefender))

	_, err := app.Sell(context.Background(), player.SellRequest{Season: season, PlayerSeasonID: 1, TeamID: 1, Price: price("1.00"), Position: models.PositionForward})
	assert.ErrorIs(t, err, drafterr.ErrConcurrentModification)
}

func TestConcurrentSellsOfOnePlayer(t *testing.T) {
	ctx := context.Background()
	app, store, _ := newApp(t, seedPlayer(1, models.PositionForward))

	const buyers = 8
	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = app.Sell(ctx, player.SellRequest{
				Season:         season,
				PlayerSeasonID: 1,
				TeamID:         i + 1,
				Price:          price("2.00"),
				Position:       models.PositionForward,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, drafterr.ErrInvalidSale)
	}
	assert.Equal(t, 1, succeeded)

	p, err := store.GetPlayer(ctx, season, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Sequence)
	assert.Len(t, store.Events(), 1)
}

func TestConcurrentSellsRespectBudget(t *testing.T) {
	ctx := context.Background()
	players := make([]models.PlayerSeason, 0, 4)
	for id := 1; id <= 4; id++ {
		players = append(players, seedPlayer(id, models.PositionDefender))
	}
	app, store, _ := newApp(t, players...)

	// two 9.00 sales fit an empty budget of 20.00, a third cannot
	var wg sync.WaitGroup
	for id := 1; id <= 4; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, _ = app.Sell(ctx, player.SellRequest{Season: season, PlayerSeasonID: id, TeamID: 7, Price: price("9.00"), Position: models.PositionDefender})
		}(id)
	}
	wg.Wait()

	stats, err := store.ListTeamStats(ctx, season)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].D)
	assert.Equal(t, "18.00", stats[0].TotalPrice.StringFixed(2))
}

func TestRookieSaleAndUndo(t *testing.T) {
	ctx := context.Background()
	app, store, rookies := newApp(t, seedPlayer(1, models.PositionRookie))

	sold, err := app.Sell(ctx, player.SellRequest{
		Season:         season,
		PlayerSeasonID: 1,
		TeamID:         2,
		Price:          price("0.30"),
		Position:       models.PositionDefender,
		IsRookie:       true,
		ClientID:       "dash-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PositionDefender, sold.Position)

	remembered, _ := rookies.IsRookie(ctx, season, "dash-1", 1)
	assert.True(t, remembered)

	restored, err := app.UndoSale(ctx, player.UndoSaleRequest{Season: season, PlayerSeasonID: 1, ClientID: "dash-1"})
	require.NoError(t, err)
	assert.Equal(t, models.PositionRookie, restored.Position)

	remembered, _ = rookies.IsRookie(ctx, season, "dash-1", 1)
	assert.False(t, remembered)

	evts := store.Events()
	require.Len(t, evts, 2)
	undone, ok := evts[1].Payload.(events.SaleUndonePayload)
	require.True(t, ok)
	assert.True(t, undone.RestoredRookie)
	assert.Equal(t, "D", undone.Position)
}

func TestRookieSaleRequiresRookiePosition(t *testing.T) {
	app, _, _ := newApp(t, seedPlayer(1, models.PositionForward))

	_, err := app.Sell(context.Background(), player.SellRequest{
		Season:         season,
		PlayerSeasonID: 1,
		TeamID:         2,
		Price:          price("0.30"),
		Position:       models.PositionDefender,
		IsRookie:       true,
	})
	assert.ErrorIs(t, err, drafterr.ErrConcurrentModification)
}

func TestUndoIsLeftInverseOfSell(t *testing.T) {
	ctx := context.Background()
	app, store, _ := newApp(t, seedPlayer(1, models.PositionOnballer))

	before, err := store.GetPlayer(ctx, season, 1)
	require.NoError(t, err)

	_, err = app.Sell(ctx, player.SellRequest{Season: season, PlayerSeasonID: 1, TeamID: 9, Price: price("3.20"), Position: models.PositionOnballer})
	require.NoError(t, err)

	wasRookie := false
	after, err := app.UndoSale(ctx, player.UndoSaleRequest{Season: season, PlayerSeasonID: 1, WasRookie: &wasRookie})
	require.NoError(t, err)

	assert.Equal(t, before.Position, after.Position)
	assert.Equal(t, before.Sold, after.Sold)
	assert.Equal(t, before.TeamID, after.TeamID)
	assert.Equal(t, before.Sequence, after.Sequence)
	assert.True(t, before.Price.Equal(after.Price))
	assert.True(t, after.AvailableForSale)
	assert.False(t, after.Nominated)
}

func TestUndoUnsoldPlayer(t *testing.T) {
	app, _, _ := newApp(t, seedPlayer(1, models.PositionOnballer))

	_, err := app.UndoSale(context.Background(), player.UndoSaleRequest{Season: season, PlayerSeasonID: 1})
	assert.ErrorIs(t, err, drafterr.ErrInvalidSale)
}

func TestMarkNominatedIdempotent(t *testing.T) {
	ctx := context.Background()
	app, store, _ := newApp(t, seedPlayer(1, models.PositionCentre))

	req := player.MarkNominatedRequest{Season: season, PlayerSeasonID: 1, Position: models.PositionCentre}
	require.NoError(t, app.MarkNominated(ctx, req))
	require.NoError(t, app.MarkNominated(ctx, req))

	p, err := store.GetPlayer(ctx, season, 1)
	require.NoError(t, err)
	assert.True(t, p.Nominated)
	assert.Len(t, store.Events(), 1)
}

func TestNominateReportsWhoFlagged(t *testing.T) {
	ctx := context.Background()
	app, _, _ := newApp(t, seedPlayer(1, models.PositionCentre))

	req := player.MarkNominatedRequest{Season: season, PlayerSeasonID: 1, Position: models.PositionCentre}
	changed, err := app.Nominate(ctx, req)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = app.Nominate(ctx, req)
	require.NoError(t, err)
	assert.False(t, changed)

	req.Position = models.PositionForward
	changed, err = app.Nominate(ctx, req)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestMarkNominatedStalePositionIgnored(t *testing.T) {
	ctx := context.Background()
	app, store, _ := newApp(t, seedPlayer(1, models.PositionCentre))

	err := app.MarkNominated(ctx, player.MarkNominatedRequest{Season: season, PlayerSeasonID: 1, Position: models.PositionForward})
	require.NoError(t, err)

	p, err := store.GetPlayer(ctx, season, 1)
	require.NoError(t, err)
	assert.False(t, p.Nominated)
}

func TestMarkNominatedMissingPlayer(t *testing.T) {
	app, _, _ := newApp(t)

	err := app.MarkNominated(context.Background(), player.MarkNominatedRequest{Season: season, PlayerSeasonID: 5, Position: models.PositionCentre})
	assert.ErrorIs(t, err, drafterr.ErrNotFound)
}

func TestUpdatePosition(t *testing.T) {
	ctx := context.Background()
	app, store, _ := newApp(t, seedPlayer(1, models.PositionCentre))

	p, err := app.UpdatePosition(ctx, player.UpdatePositionRequest{Season: season, PlayerSeasonID: 1, Position: models.PositionForward})
	require.NoError(t, err)
	assert.Equal(t, models.PositionForward, p.Position)

	_, err = app.Sell(ctx, player.SellRequest{Season: season, PlayerSeasonID: 1, TeamID: 1, Price: price("1.00"), Position: models.PositionForward})
	require.NoError(t, err)

	_, err = app.UpdatePosition(ctx, player.UpdatePositionRequest{Season: season, PlayerSeasonID: 1, Position: models.PositionCentre})
	assert.ErrorIs(t, err, drafterr.ErrInvalidSale)

	evts := store.Events()
	require.NotEmpty(t, evts)
	moved, ok := evts[0].Payload.(events.PositionUpdatedPayload)
	require.True(t, ok)
	assert.Equal(t, "C", moved.From)
	assert.Equal(t, "F", moved.To)
}
