package player

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ncalf/draftboard/go/internal/apiutil"
	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubApp struct {
	sellReq  SellRequest
	sellErr  error
	undoReq  UndoSaleRequest
	nominate MarkNominatedRequest
}

func (s *stubApp) MarkNominated(_ context.Context, req MarkNominatedRequest) error {
	s.nominate = req
	return nil
}

func (s *stubApp) Sell(_ context.Context, req SellRequest) (*models.PlayerSeason, error) {
	s.sellReq = req
	if s.sellErr != nil {
		return nil, s.sellErr
	}
	return &models.PlayerSeason{Season: req.Season, PlayerSeasonID: req.PlayerSeasonID, TeamID: req.TeamID, Price: req.Price, Sold: true, Sequence: 1}, nil
}

func (s *stubApp) UndoSale(_ context.Context, req UndoSaleRequest) (*models.PlayerSeason, error) {
	s.undoReq = req
	return &models.PlayerSeason{Season: req.Season, PlayerSeasonID: req.PlayerSeasonID, Position: models.PositionRookie}, nil
}

func (s *stubApp) UpdatePosition(_ context.Context, req UpdatePositionRequest) (*models.PlayerSeason, error) {
	return &models.PlayerSeason{Season: req.Season, PlayerSeasonID: req.PlayerSeasonID, Position: req.Position}, nil
}

func newTestRouter(app PlayerApp) http.Handler {
	r := chi.NewRouter()
	NewService(app).RegisterRoutes(r)
	return r
}

func TestServiceSell(t *testing.T) {
	app := &stubApp{}
	router := newTestRouter(app)

	body := `{"season":2025,"playerSeasonID":12,"teamID":4,"price":"3.40","position":"F"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/player/sell", strings.NewReader(body))
	req.Header.Set(apiutil.ClientIDHeader, "dash-7")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dash-7", app.sellReq.ClientID)
	assert.Equal(t, "3.40", app.sellReq.Price.StringFixed(2))

	var got models.PlayerSeason
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.True(t, got.Sold)
	assert.Equal(t, 4, got.TeamID)
}

func TestServiceSellRejected(t *testing.T) {
	app := &stubApp{sellErr: drafterr.InvalidSale("team has no Ruck slots left")}
	router := newTestRouter(app)

	body := `{"season":2025,"playerSeasonID":12,"teamID":4,"price":1,"position":"RK"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/player/sell", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp apiutil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "team has no Ruck slots left", resp.Error)
	assert.Equal(t, "invalid_sale", resp.Code)
}

func TestServiceRejectsUnknownFields(t *testing.T) {
	router := newTestRouter(&stubApp{})

	req := httptest.NewRequest(http.MethodPatch, "/api/player/undo-sale", strings.NewReader(`{"season":2025,"playerSeasonID":1,"team":3}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServiceUndoSaleWithoutRookieFlag(t *testing.T) {
	app := &stubApp{}
	router := newTestRouter(app)

	req := httptest.NewRequest(http.MethodPatch, "/api/player/undo-sale", strings.NewReader(`{"season":2025,"playerSeasonID":8}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, app.undoReq.WasRookie)
}

func TestServiceMarkNominated(t *testing.T) {
	app := &stubApp{}
	router := newTestRouter(app)

	req := httptest.NewRequest(http.MethodPatch, "/api/player/mark-nominated", strings.NewReader(`{"season":2025,"playerSeasonID":8,"position":"C"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.PositionCentre, app.nominate.Position)
	assert.JSONEq(t, `{"playerSeasonID":8,"nominated":true}`, rec.Body.String())
}
