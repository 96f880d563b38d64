// Package draftclient is a typed HTTP client for the draft API. Errors carry
// the same sentinels as the server so callers can branch with errors.Is.
package draftclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ncalf/draftboard/go/internal/aggregates"
	"github.com/ncalf/draftboard/go/internal/apiutil"
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/ncalf/draftboard/go/internal/player"
	"github.com/ncalf/draftboard/go/internal/session"
	"github.com/shopspring/decimal"
)

// Client talks to one draft API as one dashboard session
type Client struct {
	*BaseClient
	clientID string
}

// NewClient creates a client; clientID is sent as the session header
func NewClient(baseURL, clientID string) *Client {
	c := &Client{
		BaseClient: NewBaseClient(baseURL),
		clientID:   clientID,
	}
	if clientID != "" {
		c.SetHeader(apiutil.ClientIDHeader, clientID)
	}
	return c
}

// ClientID returns the session this client acts as
func (c *Client) ClientID() string {
	return c.clientID
}

func seasonQuery(season int) url.Values {
	q := url.Values{}
	q.Set("season", strconv.Itoa(season))
	return q
}

// MarkNominated flags a player as shown to the room
func (c *Client) MarkNominated(ctx context.Context, req player.MarkNominatedRequest) error {
	if err := c.MakeRequest(ctx, http.MethodPatch, "/api/player/mark-nominated", req, nil); err != nil {
		return fmt.Errorf("failed to mark nominated: %w", err)
	}
	return nil
}

// Sell records a sale and returns the sold player
func (c *Client) Sell(ctx context.Context, req player.SellRequest) (*models.PlayerSeason, error) {
	var out models.PlayerSeason
	if err := c.MakeRequest(ctx, http.MethodPatch, "/api/player/sell", req, &out); err != nil {
		return nil, fmt.Errorf("failed to sell player: %w", err)
	}
	return &out, nil
}

// UndoSale reverts a sale
func (c *Client) UndoSale(ctx context.Context, req player.UndoSaleRequest) (*models.PlayerSeason, error) {
	var out models.PlayerSeason
	if err := c.MakeRequest(ctx, http.MethodPatch, "/api/player/undo-sale", req, &out); err != nil {
		return nil, fmt.Errorf("failed to undo sale: %w", err)
	}
	return &out, nil
}

// UpdatePosition moves an unsold player to another position
func (c *Client) UpdatePosition(ctx context.Context, req player.UpdatePositionRequest) (*models.PlayerSeason, error) {
	var out models.PlayerSeason
	if err := c.MakeRequest(ctx, http.MethodPatch, "/api/player/update-position", req, &out); err != nil {
		return nil, fmt.Errorf("failed to update position: %w", err)
	}
	return &out, nil
}

// UnsoldByPosition lists unsold players with trailing stats. years and sort
// are optional (zero values use the server defaults).
func (c *Client) UnsoldByPosition(ctx context.Context, season int, position models.Position, years int, sort string) ([]models.UnsoldPlayer, error) {
	q := seasonQuery(season)
	q.Set("position", string(position))
	if years > 0 {
		q.Set("years", strconv.Itoa(years))
	}
	if sort != "" {
		q.Set("sort", sort)
	}

	var out []models.UnsoldPlayer
	if err := c.MakeRequest(ctx, http.MethodGet, "/api/players/unsold?"+q.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get unsold players: %w", err)
	}
	return out, nil
}

// SoldPlayers lists every sale in sale order
func (c *Client) SoldPlayers(ctx context.Context, season int) ([]models.SoldPlayer, error) {
	var out []models.SoldPlayer
	if err := c.MakeRequest(ctx, http.MethodGet, "/api/players/sold?"+seasonQuery(season).Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get sold players: %w", err)
	}
	return out, nil
}

// MVPs lists the most expensive sales
func (c *Client) MVPs(ctx context.Context, season int) ([]models.SoldPlayer, error) {
	var out []models.SoldPlayer
	if err := c.MakeRequest(ctx, http.MethodGet, "/api/players/mvps?"+seasonQuery(season).Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get MVPs: %w", err)
	}
	return out, nil
}

// TeamStats returns one row per team
func (c *Client) TeamStats(ctx context.Context, season int) ([]models.TeamStats, error) {
	var out []models.TeamStats
	if err := c.MakeRequest(ctx, http.MethodGet, "/api/teams/stats?"+seasonQuery(season).Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get team stats: %w", err)
	}
	return out, nil
}

// CanSell asks whether a team may buy at position for price
func (c *Client) CanSell(ctx context.Context, season, teamID int, position models.Position, price decimal.Decimal) (*aggregates.SaleCheck, error) {
	q := seasonQuery(season)
	q.Set("teamID", strconv.Itoa(teamID))
	q.Set("position", string(position))
	q.Set("price", price.String())

	var out aggregates.SaleCheck
	if err := c.MakeRequest(ctx, http.MethodGet, "/api/rules/can-sell?"+q.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to check sale: %w", err)
	}
	return &out, nil
}

// GenerateNomination draws the next nominee for this session's position
func (c *Client) GenerateNomination(ctx context.Context, season int) (*models.PlayerSeason, error) {
	var out models.PlayerSeason
	if err := c.MakeRequest(ctx, http.MethodPost, "/api/nomination/generate?"+seasonQuery(season).Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to generate nomination: %w", err)
	}
	return &out, nil
}

// Session returns this client's stored session state
func (c *Client) Session(ctx context.Context, season int) (*session.State, error) {
	var out session.State
	if err := c.MakeRequest(ctx, http.MethodGet, "/api/session?"+seasonQuery(season).Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &out, nil
}

// SetPosition chooses the position this session drafts next
func (c *Client) SetPosition(ctx context.Context, season int, position models.Position) error {
	body := map[string]models.Position{"position": position}
	if err := c.MakeRequest(ctx, http.MethodPut, "/api/session/position?"+seasonQuery(season).Encode(), body, nil); err != nil {
		return fmt.Errorf("failed to set position: %w", err)
	}
	return nil
}
