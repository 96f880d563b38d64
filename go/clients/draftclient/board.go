package draftclient

import (
	"context"
	"fmt"

	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/ncalf/draftboard/go/internal/optimistic"
	"github.com/ncalf/draftboard/go/internal/player"
)

// BoardState is the part of a dashboard that sales change
type BoardState struct {
	Teams []models.TeamStats
	Sold  []models.SoldPlayer
}

func cloneBoard(s BoardState) BoardState {
	return BoardState{
		Teams: append([]models.TeamStats(nil), s.Teams...),
		Sold:  append([]models.SoldPlayer(nil), s.Sold...),
	}
}

// Board is a dashboard read model for one season. Sales show up immediately
// and are settled against the server's views once the write returns.
type Board struct {
	client *Client
	season int
	view   *optimistic.View[BoardState]
}

// NewBoard creates an empty board; call Refresh to load it
func NewBoard(client *Client, season int) *Board {
	return &Board{
		client: client,
		season: season,
		view:   optimistic.NewView(BoardState{Teams: models.ZeroTeamStats()}, cloneBoard),
	}
}

// State returns a copy of the board
func (b *Board) State() BoardState {
	return b.view.State()
}

// Stale reports whether the board needs a Refresh
func (b *Board) Stale() bool {
	return b.view.Stale()
}

func (b *Board) load(ctx context.Context) (BoardState, error) {
	teams, err := b.client.TeamStats(ctx, b.season)
	if err != nil {
		return BoardState{}, err
	}
	sold, err := b.client.SoldPlayers(ctx, b.season)
	if err != nil {
		return BoardState{}, err
	}
	return BoardState{Teams: teams, Sold: sold}, nil
}

// settle reloads the board after a committed write. A failed reload leaves
// the prediction in place and the board stale.
func (b *Board) settle(ctx context.Context) (BoardState, error) {
	s, err := b.load(ctx)
	if err != nil {
		return BoardState{}, optimistic.Unconfirmed(err)
	}
	return s, nil
}

// Refresh reloads the board from the server
func (b *Board) Refresh(ctx context.Context) error {
	s, err := b.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh board: %w", err)
	}
	b.view.Replace(s)
	return nil
}

// Sell records a sale, showing it on the board before the server answers
func (b *Board) Sell(ctx context.Context, req player.SellRequest) (BoardState, error) {
	req.Season = b.season
	return b.view.Run(ctx, optimistic.Command[BoardState]{
		Name: "sell",
		Predict: func(s BoardState) BoardState {
			for i := range s.Teams {
				if s.Teams[i].TeamID == req.TeamID {
					s.Teams[i].Add(req.Position, req.Price)
				}
			}
			// most recent sale first, as the server orders them
			s.Sold = append([]models.SoldPlayer{{
				TeamPlayer: models.TeamPlayer{
					PlayerSeasonID: req.PlayerSeasonID,
					Position:       req.Position,
					Price:          req.Price,
				},
				TeamID: req.TeamID,
			}}, s.Sold...)
			return s
		},
		Execute: func(ctx context.Context) (BoardState, error) {
			if _, err := b.client.Sell(ctx, req); err != nil {
				return BoardState{}, err
			}
			return b.settle(ctx)
		},
	})
}

// UndoSale reverts a sale, removing it from the board before the server answers
func (b *Board) UndoSale(ctx context.Context, req player.UndoSaleRequest) (BoardState, error) {
	req.Season = b.season
	return b.view.Run(ctx, optimistic.Command[BoardState]{
		Name: "undo-sale",
		Predict: func(s BoardState) BoardState {
			for i, sp := range s.Sold {
				if sp.PlayerSeasonID != req.PlayerSeasonID {
					continue
				}
				for j := range s.Teams {
					if s.Teams[j].TeamID == sp.TeamID {
						s.Teams[j].Remove(sp.Position, sp.Price)
					}
				}
				s.Sold = append(s.Sold[:i], s.Sold[i+1:]...)
				break
			}
			return s
		},
		Execute: func(ctx context.Context) (BoardState, error) {
			if _, err := b.client.UndoSale(ctx, req); err != nil {
				return BoardState{}, err
			}
			return b.settle(ctx)
		},
	})
}
