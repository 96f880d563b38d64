// Package memstore is an in-memory player store used by tests and the
// single-process dev server. Writes run under one mutex against a copy of the
// touched record and are committed only when the whole operation succeeds.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/ncalf/draftboard/go/internal/draft/events"
	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/ncalf/draftboard/go/internal/player"
	"github.com/shopspring/decimal"
)

// StatRow is one round of one player's match stats
type StatRow struct {
	Season         int
	Round          int
	PlayerID       string
	Club           string
	PositionPlayed int
	Line           models.StatLine
}

// Event is an outbox entry recorded by a successful write
type Event struct {
	Type     string
	Season   int
	ClientID string
	Payload  interface{}
	At       time.Time
}

type playerKey struct {
	season         int
	playerSeasonID int
}

// Store holds draft players, stats and the emitted events
type Store struct {
	mu      sync.RWMutex
	clock   clockwork.Clock
	players map[playerKey]models.PlayerSeason
	stats   []StatRow
	events  []Event
}

// New creates an empty store
func New(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		clock:   clock,
		players: make(map[playerKey]models.PlayerSeason),
	}
}

// Seed inserts or replaces players
func (s *Store) Seed(players ...models.PlayerSeason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range players {
		p.Price = p.Price.Round(2)
		if !p.Sold {
			p.AvailableForSale = true
		}
		s.players[playerKey{p.Season, p.PlayerSeasonID}] = p
	}
}

// AddStats appends stat rows
func (s *Store) AddStats(rows ...StatRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = append(s.stats, rows...)
}

// Events returns a copy of every event recorded so far
func (s *Store) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Store) record(season int, eventType, clientID string, payload interface{}) {
	s.events = append(s.events, Event{
		Type:     eventType,
		Season:   season,
		ClientID: clientID,
		Payload:  payload,
		At:       s.clock.Now().UTC(),
	})
}

func (s *Store) lookup(season, playerSeasonID int) (models.PlayerSeason, error) {
	p, ok := s.players[playerKey{season, playerSeasonID}]
	if !ok {
		return models.PlayerSeason{}, fmt.Errorf("player %d in season %d: %w", playerSeasonID, season, drafterr.ErrNotFound)
	}
	return p, nil
}

// GetPlayer retrieves a player season by ID
func (s *Store) GetPlayer(_ context.Context, season, playerSeasonID int) (*models.PlayerSeason, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, err := s.lookup(season, playerSeasonID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkNominated sets the nominated flag, reporting whether it changed
func (s *Store) MarkNominated(_ context.Context, req player.MarkNominatedRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.lookup(req.Season, req.PlayerSeasonID)
	if err != nil {
		return false, err
	}
	if p.Position != req.Position {
		return false, fmt.Errorf("player %d is %s, not %s: %w", req.PlayerSeasonID, p.Position, req.Position, player.ErrPositionMismatch)
	}
	if p.Nominated || p.Sold {
		return false, nil
	}

	p.Nominated = true
	s.players[playerKey{p.Season, p.PlayerSeasonID}] = p
	s.record(req.Season, events.TypePlayerNominated, req.ClientID, events.PlayerNominatedPayload{
		Season:         req.Season,
		PlayerSeasonID: req.PlayerSeasonID,
		Position:       string(req.Position),
		NominatedAt:    s.clock.Now().UTC(),
	})
	return true, nil
}

// Sell resolves the rookie position, runs check against the team aggregate
// and assigns the next sequence number, all under the store lock.
func (s *Store) Sell(_ context.Context, req player.SellRequest, check player.SaleCheck) (*models.PlayerSeason, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.lookup(req.Season, req.PlayerSeasonID)
	if err != nil {
		return nil, err
	}
	if p.Sold {
		return nil, drafterr.InvalidSale("player %d is already sold to team %d", req.PlayerSeasonID, p.TeamID)
	}

	if req.IsRookie {
		if p.Position != models.PositionRookie {
			return nil, fmt.Errorf("player %d is no longer a rookie (now %s): %w", req.PlayerSeasonID, p.Position, drafterr.ErrConcurrentModification)
		}
		p.Position = req.Position
	} else if p.Position != req.Position {
		return nil, fmt.Errorf("player %d is %s, not %s: %w", req.PlayerSeasonID, p.Position, req.Position, drafterr.ErrConcurrentModification)
	}

	if err := check(s.teamStats(req.Season, req.TeamID)); err != nil {
		return nil, err
	}

	p.Sold = true
	p.AvailableForSale = false
	p.TeamID = req.TeamID
	p.Price = req.Price.Round(2)
	p.Sequence = s.maxSequence(req.Season) + 1
	s.players[playerKey{p.Season, p.PlayerSeasonID}] = p

	s.record(req.Season, events.TypePlayerSold, req.ClientID, events.PlayerSoldPayload{
		Season:         p.Season,
		PlayerSeasonID: p.PlayerSeasonID,
		PlayerName:     p.Name(),
		TeamID:         p.TeamID,
		TeamName:       models.TeamNames[p.TeamID],
		Price:          p.Price,
		Position:       string(p.Position),
		WasRookie:      req.IsRookie,
		Sequence:       p.Sequence,
		SoldAt:         s.clock.Now().UTC(),
	})
	return &p, nil
}

// UndoSale returns a sold player to the pool
func (s *Store) UndoSale(_ context.Context, req player.UndoSaleRequest, wasRookie bool) (*models.PlayerSeason, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.lookup(req.Season, req.PlayerSeasonID)
	if err != nil {
		return nil, err
	}
	if !p.Sold {
		return nil, drafterr.InvalidSale("player %d is not sold", req.PlayerSeasonID)
	}

	payload := events.SaleUndonePayload{
		Season:         req.Season,
		PlayerSeasonID: req.PlayerSeasonID,
		TeamID:         p.TeamID,
		Price:          p.Price,
		Position:       string(p.Position),
		RestoredRookie: wasRookie,
		UndoneAt:       s.clock.Now().UTC(),
	}

	p.Sold = false
	p.AvailableForSale = true
	p.Nominated = false
	p.TeamID = 0
	p.Price = decimal.Zero
	p.Sequence = 0
	if wasRookie {
		p.Position = models.PositionRookie
	}
	s.players[playerKey{p.Season, p.PlayerSeasonID}] = p

	s.record(req.Season, events.TypeSaleUndone, req.ClientID, payload)
	return &p, nil
}

// UpdatePosition moves an unsold player to another position
func (s *Store) UpdatePosition(_ context.Context, req player.UpdatePositionRequest) (*models.PlayerSeason, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.lookup(req.Season, req.PlayerSeasonID)
	if err != nil {
		return nil, err
	}
	if p.Sold {
		return nil, drafterr.InvalidSale("player %d is sold; undo the sale first", req.PlayerSeasonID)
	}

	from := p.Position
	p.Position = req.Position
	s.players[playerKey{p.Season, p.PlayerSeasonID}] = p

	s.record(req.Season, events.TypePositionUpdated, req.ClientID, events.PositionUpdatedPayload{
		Season:         req.Season,
		PlayerSeasonID: req.PlayerSeasonID,
		From:           string(from),
		To:             string(req.Position),
		UpdatedAt:      s.clock.Now().UTC(),
	})
	return &p, nil
}

func (s *Store) maxSequence(season int) int {
	max := 0
	for k, p := range s.players {
		if k.season == season && p.Sequence > max {
			max = p.Sequence
		}
	}
	return max
}

func (s *Store) teamStats(season, teamID int) models.TeamStats {
	team := models.TeamStats{TeamID: teamID}
	for k, p := range s.players {
		if k.season == season && p.Sold && p.TeamID == teamID {
			team.Add(p.Position, p.Price)
		}
	}
	return team
}

// filter returns the season's players matching keep, ordered by ID
func (s *Store) filter(season int, keep func(models.PlayerSeason) bool) []models.PlayerSeason {
	var out []models.PlayerSeason
	for k, p := range s.players {
		if k.season == season && keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerSeasonID < out[j].PlayerSeasonID })
	return out
}

// ListUnsoldByPosition returns unsold players at a position
func (s *Store) ListUnsoldByPosition(_ context.Context, season int, position models.Position) ([]models.PlayerSeason, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(season, func(p models.PlayerSeason) bool {
		return !p.Sold && p.Position == position
	}), nil
}

// ListNominationPool returns unsold, unnominated players at a position
func (s *Store) ListNominationPool(_ context.Context, season int, position models.Position) ([]models.PlayerSeason, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(season, func(p models.PlayerSeason) bool {
		return !p.Sold && !p.Nominated && p.Position == position
	}), nil
}

// ListSoldPlayers returns sold players, latest sale first
func (s *Store) ListSoldPlayers(_ context.Context, season int) ([]models.PlayerSeason, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.filter(season, func(p models.PlayerSeason) bool { return p.Sold })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sequence > out[j].Sequence })
	return out, nil
}

// ListTeamPlayers returns a team's players by position then sequence
func (s *Store) ListTeamPlayers(_ context.Context, season, teamID int) ([]models.PlayerSeason, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.filter(season, func(p models.PlayerSeason) bool { return p.Sold && p.TeamID == teamID })
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Sequence < out[j].Sequence
	})
	return out, nil
}

// ListTeamStats returns aggregates for teams that own at least one player
func (s *Store) ListTeamStats(_ context.Context, season int) ([]models.TeamStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byTeam := make(map[int]*models.TeamStats)
	for k, p := range s.players {
		if k.season != season || !p.Sold {
			continue
		}
		t, ok := byTeam[p.TeamID]
		if !ok {
			t = &models.TeamStats{TeamID: p.TeamID}
			byTeam[p.TeamID] = t
		}
		t.Add(p.Position, p.Price)
	}
	out := make([]models.TeamStats, 0, len(byTeam))
	for _, t := range byTeam {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}

// CountRemaining returns unsold counts per position
func (s *Store) CountRemaining(_ context.Context, season int) (map[models.Position]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[models.Position]int)
	for k, p := range s.players {
		if k.season == season && !p.Sold {
			out[p.Position]++
		}
	}
	return out, nil
}

// TrailingStats sums stats over [fromSeason, toSeason] for the given players.
// Games count only rounds where the player took the field.
func (s *Store) TrailingStats(_ context.Context, fromSeason, toSeason int, playerIDs []string) (map[string]models.StatLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]bool, len(playerIDs))
	for _, id := range playerIDs {
		wanted[id] = true
	}
	out := make(map[string]models.StatLine)
	for _, row := range s.stats {
		if row.Season < fromSeason || row.Season > toSeason || !wanted[row.PlayerID] {
			continue
		}
		line := row.Line
		line.Games = 0
		if row.PositionPlayed > 0 {
			line.Games = 1
		}
		out[row.PlayerID] = out[row.PlayerID].Add(line)
	}
	return out, nil
}

// PlayerSeasonStats returns per-season totals since fromSeason, newest first
func (s *Store) PlayerSeasonStats(_ context.Context, playerID string, fromSeason int) ([]models.SeasonStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type seasonClub struct {
		season int
		club   string
	}
	totals := make(map[seasonClub]models.StatLine)
	for _, row := range s.stats {
		if row.PlayerID != playerID || row.Season < fromSeason || row.PositionPlayed <= 0 {
			continue
		}
		line := row.Line
		line.Games = 1
		k := seasonClub{row.Season, row.Club}
		totals[k] = totals[k].Add(line)
	}
	out := make([]models.SeasonStats, 0, len(totals))
	for k, line := range totals {
		out = append(out, models.SeasonStats{Season: k.season, Club: k.club, StatLine: line})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season > out[j].Season
		}
		return out[i].Club < out[j].Club
	})
	return out, nil
}
