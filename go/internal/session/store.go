// Package session persists per-dashboard draft state: the position being
// drafted, which positions are left in the current cycle, players sold out of
// the rookie pool and the currently generated nominee. Keys are namespaced by
// season and client so two dashboards never share state.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"

	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/ncalf/draftboard/go/internal/models"
)

// State is everything stored for one dashboard session
type State struct {
	Season             int               `json:"season"`
	ClientID           string            `json:"clientID"`
	Filter             models.Position   `json:"filter,omitempty"`
	AvailablePositions []models.Position `json:"availablePositions"`
	Rookies            []int             `json:"rookies"`
	CurrentPlayerID    int               `json:"currentPlayerID"`
}

// Store reads and writes session state through a Backend
type Store struct {
	backend Backend

	mu  sync.Mutex
	rng *rand.Rand
}

// NewStore creates a session store; rng may be nil
func NewStore(backend Backend, rng *rand.Rand) *Store {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Store{
		backend: backend,
		rng:     rng,
	}
}

func key(season int, clientID, name string) string {
	return "draft:" + strconv.Itoa(season) + ":" + clientID + ":" + name
}

const (
	keyFilter  = "filter"
	keyDrafted = "drafted_positions"
	keyRookies = "rookies"
	keyCurrent = "current_player_id"
)

func checkClient(clientID string) error {
	if clientID == "" {
		return drafterr.Validation("client id is required")
	}
	return nil
}

// Filter returns the position currently being drafted, empty when none
func (s *Store) Filter(ctx context.Context, season int, clientID string) (models.Position, error) {
	if err := checkClient(clientID); err != nil {
		return "", err
	}
	val, err := s.backend.Get(ctx, key(season, clientID, keyFilter))
	if errors.Is(err, ErrMissing) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get position filter: %w", err)
	}
	return models.Position(val), nil
}

// SetFilter picks a position explicitly. A field position is also taken out
// of the current cycle; the rookie pool never is.
func (s *Store) SetFilter(ctx context.Context, season int, clientID string, pos models.Position) error {
	if err := checkClient(clientID); err != nil {
		return err
	}
	if _, err := models.ParsePosition(string(pos)); err != nil {
		return drafterr.Validation("%v", err)
	}

	if err := s.backend.Set(ctx, key(season, clientID, keyFilter), string(pos)); err != nil {
		return fmt.Errorf("failed to set position filter: %w", err)
	}
	if pos.IsField() {
		if err := s.backend.SAdd(ctx, key(season, clientID, keyDrafted), string(pos)); err != nil {
			return fmt.Errorf("failed to mark position drafted: %w", err)
		}
	}
	return nil
}

// AvailablePositions returns the field positions not yet drafted this cycle
func (s *Store) AvailablePositions(ctx context.Context, season int, clientID string) ([]models.Position, error) {
	if err := checkClient(clientID); err != nil {
		return nil, err
	}
	drafted, err := s.backend.SMembers(ctx, key(season, clientID, keyDrafted))
	if err != nil {
		return nil, fmt.Errorf("failed to get drafted positions: %w", err)
	}

	done := make(map[string]bool, len(drafted))
	for _, p := range drafted {
		done[p] = true
	}
	out := make([]models.Position, 0, len(models.FieldPositions))
	for _, p := range models.FieldPositions {
		if !done[string(p)] {
			out = append(out, p)
		}
	}
	return out, nil
}

// DrawFilter picks a random field position from those left in the cycle and
// makes it the filter. Once every position has been drafted a new cycle starts.
func (s *Store) DrawFilter(ctx context.Context, season int, clientID string) (models.Position, error) {
	available, err := s.AvailablePositions(ctx, season, clientID)
	if err != nil {
		return "", err
	}
	if len(available) == 0 {
		if err := s.backend.Del(ctx, key(season, clientID, keyDrafted)); err != nil {
			return "", fmt.Errorf("failed to reset drafted positions: %w", err)
		}
		available = append([]models.Position{}, models.FieldPositions...)
	}

	s.mu.Lock()
	pos := available[s.rng.Intn(len(available))]
	s.mu.Unlock()

	if err := s.SetFilter(ctx, season, clientID, pos); err != nil {
		return "", err
	}
	return pos, nil
}

// ResetFilter clears the filter and starts a fresh cycle
func (s *Store) ResetFilter(ctx context.Context, season int, clientID string) error {
	if err := checkClient(clientID); err != nil {
		return err
	}
	if err := s.backend.Del(ctx, key(season, clientID, keyFilter), key(season, clientID, keyDrafted)); err != nil {
		return fmt.Errorf("failed to reset position filter: %w", err)
	}
	return nil
}

// RememberRookie records that a player was sold out of the rookie pool
func (s *Store) RememberRookie(ctx context.Context, season int, clientID string, playerSeasonID int) error {
	if err := checkClient(clientID); err != nil {
		return err
	}
	if err := s.backend.SAdd(ctx, key(season, clientID, keyRookies), strconv.Itoa(playerSeasonID)); err != nil {
		return fmt.Errorf("failed to remember rookie: %w", err)
	}
	return nil
}

// ForgetRookie drops a player from the rookie memory
func (s *Store) ForgetRookie(ctx context.Context, season int, clientID string, playerSeasonID int) error {
	if err := checkClient(clientID); err != nil {
		return err
	}
	if err := s.backend.SRem(ctx, key(season, clientID, keyRookies), strconv.Itoa(playerSeasonID)); err != nil {
		return fmt.Errorf("failed to forget rookie: %w", err)
	}
	return nil
}

// IsRookie reports whether a player was sold out of the rookie pool
func (s *Store) IsRookie(ctx context.Context, season int, clientID string, playerSeasonID int) (bool, error) {
	if err := checkClient(clientID); err != nil {
		return false, err
	}
	ok, err := s.backend.SIsMember(ctx, key(season, clientID, keyRookies), strconv.Itoa(playerSeasonID))
	if err != nil {
		return false, fmt.Errorf("failed to check rookie: %w", err)
	}
	return ok, nil
}

// Rookies lists every remembered rookie sale
func (s *Store) Rookies(ctx context.Context, season int, clientID string) ([]int, error) {
	if err := checkClient(clientID); err != nil {
		return nil, err
	}
	members, err := s.backend.SMembers(ctx, key(season, clientID, keyRookies))
	if err != nil {
		return nil, fmt.Errorf("failed to list rookies: %w", err)
	}

	out := make([]int, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

// CurrentPlayer returns the generated nominee, 0 when none
func (s *Store) CurrentPlayer(ctx context.Context, season int, clientID string) (int, error) {
	if err := checkClient(clientID); err != nil {
		return 0, err
	}
	val, err := s.backend.Get(ctx, key(season, clientID, keyCurrent))
	if errors.Is(err, ErrMissing) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get current player: %w", err)
	}
	id, err := strconv.Atoi(val)
	if err != nil {
		return 0, nil
	}
	return id, nil
}

// SetCurrentPlayer stores the generated nominee
func (s *Store) SetCurrentPlayer(ctx context.Context, season int, clientID string, playerSeasonID int) error {
	if err := checkClient(clientID); err != nil {
		return err
	}
	if playerSeasonID <= 0 {
		return drafterr.Validation("playerSeasonID must be positive")
	}
	if err := s.backend.Set(ctx, key(season, clientID, keyCurrent), strconv.Itoa(playerSeasonID)); err != nil {
		return fmt.Errorf("failed to set current player: %w", err)
	}
	return nil
}

// ClearCurrentPlayer forgets the generated nominee
func (s *Store) ClearCurrentPlayer(ctx context.Context, season int, clientID string) error {
	if err := checkClient(clientID); err != nil {
		return err
	}
	if err := s.backend.Del(ctx, key(season, clientID, keyCurrent)); err != nil {
		return fmt.Errorf("failed to clear current player: %w", err)
	}
	return nil
}

// Snapshot reads the whole session
func (s *Store) Snapshot(ctx context.Context, season int, clientID string) (*State, error) {
	filter, err := s.Filter(ctx, season, clientID)
	if err != nil {
		return nil, err
	}
	available, err := s.AvailablePositions(ctx, season, clientID)
	if err != nil {
		return nil, err
	}
	rookies, err := s.Rookies(ctx, season, clientID)
	if err != nil {
		return nil, err
	}
	current, err := s.CurrentPlayer(ctx, season, clientID)
	if err != nil {
		return nil, err
	}
	return &State{
		Season:             season,
		ClientID:           clientID,
		Filter:             filter,
		AvailablePositions: available,
		Rookies:            rookies,
		CurrentPlayerID:    current,
	}, nil
}

// Clear removes every key of the session
func (s *Store) Clear(ctx context.Context, season int, clientID string) error {
	if err := checkClient(clientID); err != nil {
		return err
	}
	keys := []string{
		key(season, clientID, keyFilter),
		key(season, clientID, keyDrafted),
		key(season, clientID, keyRookies),
		key(season, clientID, keyCurrent),
	}
	if err := s.backend.Del(ctx, keys...); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
