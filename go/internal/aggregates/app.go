package aggregates

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/ncalf/draftboard/go/internal/draft/rules"
	"github.com/ncalf/draftboard/go/internal/drafterr"
	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/ncalf/draftboard/go/internal/validation"
	"github.com/shopspring/decimal"
)

// ViewRepository defines what the app layer needs from the repository
type ViewRepository interface {
	GetPlayer(ctx context.Context, season, playerSeasonID int) (*models.PlayerSeason, error)
	ListUnsoldByPosition(ctx context.Context, season int, position models.Position) ([]models.PlayerSeason, error)
	ListSoldPlayers(ctx context.Context, season int) ([]models.PlayerSeason, error)
	ListTeamPlayers(ctx context.Context, season, teamID int) ([]models.PlayerSeason, error)
	ListTeamStats(ctx context.Context, season int) ([]models.TeamStats, error)
	CountRemaining(ctx context.Context, season int) (map[models.Position]int, error)
	TrailingStats(ctx context.Context, fromSeason, toSeason int, playerIDs []string) (map[string]models.StatLine, error)
	PlayerSeasonStats(ctx context.Context, playerID string, fromSeason int) ([]models.SeasonStats, error)
}

var playerIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// App derives the read models the dashboard renders. Each view reads
// independently so one failing query never takes down another panel.
type App struct {
	repo  ViewRepository
	rules *rules.Engine
	cfg   Config
}

// NewApp creates a new aggregates App
func NewApp(repo ViewRepository, engine *rules.Engine, cfg Config) *App {
	if cfg.MVPCount <= 0 {
		cfg.MVPCount = DefaultConfig().MVPCount
	}
	if cfg.TrailingYears <= 0 {
		cfg.TrailingYears = DefaultConfig().TrailingYears
	}
	return &App{
		repo:  repo,
		rules: engine,
		cfg:   cfg,
	}
}

// Config returns the view settings in force
func (a *App) Config() Config {
	return a.cfg
}

// UnsoldByPosition lists unsold players at a position with their stats summed
// over the seasons [season-years, season-1].
func (a *App) UnsoldByPosition(ctx context.Context, q UnsoldQuery) ([]models.UnsoldPlayer, error) {
	if q.Years == 0 {
		q.Years = a.cfg.TrailingYears
	}
	if q.SortBy == "" {
		q.SortBy = SortByID
	}
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	if !validSortColumn(q.SortBy) {
		return nil, drafterr.Validation("cannot sort by %q", q.SortBy)
	}

	players, err := a.repo.ListUnsoldByPosition(ctx, q.Season, q.Position)
	if err != nil {
		return nil, fmt.Errorf("failed to get unsold players: %w", drafterr.Store(err))
	}

	ids := make([]string, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.PlayerID)
	}
	totals, err := a.repo.TrailingStats(ctx, q.Season-q.Years, q.Season-1, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get trailing stats: %w", drafterr.Store(err))
	}

	out := make([]models.UnsoldPlayer, len(players))
	for i, p := range players {
		out[i] = models.UnsoldPlayer{
			PlayerSeasonID: p.PlayerSeasonID,
			PlayerID:       p.PlayerID,
			Name:           p.Name(),
			Position:       p.Position,
			Club:           p.Club,
			Nominated:      p.Nominated,
			StatLine:       totals[p.PlayerID],
		}
	}
	sortUnsold(out, q.SortBy)
	return out, nil
}

// SoldPlayers lists sold players, most recent sale first
func (a *App) SoldPlayers(ctx context.Context, season int) ([]models.SoldPlayer, error) {
	players, err := a.repo.ListSoldPlayers(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("failed to get sold players: %w", drafterr.Store(err))
	}

	out := make([]models.SoldPlayer, len(players))
	for i, p := range players {
		out[i] = toSoldPlayer(p)
	}
	return out, nil
}

// MVPs returns the most expensive sales, never more than the configured count
func (a *App) MVPs(ctx context.Context, season int) ([]models.SoldPlayer, error) {
	sold, err := a.SoldPlayers(ctx, season)
	if err != nil {
		return nil, err
	}
	return topByPrice(sold, a.cfg.MVPCount), nil
}

// TeamRoster lists a team's players by position then sale order
func (a *App) TeamRoster(ctx context.Context, season, teamID int) ([]models.TeamPlayer, error) {
	if !models.ValidTeamID(teamID) {
		return nil, drafterr.Validation("teamID must be between 1 and %d", len(models.TeamIDs))
	}

	players, err := a.repo.ListTeamPlayers(ctx, season, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team roster: %w", drafterr.Store(err))
	}

	out := make([]models.TeamPlayer, len(players))
	for i, p := range players {
		out[i] = toTeamPlayer(p)
	}
	return out, nil
}

// TeamStats returns one aggregate per team, zero-filled for empty teams
func (a *App) TeamStats(ctx context.Context, season int) ([]models.TeamStats, error) {
	rows, err := a.repo.ListTeamStats(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("failed to get team stats: %w", drafterr.Store(err))
	}
	return zeroFill(rows), nil
}

// Remaining counts unsold players per position, including the rookie pool
func (a *App) Remaining(ctx context.Context, season int) ([]PositionRemaining, error) {
	counts, err := a.repo.CountRemaining(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("failed to count remaining players: %w", drafterr.Store(err))
	}

	out := make([]PositionRemaining, len(models.AllPositions))
	for i, pos := range models.AllPositions {
		out[i] = PositionRemaining{Position: pos, Remaining: counts[pos]}
	}
	return out, nil
}

// PlayerInfo returns the detail panel for a player: name, club and per-season
// stats since season-years, newest first.
func (a *App) PlayerInfo(ctx context.Context, season, playerSeasonID, years int) (*models.PlayerInfo, error) {
	if years <= 0 {
		years = a.cfg.TrailingYears
	}

	p, err := a.repo.GetPlayer(ctx, season, playerSeasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", drafterr.Store(err))
	}

	stats, err := a.repo.PlayerSeasonStats(ctx, p.PlayerID, season-years)
	if err != nil {
		return nil, fmt.Errorf("failed to get player stats: %w", drafterr.Store(err))
	}
	if stats == nil {
		stats = []models.SeasonStats{}
	}

	return &models.PlayerInfo{
		Name:  p.Name(),
		Club:  p.Club,
		Stats: stats,
	}, nil
}

// PlayerImagePath resolves the headshot for a player season and checks the
// file exists.
func (a *App) PlayerImagePath(ctx context.Context, season, playerSeasonID int) (string, error) {
	if a.cfg.PictureDirectory == "" {
		return "", errors.New("picture directory not configured")
	}

	p, err := a.repo.GetPlayer(ctx, season, playerSeasonID)
	if err != nil {
		return "", fmt.Errorf("failed to get player: %w", drafterr.Store(err))
	}
	if !playerIDPattern.MatchString(p.PlayerID) {
		return "", fmt.Errorf("player %d has unusable id %q: %w", playerSeasonID, p.PlayerID, drafterr.ErrNotFound)
	}

	path := filepath.Join(a.cfg.PictureDirectory, strconv.Itoa(season), p.PlayerID+".png")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("image for player %d: %w", playerSeasonID, drafterr.ErrNotFound)
		}
		return "", fmt.Errorf("failed to stat image: %w", err)
	}
	return path, nil
}

// CanSell is the advisory rules check used to grey out sale options. The sale
// itself re-checks inside its transaction.
func (a *App) CanSell(ctx context.Context, season, teamID int, position models.Position, price decimal.Decimal) (*SaleCheck, error) {
	team, err := a.teamStats(ctx, season, teamID)
	if err != nil {
		return nil, err
	}
	return &SaleCheck{
		TeamID:   teamID,
		Position: position,
		Verdict:  a.rules.CanSell(team, position, price),
	}, nil
}

// Options reports, per field position, whether a team can still buy and at
// what maximum price.
func (a *App) Options(ctx context.Context, season, teamID int) (*TeamOptions, error) {
	team, err := a.teamStats(ctx, season, teamID)
	if err != nil {
		return nil, err
	}
	return &TeamOptions{
		TeamID:  teamID,
		Options: a.rules.Options(team),
	}, nil
}

func (a *App) teamStats(ctx context.Context, season, teamID int) (models.TeamStats, error) {
	if !models.ValidTeamID(teamID) {
		return models.TeamStats{}, drafterr.Validation("teamID must be between 1 and %d", len(models.TeamIDs))
	}
	all, err := a.TeamStats(ctx, season)
	if err != nil {
		return models.TeamStats{}, err
	}
	for _, t := range all {
		if t.TeamID == teamID {
			return t, nil
		}
	}
	return models.TeamStats{TeamID: teamID, TotalPrice: decimal.Zero}, nil
}
