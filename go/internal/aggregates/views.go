package aggregates

import (
	"sort"

	"github.com/ncalf/draftboard/go/internal/models"
)

// SortByID keeps the store order of the unsold view
const SortByID = "playerSeasonID"

// zeroFill returns one row per team in the league range, filling teams
// that have not bought anyone with an empty aggregate.
func zeroFill(rows []models.TeamStats) []models.TeamStats {
	byTeam := make(map[int]models.TeamStats, len(rows))
	for _, row := range rows {
		byTeam[row.TeamID] = row
	}

	out := models.ZeroTeamStats()
	for i := range out {
		if row, ok := byTeam[out[i].TeamID]; ok {
			out[i] = row
		}
	}
	return out
}

// topByPrice returns at most n players by price descending. sold must already
// be in sale order; equal prices keep that order.
func topByPrice(sold []models.SoldPlayer, n int) []models.SoldPlayer {
	ranked := make([]models.SoldPlayer, len(sold))
	copy(ranked, sold)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Price.GreaterThan(ranked[j].Price)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// sortUnsold orders rows by a stat column descending with zeros last and
// name as the tie-break. SortByID leaves the rows untouched.
func sortUnsold(rows []models.UnsoldPlayer, column string) {
	if column == SortByID {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, _ := rows[i].Value(column)
		b, _ := rows[j].Value(column)
		if (a == 0) != (b == 0) {
			return b == 0
		}
		if a != b {
			return a > b
		}
		return rows[i].Name < rows[j].Name
	})
}

func validSortColumn(column string) bool {
	if column == SortByID {
		return true
	}
	_, ok := models.StatLine{}.Value(column)
	return ok
}

func toSoldPlayer(p models.PlayerSeason) models.SoldPlayer {
	return models.SoldPlayer{
		TeamPlayer: toTeamPlayer(p),
		TeamID:     p.TeamID,
	}
}

func toTeamPlayer(p models.PlayerSeason) models.TeamPlayer {
	return models.TeamPlayer{
		PlayerSeasonID: p.PlayerSeasonID,
		Name:           p.Name(),
		Club:           p.Club,
		Position:       p.Position,
		Price:          p.Price,
		Sequence:       p.Sequence,
	}
}
