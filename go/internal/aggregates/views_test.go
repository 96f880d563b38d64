package aggregates

import (
	"testing"

	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sold(id int, price string, seq int) models.SoldPlayer {
	return models.SoldPlayer{
		TeamPlayer: models.TeamPlayer{
			PlayerSeasonID: id,
			Price:          decimal.RequireFromString(price),
			Sequence:       seq,
		},
		TeamID: 1,
	}
}

func TestTopByPrice(t *testing.T) {
	// sale order, most recent first
	in := []models.SoldPlayer{
		sold(1, "2.00", 7),
		sold(2, "5.00", 6),
		sold(3, "2.00", 5),
		sold(4, "9.50", 4),
		sold(5, "5.00", 3),
		sold(6, "0.10", 2),
		sold(7, "3.00", 1),
	}

	got := topByPrice(in, 5)
	require.Len(t, got, 5)

	ids := make([]int, len(got))
	for i, p := range got {
		ids[i] = p.PlayerSeasonID
	}
	assert.Equal(t, []int{4, 2, 5, 7, 1}, ids)

	// input is untouched
	assert.Equal(t, 1, in[0].PlayerSeasonID)
}

func TestTopByPriceFewerThanN(t *testing.T) {
	got := topByPrice([]models.SoldPlayer{sold(1, "1.00", 2), sold(2, "4.00", 1)}, 5)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].PlayerSeasonID)

	assert.Empty(t, topByPrice(nil, 5))
}

func TestZeroFill(t *testing.T) {
	rows := []models.TeamStats{
		{TeamID: 3, C: 3, D: 2, TotalPrice: decimal.RequireFromString("5.00")},
		{TeamID: 11, RK: 1, TotalPrice: decimal.RequireFromString("1.20")},
	}

	got := zeroFill(rows)
	require.Len(t, got, len(models.TeamIDs))
	for i, team := range got {
		assert.Equal(t, i+1, team.TeamID)
	}
	assert.Equal(t, 3, got[2].C)
	assert.Equal(t, 1, got[10].RK)
	assert.Equal(t, 0, got[0].Players())
	assert.True(t, got[0].TotalPrice.IsZero())
}

func TestSortUnsold(t *testing.T) {
	rows := []models.UnsoldPlayer{
		{PlayerSeasonID: 1, Name: "Zed", StatLine: models.StatLine{Kicks: 0}},
		{PlayerSeasonID: 2, Name: "Bob", StatLine: models.StatLine{Kicks: 40}},
		{PlayerSeasonID: 3, Name: "Amy", StatLine: models.StatLine{Kicks: 40}},
		{PlayerSeasonID: 4, Name: "Cat", StatLine: models.StatLine{Kicks: 120}},
		{PlayerSeasonID: 5, Name: "Abe", StatLine: models.StatLine{Kicks: 0}},
	}

	sortUnsold(rows, "k")

	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.PlayerSeasonID
	}
	assert.Equal(t, []int{4, 3, 2, 5, 1}, ids)
}

func TestSortUnsoldByIDKeepsOrder(t *testing.T) {
	rows := []models.UnsoldPlayer{
		{PlayerSeasonID: 1, StatLine: models.StatLine{Goals: 1}},
		{PlayerSeasonID: 2, StatLine: models.StatLine{Goals: 9}},
	}
	sortUnsold(rows, SortByID)
	assert.Equal(t, 1, rows[0].PlayerSeasonID)
}

func TestValidSortColumn(t *testing.T) {
	for _, c := range models.StatColumns {
		assert.True(t, validSortColumn(c), c)
	}
	assert.True(t, validSortColumn(SortByID))
	assert.False(t, validSortColumn("price"))
}
