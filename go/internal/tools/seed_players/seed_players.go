package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ncalf/draftboard/go/internal/models"
	"github.com/ncalf/draftboard/go/internal/tools/seed"
)

var playerColumns = []string{"season", "player_season_id", "player_id", "first_name", "surname", "club", "position"}

// parsePlayers reads the draft pool CSV. Positions must be one of the draft
// positions; ROOK marks the rookie pool.
func parsePlayers(r io.Reader) ([][]any, error) {
	recs, err := seed.ReadCSV(r, playerColumns...)
	if err != nil {
		return nil, err
	}

	seen := make(map[[2]int]int, len(recs))
	rows := make([][]any, 0, len(recs))
	for _, rec := range recs {
		season, err := rec.Int("season")
		if err != nil {
			return nil, err
		}
		id, err := rec.Int("player_season_id")
		if err != nil {
			return nil, err
		}
		if season < 1000 || season > 9999 || id <= 0 {
			return nil, fmt.Errorf("line %d: season and player_season_id are required", rec.Line())
		}
		if prev, dup := seen[[2]int{season, id}]; dup {
			return nil, fmt.Errorf("line %d: player_season_id %d already on line %d", rec.Line(), id, prev)
		}
		seen[[2]int{season, id}] = rec.Line()

		pos, err := models.ParsePosition(rec.String("position"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", rec.Line(), err)
		}
		if rec.String("player_id") == "" {
			return nil, fmt.Errorf("line %d: player_id is required", rec.Line())
		}

		rows = append(rows, []any{
			int32(season),
			int32(id),
			rec.String("player_id"),
			rec.String("first_name"),
			rec.String("surname"),
			rec.String("club"),
			string(pos),
		})
	}
	return rows, nil
}

func main() {
	path := flag.String("file", "go/internal/assets/players.csv", "draft pool CSV")
	flag.Parse()
	ctx := context.Background()

	// 1) Load the CSV
	f, err := os.Open(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", *path, err)
		os.Exit(1)
	}
	rows, err := parsePlayers(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse %s: %v\n", *path, err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	pool, err := seed.Connect(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Copy and count
	inserted, err := seed.CopyInsert(ctx, pool, "draft_players", playerColumns, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed draft_players: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf(
		"Players seed: total=%d inserted=%d skipped=%d\n",
		len(rows), inserted, int64(len(rows))-inserted,
	)
}
