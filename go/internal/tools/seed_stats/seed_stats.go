package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ncalf/draftboard/go/internal/tools/seed"
)

var statColumns = []string{
	"season", "round", "player_id", "player_season_id", "club", "team_id",
	"position", "position_played", "k", "m", "hb", "ff", "fa", "g", "b", "ho", "t",
}

// counted are the per-round stat columns; blanks load as zero
var counted = []string{"position_played", "k", "m", "hb", "ff", "fa", "g", "b", "ho", "t"}

// parseStats reads one row per player per round
func parseStats(r io.Reader) ([][]any, error) {
	recs, err := seed.ReadCSV(r, "season", "round", "player_id", "player_season_id", "club")
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(recs))
	for _, rec := range recs {
		row := make([]any, 0, len(statColumns))
		for _, name := range []string{"season", "round"} {
			v, err := rec.Int(name)
			if err != nil {
				return nil, err
			}
			row = append(row, int32(v))
		}
		if row[0].(int32) < 1000 || row[1].(int32) <= 0 {
			return nil, fmt.Errorf("line %d: season and round are required", rec.Line())
		}
		if rec.String("player_id") == "" {
			return nil, fmt.Errorf("line %d: player_id is required", rec.Line())
		}
		row = append(row, rec.String("player_id"))

		psid, err := rec.Int("player_season_id")
		if err != nil {
			return nil, err
		}
		teamID, err := rec.Int("team_id")
		if err != nil {
			return nil, err
		}
		row = append(row, int32(psid), rec.String("club"), int32(teamID), rec.String("position"))

		for _, name := range counted {
			v, err := rec.Int(name)
			if err != nil {
				return nil, err
			}
			row = append(row, int32(v))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func main() {
	path := flag.String("file", "go/internal/assets/stats.csv", "round stats CSV")
	flag.Parse()
	ctx := context.Background()

	f, err := os.Open(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", *path, err)
		os.Exit(1)
	}
	rows, err := parseStats(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse %s: %v\n", *path, err)
		os.Exit(1)
	}

	pool, err := seed.Connect(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	inserted, err := seed.CopyInsert(ctx, pool, "stats", statColumns, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed stats: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf(
		"Stats seed: total=%d inserted=%d skipped=%d\n",
		len(rows), inserted, int64(len(rows))-inserted,
	)
}
