// Package seed holds the CSV loading and bulk copy shared by the seed tools.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ncalf/draftboard/go/internal/dbconfig"
)

// Record is one CSV row keyed by header name
type Record struct {
	line   int
	fields map[string]string
}

// Line returns the 1-based line number in the source file
func (r Record) Line() int {
	return r.line
}

// String returns a trimmed field
func (r Record) String(name string) string {
	return strings.TrimSpace(r.fields[name])
}

// Int parses a field; an empty optional field is 0
func (r Record) Int(name string) (int, error) {
	raw := r.String(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s %q is not an integer", r.line, name, raw)
	}
	return v, nil
}

// ReadCSV reads a headed CSV. Every name in required must be a header.
func ReadCSV(r io.Reader, required ...string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var out []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		fields := make(map[string]string, len(index))
		for name, i := range index {
			if i < len(row) {
				fields[name] = row[i]
			}
		}
		out = append(out, Record{line: line, fields: fields})
	}
	return out, nil
}

// Connect opens a pool using the shared dbconfig
func Connect(ctx context.Context) (*pgxpool.Pool, error) {
	dsn, err := dbconfig.NewConfigFromEnv().DSN()
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// CopyInsert bulk-copies rows into a temporary copy of table, then inserts
// them, skipping rows that collide on the table's primary key. It returns
// how many rows were inserted.
func CopyInsert(ctx context.Context, pool *pgxpool.Pool, table string, columns []string, rows [][]any) (int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	staging := table + "_seed"
	if _, err := tx.Exec(ctx, fmt.Sprintf(
		"CREATE TEMP TABLE %s (LIKE %s INCLUDING DEFAULTS) ON COMMIT DROP", staging, table,
	)); err != nil {
		return 0, fmt.Errorf("create staging table: %w", err)
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{staging}, columns, pgx.CopyFromRows(rows)); err != nil {
		return 0, fmt.Errorf("copy rows: %w", err)
	}

	cols := strings.Join(columns, ", ")
	tag, err := tx.Exec(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s FROM %s ON CONFLICT DO NOTHING", table, cols, cols, staging,
	))
	if err != nil {
		return 0, fmt.Errorf("insert rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return tag.RowsAffected(), nil
}
