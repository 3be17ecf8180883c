// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/dinewise/internal/logging"
	"github.com/tomtom215/dinewise/internal/models"
)

// DefaultEdgeBatchSize is the number of rows per staging insert statement.
const DefaultEdgeBatchSize = 1000

const edgeColumns = `venue_a, venue_b, kind, score, evidence, computed_at`

// ReplaceSimilarityEdges replaces the whole similarity table with edges and
// returns the number of insert batches written.
//
// Edges are first written to the staging table in batches of batchSize rows.
// The live table is cleared and refilled from staging in a single
// transaction, so an error before that point leaves the previous edge set
// intact.
func (db *DB) ReplaceSimilarityEdges(ctx context.Context, edges []models.SimilarityEdge, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultEdgeBatchSize
	}

	if _, err := db.conn.ExecContext(ctx, `DELETE FROM similarity_edges_staging`); err != nil {
		return 0, fmt.Errorf("failed to reset similarity staging: %w", err)
	}

	batches := 0
	for start := 0; start < len(edges); start += batchSize {
		end := min(start+batchSize, len(edges))
		if err := db.insertEdgeBatch(ctx, edges[start:end]); err != nil {
			return batches, fmt.Errorf("failed to stage similarity batch %d: %w", batches+1, err)
		}
		batches++
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return batches, fmt.Errorf("failed to begin similarity swap: %w", err)
	}
	defer rollbackQuietly(tx)

	if _, err := tx.ExecContext(ctx, `DELETE FROM similarity_edges`); err != nil {
		return batches, fmt.Errorf("failed to clear similarity edges: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO similarity_edges (`+edgeColumns+`)
		SELECT `+edgeColumns+` FROM similarity_edges_staging`); err != nil {
		return batches, fmt.Errorf("failed to publish similarity edges: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return batches, fmt.Errorf("failed to commit similarity swap: %w", err)
	}

	if _, err := db.conn.ExecContext(ctx, `DELETE FROM similarity_edges_staging`); err != nil {
		logging.Warn().Err(err).Msg("Failed to clear similarity staging after swap")
	}

	return batches, nil
}

// insertEdgeBatch writes one multi-row insert into the staging table.
func (db *DB) insertEdgeBatch(ctx context.Context, batch []models.SimilarityEdge) error {
	if len(batch) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO similarity_edges_staging (` + edgeColumns + `) VALUES `)
	args := make([]any, 0, len(batch)*6)
	for i := range batch {
		e := &batch[i]
		evidence, err := json.Marshal(e.Evidence)
		if err != nil {
			return fmt.Errorf("failed to encode evidence for %s->%s: %w", e.VenueA, e.VenueB, err)
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?)")
		args = append(args, e.VenueA, e.VenueB, string(e.Kind), e.Score, string(evidence), toMicros(e.ComputedAt))
	}

	_, err := db.conn.ExecContext(ctx, sb.String(), args...)
	return err
}

// GetSimilarityEdges returns the outgoing edges of a venue for one kind,
// strongest first. limit <= 0 returns all.
func (db *DB) GetSimilarityEdges(ctx context.Context, venueID string, kind models.SimilarityKind, limit int) ([]models.SimilarityEdge, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + edgeColumns + `
		FROM similarity_edges
		WHERE venue_a = ? AND kind = ?
		ORDER BY score DESC, venue_b`
	args := []any{venueID, string(kind)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	return db.queryEdges(ctx, query, args...)
}

// ListSimilarityEdges returns every stored edge in a stable order.
func (db *DB) ListSimilarityEdges(ctx context.Context) ([]models.SimilarityEdge, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return db.queryEdges(ctx, `SELECT `+edgeColumns+`
		FROM similarity_edges
		ORDER BY venue_a, venue_b, kind`)
}

// CountSimilarityEdges returns the number of stored edges per kind.
func (db *DB) CountSimilarityEdges(ctx context.Context) (map[models.SimilarityKind]int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT kind, COUNT(*) FROM similarity_edges GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("failed to count similarity edges: %w", err)
	}
	defer closeWithLog(rows, "rows")

	out := make(map[models.SimilarityKind]int)
	for rows.Next() {
		var (
			kind  string
			count int64
		)
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan edge count: %w", err)
		}
		out[models.SimilarityKind(kind)] = int(count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating edge counts: %w", err)
	}
	return out, nil
}

func (db *DB) queryEdges(ctx context.Context, query string, args ...any) ([]models.SimilarityEdge, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query similarity edges: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var edges []models.SimilarityEdge
	for rows.Next() {
		var (
			e          models.SimilarityEdge
			kind       string
			evidence   string
			computedAt int64
		)
		if err := rows.Scan(&e.VenueA, &e.VenueB, &kind, &e.Score, &evidence, &computedAt); err != nil {
			return nil, fmt.Errorf("failed to scan similarity edge: %w", err)
		}
		if err := json.Unmarshal([]byte(evidence), &e.Evidence); err != nil {
			return nil, fmt.Errorf("invalid evidence for %s->%s: %w", e.VenueA, e.VenueB, err)
		}
		e.Kind = models.SimilarityKind(kind)
		e.ComputedAt = fromMicros(computedAt)
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating similarity edges: %w", err)
	}
	return edges, nil
}
