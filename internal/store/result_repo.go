package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// resultRepo implements ResultRepo.
type resultRepo struct {
	db *sql.DB
}

var resultColumnNames = []string{
	"session_id", "user_id", "primary_type", "secondary_type", "confidence",
	"answered_count", "elapsed_ms", "completed_at", "data",
}

func (r *resultRepo) Save(ctx context.Context, rec ResultRecord) error {
	query, args := builder().Insert(tableResults).
		Columns(resultColumnNames...).
		Values(rec.SessionID, rec.UserID, rec.PrimaryType, rec.SecondaryType, rec.Confidence,
			rec.AnsweredCount, rec.Elapsed.Milliseconds(), rec.CompletedAt.UTC(), string(rec.Data)).
		OnConflict(
			entsql.ConflictColumns("session_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

func (r *resultRepo) Get(ctx context.Context, sessionID string) (*ResultRecord, error) {
	b := builder()
	t := b.Table(tableResults)
	query, args := resultSelect(b, t).
		Where(entsql.EQ(t.C("session_id"), sessionID)).
		Limit(1).
		Query()

	rows, err := r.queryResults(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("result for session %s: %w", sessionID, ErrNotFound)
	}
	return &rows[0], nil
}

func (r *resultRepo) ListByUser(ctx context.Context, userID string, limit int) ([]ResultRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	b := builder()
	t := b.Table(tableResults)
	query, args := resultSelect(b, t).
		Where(entsql.EQ(t.C("user_id"), userID)).
		OrderBy(entsql.Desc(t.C("completed_at")), entsql.Desc(t.C("id"))).
		Limit(limit).
		Query()
	return r.queryResults(ctx, query, args)
}

func resultSelect(b *entsql.DialectBuilder, t *entsql.SelectTable) *entsql.Selector {
	cols := make([]string, len(resultColumnNames))
	for i, c := range resultColumnNames {
		cols[i] = t.C(c)
	}
	return b.Select(cols...).From(t)
}

func (r *resultRepo) queryResults(ctx context.Context, query string, args []any) ([]ResultRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []ResultRecord
	for rows.Next() {
		var (
			rec       ResultRecord
			elapsedMs int64
			data      sql.NullString
		)
		if err := rows.Scan(&rec.SessionID, &rec.UserID, &rec.PrimaryType, &rec.SecondaryType,
			&rec.Confidence, &rec.AnsweredCount, &elapsedMs, &rec.CompletedAt, &data); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		rec.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		if data.Valid {
			rec.Data = []byte(data.String)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}

// IsNotFound reports whether err means a record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
