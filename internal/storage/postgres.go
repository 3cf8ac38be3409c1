package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresRecorder writes to the append-only messages relation.
type PostgresRecorder struct {
	db *sql.DB
}

func NewPostgresRecorder(db *sql.DB) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

// Append inserts one row; the database assigns the timestamp.
func (r *PostgresRecorder) Append(ctx context.Context, rec Record) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (user_id, user_message, bot_response) VALUES ($1, $2, $3)`,
		rec.UserID, rec.UserMessage, rec.BotResponse)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *PostgresRecorder) LoadBetween(ctx context.Context, from, to time.Time) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, user_message, bot_response, "timestamp" FROM messages `+
			`WHERE "timestamp" >= $1 AND "timestamp" < $2 ORDER BY "timestamp" ASC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.UserID, &rec.UserMessage, &rec.BotResponse, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return out, nil
}
