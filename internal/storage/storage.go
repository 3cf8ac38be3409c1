package storage

import (
	"context"
	"time"
)

// Record is one persisted exchange: what the user asked and what the bot answered.
// Timestamp is assigned by the sink when the record is written.
type Record struct {
	Timestamp   time.Time `json:"timestamp"`
	UserID      int64     `json:"user_id"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
}

// Recorder appends conversation records. Records are never updated or deleted,
// and appending the same record twice stores it twice.
// Implementations must be safe for concurrent use.
type Recorder interface {
	Append(ctx context.Context, rec Record) error
}

// Reader loads records written in [from, to), oldest first.
type Reader interface {
	LoadBetween(ctx context.Context, from, to time.Time) ([]Record, error)
}
