package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileRecorder_AppendAndLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "spool", "records.jsonl")
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}
	ctx := context.Background()

	ev1 := Record{Timestamp: time.Unix(1, 0).UTC(), UserID: 1, UserMessage: "hi", BotResponse: "hello"}
	ev2 := Record{Timestamp: time.Unix(2, 0).UTC(), UserID: 2, UserMessage: "foo", BotResponse: "bar"}
	if err := rec.Append(ctx, ev1); err != nil {
		t.Fatalf("append1: %v", err)
	}
	if err := rec.Append(ctx, ev2); err != nil {
		t.Fatalf("append2: %v", err)
	}

	records, err := rec.LoadAll()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("want 2, got %d", len(records))
	}
	if records[0].UserID != 1 || records[1].UserID != 2 {
		t.Fatalf("order mismatch: %+v", records)
	}

	// ensure file exists and non-empty
	st, err := os.Stat(p)
	if err != nil || st.Size() == 0 {
		t.Fatalf("file not written")
	}
}

func TestFileRecorder_DuplicatesAreKept(t *testing.T) {
	rec, err := NewFileRecorder(filepath.Join(t.TempDir(), "log.jsonl"))
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}
	r := Record{UserID: 7, UserMessage: "q", BotResponse: "a"}
	for i := 0; i < 2; i++ {
		if err := rec.Append(context.Background(), r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	records, _ := rec.LoadAll()
	if len(records) != 2 {
		t.Fatalf("want 2 independent records, got %d", len(records))
	}
	if records[0].Timestamp.IsZero() {
		t.Fatalf("timestamp not assigned")
	}
}

func TestFileRecorder_LoadBetween(t *testing.T) {
	rec, err := NewFileRecorder(filepath.Join(t.TempDir(), "log.jsonl"))
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for _, ts := range []time.Time{day.Add(-time.Second), day, day.Add(23 * time.Hour), day.Add(24 * time.Hour)} {
		_ = rec.Append(context.Background(), Record{Timestamp: ts, UserID: 1, UserMessage: "m"})
	}
	got, err := rec.LoadBetween(context.Background(), day, day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 records inside the day, got %d", len(got))
	}
}
