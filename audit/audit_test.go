package audit

import (
	"context"
	"database/sql"
	"testing"
	"time"
)

func memDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoggerRoundTrip(t *testing.T) {
	db := memDB(t)
	l := NewLogger(db, 16)

	l.Record(Entry{
		RequestID:        "req_1",
		Source:           "website",
		TargetHash:       HashTarget("https://example.com"),
		ExtractionSource: "vision-first",
		PaletteSize:      5,
		Status:           "success",
		DurationMs:       1200,
	})
	l.Record(Entry{
		RequestID:    "req_2",
		Source:       "base64",
		TargetHash:   HashTarget("payload"),
		Status:       "error",
		ErrorMessage: "imagetheme: unsupported or corrupt image",
	})
	l.Close()

	entries, err := Recent(context.Background(), db, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	byReq := map[string]Entry{}
	for _, e := range entries {
		byReq[e.RequestID] = e
		if e.EntryID == "" {
			t.Error("entry_id must be generated")
		}
		if e.Timestamp.IsZero() || time.Since(e.Timestamp) > time.Minute {
			t.Errorf("timestamp looks wrong: %v", e.Timestamp)
		}
	}
	if byReq["req_1"].ExtractionSource != "vision-first" || byReq["req_1"].PaletteSize != 5 {
		t.Errorf("req_1 = %+v", byReq["req_1"])
	}
	if byReq["req_2"].Status != "error" || byReq["req_2"].ErrorMessage == "" {
		t.Errorf("req_2 = %+v", byReq["req_2"])
	}
}

func TestHashTarget(t *testing.T) {
	a := HashTarget("https://example.com")
	b := HashTarget("https://example.com")
	c := HashTarget("https://example.org")
	if a != b {
		t.Error("hash must be deterministic")
	}
	if a == c {
		t.Error("different targets must hash differently")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}

func TestRecordAfterOverflowDoesNotBlock(t *testing.T) {
	db := memDB(t)
	l := NewLogger(db, 1)
	donech := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			l.Record(Entry{Source: "file", Status: "success"})
		}
		close(donech)
	}()
	select {
	case <-donech:
	case <-time.After(5 * time.Second):
		t.Fatal("Record blocked on a full buffer")
	}
	l.Close()
}
