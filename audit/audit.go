// Package audit records one row per extraction run in a local SQLite
// database. The engine itself persists nothing; the serving layer owns this
// trail and uses it for traceability (which strategy ran, how long, what
// failed) without storing raw user payloads — targets are logged as hashes.
//
// Writes are async and non-blocking: a full buffer drops the entry rather
// than applying backpressure to request handling.
package audit

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/hazyhaar/tinge/idgen"
)

// Entry is one extraction run.
type Entry struct {
	EntryID          string
	Timestamp        time.Time
	RequestID        string
	Source           string // file | url | base64 | website
	TargetHash       string // sha256 of the request data
	ExtractionSource string // vision-first | fallback-dom | "" for image paths
	PaletteSize      int
	Status           string // "success" | "error"
	ErrorMessage     string
	DurationMs       int64
}

// HashTarget derives the stored identifier for request data.
func HashTarget(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// Logger persists extraction runs asynchronously.
type Logger struct {
	db    *sql.DB
	newID idgen.Generator
	ch    chan *Entry
	stop  chan struct{}
	done  chan struct{}
}

// Option configures a Logger.
type Option func(*Logger)

// WithIDGenerator sets a custom ID generator for entry IDs.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(l *Logger) { l.newID = gen }
}

// NewLogger creates an async audit logger. Recommended bufferSize: 256.
func NewLogger(db *sql.DB, bufferSize int, opts ...Option) *Logger {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	l := &Logger{
		db:    db,
		newID: idgen.Prefixed("run_", idgen.Default),
		ch:    make(chan *Entry, bufferSize),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	for _, o := range opts {
		o(l)
	}
	go l.writeLoop()
	return l
}

// Record queues an entry. Non-blocking; drops on overflow.
func (l *Logger) Record(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	select {
	case l.ch <- &e:
	default:
		slog.Warn("audit: buffer full, entry dropped", "source", e.Source)
	}
}

// Close drains pending entries and stops the writer.
func (l *Logger) Close() {
	close(l.stop)
	<-l.done
}

func (l *Logger) writeLoop() {
	defer close(l.done)
	for {
		select {
		case e := <-l.ch:
			l.write(e)
		case <-l.stop:
			for {
				select {
				case e := <-l.ch:
					l.write(e)
				default:
					return
				}
			}
		}
	}
}

func (l *Logger) write(e *Entry) {
	_, err := l.db.ExecContext(context.Background(), `
		INSERT INTO extraction_runs (
			entry_id, timestamp, request_id, source, target_hash,
			extraction_source, palette_size, status, error_message, duration_ms
		) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		l.newID(), e.Timestamp.Unix(), e.RequestID, e.Source, e.TargetHash,
		e.ExtractionSource, e.PaletteSize, e.Status, e.ErrorMessage, e.DurationMs)
	if err != nil {
		slog.Error("audit: write failed", "error", err, "source", e.Source)
	}
}

// Recent returns the latest entries, newest first.
func Recent(ctx context.Context, db *sql.DB, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.QueryContext(ctx, `
		SELECT entry_id, timestamp, request_id, source, target_hash,
		       extraction_source, palette_size, status, error_message, duration_ms
		FROM extraction_runs ORDER BY timestamp DESC, entry_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.EntryID, &ts, &e.RequestID, &e.Source, &e.TargetHash,
			&e.ExtractionSource, &e.PaletteSize, &e.Status, &e.ErrorMessage, &e.DurationMs); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(ts, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}
