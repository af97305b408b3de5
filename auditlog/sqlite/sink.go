package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"go.nhat.io/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	_ "modernc.org/sqlite"

	"github.com/w-h-a/qa/auditlog"
)

var DRIVER string

func init() {
	driver, err := otelsql.Register(
		"sqlite",
		otelsql.TraceQueryWithoutArgs(),
		otelsql.TraceRowsClose(),
		otelsql.TraceRowsAffected(),
		otelsql.WithSystem(semconv.DBSystemSqlite),
	)
	if err != nil {
		detail := "failed to register sqlite sink with otel"
		slog.ErrorContext(context.Background(), detail, "error", err)
		panic(detail)
	}

	DRIVER = driver
}

const schema = `
CREATE TABLE IF NOT EXISTS tool_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id TEXT,
	tool_name TEXT,
	args_hash TEXT,
	args_json TEXT,
	tool_latency_ms REAL,
	tool_output_preview TEXT,
	success INTEGER,
	error TEXT,
	created_at TEXT
);
CREATE TABLE IF NOT EXISTS chat_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id TEXT,
	message TEXT,
	route TEXT,
	model TEXT,
	latency_ms REAL,
	success INTEGER,
	created_at TEXT
);
`

type sqliteSink struct {
	options auditlog.Options
	conn    *sql.DB
}

func (s *sqliteSink) RecordToolInvocation(ctx context.Context, rec auditlog.ToolInvocationRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	stmt := `
		INSERT INTO tool_logs
		(request_id, tool_name, args_hash, args_json, tool_latency_ms, tool_output_preview, success, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.conn.ExecContext(
		ctx,
		stmt,
		rec.RequestId,
		rec.ToolName,
		rec.ArgsHash,
		rec.ArgsJson,
		rec.LatencyMs,
		auditlog.TruncatePreview(rec.OutputPreview),
		boolToInt(rec.Success),
		rec.Error,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)

	return err
}

func (s *sqliteSink) RecordChat(ctx context.Context, rec auditlog.ChatRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	stmt := `
		INSERT INTO chat_logs
		(request_id, message, route, model, latency_ms, success, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.conn.ExecContext(
		ctx,
		stmt,
		rec.RequestId,
		rec.Message,
		rec.Route,
		rec.Model,
		rec.LatencyMs,
		boolToInt(rec.Success),
		rec.CreatedAt.Format(time.RFC3339Nano),
	)

	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func NewSink(opts ...auditlog.Option) auditlog.Sink {
	options := auditlog.NewOptions(opts...)

	if len(options.Location) == 0 {
		options.Location = "qa_logs.db"
	}

	s := &sqliteSink{
		options: options,
	}

	conn, err := sql.Open(DRIVER, options.Location)
	if err != nil {
		detail := "failed to open sqlite sink"
		slog.ErrorContext(context.Background(), detail, "error", err)
		panic(detail)
	}

	if _, err := conn.ExecContext(options.Context, schema); err != nil {
		detail := "failed to initialize sqlite sink schema"
		slog.ErrorContext(context.Background(), detail, "error", err)
		panic(detail)
	}

	if err := otelsql.RecordStats(conn); err != nil {
		detail := "failed to initialize instrumentation for sqlite sink"
		slog.ErrorContext(context.Background(), detail, "error", err)
		panic(detail)
	}

	s.conn = conn

	return s
}
