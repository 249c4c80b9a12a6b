package tracking

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.32.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/gaborage/dbfixture/database"

	metricDBCalls      = "db.client.calls"
	metricDBDuration   = "db.client.operation.duration"
	metricRowsAffected = "db.rows.affected"

	attrDBSystem    = "db.system"
	attrDBOperation = "db.operation.name"

	defaultOperation  = "query"
	maxDBQueryAttrLen = 2000
)

// recordTelemetry emits a client span and the call, duration and rows-affected
// metrics for one operation through the global OpenTelemetry providers.
func recordTelemetry(ctx context.Context, tc *Context, query string, start time.Time, elapsed time.Duration, rowsAffected int64, err error) {
	operation := extractDBOperation(query)
	system := normalizeDBVendor(tc.Vendor)
	failed := err != nil && !errors.Is(err, sql.ErrNoRows)

	_, span := otel.Tracer(instrumentationName).Start(ctx, "db."+operation,
		trace.WithTimestamp(start),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	span.SetAttributes(
		attribute.String(attrDBSystem, system),
		semconv.DBQueryText(TruncateString(query, maxDBQueryAttrLen)),
	)
	if operation != defaultOperation {
		span.SetAttributes(semconv.DBOperationName(operation))
	}
	if failed {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End(trace.WithTimestamp(start.Add(elapsed)))

	meter := otel.Meter(instrumentationName)
	attrs := []attribute.KeyValue{
		attribute.String(attrDBSystem, system),
		attribute.String(attrDBOperation, operation),
	}
	if calls, cerr := meter.Int64Counter(metricDBCalls,
		metric.WithDescription("Total number of database client calls")); cerr == nil {
		calls.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.Bool("error", failed))...))
	}
	if duration, herr := meter.Float64Histogram(metricDBDuration,
		metric.WithDescription("Duration of database operations in milliseconds"),
		metric.WithUnit("ms")); herr == nil {
		duration.Record(ctx, float64(elapsed.Nanoseconds())/1e6, metric.WithAttributes(attrs...))
	}
	if rowsAffected > 0 && !failed {
		if rows, rerr := meter.Int64Counter(metricRowsAffected,
			metric.WithDescription("Number of rows affected by database operations")); rerr == nil {
			rows.Add(ctx, rowsAffected, metric.WithAttributes(attrs...))
		}
	}
}

// extractDBOperation returns the lower-cased statement verb of query.
func extractDBOperation(query string) string {
	query = strings.TrimSpace(query)
	switch {
	case strings.HasPrefix(query, "PREPARE:"), strings.HasPrefix(query, "TX_PREPARE:"):
		return "prepare"
	case query == "BEGIN", query == "BEGIN_TX":
		return "begin"
	case query == "TX_COMMIT":
		return "commit"
	case query == "TX_ROLLBACK":
		return "rollback"
	}
	if i := strings.Index(query, ": "); i > 0 && strings.HasPrefix(query, "STMT_") {
		query = query[i+2:]
	}

	parts := strings.Fields(query)
	if len(parts) == 0 {
		return defaultOperation
	}
	switch op := strings.ToLower(parts[0]); op {
	case "select", "insert", "update", "delete", "truncate", "merge", "create", "drop", "alter":
		return op
	}
	return defaultOperation
}

// normalizeDBVendor maps vendor ids to OpenTelemetry db.system values.
func normalizeDBVendor(vendor string) string {
	switch vendor {
	case "oracle":
		return "oracle.db"
	case "sqlserver":
		return "microsoft.sql_server"
	case "":
		return "other_sql"
	default:
		return vendor
	}
}
