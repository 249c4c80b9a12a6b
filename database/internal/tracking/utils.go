package tracking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gaborage/dbfixture/trace"
)

// TrackDBOperation emits a log event for a completed database operation.
//
// Every operation also produces an OpenTelemetry client span and metrics through the
// global providers. It is a no-op if tc is nil, and only telemetry is recorded when
// its Logger is nil. The query is clamped to the configured
// maximum length and bound parameters are included, sanitized, only when enabled. A
// non-nil err is logged at error (sql.ErrNoRows at debug); a successful operation
// slower than the threshold at warn; anything else at debug.
func TrackDBOperation(ctx context.Context, tc *Context, query string, args []any, start time.Time, rowsAffected int64, err error) {
	if tc == nil {
		return
	}
	elapsed := time.Since(start)
	recordTelemetry(ctx, tc, query, start, elapsed, rowsAffected, err)
	if tc.Logger == nil {
		return
	}

	fields := map[string]any{
		"vendor":      tc.Vendor,
		"duration_ms": elapsed.Milliseconds(),
		"query":       TruncateString(query, tc.Settings.MaxQueryLength()),
	}
	if traceID, ok := trace.IDFromContext(ctx); ok {
		fields[trace.LogField] = traceID
	}
	if rowsAffected > 0 {
		fields["rows_affected"] = rowsAffected
	}
	if tc.Settings.LogQueryParameters() && len(args) > 0 {
		fields["args"] = SanitizeArgs(args, tc.Settings.MaxQueryLength())
	}
	log := tc.Logger.WithFields(fields)

	switch {
	case err != nil && errors.Is(err, sql.ErrNoRows):
		log.Debug().Msg("Database operation returned no rows")
	case err != nil:
		log.Error().Err(err).Msg("Database operation error")
	case elapsed > tc.Settings.SlowQueryThreshold():
		log.Warn().Msgf("Slow database operation detected (%s)", elapsed)
	default:
		log.Debug().Msg("Database operation executed")
	}
}

// extractRowsAffected returns the affected row count, or 0 when the result is nil,
// the operation failed or the driver cannot report it.
func extractRowsAffected(result sql.Result, err error) int64 {
	if result == nil || err != nil {
		return 0
	}
	affected, affErr := result.RowsAffected()
	if affErr != nil {
		return 0
	}
	return affected
}

// TruncateString truncates value to at most maxLen runes, ending in "..." when
// maxLen leaves room for it. maxLen <= 0 returns value unchanged.
func TruncateString(value string, maxLen int) string {
	if maxLen <= 0 {
		return value
	}
	r := []rune(value)
	if len(r) <= maxLen {
		return value
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// SanitizeArgs returns a copy of args suitable for logging: strings are truncated,
// byte slices replaced with "<bytes len=N>" and other values formatted with %v.
func SanitizeArgs(args []any, maxLen int) []any {
	if len(args) == 0 {
		return nil
	}
	sanitized := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case nil:
			sanitized[i] = nil
		case string:
			sanitized[i] = TruncateString(v, maxLen)
		case []byte:
			sanitized[i] = fmt.Sprintf("<bytes len=%d>", len(v))
		default:
			sanitized[i] = TruncateString(fmt.Sprintf("%v", v), maxLen)
		}
	}
	return sanitized
}
