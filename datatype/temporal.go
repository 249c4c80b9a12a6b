package datatype

import (
	"errors"
	"strings"
	"time"
)

var errNotTemporal = errors.New("unrecognized date/time value")

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999 -0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

var timeLayouts = []string{
	"15:04:05.999999999",
	"15:04:05",
	"15:04",
	"15:04:05.999999999Z07:00",
}

// temporalType covers DATE, TIME and TIMESTAMP. Values are compared by instant;
// DATE keeps only the civil date (UTC midnight) and TIME only the clock.
type temporalType struct {
	name string
	code int
	kind Kind
}

func (t *temporalType) Name() string { return t.name }
func (t *temporalType) SQLType() int { return t.code }
func (t *temporalType) Kind() Kind   { return t.kind }

func (t *temporalType) Parse(raw any) (any, error) {
	v, null := unwrap(raw)
	if null {
		return nil, nil
	}
	ts, err := t.toTime(v)
	if err != nil {
		return nil, conversionError(t, raw, err)
	}
	switch t.kind {
	case KindDate:
		y, m, d := ts.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	case KindTime:
		return time.Date(0, 1, 1, ts.Hour(), ts.Minute(), ts.Second(), ts.Nanosecond(), time.UTC), nil
	default:
		return ts, nil
	}
}

func (t *temporalType) Compare(a, b any) (Result, error) {
	return compareWith(t, a, b, func(x, y any) Result {
		return resultOf(x.(time.Time).Compare(y.(time.Time)))
	})
}

func (t *temporalType) Format(v any) (any, error) {
	return t.Parse(v)
}

func (t *temporalType) toTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		return t.parseText(x)
	case []byte:
		return t.parseText(string(x))
	}
	// Integral values are Unix milliseconds.
	ms, err := toInt64(v)
	if err != nil {
		return time.Time{}, errNotTemporal
	}
	return time.UnixMilli(ms).UTC(), nil
}

func (t *temporalType) parseText(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layouts := timestampLayouts
	if t.kind == KindTime {
		layouts = append(append([]string{}, timeLayouts...), timestampLayouts...)
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errNotTemporal
}
