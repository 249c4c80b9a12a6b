package operation

import (
	"context"
	"fmt"
	"strings"

	"github.com/gaborage/dbfixture/dataset"
	"github.com/gaborage/dbfixture/datatype"
	"github.com/gaborage/dbfixture/metadata"
)

// boundColumn is a dataset column matched to its live counterpart.
type boundColumn struct {
	pos  int
	name string
	typ  datatype.DataType
}

// target is a dataset table resolved against the live schema.
type target struct {
	table   *dataset.Table
	name    string
	columns []boundColumn
	// keys indexes columns; nil when no usable primary key is known.
	keys []int
	// keyReason explains why keys is nil.
	keyReason string
}

func (e *Executor) catalogName(t *dataset.Table) string {
	return e.profile.Metadata.FoldCase(t.Name())
}

func (e *Executor) checkExists(ctx context.Context, q conn, t *dataset.Table) error {
	ok, err := e.profile.Metadata.TableExists(ctx, q, t.Name())
	if err != nil {
		return err
	}
	if !ok {
		return &dataset.NoSuchTableError{Table: t.Name()}
	}
	return nil
}

// resolve matches the dataset columns to live columns and selects each column's
// target type from the live catalog type.
func (e *Executor) resolve(ctx context.Context, q conn, t *dataset.Table) (*target, error) {
	if err := e.checkExists(ctx, q, t); err != nil {
		return nil, err
	}
	live, err := e.profile.Metadata.Columns(ctx, q, t.Name())
	if err != nil {
		return nil, err
	}

	byName := make(map[string]metadata.ColumnInfo, len(live))
	byUpper := make(map[string]metadata.ColumnInfo, len(live))
	for _, c := range live {
		byName[c.Name] = c
		byUpper[strings.ToUpper(c.Name)] = c
	}

	tg := &target{table: t, name: e.catalogName(t)}
	boundLive := make(map[string]int, len(live))
	for pos, c := range t.Columns() {
		lc, ok := byName[e.profile.Metadata.FoldCase(c.Name)]
		if !ok && !t.Policy().CaseSensitive {
			lc, ok = byUpper[strings.ToUpper(c.Name)]
		}
		if !ok {
			if e.ignoreUnknown {
				e.log.Warn().Str("table", t.Name()).Str("column", c.Name).Msg("Skipping column missing from live table")
				continue
			}
			return nil, &dataset.NoSuchColumnError{Table: t.Name(), Column: c.Name}
		}

		typ := e.profile.Types.Resolve(lc.TypeCode, lc.TypeName)
		if typ == datatype.Object && c.Type.Kind() != datatype.KindUnknown {
			typ = c.Type
		}
		boundLive[lc.Name] = len(tg.columns)
		tg.columns = append(tg.columns, boundColumn{pos: pos, name: lc.Name, typ: typ})
	}

	livePK := metadata.PrimaryKeys(live)
	switch {
	case len(livePK) > 0:
		for _, k := range livePK {
			i, ok := boundLive[k]
			if !ok {
				tg.keys, tg.keyReason = nil, fmt.Sprintf("primary key column %s is not in the dataset", k)
				break
			}
			tg.keys = append(tg.keys, i)
		}
	default:
		for i, c := range tg.columns {
			if t.ColumnAt(c.pos).PrimaryKey {
				tg.keys = append(tg.keys, i)
			}
		}
		if len(tg.keys) == 0 {
			tg.keyReason = "no primary key is declared"
		}
	}
	return tg, nil
}

// isKey reports whether bound column i is part of the primary key.
func (tg *target) isKey(i int) bool {
	for _, k := range tg.keys {
		if k == i {
			return true
		}
	}
	return false
}

// present returns the bound column indexes with a value in row r, and a key
// identifying that set.
func (tg *target) present(r int) ([]int, string) {
	row := tg.table.Row(r)
	idx := make([]int, 0, len(tg.columns))
	var key strings.Builder
	for i, c := range tg.columns {
		if dataset.IsNoValue(row.At(c.pos)) {
			key.WriteByte('0')
			continue
		}
		key.WriteByte('1')
		idx = append(idx, i)
	}
	return idx, key.String()
}

func (tg *target) names(idx []int) []string {
	out := make([]string, len(idx))
	for i, c := range idx {
		out[i] = tg.columns[c].name
	}
	return out
}

// values formats the row's values of the given bound columns for binding.
func (tg *target) values(r int, idx []int) ([]any, []datatype.DataType, error) {
	row := tg.table.Row(r)
	vals := make([]any, len(idx))
	typs := make([]datatype.DataType, len(idx))
	for i, c := range idx {
		bc := tg.columns[c]
		v, err := bc.typ.Format(row.At(bc.pos))
		if err != nil {
			return nil, nil, fmt.Errorf("column %s: %w", bc.name, err)
		}
		vals[i], typs[i] = v, bc.typ
	}
	return vals, typs, nil
}

// keyValues formats the row's primary key values; each must be present and non-NULL.
func (tg *target) keyValues(r int) ([]any, []datatype.DataType, error) {
	row := tg.table.Row(r)
	for _, k := range tg.keys {
		v := row.At(tg.columns[k].pos)
		if v == nil || dataset.IsNoValue(v) {
			return nil, nil, fmt.Errorf("column %s: %w", tg.columns[k].name, ErrMissingKey)
		}
	}
	return tg.values(r, tg.keys)
}

// rowFields renders a row for failure logs; sensitive column names are masked by the
// logger's field filter.
func (tg *target) rowFields(r int) map[string]any {
	row := tg.table.Row(r)
	fields := make(map[string]any, len(tg.columns))
	for _, c := range tg.columns {
		if v := row.At(c.pos); !dataset.IsNoValue(v) {
			fields[c.name] = v
		}
	}
	return fields
}
