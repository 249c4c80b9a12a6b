package operation

import (
	"context"
	"database/sql"
	"time"

	"github.com/gaborage/dbfixture/dataset"
	"github.com/gaborage/dbfixture/datatype"
)

func (e *Executor) applyTable(ctx context.Context, q conn, kind Kind, t *dataset.Table) (tr TableResult, err error) {
	start := time.Now()
	tr = TableResult{Table: t.Name(), Kind: kind, Rows: t.RowCount()}

	switch kind {
	case Truncate, DeleteAll:
		tr.Rows = 0
		tr.Affected, err = e.clear(ctx, q, kind, t)
	default:
		var tg *target
		tg, err = e.resolve(ctx, q, t)
		if err != nil {
			return tr, err
		}
		cache := newStmtCache(q)
		defer func() {
			if cerr := cache.close(); cerr != nil {
				e.log.Warn().Err(cerr).Str("table", t.Name()).Msg("Failed to close prepared statements")
				if err == nil {
					err = cerr
				}
			}
		}()

		switch kind {
		case Insert:
			tr.Affected, err = e.insert(ctx, cache, tg)
		case Update:
			tr.Affected, err = e.update(ctx, cache, tg)
		case Delete:
			tr.Affected, err = e.delete(ctx, cache, tg)
		case Refresh:
			tr.Affected, err = e.refresh(ctx, cache, tg)
		}
	}
	if err != nil {
		return tr, err
	}

	e.log.Debug().
		Str("operation", kind.String()).
		Str("table", t.Name()).
		Int("rows", tr.Rows).
		Int64("affected", tr.Affected).
		Dur("duration", time.Since(start)).
		Msg("Applied table")
	return tr, nil
}

func (e *Executor) clear(ctx context.Context, q conn, kind Kind, t *dataset.Table) (int64, error) {
	if err := e.checkExists(ctx, q, t); err != nil {
		return 0, err
	}
	query := e.dml.DeleteAll(e.catalogName(t))
	if kind == Truncate {
		query = e.dml.Truncate(e.catalogName(t))
	}
	res, err := q.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	n, _ := rowsAffected(res)
	return n, nil
}

func (e *Executor) insert(ctx context.Context, cache *stmtCache, tg *target) (int64, error) {
	limit := 1
	if e.batchSize > 1 && e.dml.SupportsMultiRowInsert() && len(tg.columns) > 0 {
		limit = min(e.batchSize, max(1, e.dml.MaxParams()/len(tg.columns)))
	}

	var (
		total int64
		batch []int
		mask  string
		idx   []int
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := e.insertRows(ctx, cache, tg, batch, idx, mask)
		total += n
		batch = batch[:0]
		return err
	}

	for r := 0; r < tg.table.RowCount(); r++ {
		rowIdx, rowMask := tg.present(r)
		if len(rowIdx) == 0 {
			if err := flush(); err != nil {
				return total, err
			}
			return total, e.rowFailure(Insert, tg, r, 1, ErrEmptyRow)
		}
		if len(batch) > 0 && (rowMask != mask || len(batch) == limit) {
			if err := flush(); err != nil {
				return total, err
			}
		}
		if len(batch) == 0 {
			mask, idx = rowMask, rowIdx
		}
		batch = append(batch, r)
	}
	err := flush()
	return total, err
}

// insertRows inserts rows sharing the same present columns idx in one statement.
func (e *Executor) insertRows(ctx context.Context, cache *stmtCache, tg *target, rows, idx []int, mask string) (int64, error) {
	s, err := cache.get(ctx, "i"+batchKey(mask, len(rows)), func() (string, error) {
		return e.dml.Insert(tg.name, tg.names(idx), len(rows))
	})
	if err != nil {
		return 0, e.rowFailure(Insert, tg, rows[0], len(rows), err)
	}

	args := make([]any, 0, len(rows)*len(idx))
	typs := make([]datatype.DataType, 0, cap(args))
	for _, r := range rows {
		vals, ts, err := tg.values(r, idx)
		if err != nil {
			return 0, e.rowFailure(Insert, tg, r, 1, err)
		}
		args, typs = append(args, vals...), append(typs, ts...)
	}

	res, err := e.exec(ctx, s, args, typs)
	if err != nil {
		return 0, e.rowFailure(Insert, tg, rows[0], len(rows), err)
	}
	n, _ := rowsAffected(res)
	return n, nil
}

func (e *Executor) update(ctx context.Context, cache *stmtCache, tg *target) (int64, error) {
	if tg.keys == nil {
		return 0, &UnsupportedOperationError{Kind: Update, Table: tg.table.Name(), Reason: tg.keyReason}
	}
	var total int64
	for r := 0; r < tg.table.RowCount(); r++ {
		n, err := e.updateRow(ctx, cache, tg, Update, r)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// updateRow updates row r by primary key. A row carrying only key values is a no-op.
func (e *Executor) updateRow(ctx context.Context, cache *stmtCache, tg *target, kind Kind, r int) (int64, error) {
	keyVals, keyTypes, err := tg.keyValues(r)
	if err != nil {
		return 0, e.rowFailure(kind, tg, r, 1, err)
	}
	idx, mask := tg.present(r)
	set := idx[:0:0]
	for _, i := range idx {
		if !tg.isKey(i) {
			set = append(set, i)
		}
	}
	if len(set) == 0 {
		return 0, nil
	}

	s, err := cache.get(ctx, "u"+mask, func() (string, error) {
		return e.dml.Update(tg.name, tg.names(set), tg.names(tg.keys))
	})
	if err != nil {
		return 0, e.rowFailure(kind, tg, r, 1, err)
	}
	vals, typs, err := tg.values(r, set)
	if err != nil {
		return 0, e.rowFailure(kind, tg, r, 1, err)
	}

	res, err := e.exec(ctx, s, append(vals, keyVals...), append(typs, keyTypes...))
	if err != nil {
		return 0, e.rowFailure(kind, tg, r, 1, err)
	}
	n, known := rowsAffected(res)
	if known && n == 0 {
		return 0, e.rowFailure(kind, tg, r, 1, ErrNoRowsAffected)
	}
	return n, nil
}

func (e *Executor) delete(ctx context.Context, cache *stmtCache, tg *target) (int64, error) {
	var total int64
	if tg.keys != nil {
		s, err := cache.get(ctx, "d", func() (string, error) {
			return e.dml.DeleteByKey(tg.name, tg.names(tg.keys))
		})
		if err != nil {
			return 0, &OperationFailure{Kind: Delete, Table: tg.table.Name(), Row: -1, Err: err}
		}
		for r := 0; r < tg.table.RowCount(); r++ {
			keyVals, keyTypes, err := tg.keyValues(r)
			if err != nil {
				return total, e.rowFailure(Delete, tg, r, 1, err)
			}
			res, err := e.exec(ctx, s, keyVals, keyTypes)
			if err != nil {
				return total, e.rowFailure(Delete, tg, r, 1, err)
			}
			n, _ := rowsAffected(res)
			total += n
		}
		return total, nil
	}

	// Without a key every present non-LOB column must match; NULL cells match with
	// IS NULL. LOB columns are left out of the predicate.
	for r := 0; r < tg.table.RowCount(); r++ {
		present, _ := tg.present(r)
		if len(present) == 0 {
			continue
		}
		idx := present[:0:0]
		for _, i := range present {
			if !tg.columns[i].typ.Kind().IsLOB() {
				idx = append(idx, i)
			}
		}
		if len(idx) == 0 {
			return total, &UnsupportedOperationError{
				Kind:   Delete,
				Table:  tg.table.Name(),
				Reason: "no primary key is declared and only large object columns carry values",
			}
		}
		vals, typs, err := tg.values(r, idx)
		if err != nil {
			return total, e.rowFailure(Delete, tg, r, 1, err)
		}
		query, args, err := e.dml.DeleteMatching(tg.name, tg.names(idx), vals)
		if err != nil {
			return total, e.rowFailure(Delete, tg, r, 1, err)
		}
		bound := typs[:0:0]
		for i, v := range vals {
			if v != nil {
				bound = append(bound, typs[i])
			}
		}
		e.calls.record(query, args, bound)
		res, err := cache.q.Exec(ctx, query, args...)
		if err != nil {
			return total, e.rowFailure(Delete, tg, r, 1, err)
		}
		n, _ := rowsAffected(res)
		total += n
	}
	return total, nil
}

func (e *Executor) refresh(ctx context.Context, cache *stmtCache, tg *target) (int64, error) {
	if tg.keys == nil {
		return 0, &UnsupportedOperationError{Kind: Refresh, Table: tg.table.Name(), Reason: tg.keyReason}
	}
	count, err := cache.get(ctx, "c", func() (string, error) {
		return e.dml.CountByKey(tg.name, tg.names(tg.keys))
	})
	if err != nil {
		return 0, &OperationFailure{Kind: Refresh, Table: tg.table.Name(), Row: -1, Err: err}
	}

	var total int64
	for r := 0; r < tg.table.RowCount(); r++ {
		keyVals, keyTypes, err := tg.keyValues(r)
		if err != nil {
			return total, e.rowFailure(Refresh, tg, r, 1, err)
		}
		e.calls.record(count.query, keyVals, keyTypes)
		var existing int64
		if err := count.stmt.QueryRow(ctx, keyVals...).Scan(&existing); err != nil {
			return total, e.rowFailure(Refresh, tg, r, 1, err)
		}

		var n int64
		if existing > 0 {
			n, err = e.updateRow(ctx, cache, tg, Refresh, r)
		} else {
			idx, mask := tg.present(r)
			n, err = e.insertRows(ctx, cache, tg, []int{r}, idx, mask)
		}
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (e *Executor) exec(ctx context.Context, s cachedStmt, args []any, typs []datatype.DataType) (sql.Result, error) {
	e.calls.record(s.query, args, typs)
	return s.stmt.Exec(ctx, args...)
}

// rowFailure logs the failing row and wraps err with its position.
func (e *Executor) rowFailure(kind Kind, tg *target, r, count int, err error) error {
	e.log.Error().
		Err(err).
		Str("operation", kind.String()).
		Str("table", tg.table.Name()).
		Int("row", r).
		Interface("values", tg.rowFields(r)).
		Msg("Row failed")
	return &OperationFailure{Kind: kind, Table: tg.table.Name(), Row: r, Count: count, Err: err}
}

// rowsAffected returns the affected row count and whether the driver reported one.
func rowsAffected(res sql.Result) (int64, bool) {
	if res == nil {
		return 0, false
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, false
	}
	return n, true
}
