package operation

import (
	"context"
	"errors"
	"strconv"

	"github.com/gaborage/dbfixture/database/types"
)

// stmtCache holds the prepared statements of one table step. close releases all of
// them and must run on every exit path.
type stmtCache struct {
	q     conn
	stmts map[string]cachedStmt
}

type cachedStmt struct {
	query string
	stmt  types.Statement
}

func newStmtCache(q conn) *stmtCache {
	return &stmtCache{q: q, stmts: make(map[string]cachedStmt)}
}

// get returns the statement cached under key, preparing build() on first use.
func (c *stmtCache) get(ctx context.Context, key string, build func() (string, error)) (cachedStmt, error) {
	if s, ok := c.stmts[key]; ok {
		return s, nil
	}
	query, err := build()
	if err != nil {
		return cachedStmt{}, err
	}
	stmt, err := c.q.Prepare(ctx, query)
	if err != nil {
		return cachedStmt{}, err
	}
	s := cachedStmt{query: query, stmt: stmt}
	c.stmts[key] = s
	return s, nil
}

func (c *stmtCache) close() error {
	var errs []error
	for _, s := range c.stmts {
		if err := s.stmt.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.stmts = nil
	return errors.Join(errs...)
}

func batchKey(mask string, rows int) string {
	return mask + "/" + strconv.Itoa(rows)
}
