// Package operation applies datasets to a live database: INSERT, UPDATE, DELETE,
// REFRESH, TRUNCATE, DELETE_ALL and CLEAN_INSERT, with parameterized statements inside
// a single transaction per call.
package operation

import (
	"fmt"
	"strings"
)

// Kind selects how a dataset is applied.
type Kind int

const (
	Insert Kind = iota + 1
	Update
	Delete
	// Refresh updates rows whose primary key exists and inserts the others.
	Refresh
	Truncate
	DeleteAll
	// CleanInsert deletes all rows of every table, then inserts the dataset.
	CleanInsert
)

var kindNames = map[Kind]string{
	Insert:      "INSERT",
	Update:      "UPDATE",
	Delete:      "DELETE",
	Refresh:     "REFRESH",
	Truncate:    "TRUNCATE",
	DeleteAll:   "DELETE_ALL",
	CleanInsert: "CLEAN_INSERT",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses an operation name such as "clean_insert" or "CLEAN-INSERT".
func ParseKind(s string) (Kind, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.NewReplacer("-", "_", " ", "_").Replace(name)
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}

// State is the lifecycle state of a single Apply call.
type State int

const (
	Pending State = iota
	Running
	Committed
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Committed:
		return "committed"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// TableResult summarizes the work done on one table.
type TableResult struct {
	Table    string
	Kind     Kind
	Rows     int
	Affected int64
}

// Result reports the outcome of Apply. Tables lists completed table steps in
// execution order. TraceID matches the trace_id field of the statement logs.
type Result struct {
	Kind    Kind
	State   State
	TraceID string
	Tables  []TableResult
}

// Affected returns the total number of affected rows reported by the driver.
func (r *Result) Affected() int64 {
	var n int64
	for _, t := range r.Tables {
		n += t.Affected
	}
	return n
}
