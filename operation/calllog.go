package operation

import (
	"sync"

	"github.com/gaborage/dbfixture/datatype"
)

// Call is one bound statement parameter. Index is 1-based within the statement
// execution.
type Call struct {
	Statement string
	Index     int
	Value     any
	Type      datatype.DataType
}

// CallLog is an append-only record of every parameter the executor binds.
type CallLog struct {
	mu    sync.Mutex
	calls []Call
}

// NewCallLog returns an empty CallLog.
func NewCallLog() *CallLog {
	return &CallLog{}
}

func (l *CallLog) record(statement string, values []any, types []datatype.DataType) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, v := range values {
		l.calls = append(l.calls, Call{Statement: statement, Index: i + 1, Value: v, Type: types[i]})
	}
}

// Calls returns a copy of the recorded calls in binding order.
func (l *CallLog) Calls() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Call, len(l.calls))
	copy(out, l.calls)
	return out
}

// Len returns the number of recorded calls.
func (l *CallLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

// ForStatement returns the calls recorded for statement.
func (l *CallLog) ForStatement(statement string) []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Call
	for _, c := range l.calls {
		if c.Statement == statement {
			out = append(out, c)
		}
	}
	return out
}

// Last returns the most recent call.
func (l *CallLog) Last() (Call, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.calls) == 0 {
		return Call{}, false
	}
	return l.calls[len(l.calls)-1], true
}
