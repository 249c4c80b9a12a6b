package diff

import (
	"fmt"
	"strings"

	"github.com/gaborage/dbfixture/dataset"
	"github.com/gaborage/dbfixture/datatype"
	"github.com/gaborage/dbfixture/logger"
)

// Diff is the result of a comparison. It is empty iff no findings were produced.
type Diff struct {
	findings []Finding
}

// Empty reports whether the compared datasets matched.
func (d *Diff) Empty() bool { return len(d.findings) == 0 }

// Len returns the number of findings.
func (d *Diff) Len() int { return len(d.findings) }

// Findings returns the findings in discovery order.
func (d *Diff) Findings() []Finding {
	out := make([]Finding, len(d.findings))
	copy(out, d.findings)
	return out
}

// Filter returns the findings of the given kind.
func (d *Diff) Filter(kind Kind) []Finding {
	var out []Finding
	for _, f := range d.findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// Err returns nil for an empty diff and an *AssertionFailure otherwise.
func (d *Diff) Err() error {
	if d.Empty() {
		return nil
	}
	return &AssertionFailure{Diff: d}
}

func (d *Diff) String() string {
	if d.Empty() {
		return "no differences"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d difference(s):", len(d.findings))
	for _, f := range d.findings {
		b.WriteString("\n  - ")
		b.WriteString(f.String())
	}
	return b.String()
}

func (d *Diff) add(f Finding) {
	d.findings = append(d.findings, f)
}

// AssertionFailure is the aggregate error for a non-empty Diff.
type AssertionFailure struct {
	Diff *Diff
}

func (e *AssertionFailure) Error() string {
	return "dataset assertion failed: " + e.Diff.String()
}

type options struct {
	filter dataset.ColumnFilter
	log    logger.Logger
}

// Option configures a comparison.
type Option func(*options)

// WithColumnFilter limits column-set and cell comparison to accepted columns.
func WithColumnFilter(f dataset.ColumnFilter) Option {
	return func(o *options) {
		o.filter = f
	}
}

// WithLogger sets the logger receiving per-table debug summaries.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// Assert compares expected with actual and returns an *AssertionFailure listing every
// finding, or nil when they match.
func Assert(expected, actual *dataset.Dataset, opts ...Option) error {
	return Compare(expected, actual, opts...).Err()
}

// Compare reports every difference between expected and actual. Tables are matched by
// name, columns by name, rows by position.
func Compare(expected, actual *dataset.Dataset, opts ...Option) *Diff {
	o := options{log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	d := &Diff{}
	for _, et := range expected.Tables() {
		at, err := actual.Table(et.Name())
		if err != nil {
			d.add(Finding{Kind: MissingTable, Table: et.Name(), Row: -1, Expected: et.Name()})
			continue
		}
		before := d.Len()
		compareTable(d, et, at, o.filter)
		o.log.Debug().
			Str("table", et.Name()).
			Int("rows", et.RowCount()).
			Int("findings", d.Len()-before).
			Msg("Compared table")
	}
	for _, at := range actual.Tables() {
		if !expected.HasTable(at.Name()) {
			d.add(Finding{Kind: UnexpectedTable, Table: at.Name(), Row: -1, Actual: at.Name()})
		}
	}
	return d
}

type columnPair struct {
	name     string
	exp, act int
	dt       datatype.DataType
}

func compareTable(d *Diff, et, at *dataset.Table, filter dataset.ColumnFilter) {
	name := et.Name()

	var shared []columnPair
	for i, c := range et.Columns() {
		if !filter.Accept(name, c.Name) {
			continue
		}
		j := at.ColumnIndex(c.Name)
		if j < 0 {
			d.add(Finding{Kind: ColumnMismatch, Table: name, Column: c.Name, Row: -1, Expected: c.Name})
			continue
		}
		// A nil dt marks a pair with no common type.
		dt, _ := datatype.Common(c.Type, at.ColumnAt(j).Type)
		shared = append(shared, columnPair{name: c.Name, exp: i, act: j, dt: dt})
	}
	for _, c := range at.Columns() {
		if !filter.Accept(name, c.Name) {
			continue
		}
		if et.ColumnIndex(c.Name) < 0 {
			d.add(Finding{Kind: ColumnMismatch, Table: name, Column: c.Name, Row: -1, Actual: c.Name})
		}
	}

	ec, ac := et.RowCount(), at.RowCount()
	if ec != ac {
		d.add(Finding{Kind: RowCountMismatch, Table: name, Row: -1, Expected: ec, Actual: ac})
	}

	for r := 0; r < min(ec, ac); r++ {
		erow, arow := et.Row(r), at.Row(r)
		for _, p := range shared {
			ev, av := erow.At(p.exp), arow.At(p.act)
			if dataset.IsNoValue(ev) || dataset.IsNoValue(av) {
				continue
			}
			if f, mismatch := compareCell(p, ev, av); mismatch {
				f.Table, f.Row = name, r
				d.add(f)
			}
		}
	}
}

func compareCell(p columnPair, ev, av any) (Finding, bool) {
	f := Finding{Kind: CellMismatch, Column: p.name, Expected: ev, Actual: av}
	if ev == nil && av == nil {
		return f, false
	}
	if p.dt == nil {
		f.Result = datatype.Incomparable
		return f, true
	}
	r, err := p.dt.Compare(ev, av)
	if err != nil {
		f.Result, f.Err = datatype.Incomparable, err
		return f, true
	}
	f.Result = r
	return f, r != datatype.Equal
}
