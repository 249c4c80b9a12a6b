package fixture

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/dbfixture/config"
	"github.com/gaborage/dbfixture/database/sqldb"
	"github.com/gaborage/dbfixture/database/types"
	"github.com/gaborage/dbfixture/dataset"
	"github.com/gaborage/dbfixture/datatype"
	"github.com/gaborage/dbfixture/diff"
	"github.com/gaborage/dbfixture/logger"
	"github.com/gaborage/dbfixture/metadata"
	"github.com/gaborage/dbfixture/operation"
	"github.com/gaborage/dbfixture/profile"
)

const (
	selectCustomers = "SELECT id, name FROM customers ORDER BY id"
	selectNotes     = "SELECT body, author FROM notes ORDER BY body, author"
	insertCustomer  = "INSERT INTO customers (id,name) VALUES ($1,$2)"
)

func shopSchema() *metadata.Static {
	return metadata.NewStatic(types.PostgreSQL).
		AddTable("customers",
			metadata.ColumnInfo{Name: "id", TypeName: "integer", PrimaryKey: true},
			metadata.ColumnInfo{Name: "name", TypeName: "varchar", Nullable: true}).
		AddTable("orders",
			metadata.ColumnInfo{Name: "id", TypeName: "integer", PrimaryKey: true},
			metadata.ColumnInfo{Name: "customer_id", TypeName: "integer"}).
		AddTable("notes",
			metadata.ColumnInfo{Name: "body", TypeName: "text"},
			metadata.ColumnInfo{Name: "author", TypeName: "varchar", Nullable: true}).
		AddForeignKey(metadata.ForeignKey{Table: "orders", Column: "customer_id", RefTable: "customers", RefColumn: "id"})
}

func shopProfile() profile.Profile {
	return profile.Profile{
		Vendor:   types.PostgreSQL,
		Types:    datatype.NewRegistry(types.PostgreSQL),
		Metadata: shopSchema(),
	}
}

func newSession(t *testing.T, opts ...Option) (*Session, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewSession(sqldb.New(db, types.PostgreSQL), shopProfile(), opts...)
	require.NoError(t, err)
	return s, mock
}

func customers(t *testing.T, ds *dataset.Dataset, rows ...[]any) {
	t.Helper()
	tbl, err := ds.NewTable("customers", []dataset.Column{
		{Name: "id", Type: datatype.Integer, PrimaryKey: true},
		{Name: "name", Type: datatype.VarChar},
	})
	require.NoError(t, err)
	for _, r := range rows {
		require.NoError(t, tbl.AddRow(r...))
	}
}

func TestNewSessionRejectsVendorMismatch(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = NewSession(sqldb.New(db, types.MySQL), shopProfile())
	assert.ErrorIs(t, err, profile.ErrInvalidProfile)

	_, err = NewSession(nil, shopProfile())
	assert.Error(t, err)
}

func TestSetupUsesConfiguredOperation(t *testing.T) {
	s, mock := newSession(t, WithSetupOperation(operation.Insert))

	ds := dataset.New()
	customers(t, ds, []any{1, "Alice"})

	mock.ExpectBegin()
	mock.ExpectPrepare(insertCustomer).ExpectExec().WithArgs(int64(1), "Alice").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := s.Setup(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Affected())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCleanInsert(t *testing.T) {
	s, mock := newSession(t)

	ds := dataset.New()
	customers(t, ds, []any{1, "Alice"})

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM customers").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectPrepare(insertCustomer).ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := s.CleanInsert(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, operation.Committed, res.State)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotOrdersByPrimaryKey(t *testing.T) {
	s, mock := newSession(t)

	mock.ExpectQuery(selectCustomers).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Alice").AddRow(int64(2), nil))

	ds, err := s.Snapshot(context.Background(), "customers")
	require.NoError(t, err)
	tbl, err := ds.Table("customers")
	require.NoError(t, err)

	require.Equal(t, 2, tbl.RowCount())
	assert.Equal(t, []string{"id"}, tbl.PrimaryKeys())
	assert.Equal(t, datatype.Integer, tbl.ColumnAt(0).Type)
	v, err := tbl.Value(1, "name")
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotWithoutKeyOrdersByEveryColumn(t *testing.T) {
	s, mock := newSession(t)

	mock.ExpectQuery(selectNotes).WillReturnRows(sqlmock.NewRows([]string{"body", "author"}).AddRow("hi", "bob"))

	ds, err := s.Snapshot(context.Background(), "notes")
	require.NoError(t, err)
	assert.Equal(t, []string{"notes"}, ds.TableNames())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotMissingTable(t *testing.T) {
	s, _ := newSession(t)

	_, err := s.Snapshot(context.Background(), "invoices")
	var nst *dataset.NoSuchTableError
	require.ErrorAs(t, err, &nst)
	assert.Equal(t, "invoices", nst.Table)
}

func TestCompareAndAssert(t *testing.T) {
	s, mock := newSession(t)

	expected := dataset.New()
	customers(t, expected, []any{1, "Alice"}, []any{2, "Bob"})

	mock.ExpectQuery(selectCustomers).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Alice").AddRow(int64(2), "Bob"))
	d, err := s.Compare(context.Background(), expected)
	require.NoError(t, err)
	assert.True(t, d.Empty())

	mock.ExpectQuery(selectCustomers).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Alice").AddRow(int64(2), "Robert"))
	err = s.Assert(context.Background(), expected)
	var af *diff.AssertionFailure
	require.ErrorAs(t, err, &af)
	assert.Contains(t, err.Error(), "Robert")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompareColumnFilter(t *testing.T) {
	s, mock := newSession(t)

	expected := dataset.New()
	customers(t, expected, []any{1, "Alice"})

	mock.ExpectQuery(selectCustomers).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Someone else"))
	err := s.Assert(context.Background(), expected, diff.WithColumnFilter(dataset.ExcludeColumns("customers.name")))
	assert.NoError(t, err)
}

func TestQueryTable(t *testing.T) {
	s, mock := newSession(t)

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("id").OfType("INTEGER", int64(0)).Nullable(false),
		sqlmock.NewColumn("name").OfType("VARCHAR", "").Nullable(true),
	).AddRow(int64(7), "Grace")
	mock.ExpectQuery("SELECT id, name FROM customers WHERE id = $1").WithArgs(int64(7)).WillReturnRows(rows)

	tbl, err := s.QueryTable(context.Background(), "customer_7", "SELECT id, name FROM customers WHERE id = $1", 7)
	require.NoError(t, err)
	assert.Equal(t, "customer_7", tbl.Name())
	assert.Equal(t, datatype.Integer, tbl.ColumnAt(0).Type)
	assert.Equal(t, dataset.NoNulls, tbl.ColumnAt(0).Nullable)
	v, err := tbl.Value(0, "name")
	require.NoError(t, err)
	assert.Equal(t, "Grace", v)
}

func TestQueryTableError(t *testing.T) {
	s, mock := newSession(t)
	mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("syntax error"))

	_, err := s.QueryTable(context.Background(), "x", "SELECT 1")
	assert.EqualError(t, err, "query table x: syntax error")
}

func TestOrderByDependencies(t *testing.T) {
	s, _ := newSession(t)

	ds := dataset.New()
	_, err := ds.NewTable("orders", []dataset.Column{{Name: "id"}, {Name: "customer_id"}})
	require.NoError(t, err)
	customers(t, ds)

	ordered, err := s.OrderByDependencies(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"customers", "orders"}, ordered.TableNames())
}

func TestClosedSession(t *testing.T) {
	s, mock := newSession(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.Apply(context.Background(), operation.Insert, dataset.New())
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Snapshot(context.Background(), "customers")
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewSessionFromConfig(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	orig := newConnection
	t.Cleanup(func() { newConnection = orig })
	newConnection = func(cfg *config.DatabaseConfig, _ logger.Logger) (types.Interface, error) {
		assert.Equal(t, "shop", cfg.Database)
		return sqldb.New(db, cfg.Type), nil
	}

	cfg, err := config.Load(config.WithYAML([]byte(`
database:
  type: postgresql
  host: db
  port: 5432
  database: shop
fixture:
  operation: refresh
  batchsize: 50
`)), config.WithEnviron(func() []string { return nil }))
	require.NoError(t, err)

	s, err := NewSessionFromConfig(cfg, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, operation.Refresh, s.setup)
	assert.Equal(t, types.PostgreSQL, s.Profile().Vendor)

	mock.ExpectClose()
	require.NoError(t, s.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewSessionFromConfigRejectsUnknownOperation(t *testing.T) {
	cfg, err := config.Load(config.WithYAML([]byte(`
database:
  type: sqlite
  database: ":memory:"
fixture:
  operation: upsert
`)), config.WithEnviron(func() []string { return nil }))
	require.NoError(t, err)

	_, err = NewSessionFromConfig(cfg, nil)
	assert.ErrorContains(t, err, `fixture.operation: unknown operation "upsert"`)
}
