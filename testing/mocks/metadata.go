package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gaborage/dbfixture/database/types"
	"github.com/gaborage/dbfixture/metadata"
)

// MockHandler is a testify mock of metadata.Handler and metadata.DependencyResolver.
// QuoteIdentifier and FoldCase return their input unless an expectation is set.
type MockHandler struct {
	mock.Mock
	vendor string
}

var (
	_ metadata.Handler            = (*MockHandler)(nil)
	_ metadata.DependencyResolver = (*MockHandler)(nil)
)

// NewMockHandler creates a MockHandler reporting vendor.
func NewMockHandler(vendor string) *MockHandler {
	return &MockHandler{vendor: vendor}
}

// Vendor implements metadata.Handler
func (m *MockHandler) Vendor() string { return m.vendor }

// TableExists implements metadata.Handler
func (m *MockHandler) TableExists(ctx context.Context, q types.Querier, table string) (bool, error) {
	arguments := m.Called(ctx, q, table)
	return arguments.Bool(0), arguments.Error(1)
}

// Columns implements metadata.Handler
func (m *MockHandler) Columns(ctx context.Context, q types.Querier, table string) ([]metadata.ColumnInfo, error) {
	arguments := m.Called(ctx, q, table)
	if arguments.Get(0) == nil {
		return nil, arguments.Error(1)
	}
	return arguments.Get(0).([]metadata.ColumnInfo), arguments.Error(1)
}

// ForeignKeys implements metadata.DependencyResolver
func (m *MockHandler) ForeignKeys(ctx context.Context, q types.Querier, table string) ([]metadata.ForeignKey, error) {
	arguments := m.Called(ctx, q, table)
	if arguments.Get(0) == nil {
		return nil, arguments.Error(1)
	}
	return arguments.Get(0).([]metadata.ForeignKey), arguments.Error(1)
}

// QuoteIdentifier implements metadata.Handler
func (m *MockHandler) QuoteIdentifier(name string) string {
	if !m.expects("QuoteIdentifier") {
		return name
	}
	return m.Called(name).String(0)
}

// FoldCase implements metadata.Handler
func (m *MockHandler) FoldCase(name string) string {
	if !m.expects("FoldCase") {
		return name
	}
	return m.Called(name).String(0)
}

func (m *MockHandler) expects(method string) bool {
	for _, c := range m.ExpectedCalls {
		if c.Method == method {
			return true
		}
	}
	return false
}

// Helper methods for common testing scenarios

// ExpectTable sets up TableExists and Columns expectations for a live table.
func (m *MockHandler) ExpectTable(table string, cols ...metadata.ColumnInfo) {
	m.On("TableExists", mock.Anything, mock.Anything, table).Return(true, nil)
	m.On("Columns", mock.Anything, mock.Anything, table).Return(cols, nil)
}

// ExpectMissingTable sets up a TableExists expectation reporting that table does not exist.
func (m *MockHandler) ExpectMissingTable(table string) *mock.Call {
	return m.On("TableExists", mock.Anything, mock.Anything, table).Return(false, nil)
}

// ExpectForeignKeys sets up a ForeignKeys expectation for table.
func (m *MockHandler) ExpectForeignKeys(table string, fks ...metadata.ForeignKey) *mock.Call {
	return m.On("ForeignKeys", mock.Anything, mock.Anything, table).Return(fks, nil)
}
