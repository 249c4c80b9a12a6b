package testing

// Logger levels used by tests.
const (
	TestLoggerLevelDebug    = "debug"
	TestLoggerLevelError    = "error"
	TestLoggerLevelDisabled = "disabled"
)

// Names of the sample shop schema used across the test suites.
const (
	TestTableCustomers = "customers"
	TestTableOrders    = "orders"
	TestTableNotes     = "notes"
	TestNameAlice      = "Alice"
	TestNameBob        = "Bob"
)

// Connection settings shared by the vendor tests.
const (
	TestDatabaseName    = "shop"
	TestUsername        = "app"
	TestPasswordDefault = "secret"
	TestHostLocalhost   = "localhost"
	TestPortPostgreSQL  = 5432
	TestPortMySQL       = 3306
	TestPortSQLServer   = 1433
	TestPortOracle      = 1521
)
