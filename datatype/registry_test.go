package datatype

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gaborage/dbfixture/logger"
)

func TestDefaultResolve(t *testing.T) {
	r := Default()
	assert.Same(t, VarChar, r.Resolve(CodeVarChar, ""))
	assert.Same(t, Integer, r.Resolve(CodeOther, "integer"))
	assert.Same(t, VarChar, r.Resolve(CodeOther, "VARCHAR(255)"))
	assert.Same(t, TimestampTZ, r.Resolve(CodeOther, "timestamp(6) with time zone"))
	assert.Same(t, Date, r.Resolve(CodeDate, "DATE"))
}

func TestResolveFallsBackToObject(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistry("test", WithLogger(logger.NewWithWriter(&buf, "warn")))

	assert.Same(t, Object, r.Resolve(4242, "geography"))
	assert.Same(t, Object, r.Resolve(4242, "GEOGRAPHY"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1, "fallback is logged once per type name")
	assert.Contains(t, lines[0], "geography")
}

func TestVendorOverridesWinOverDefaults(t *testing.T) {
	oracle := NewRegistry("oracle", WithOverrides(OracleOverrides()))
	assert.Same(t, Timestamp, oracle.Resolve(CodeDate, "DATE"))
	assert.Same(t, Timestamp, oracle.Resolve(CodeDate, ""))
	assert.Same(t, Numeric, oracle.ResolveName("NUMBER"))
	assert.Same(t, VarChar, oracle.ResolveName("VARCHAR2(20 CHAR)"))
	assert.Same(t, Timestamp, oracle.ResolveName("TIMESTAMP(6)"))
	assert.Same(t, NumericBoolean, oracle.ResolveName("BOOLEAN"))

	pg := NewRegistry("postgresql", WithOverrides(PostgreSQLOverrides()))
	assert.Same(t, Integer, pg.ResolveName("int4"))
	assert.Same(t, UUID, pg.ResolveName("uuid"))
	assert.Same(t, Binary, pg.ResolveName("bytea"))
	assert.Same(t, Date, pg.ResolveName("date"), "defaults still apply")

	mysql := NewRegistry("mysql", WithOverrides(MySQLOverrides()))
	assert.Same(t, Boolean, mysql.ResolveName("tinyint(1)"))
	assert.Same(t, TinyInt, mysql.ResolveName("tinyint(4)"))
	assert.Same(t, Integer, mysql.ResolveName("int(10) unsigned"))
	assert.Same(t, Clob, mysql.ResolveName("longtext"))

	assert.Same(t, Date, Default().Resolve(CodeDate, "DATE"), "overrides never leak into the default registry")
}

func TestLaterOverridesWin(t *testing.T) {
	r := NewRegistry("custom",
		WithOverrides(Overrides{ByName: map[string]DataType{"money": Decimal}}),
		WithOverrides(Overrides{ByName: map[string]DataType{"MONEY": Numeric}}),
	)
	assert.Same(t, Numeric, r.ResolveName("money"))
}

func TestVendorOverridesLookup(t *testing.T) {
	for _, vendor := range []string{"postgresql", "oracle", "mysql", "sqlserver", "sqlite"} {
		_, ok := VendorOverrides(vendor)
		assert.True(t, ok, vendor)
	}
	_, ok := VendorOverrides("db2")
	assert.False(t, ok)
}

func TestRegistryConcurrentReads(t *testing.T) {
	r := NewRegistry("postgresql", WithOverrides(PostgreSQLOverrides()))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				assert.Same(t, Integer, r.ResolveName("int4"))
				assert.Same(t, Object, r.ResolveName("tsvector"))
			}
		}()
	}
	wg.Wait()
}

func TestCodeForName(t *testing.T) {
	assert.Equal(t, CodeVarChar, CodeForName("character varying"))
	assert.Equal(t, CodeNumeric, CodeForName("NUMBER(10,2)"))
	assert.Equal(t, CodeTimestampTZ, CodeForName("timestamptz"))
	assert.Equal(t, CodeOther, CodeForName("tsvector"))
}
