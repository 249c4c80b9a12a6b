package datatype

// Built-in DataType instances. They are shared by every column of the same logical
// type and are safe for concurrent use.
var (
	Unknown DataType = &objectType{name: "UNKNOWN", code: CodeOther, kind: KindUnknown}
	Object  DataType = &objectType{name: "OBJECT", code: CodeObject, kind: KindObject}

	Char         DataType = &stringType{name: "CHAR", code: CodeChar, kind: KindString}
	VarChar      DataType = &stringType{name: "VARCHAR", code: CodeVarChar, kind: KindString}
	LongVarChar  DataType = &stringType{name: "LONGVARCHAR", code: CodeLongVarChar, kind: KindString}
	NChar        DataType = &stringType{name: "NCHAR", code: CodeNChar, kind: KindString}
	NVarChar     DataType = &stringType{name: "NVARCHAR", code: CodeNVarChar, kind: KindString}
	LongNVarChar DataType = &stringType{name: "LONGNVARCHAR", code: CodeLongNVarChar, kind: KindString}
	Clob         DataType = &stringType{name: "CLOB", code: CodeClob, kind: KindClob}
	NClob        DataType = &stringType{name: "NCLOB", code: CodeNClob, kind: KindClob}

	TinyInt  DataType = &integerType{name: "TINYINT", code: CodeTinyInt}
	SmallInt DataType = &integerType{name: "SMALLINT", code: CodeSmallInt}
	Integer  DataType = &integerType{name: "INTEGER", code: CodeInteger}
	BigInt   DataType = &integerType{name: "BIGINT", code: CodeBigInt}

	Numeric DataType = &decimalType{name: "NUMERIC", code: CodeNumeric}
	Decimal DataType = &decimalType{name: "DECIMAL", code: CodeDecimal}
	Real    DataType = &decimalType{name: "REAL", code: CodeReal, approx: true}
	Float   DataType = &decimalType{name: "FLOAT", code: CodeFloat, approx: true}
	Double  DataType = &decimalType{name: "DOUBLE", code: CodeDouble, approx: true}

	Boolean DataType = &booleanType{name: "BOOLEAN", code: CodeBoolean}
	Bit     DataType = &booleanType{name: "BIT", code: CodeBit}
	// NumericBoolean is a boolean stored as a 0/1 number, binding as int64.
	NumericBoolean DataType = &booleanType{name: "NUMBER(1)", code: CodeNumeric, numeric: true}

	Date        DataType = &temporalType{name: "DATE", code: CodeDate, kind: KindDate}
	Time        DataType = &temporalType{name: "TIME", code: CodeTime, kind: KindTime}
	TimeTZ      DataType = &temporalType{name: "TIME WITH TIME ZONE", code: CodeTimeTZ, kind: KindTime}
	Timestamp   DataType = &temporalType{name: "TIMESTAMP", code: CodeTimestamp, kind: KindTimestamp}
	TimestampTZ DataType = &temporalType{name: "TIMESTAMP WITH TIME ZONE", code: CodeTimestampTZ, kind: KindTimestamp}

	Binary        DataType = &binaryType{name: "BINARY", code: CodeBinary, kind: KindBinary}
	VarBinary     DataType = &binaryType{name: "VARBINARY", code: CodeVarBinary, kind: KindBinary}
	LongVarBinary DataType = &binaryType{name: "LONGVARBINARY", code: CodeLongVarBinary, kind: KindBinary}
	Blob          DataType = &binaryType{name: "BLOB", code: CodeBlob, kind: KindBlob}

	UUID DataType = &uuidType{name: "UUID", code: CodeOther}
	// SQLServerUUID is UUID for uniqueidentifier columns, whose binary form swaps the
	// byte order of the first three groups.
	SQLServerUUID DataType = &uuidType{name: "UNIQUEIDENTIFIER", code: CodeOther, mixedEndian: true}
)

// All returns every built-in DataType.
func All() []DataType {
	return []DataType{
		Unknown, Object,
		Char, VarChar, LongVarChar, NChar, NVarChar, LongNVarChar, Clob, NClob,
		TinyInt, SmallInt, Integer, BigInt,
		Numeric, Decimal, Real, Float, Double,
		Boolean, Bit, NumericBoolean,
		Date, Time, TimeTZ, Timestamp, TimestampTZ,
		Binary, VarBinary, LongVarBinary, Blob,
		UUID,
	}
}
