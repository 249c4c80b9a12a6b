// Package database opens vendor connections for fixture sessions.
package database

import (
	"github.com/gaborage/dbfixture/database/types"
)

// Interface is the connection contract consumed by the fixture engine.
type Interface = types.Interface

// Statement defines the interface for prepared statements.
type Statement = types.Statement

// Tx defines the interface for database transactions.
type Tx = types.Tx
