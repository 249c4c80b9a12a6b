package database

import (
	"github.com/gaborage/dbfixture/database/internal/tracking"
)

// Re-export the internal tracking implementation as the public API
type (
	TrackedConnection = tracking.Connection
	TrackingSettings  = tracking.Settings
)

// Re-export internal functions as public API
var (
	NewTrackedConnection = tracking.NewConnection
	NewTrackingSettings  = tracking.NewSettings
)

// Re-export internal constants
const (
	DefaultSlowQueryThreshold = tracking.DefaultSlowQueryThreshold
	DefaultMaxQueryLength     = tracking.DefaultMaxQueryLength
)
