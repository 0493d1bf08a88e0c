package models

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry is one row of the key/value table backing the store on sqlite or postgres.
// Values that are not valid JSON (a bare mission string, for instance) are
// stored as a JSON string with Raw set so they round-trip byte for byte.
type KVEntry struct {
	Key       string         `gorm:"primaryKey;size:191"`
	Value     datatypes.JSON `gorm:"not null"`
	Raw       bool           `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
