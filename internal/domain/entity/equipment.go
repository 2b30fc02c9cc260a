package entity

import "time"

// EquipmentType is a catalog entry, not a stock record itself.
type EquipmentType struct {
	ID        int64
	Name      string
	Category  string
	CreatedAt time.Time
}
