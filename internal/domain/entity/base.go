package entity

import "time"

// Base identifies a physical location holding stock.
type Base struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
