package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stock tracks the on-hand quantity for a single product. One row per product is
// the expected shape; the importer preserves it by incrementing existing rows
// instead of inserting duplicates.
type Stock struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	Quantity    int       `json:"quantity"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// EntityID implements store.Entity.
func (s Stock) EntityID() uuid.UUID { return s.ID }
