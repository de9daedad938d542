package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. Category is a read-time navigation populated
// by consumers that join against the category store; it is never persisted as part
// of the product row.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	Category    *Category       `json:"category,omitempty"`
}

// EntityID implements store.Entity.
func (p Product) EntityID() uuid.UUID { return p.ID }
