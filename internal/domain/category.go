package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrBlankName is returned when an entity is constructed with an empty or whitespace-only name.
var ErrBlankName = errors.New("name is required")

// Category groups products under a human-meaningful name. The name doubles as the
// natural key during stock import.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
}

// NewCategory constructs a category with a fresh identity. Blank names are rejected.
func NewCategory(name string, description *string) (Category, error) {
	if strings.TrimSpace(name) == "" {
		return Category{}, ErrBlankName
	}
	return Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
	}, nil
}

// EntityID implements store.Entity.
func (c Category) EntityID() uuid.UUID { return c.ID }
