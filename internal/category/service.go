// Package category provides CRUD over product categories.
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-gudang/internal/cache"
	"github.com/noah-isme/backend-gudang/internal/common"
	"github.com/noah-isme/backend-gudang/internal/domain"
	"github.com/noah-isme/backend-gudang/internal/events"
	"github.com/noah-isme/backend-gudang/internal/store"
)

// Item is the public category payload.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
}

// CreateInput carries the fields accepted when creating a category.
type CreateInput struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// UpdateInput carries the fields accepted when updating a category.
type UpdateInput struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// Service orchestrates category reads and writes.
type Service struct {
	Categories store.Store[domain.Category]
	Events     *events.Bus
	Cache      *cache.Cache
}

// List returns all categories, cached when a cache is configured.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	var cached []Item
	if ok, err := s.Cache.GetJSON(ctx, cache.KeyCategoryList, &cached); err == nil && ok {
		return cached, nil
	}
	rows, err := s.Categories.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	items := make([]Item, 0, len(rows))
	for _, c := range rows {
		items = append(items, toItem(c))
	}
	_ = s.Cache.SetJSON(ctx, cache.KeyCategoryList, items)
	return items, nil
}

// Get returns one category by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Item, error) {
	c, ok, err := s.Categories.GetByID(ctx, id)
	if err != nil {
		return Item{}, fmt.Errorf("get category: %w", err)
	}
	if !ok {
		return Item{}, common.NotFound(fmt.Sprintf("category %s not found", id), nil)
	}
	return toItem(c), nil
}

// Create persists a new category.
func (s *Service) Create(ctx context.Context, in CreateInput) (Item, error) {
	c, err := domain.NewCategory(in.Name, in.Description)
	if err != nil {
		if errors.Is(err, domain.ErrBlankName) {
			return Item{}, common.BadRequest("category name is required", err, nil)
		}
		return Item{}, err
	}
	if err := s.Categories.Add(ctx, c); err != nil {
		return Item{}, fmt.Errorf("add category: %w", err)
	}
	if _, err := s.Categories.Commit(ctx); err != nil {
		return Item{}, fmt.Errorf("commit category: %w", err)
	}
	_ = s.Events.Emit(ctx, events.TopicCategoryCreated, c.ID, toItem(c))
	return toItem(c), nil
}

// Update mutates an existing category.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (Item, error) {
	c, ok, err := s.Categories.GetByID(ctx, id)
	if err != nil {
		return Item{}, fmt.Errorf("get category: %w", err)
	}
	if !ok {
		return Item{}, common.NotFound(fmt.Sprintf("category %s not found", id), nil)
	}
	c.Name = in.Name
	c.Description = in.Description
	if err := s.Categories.Update(ctx, c); err != nil {
		return Item{}, fmt.Errorf("update category: %w", err)
	}
	if _, err := s.Categories.Commit(ctx); err != nil {
		return Item{}, fmt.Errorf("commit category: %w", err)
	}
	_ = s.Events.Emit(ctx, events.TopicCategoryUpdated, c.ID, toItem(c))
	return toItem(c), nil
}

// Delete removes a category.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	c, ok, err := s.Categories.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get category: %w", err)
	}
	if !ok {
		return common.NotFound(fmt.Sprintf("category %s not found", id), nil)
	}
	if err := s.Categories.Remove(ctx, c); err != nil {
		return fmt.Errorf("remove category: %w", err)
	}
	if _, err := s.Categories.Commit(ctx); err != nil {
		return fmt.Errorf("commit category: %w", err)
	}
	_ = s.Events.Emit(ctx, events.TopicCategoryDeleted, c.ID, nil)
	return nil
}

func toItem(c domain.Category) Item {
	return Item{ID: c.ID, Name: c.Name, Description: c.Description}
}
