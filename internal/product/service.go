// Package product provides CRUD over products, joining each read with its
// category.
package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-gudang/internal/cache"
	"github.com/noah-isme/backend-gudang/internal/common"
	"github.com/noah-isme/backend-gudang/internal/domain"
	"github.com/noah-isme/backend-gudang/internal/events"
	"github.com/noah-isme/backend-gudang/internal/store"
)

// CategoryRef is the embedded category view on a product read.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Item is the public product payload.
type Item struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	Category    *CategoryRef    `json:"category,omitempty"`
}

// CreateInput carries the fields accepted when creating a product.
type CreateInput struct {
	Name        string          `json:"name" validate:"required"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uuid.UUID       `json:"categoryId" validate:"required"`
}

// UpdateInput carries the fields accepted when updating a product.
type UpdateInput struct {
	Name        string          `json:"name" validate:"required"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uuid.UUID       `json:"categoryId" validate:"required"`
}

// Service orchestrates product reads and writes. Reads join the category store;
// a product whose category row is missing is reported as an internal
// inconsistency rather than silently returned bare.
type Service struct {
	Products   store.Store[domain.Product]
	Categories store.Store[domain.Category]
	Events     *events.Bus
	Cache      *cache.Cache
}

// List returns all products with their categories, cached when a cache is
// configured.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	var cached []Item
	if ok, err := s.Cache.GetJSON(ctx, cache.KeyProductList, &cached); err == nil && ok {
		return cached, nil
	}
	products, err := s.Products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	categories, err := s.Categories.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	byID := make(map[uuid.UUID]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	items := make([]Item, 0, len(products))
	for _, p := range products {
		c, ok := byID[p.CategoryID]
		if !ok {
			return nil, fmt.Errorf("product %s references missing category %s", p.ID, p.CategoryID)
		}
		items = append(items, toItem(p, &c))
	}
	_ = s.Cache.SetJSON(ctx, cache.KeyProductList, items)
	return items, nil
}

// Get returns one product with its category.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Item, error) {
	p, ok, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return Item{}, fmt.Errorf("get product: %w", err)
	}
	if !ok {
		return Item{}, common.NotFound(fmt.Sprintf("product %s not found", id), nil)
	}
	c, ok, err := s.Categories.GetByID(ctx, p.CategoryID)
	if err != nil {
		return Item{}, fmt.Errorf("get category: %w", err)
	}
	if !ok {
		return Item{}, fmt.Errorf("product %s references missing category %s", p.ID, p.CategoryID)
	}
	return toItem(p, &c), nil
}

// Create persists a new product after checking its category exists.
func (s *Service) Create(ctx context.Context, in CreateInput) (Item, error) {
	if in.Price.Sign() <= 0 {
		return Item{}, common.BadRequest("price must be positive", nil, nil)
	}
	c, ok, err := s.Categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return Item{}, fmt.Errorf("get category: %w", err)
	}
	if !ok {
		return Item{}, common.BadRequest(fmt.Sprintf("category %s not found", in.CategoryID), nil, nil)
	}
	p := domain.Product{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
	}
	if err := s.Products.Add(ctx, p); err != nil {
		return Item{}, fmt.Errorf("add product: %w", err)
	}
	if _, err := s.Products.Commit(ctx); err != nil {
		return Item{}, fmt.Errorf("commit product: %w", err)
	}
	item := toItem(p, &c)
	_ = s.Events.Emit(ctx, events.TopicProductCreated, p.ID, item)
	return item, nil
}

// Update mutates an existing product after checking its category exists.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (Item, error) {
	if in.Price.Sign() <= 0 {
		return Item{}, common.BadRequest("price must be positive", nil, nil)
	}
	p, ok, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return Item{}, fmt.Errorf("get product: %w", err)
	}
	if !ok {
		return Item{}, common.NotFound(fmt.Sprintf("product %s not found", id), nil)
	}
	c, ok, err := s.Categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return Item{}, fmt.Errorf("get category: %w", err)
	}
	if !ok {
		return Item{}, common.BadRequest(fmt.Sprintf("category %s not found", in.CategoryID), nil, nil)
	}
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.CategoryID = in.CategoryID
	if err := s.Products.Update(ctx, p); err != nil {
		return Item{}, fmt.Errorf("update product: %w", err)
	}
	if _, err := s.Products.Commit(ctx); err != nil {
		return Item{}, fmt.Errorf("commit product: %w", err)
	}
	item := toItem(p, &c)
	_ = s.Events.Emit(ctx, events.TopicProductUpdated, p.ID, item)
	return item, nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	p, ok, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if !ok {
		return common.NotFound(fmt.Sprintf("product %s not found", id), nil)
	}
	if err := s.Products.Remove(ctx, p); err != nil {
		return fmt.Errorf("remove product: %w", err)
	}
	if _, err := s.Products.Commit(ctx); err != nil {
		return fmt.Errorf("commit product: %w", err)
	}
	_ = s.Events.Emit(ctx, events.TopicProductDeleted, p.ID, nil)
	return nil
}

func toItem(p domain.Product, c *domain.Category) Item {
	item := Item{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
	}
	if c != nil {
		item.Category = &CategoryRef{ID: c.ID, Name: c.Name}
	}
	return item
}
