// Package stock implements bulk stock import: categories and products are
// resolved or created by name, then stock rows are created or incremented.
package stock

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-gudang/internal/cache"
	"github.com/noah-isme/backend-gudang/internal/domain"
	"github.com/noah-isme/backend-gudang/internal/events"
	"github.com/noah-isme/backend-gudang/internal/obs"
	"github.com/noah-isme/backend-gudang/internal/store"
)

// Record is one import row. Categories lists every category name the product
// belongs to; only the first resolved category is recorded on a newly created
// product.
type Record struct {
	Name       string          `json:"name" validate:"required"`
	Categories []string        `json:"categories" validate:"min=1,dive,required"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity" validate:"gte=1"`
}

// Level is a stock row joined with its product for read endpoints.
type Level struct {
	ProductID   uuid.UUID `json:"productId"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Service upserts import records through the storage ports.
type Service struct {
	Categories store.Store[domain.Category]
	Products   store.Store[domain.Product]
	Stock      store.Store[domain.Stock]
	Events     *events.Bus
	Cache      *cache.Cache
	Now        func() time.Time
}

// Import processes records sequentially. Each record resolves its categories by
// exact name, then the product by exact name, then creates or increments the
// product's stock row. Working sets of already-seen entities carry across
// records, so later records observe entities created earlier in the same call
// without re-querying the stores.
//
// Writes for each entity kind are committed before the next kind needs them
// (category before product, product before stock). There is no cross-record
// transaction: a storage failure partway through leaves earlier records'
// writes committed. Name matching holds no lock, so two concurrent imports may
// both create a category with the same new name; the stores do not enforce
// name uniqueness.
func (s *Service) Import(ctx context.Context, records []Record) error {
	knownCats, err := s.Categories.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	knownProds, err := s.Products.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	knownStock, err := s.Stock.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list stock: %w", err)
	}

	for _, rec := range records {
		resolved := make([]domain.Category, 0, len(rec.Categories))
		for _, name := range rec.Categories {
			if idx := slices.IndexFunc(knownCats, func(c domain.Category) bool { return c.Name == name }); idx >= 0 {
				resolved = append(resolved, knownCats[idx])
				continue
			}
			cat, err := domain.NewCategory(name, nil)
			if err != nil {
				s.countRecord("invalid")
				return fmt.Errorf("category %q: %w", name, err)
			}
			if err := s.Categories.Add(ctx, cat); err != nil {
				return fmt.Errorf("add category %q: %w", name, err)
			}
			if _, err := s.Categories.Commit(ctx); err != nil {
				s.countRecord("error")
				return fmt.Errorf("commit category %q: %w", name, err)
			}
			knownCats = append(knownCats, cat)
			resolved = append(resolved, cat)
		}

		var product domain.Product
		if idx := slices.IndexFunc(knownProds, func(p domain.Product) bool { return p.Name == rec.Name }); idx >= 0 {
			product = knownProds[idx]
		} else {
			product = domain.Product{
				ID:         uuid.New(),
				Name:       rec.Name,
				Price:      rec.Price,
				CategoryID: resolved[0].ID,
			}
			if err := s.Products.Add(ctx, product); err != nil {
				return fmt.Errorf("add product %q: %w", rec.Name, err)
			}
			if _, err := s.Products.Commit(ctx); err != nil {
				s.countRecord("error")
				return fmt.Errorf("commit product %q: %w", rec.Name, err)
			}
			knownProds = append(knownProds, product)
		}

		if idx := slices.IndexFunc(knownStock, func(st domain.Stock) bool { return st.ProductID == product.ID }); idx >= 0 {
			st := knownStock[idx]
			st.Quantity += rec.Quantity
			st.LastUpdated = s.now()
			if err := s.Stock.Update(ctx, st); err != nil {
				return fmt.Errorf("update stock for %q: %w", rec.Name, err)
			}
			if _, err := s.Stock.Commit(ctx); err != nil {
				s.countRecord("error")
				return fmt.Errorf("commit stock for %q: %w", rec.Name, err)
			}
			knownStock[idx] = st
		} else {
			st := domain.Stock{
				ID:          uuid.New(),
				ProductID:   product.ID,
				Quantity:    rec.Quantity,
				LastUpdated: s.now(),
			}
			if err := s.Stock.Add(ctx, st); err != nil {
				return fmt.Errorf("add stock for %q: %w", rec.Name, err)
			}
			if _, err := s.Stock.Commit(ctx); err != nil {
				s.countRecord("error")
				return fmt.Errorf("commit stock for %q: %w", rec.Name, err)
			}
			knownStock = append(knownStock, st)
		}

		s.countRecord("ok")
		if obs.StockQuantityAdded != nil {
			obs.StockQuantityAdded.Add(float64(rec.Quantity))
		}
		_ = s.Events.Emit(ctx, events.TopicStockImported, product.ID, map[string]any{
			"name":     rec.Name,
			"quantity": rec.Quantity,
		})
	}
	return nil
}

// Levels returns every stock row joined with its product name, cached when a
// cache is configured.
func (s *Service) Levels(ctx context.Context) ([]Level, error) {
	var cached []Level
	if ok, err := s.Cache.GetJSON(ctx, cache.KeyStockLevels, &cached); err == nil && ok {
		return cached, nil
	}

	stocks, err := s.Stock.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	products, err := s.Products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	names := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	levels := make([]Level, 0, len(stocks))
	for _, st := range stocks {
		levels = append(levels, Level{
			ProductID:   st.ProductID,
			Name:        names[st.ProductID],
			Quantity:    st.Quantity,
			LastUpdated: st.LastUpdated,
		})
	}
	_ = s.Cache.SetJSON(ctx, cache.KeyStockLevels, levels)
	return levels, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) countRecord(result string) {
	if obs.ImportRecordsTotal != nil {
		obs.ImportRecordsTotal.WithLabelValues(result).Inc()
	}
}
