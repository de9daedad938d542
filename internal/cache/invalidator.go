package cache

import (
	"context"
	"strings"

	"github.com/noah-isme/backend-gudang/internal/events"
)

// Invalidator drops cached listings whenever a catalog or stock event fires.
type Invalidator struct {
	Cache *Cache
}

// Notify implements events.Notifier.
func (i Invalidator) Notify(ctx context.Context, event events.Event) error {
	switch {
	case strings.HasPrefix(event.Topic, "catalog.category."):
		return i.Cache.Delete(ctx, KeyCategoryList, KeyProductList)
	case strings.HasPrefix(event.Topic, "catalog.product."):
		return i.Cache.Delete(ctx, KeyProductList, KeyStockLevels)
	case event.Topic == events.TopicStockImported:
		return i.Cache.Delete(ctx, KeyCategoryList, KeyProductList, KeyStockLevels)
	default:
		return nil
	}
}
