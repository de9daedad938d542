// Package basket computes discounted basket totals against live stock levels.
package basket

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-gudang/internal/domain"
	"github.com/noah-isme/backend-gudang/internal/obs"
	"github.com/noah-isme/backend-gudang/internal/store"
)

// lineDiscountRate is the flat per-line discount applied to a single unit's
// price when more than one unit is requested.
var lineDiscountRate = decimal.New(5, -2)

// ProductNotFoundError reports a basket line referencing an unknown product.
type ProductNotFoundError struct {
	ProductID uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError reports a basket line requesting more units than are
// available. Available is 0 when the product has no stock row at all.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %q: requested %d, available %d", e.Name, e.Requested, e.Available)
}

// Line is one (product, requested quantity) pair submitted for pricing.
type Line struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gte=1"`
}

// DiscountLine is the priced, validated output corresponding to one basket line.
type DiscountLine struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Result aggregates discount lines and basket-level totals.
type Result struct {
	Lines               []DiscountLine  `json:"lines"`
	TotalBeforeDiscount decimal.Decimal `json:"totalBeforeDiscount"`
	TotalDiscount       decimal.Decimal `json:"totalDiscount"`
	TotalAfterDiscount  decimal.Decimal `json:"totalAfterDiscount"`
}

// Service prices baskets against the product and stock stores. It is read-only:
// it quotes a price, it does not reserve inventory.
type Service struct {
	Products store.Store[domain.Product]
	Stock    store.Store[domain.Stock]
}

// ComputeDiscount validates every line, then prices the basket. Validation is
// all-or-nothing: no partial result is produced for a partially valid basket.
//
// Each line with quantity > 1 earns a flat discount of 5% of one unit's price,
// independent of how many extra units are requested.
func (s *Service) ComputeDiscount(ctx context.Context, lines []Line) (Result, error) {
	requested := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		requested[line.ProductID] = struct{}{}
	}

	allProducts, err := s.Products.ListAll(ctx)
	if err != nil {
		countDiscount("error")
		return Result{}, fmt.Errorf("list products: %w", err)
	}
	allStock, err := s.Stock.ListAll(ctx)
	if err != nil {
		countDiscount("error")
		return Result{}, fmt.Errorf("list stock: %w", err)
	}

	products := make(map[uuid.UUID]domain.Product, len(requested))
	for _, p := range allProducts {
		if _, ok := requested[p.ID]; ok {
			products[p.ID] = p
		}
	}
	stocks := make(map[uuid.UUID]domain.Stock, len(requested))
	for _, st := range allStock {
		if _, ok := requested[st.ProductID]; !ok {
			continue
		}
		if _, seen := stocks[st.ProductID]; !seen {
			stocks[st.ProductID] = st
		}
	}

	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			countDiscount("not_found")
			return Result{}, &ProductNotFoundError{ProductID: line.ProductID}
		}
		st, ok := stocks[line.ProductID]
		if !ok || line.Quantity > st.Quantity {
			available := 0
			if ok {
				available = st.Quantity
			}
			countDiscount("insufficient_stock")
			return Result{}, &InsufficientStockError{
				ProductID: line.ProductID,
				Name:      product.Name,
				Requested: line.Quantity,
				Available: available,
			}
		}
	}

	result := Result{Lines: make([]DiscountLine, 0, len(lines))}
	for _, line := range lines {
		product := products[line.ProductID]
		unit := product.Price
		discount := decimal.Zero
		if line.Quantity > 1 {
			discount = unit.Mul(lineDiscountRate)
		}
		before := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))

		result.Lines = append(result.Lines, DiscountLine{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitPrice: unit,
			Discount:  discount,
			LineTotal: before.Sub(discount),
		})
		result.TotalBeforeDiscount = result.TotalBeforeDiscount.Add(before)
		result.TotalDiscount = result.TotalDiscount.Add(discount)
	}
	// Subtract once at the end so the basket total cannot drift from the sum
	// of its parts.
	result.TotalAfterDiscount = result.TotalBeforeDiscount.Sub(result.TotalDiscount)
	countDiscount("ok")
	return result, nil
}

func countDiscount(result string) {
	if obs.DiscountCalcsTotal != nil {
		obs.DiscountCalcsTotal.WithLabelValues(result).Inc()
	}
}
