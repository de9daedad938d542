package store

import (
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-gudang/internal/domain"
)

// NewCategoryStore binds the storage port to the categories table.
func NewCategoryStore(pool *pgxpool.Pool) *PG[domain.Category] {
	return newPG(pool, pgCodec[domain.Category]{
		table:     "categories",
		selectSQL: "SELECT id, name, description FROM categories",
		insertSQL: "INSERT INTO categories (id, name, description) VALUES ($1, $2, $3)",
		updateSQL: "UPDATE categories SET name = $2, description = $3 WHERE id = $1",
		scan: func(rows pgx.Rows) (domain.Category, error) {
			var c domain.Category
			err := rows.Scan(&c.ID, &c.Name, &c.Description)
			return c, err
		},
		insertArgs: func(c domain.Category) []any { return []any{c.ID, c.Name, c.Description} },
		updateArgs: func(c domain.Category) []any { return []any{c.ID, c.Name, c.Description} },
	})
}

// NewProductStore binds the storage port to the products table. The Category
// navigation field is not persisted; consumers join it at read time.
func NewProductStore(pool *pgxpool.Pool) *PG[domain.Product] {
	return newPG(pool, pgCodec[domain.Product]{
		table:     "products",
		selectSQL: "SELECT id, name, description, price, category_id FROM products",
		insertSQL: "INSERT INTO products (id, name, description, price, category_id) VALUES ($1, $2, $3, $4, $5)",
		updateSQL: "UPDATE products SET name = $2, description = $3, price = $4, category_id = $5 WHERE id = $1",
		scan: func(rows pgx.Rows) (domain.Product, error) {
			var (
				p     domain.Product
				price decimal.Decimal
			)
			if err := rows.Scan(&p.ID, &p.Name, &p.Description, &price, &p.CategoryID); err != nil {
				return p, err
			}
			p.Price = price
			return p, nil
		},
		insertArgs: func(p domain.Product) []any {
			return []any{p.ID, p.Name, p.Description, p.Price, p.CategoryID}
		},
		updateArgs: func(p domain.Product) []any {
			return []any{p.ID, p.Name, p.Description, p.Price, p.CategoryID}
		},
	})
}

// NewStockStore binds the storage port to the stock table.
func NewStockStore(pool *pgxpool.Pool) *PG[domain.Stock] {
	return newPG(pool, pgCodec[domain.Stock]{
		table:     "stock",
		selectSQL: "SELECT id, product_id, quantity, last_updated FROM stock",
		insertSQL: "INSERT INTO stock (id, product_id, quantity, last_updated) VALUES ($1, $2, $3, $4)",
		updateSQL: "UPDATE stock SET product_id = $2, quantity = $3, last_updated = $4 WHERE id = $1",
		scan: func(rows pgx.Rows) (domain.Stock, error) {
			var (
				s    domain.Stock
				last time.Time
			)
			if err := rows.Scan(&s.ID, &s.ProductID, &s.Quantity, &last); err != nil {
				return s, err
			}
			s.LastUpdated = last.UTC()
			return s, nil
		},
		insertArgs: func(s domain.Stock) []any {
			return []any{s.ID, s.ProductID, s.Quantity, s.LastUpdated}
		},
		updateArgs: func(s domain.Stock) []any {
			return []any{s.ID, s.ProductID, s.Quantity, s.LastUpdated}
		},
	})
}

var _ Store[domain.Category] = (*Memory[domain.Category])(nil)
var _ Store[domain.Category] = (*PG[domain.Category])(nil)

// Stores bundles one port per entity kind, regardless of the backing driver.
type Stores struct {
	Categories Store[domain.Category]
	Products   Store[domain.Product]
	Stock      Store[domain.Stock]
}

// NewMemoryStores returns a Stores backed entirely by in-memory ports.
func NewMemoryStores() Stores {
	return Stores{
		Categories: NewMemory[domain.Category](),
		Products:   NewMemory[domain.Product](),
		Stock:      NewMemory[domain.Stock](),
	}
}

// NewPGStores returns a Stores backed by the given pool.
func NewPGStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Categories: NewCategoryStore(pool),
		Products:   NewProductStore(pool),
		Stock:      NewStockStore(pool),
	}
}
