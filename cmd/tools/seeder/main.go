// Command seeder loads a demo catalog through the stock import pipeline.
package main

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-gudang/internal/config"
	"github.com/noah-isme/backend-gudang/internal/obs"
	"github.com/noah-isme/backend-gudang/internal/stock"
	"github.com/noah-isme/backend-gudang/internal/store"
)

func main() {
	logger := obs.NewLogger("console", "info")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if cfg.StoreDriver != config.DriverPostgres {
		logger.Fatal().Str("driver", cfg.StoreDriver).Msg("seeder requires the postgres driver")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := store.NewPool(ctx, cfg.DatabaseURL, "gudang-seeder")
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	if err := store.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}

	stores := store.NewPGStores(pool)
	importer := &stock.Service{
		Categories: stores.Categories,
		Products:   stores.Products,
		Stock:      stores.Stock,
	}

	records := []stock.Record{
		{Name: "Arabica Beans 1kg", Categories: []string{"Coffee"}, Price: decimal.NewFromFloat(18.50), Quantity: 40},
		{Name: "Robusta Beans 1kg", Categories: []string{"Coffee"}, Price: decimal.NewFromFloat(12.00), Quantity: 60},
		{Name: "Ceramic Mug", Categories: []string{"Drinkware", "Gifts"}, Price: decimal.NewFromFloat(7.25), Quantity: 120},
		{Name: "Pour-Over Kettle", Categories: []string{"Brewing Gear"}, Price: decimal.NewFromFloat(42.00), Quantity: 15},
		{Name: "Paper Filters 100pk", Categories: []string{"Brewing Gear"}, Price: decimal.NewFromFloat(5.50), Quantity: 200},
	}

	if err := importer.Import(ctx, records); err != nil {
		logger.Fatal().Err(err).Msg("import demo records")
	}

	levels, err := importer.Levels(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("read stock levels")
	}
	for _, lvl := range levels {
		logger.Info().Str("product", lvl.Name).Int("quantity", lvl.Quantity).Msg("seeded")
	}
	logger.Info().Int("records", len(records)).Msg("seed complete")
}
