package product_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-gudang/internal/common"
	"github.com/noah-isme/backend-gudang/internal/domain"
	"github.com/noah-isme/backend-gudang/internal/events"
	"github.com/noah-isme/backend-gudang/internal/product"
	"github.com/noah-isme/backend-gudang/internal/store"
)

type fixture struct {
	svc        *product.Service
	categories *store.Memory[domain.Category]
	products   *store.Memory[domain.Product]
	recorder   *recordingNotifier
}

type recordingNotifier struct {
	topics []string
}

func (r *recordingNotifier) Notify(_ context.Context, event events.Event) error {
	r.topics = append(r.topics, event.Topic)
	return nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	categories := store.NewMemory[domain.Category]()
	products := store.NewMemory[domain.Product]()
	recorder := &recordingNotifier{}
	return &fixture{
		svc: &product.Service{
			Products:   products,
			Categories: categories,
			Events:     &events.Bus{Notifiers: []events.Notifier{recorder}},
		},
		categories: categories,
		products:   products,
		recorder:   recorder,
	}
}

func (f *fixture) addCategory(t *testing.T, name string) domain.Category {
	t.Helper()
	ctx := context.Background()
	cat, err := domain.NewCategory(name, nil)
	require.NoError(t, err)
	require.NoError(t, f.categories.Add(ctx, cat))
	_, err = f.categories.Commit(ctx)
	require.NoError(t, err)
	return cat
}

func TestProductCRUD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	coffee := f.addCategory(t, "Coffee")
	tea := f.addCategory(t, "Tea")

	created, err := f.svc.Create(ctx, product.CreateInput{
		Name:       "Arabica Beans",
		Price:      decimal.RequireFromString("18.5"),
		CategoryID: coffee.ID,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.NotNil(t, created.Category)
	require.Equal(t, "Coffee", created.Category.Name)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.True(t, decimal.RequireFromString("18.5").Equal(got.Price))

	items, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Category)

	updated, err := f.svc.Update(ctx, created.ID, product.UpdateInput{
		Name:       "Earl Grey",
		Price:      decimal.NewFromInt(6),
		CategoryID: tea.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "Earl Grey", updated.Name)
	require.Equal(t, tea.ID, updated.CategoryID)
	require.Equal(t, "Tea", updated.Category.Name)

	require.NoError(t, f.svc.Delete(ctx, created.ID))
	items, err = f.svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)

	require.Equal(t, []string{
		events.TopicProductCreated,
		events.TopicProductUpdated,
		events.TopicProductDeleted,
	}, f.recorder.topics)
}

func TestProductCreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	coffee := f.addCategory(t, "Coffee")

	t.Run("unknown category", func(t *testing.T) {
		_, err := f.svc.Create(ctx, product.CreateInput{
			Name:       "Orphan",
			Price:      decimal.NewFromInt(1),
			CategoryID: uuid.New(),
		})
		requireAppError(t, err, "BAD_REQUEST")
	})

	t.Run("non-positive price", func(t *testing.T) {
		_, err := f.svc.Create(ctx, product.CreateInput{
			Name:       "Free Stuff",
			Price:      decimal.Zero,
			CategoryID: coffee.ID,
		})
		requireAppError(t, err, "BAD_REQUEST")
	})
}

func TestProductNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	coffee := f.addCategory(t, "Coffee")
	missing := uuid.New()

	_, err := f.svc.Get(ctx, missing)
	requireAppError(t, err, "NOT_FOUND")

	_, err = f.svc.Update(ctx, missing, product.UpdateInput{
		Name:       "X",
		Price:      decimal.NewFromInt(1),
		CategoryID: coffee.ID,
	})
	requireAppError(t, err, "NOT_FOUND")

	requireAppError(t, f.svc.Delete(ctx, missing), "NOT_FOUND")
}

func TestProductReadsFailOnMissingCategory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Seed a product whose category row does not exist.
	p := domain.Product{
		ID:         uuid.New(),
		Name:       "Dangling",
		Price:      decimal.NewFromInt(1),
		CategoryID: uuid.New(),
	}
	require.NoError(t, f.products.Add(ctx, p))
	_, err := f.products.Commit(ctx)
	require.NoError(t, err)

	_, err = f.svc.List(ctx)
	require.Error(t, err)

	_, err = f.svc.Get(ctx, p.ID)
	require.Error(t, err)
}

func requireAppError(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
}
