package category_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-gudang/internal/category"
	"github.com/noah-isme/backend-gudang/internal/common"
	"github.com/noah-isme/backend-gudang/internal/domain"
	"github.com/noah-isme/backend-gudang/internal/events"
	"github.com/noah-isme/backend-gudang/internal/store"
)

type recordingNotifier struct {
	topics []string
}

func (r *recordingNotifier) Notify(_ context.Context, event events.Event) error {
	r.topics = append(r.topics, event.Topic)
	return nil
}

func newService() (*category.Service, *recordingNotifier) {
	recorder := &recordingNotifier{}
	return &category.Service{
		Categories: store.NewMemory[domain.Category](),
		Events:     &events.Bus{Notifiers: []events.Notifier{recorder}},
	}, recorder
}

func TestCategoryCRUD(t *testing.T) {
	ctx := context.Background()
	svc, recorder := newService()

	desc := "hot drinks"
	created, err := svc.Create(ctx, category.CreateInput{Name: "Coffee", Description: &desc})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.Equal(t, "Coffee", created.Name)
	require.Equal(t, &desc, created.Description)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	updated, err := svc.Update(ctx, created.ID, category.UpdateInput{Name: "Tea"})
	require.NoError(t, err)
	require.Equal(t, "Tea", updated.Name)
	require.Nil(t, updated.Description)

	require.NoError(t, svc.Delete(ctx, created.ID))
	items, err = svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)

	require.Equal(t, []string{
		events.TopicCategoryCreated,
		events.TopicCategoryUpdated,
		events.TopicCategoryDeleted,
	}, recorder.topics)
}

func TestCategoryNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()
	missing := uuid.New()

	_, err := svc.Get(ctx, missing)
	requireAppError(t, err, "NOT_FOUND")

	_, err = svc.Update(ctx, missing, category.UpdateInput{Name: "X"})
	requireAppError(t, err, "NOT_FOUND")

	requireAppError(t, svc.Delete(ctx, missing), "NOT_FOUND")
}

func TestCategoryBlankNameRejected(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Create(context.Background(), category.CreateInput{Name: "   "})
	requireAppError(t, err, "BAD_REQUEST")
}

func requireAppError(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
}
