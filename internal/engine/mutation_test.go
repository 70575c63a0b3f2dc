package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suteetoe/catalogadmin/internal/model"
)

type fakeAPI struct {
	mu        sync.Mutex
	createErr error
	updateErr error
	deleteErr error
	created   []model.ProductPayload
	updated   map[uint]model.ProductUpdate
	deleted   []uint
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{updated: make(map[uint]model.ProductUpdate)}
}

func (f *fakeAPI) CreateProduct(_ context.Context, payload model.ProductPayload) (model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return model.Product{}, f.createErr
	}
	f.created = append(f.created, payload)
	return model.Product{ID: 1, Name: payload.Name}, nil
}

func (f *fakeAPI) UpdateProduct(_ context.Context, id uint, patch model.ProductUpdate) (model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return model.Product{}, f.updateErr
	}
	f.updated[id] = patch
	return model.Product{ID: id}, nil
}

func (f *fakeAPI) DeleteProduct(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type countingResyncer struct {
	mu    sync.Mutex
	count int
}

func (r *countingResyncer) Refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
}

func (r *countingResyncer) refreshes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

type fixedConfirmer bool

func (c fixedConfirmer) Confirm(string) bool { return bool(c) }

func newTestCoordinator(api *fakeAPI) (*Coordinator, *countingResyncer, *recordingNotifier) {
	resync := &countingResyncer{}
	notifier := &recordingNotifier{}
	return NewCoordinator(api, resync, notifier, zap.NewNop()), resync, notifier
}

func TestCreateSuccessResyncs(t *testing.T) {
	api := newFakeAPI()
	coord, resync, notifier := newTestCoordinator(api)

	err := coord.Create(context.Background(), model.ProductPayload{Name: "Boot", Price: 10, IsActive: true})
	require.NoError(t, err)

	assert.Len(t, api.created, 1)
	assert.Equal(t, 1, resync.refreshes())
	assert.Len(t, notifier.successes, 1)
}

func TestCreateFailureDoesNotResync(t *testing.T) {
	api := newFakeAPI()
	api.createErr = errors.New("validation failed")
	coord, resync, notifier := newTestCoordinator(api)

	err := coord.Create(context.Background(), model.ProductPayload{})
	require.Error(t, err)

	// The caller keeps the form open for a retry; nothing was resynced.
	assert.Equal(t, 0, resync.refreshes())
	assert.Equal(t, 1, notifier.errorCount())
}

func TestUpdateFailureReturnsError(t *testing.T) {
	api := newFakeAPI()
	api.updateErr = errors.New("server exploded")
	coord, resync, _ := newTestCoordinator(api)

	name := "Renamed"
	err := coord.Update(context.Background(), 4, model.ProductUpdate{Name: &name})
	require.Error(t, err)
	assert.Equal(t, 0, resync.refreshes())
}

func TestToggleInvertsActiveFlag(t *testing.T) {
	api := newFakeAPI()
	coord, resync, _ := newTestCoordinator(api)

	err := coord.Toggle(context.Background(), model.Product{ID: 7, IsActive: true})
	require.NoError(t, err)

	patch := api.updated[7]
	require.NotNil(t, patch.IsActive)
	assert.False(t, *patch.IsActive)
	// Only the flag travels in the patch.
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.Price)
	assert.Equal(t, 1, resync.refreshes())
}

func TestDeleteDeclinedMakesNoCall(t *testing.T) {
	api := newFakeAPI()
	coord, resync, notifier := newTestCoordinator(api)

	err := coord.Delete(context.Background(), 9, fixedConfirmer(false))
	require.NoError(t, err)

	assert.Empty(t, api.deleted)
	assert.Equal(t, 0, resync.refreshes())
	assert.Equal(t, 0, notifier.errorCount())
}

func TestDeleteFailureDiscardsIntent(t *testing.T) {
	api := newFakeAPI()
	api.deleteErr = errors.New("server error")
	coord, resync, notifier := newTestCoordinator(api)

	err := coord.Delete(context.Background(), 9, fixedConfirmer(true))
	require.Error(t, err)

	// Failure notifies and triggers no resynchronization.
	assert.Equal(t, 0, resync.refreshes())
	assert.Equal(t, 1, notifier.errorCount())
}

func TestDeleteSuccessResyncs(t *testing.T) {
	api := newFakeAPI()
	coord, resync, _ := newTestCoordinator(api)

	require.NoError(t, coord.Delete(context.Background(), 9, fixedConfirmer(true)))
	assert.Equal(t, []uint{9}, api.deleted)
	assert.Equal(t, 1, resync.refreshes())
}

// A successful mutation must resync under the operator's current filters,
// not a reset query.
func TestResyncReusesCurrentQuery(t *testing.T) {
	f := newBlockingFetcher(4)
	c := NewController(f, nil, zap.NewNop(), 20*time.Millisecond)
	api := newFakeAPI()
	coord := NewCoordinator(api, c, NopNotifier{}, zap.NewNop())

	c.Start(context.Background())
	waitStart(t, f)
	f.replies[0] <- reply{page: pageOf()}

	q := c.Query()
	q.CategoryID = "5"
	c.SetQuery(q)
	waitStart(t, f)
	f.replies[1] <- reply{page: pageOf()}

	require.NoError(t, coord.Create(context.Background(), model.ProductPayload{Name: "Boot"}))

	waitStart(t, f)
	assert.Equal(t, "5", f.query(2).CategoryID)
	f.replies[2] <- reply{page: pageOf("Boot")}
}
