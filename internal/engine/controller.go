// Package engine reconciles the operator's query parameters against the
// remote catalog: it debounces bursts of query changes, drops superseded
// in-flight responses, and coordinates mutations with their resync.
package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/suteetoe/catalogadmin/internal/model"
	"github.com/suteetoe/catalogadmin/prometheus"
)

// DefaultDebounce is the quiet interval a burst of query changes must respect
// before a fetch is dispatched.
const DefaultDebounce = 300 * time.Millisecond

// Fetcher is the slice of the catalog client the controller needs.
type Fetcher interface {
	ListProducts(ctx context.Context, q model.Query) (model.ProductPage, error)
}

// Controller owns the query state and the view model. Query changes are
// coalesced: only the last state of a burst inside the debounce interval
// triggers a fetch. Every dispatched fetch is tagged with a generation; a
// response is applied only while its generation is still current, so a slow
// stale response can never overwrite a newer listing.
type Controller struct {
	fetcher  Fetcher
	notifier Notifier
	log      *zap.Logger
	debounce time.Duration

	mu       sync.Mutex
	ctx      context.Context
	started  bool
	query    model.Query
	vm       ViewModel
	gen      uint64
	timer    *time.Timer
	onChange func(ViewModel)
}

// NewController creates a controller with the default query. A nil notifier
// discards notifications; a debounce of zero or less falls back to the
// default interval.
func NewController(fetcher Fetcher, notifier Notifier, log *zap.Logger, debounce time.Duration) *Controller {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Controller{
		fetcher:  fetcher,
		notifier: notifier,
		log:      log,
		debounce: debounce,
		query:    model.DefaultQuery(),
	}
}

// OnChange registers the callback invoked with a fresh snapshot whenever the
// view model changes. Register before Start.
func (c *Controller) OnChange(fn func(ViewModel)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Start activates the controller and dispatches the initial fetch
// immediately, without debouncing.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.ctx = ctx
	c.mu.Unlock()

	c.dispatch("initial")
}

// SetQuery replaces the query state and (re)schedules a debounced fetch. A
// change arriving while one is already pending cancels and replaces it, so a
// burst of changes produces exactly one fetch for its final state.
func (c *Controller) SetQuery(q model.Query) {
	c.mu.Lock()
	c.query = q
	if !c.started {
		c.mu.Unlock()
		return
	}
	if c.timer != nil && c.timer.Stop() {
		prometheus.RecordCoalescedChange()
	}
	c.timer = time.AfterFunc(c.debounce, func() { c.dispatch("debounced") })
	c.mu.Unlock()
}

// Query returns the current query state.
func (c *Controller) Query() model.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Refresh dispatches an immediate fetch with the current query, cancelling
// any pending debounced one. Mutations use it to resync after success.
func (c *Controller) Refresh() {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.dispatch("immediate")
}

// Snapshot returns the current view model.
func (c *Controller) Snapshot() ViewModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vm
}

// dispatch issues a fetch for the current query under a fresh generation.
// Loading turns on here, once per dispatched fetch, not per keystroke.
func (c *Controller) dispatch(trigger string) {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	gen := c.gen
	q := c.query
	ctx := c.ctx
	c.vm.Loading = true
	c.vm.Generation = gen
	vm := c.vm
	fn := c.onChange
	c.mu.Unlock()

	prometheus.RecordFetch(trigger)
	c.log.Debug("dispatching fetch",
		zap.Uint64("generation", gen),
		zap.String("trigger", trigger),
		zap.String("search", q.Search))

	if fn != nil {
		fn(vm)
	}
	go c.fetch(ctx, gen, q)
}

func (c *Controller) fetch(ctx context.Context, gen uint64, q model.Query) {
	defer prometheus.TrackFetchDuration()(time.Now())

	page, err := c.fetcher.ListProducts(ctx, q)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		prometheus.RecordStaleResponse()
		c.log.Debug("dropping superseded fetch response", zap.Uint64("generation", gen))
		return
	}

	c.vm.Loading = false
	if err == nil {
		c.vm.Products = page.Products
		c.vm.Pagination = page.Pagination
	}
	vm := c.vm
	fn := c.onChange
	c.mu.Unlock()

	if err != nil {
		// The previously rendered list stays in place on failure.
		prometheus.RecordFetchError()
		c.log.Error("product fetch failed", zap.Uint64("generation", gen), zap.Error(err))
		c.notifier.Error("failed to load products: " + err.Error())
	}
	if fn != nil {
		fn(vm)
	}
}
