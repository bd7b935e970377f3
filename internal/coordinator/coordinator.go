package coordinator

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/gatherhub/event-catalog-service/internal/catalog"
	"github.com/gatherhub/event-catalog-service/internal/domain"
	"github.com/gatherhub/event-catalog-service/internal/remote"
)

// Status is the lifecycle state of the initial catalog load.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// ErrAlreadyStarted is returned by Start when a session is already running.
var ErrAlreadyStarted = errors.New("coordinator already started")

// View is the single read model exposed to consumers: lifecycle status, the
// filtered records, and the initial-load error message if any.
type View struct {
	Status         Status
	VisibleRecords []domain.EventRecord
	Err            string
}

// Fetcher is the slice of the remote store the coordinator needs for the
// initial load.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]domain.EventRecord, error)
}

// Coordinator connects the remote store's fetch and change-feed primitives
// to the catalog mirror and the filter engine. One coordinator owns one
// subscription and one mirror; all mutations run serialized behind its
// mutex, which is also what makes Stop synchronous: once Stop returns, no
// change event delivered afterwards mutates the mirror.
type Coordinator struct {
	fetcher Fetcher
	feed    remote.ChangeFeed
	store   *catalog.Store
	log     *zap.Logger

	mu        sync.Mutex
	status    Status
	criteria  domain.FilterCriteria
	visible   []domain.EventRecord
	errMsg    string
	stopped   bool
	sub       remote.Subscription
	observers []func(View)

	wg sync.WaitGroup
}

// New creates an idle coordinator. The initial criteria apply until
// UpdateCriteria is called.
func New(fetcher Fetcher, feed remote.ChangeFeed, criteria domain.FilterCriteria, log *zap.Logger) *Coordinator {
	return &Coordinator{
		fetcher:  fetcher,
		feed:     feed,
		store:    catalog.NewStore(),
		log:      log,
		status:   StatusIdle,
		criteria: criteria,
	}
}

// Start opens the change-event subscription and launches the full fetch.
// The two run concurrently: events arriving before the fetch completes are
// applied to whatever snapshot exists at the time, and the fetch result is
// authoritative once it lands. A failed fetch transitions to Failed with
// the store's error message verbatim; there is no automatic retry. Call
// Start again after Stop to retry.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.sub != nil {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.status = StatusLoading
	c.errMsg = ""
	c.stopped = false
	c.recompute()
	c.mu.Unlock()

	// Observers registered before Start still see the Loading transition.
	c.publish()

	sub, err := c.feed.Subscribe(ctx)
	if err != nil {
		c.log.Error("Failed to open change feed", zap.Error(err))
		c.mu.Lock()
		c.status = StatusFailed
		c.errMsg = err.Error()
		c.mu.Unlock()
		c.publish()
		return err
	}

	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()

	c.wg.Add(1)
	go c.consume(sub)
	go c.load(ctx)

	return nil
}

// load performs the initial full fetch and resolves the Loading state. It is
// not tracked by the shutdown wait group: a fetch still in flight when Stop
// is called resolves against the stopped flag and discards its result, so
// Stop never blocks on the remote store.
func (c *Coordinator) load(ctx context.Context) {
	records, err := c.fetcher.FetchAll(ctx)

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.log.Error("Catalog fetch failed", zap.Error(err))
		c.status = StatusFailed
		c.errMsg = err.Error()
	} else {
		c.store.Initialize(records)
		c.status = StatusReady
		c.log.Info("Catalog initialized", zap.Int("record_count", len(records)))
	}
	c.recompute()
	c.mu.Unlock()

	c.publish()
}

// consume routes change events to the mirror in delivery order.
func (c *Coordinator) consume(sub remote.Subscription) {
	defer c.wg.Done()

	for event := range sub.Events() {
		c.apply(event)
	}
	c.log.Info("Change feed closed")
}

// Apply applies a single change event to the mirror and republishes the
// visible list. Events received after Stop are discarded. Anomalous events
// are absorbed as no-ops; they self-heal on the next full fetch.
func (c *Coordinator) Apply(event domain.ChangeEvent) {
	c.apply(event)
}

func (c *Coordinator) apply(event domain.ChangeEvent) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	if !c.store.ApplyChange(event) {
		c.log.Warn("Ignoring anomalous change event",
			zap.String("op", string(event.Op)),
			zap.String("id", event.ID))
		c.mu.Unlock()
		return
	}
	c.recompute()
	c.mu.Unlock()

	c.publish()
}

// UpdateCriteria replaces the active filter and republishes immediately. No
// refetch, no resubscribe.
func (c *Coordinator) UpdateCriteria(criteria domain.FilterCriteria) {
	c.mu.Lock()
	c.criteria = criteria
	c.recompute()
	c.mu.Unlock()

	c.publish()
}

// Stop releases the subscription. Idempotent; once it returns, no further
// change event mutates the mirror.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	sub := c.sub
	c.sub = nil
	c.mu.Unlock()

	if sub != nil {
		if err := sub.Close(); err != nil {
			c.log.Error("Failed to close change feed subscription", zap.Error(err))
		}
	}
	c.wg.Wait()
	c.log.Info("Coordinator stopped")
}

// CurrentView returns the current read model. The returned record slice is
// a copy; callers may keep it.
func (c *Coordinator) CurrentView() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Snapshot returns the full unfiltered mirror.
func (c *Coordinator) Snapshot() []domain.EventRecord {
	return c.store.Snapshot()
}

// Get looks up a single mirrored record.
func (c *Coordinator) Get(id string) (domain.EventRecord, bool) {
	return c.store.Get(id)
}

// Criteria returns the currently active filter.
func (c *Coordinator) Criteria() domain.FilterCriteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

// Notify registers an observer invoked after every recomputation of the
// visible list. Observers run outside the coordinator lock.
func (c *Coordinator) Notify(fn func(View)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// recompute derives the visible list from the mirror and the active
// criteria. Callers must hold c.mu.
func (c *Coordinator) recompute() {
	c.visible = catalog.Filter(c.store.Snapshot(), c.criteria)
}

// viewLocked builds a View with a copied record slice. Callers must hold c.mu.
func (c *Coordinator) viewLocked() View {
	records := make([]domain.EventRecord, len(c.visible))
	copy(records, c.visible)
	return View{
		Status:         c.status,
		VisibleRecords: records,
		Err:            c.errMsg,
	}
}

// publish delivers the current view to all observers.
func (c *Coordinator) publish() {
	c.mu.Lock()
	view := c.viewLocked()
	observers := make([]func(View), len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(view)
	}
}
