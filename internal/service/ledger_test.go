package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/orderstate"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/pricing"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/service"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/cache"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/trm"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/utils"
)

// memLedger is an in-memory OrderRepo and trm.Manager. Do snapshots the orders
// and restores them when the callback fails, like a rolled back transaction.
type memLedger struct {
	mu     sync.Mutex
	orders map[string]entities.Order
	owners map[string]entities.OrderOwner

	saveItemsErr   error
	saveItemsCalls int
}

func newMemLedger() *memLedger {
	return &memLedger{
		orders: make(map[string]entities.Order),
		owners: make(map[string]entities.OrderOwner),
	}
}

type noopTx struct{}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }

func (l *memLedger) BeginTx(ctx context.Context) (context.Context, trm.Transaction, error) {
	return ctx, noopTx{}, nil
}

func (l *memLedger) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	l.mu.Lock()
	snapshot := maps.Clone(l.orders)
	l.mu.Unlock()

	if err := callback(ctx); err != nil {
		l.mu.Lock()
		l.orders = snapshot
		l.mu.Unlock()
		return err
	}
	return nil
}

func (l *memLedger) GetOrderByID(_ context.Context, id string) (entities.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	o, ok := l.orders[id]
	if !ok {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	return o, nil
}

func (l *memLedger) GetOrderOwner(_ context.Context, orderID string) (entities.OrderOwner, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	o, ok := l.orders[orderID]
	if !ok || o.OwnerID == nil {
		return entities.OrderOwner{}, entities.ErrOwnerNotFound
	}
	owner, ok := l.owners[*o.OwnerID]
	if !ok {
		return entities.OrderOwner{}, entities.ErrOwnerNotFound
	}
	return owner, nil
}

func (l *memLedger) SaveOrder(_ context.Context, o entities.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	o.Items = nil
	l.orders[o.ID] = o
	return nil
}

func (l *memLedger) SaveItems(_ context.Context, orderID string, items []entities.LineItem) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.saveItemsCalls++
	if l.saveItemsErr != nil {
		return l.saveItemsErr
	}
	o := l.orders[orderID]
	o.Items = items
	l.orders[orderID] = o
	return nil
}

func (l *memLedger) ApplyTransition(_ context.Context, id string, t orderstate.Transition, payment *entities.PaymentResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	o, ok := l.orders[id]
	if !ok || o.Status != t.From {
		return entities.ErrStatusConflict
	}
	o = orderstate.Apply(o, t)
	if payment != nil {
		p := *payment
		o.PaymentResult = &p
	}
	l.orders[id] = o
	return nil
}

func (l *memLedger) put(o entities.Order) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orders[o.ID] = o
}

func (l *memLedger) saveAttempts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.saveItemsCalls
}

func (l *memLedger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.orders)
}

func (l *memLedger) only() entities.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, o := range l.orders {
		return o
	}
	return entities.Order{}
}

type fakeCatalog map[string]entities.Product

func (c fakeCatalog) ProductsByIDs(_ context.Context, ids []string) (map[string]entities.Product, error) {
	res := make(map[string]entities.Product, len(ids))
	for _, id := range ids {
		if p, ok := c[id]; ok {
			res[id] = p
		}
	}
	return res, nil
}

type eventRecorder struct {
	mu     sync.Mutex
	events []entities.OrderEvent
	err    error
}

func (r *eventRecorder) PublishOrderEvent(_ context.Context, e entities.OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *eventRecorder) all() []entities.OrderEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.OrderEvent(nil), r.events...)
}

var errDB = errors.New("db error")

var fastRetry = utils.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, Multiplier: 2}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type env struct {
	ledger  *memLedger
	events  *eventRecorder
	cache   *cache.LRUCache
	clock   *testClock
	logger  *slog.Logger
	catalog fakeCatalog
}

func newEnv() *env {
	return &env{
		ledger: newMemLedger(),
		events: &eventRecorder{},
		cache:  cache.NewLRUCache(16, time.Minute),
		clock:  newTestClock(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

type orderService interface {
	BeginCheckout(ctx context.Context, identity entities.Identity, cart []entities.CartItem, address entities.ShippingAddress) (entities.PaymentIntent, error)
	FinalizeCheckout(ctx context.Context, intentID string) (entities.CaptureResult, error)
	ConfirmPayment(ctx context.Context, orderID string, res entities.CaptureResult) error
	GetOrder(ctx context.Context, id string) (entities.OrderDetails, error)
	UpdateOrder(ctx context.Context, identity entities.Identity, id string, change orderstate.Change) (entities.Order, error)
}

func (e *env) service(gateway service.Gateway) orderService {
	return service.NewOrderService(
		e.logger,
		e.ledger,
		e.ledger,
		pricing.NewReconciler(e.logger, e.catalog),
		gateway,
		e.cache,
		e.events,
		service.WithClock(e.clock.Now),
		service.WithRetry(fastRetry, fastRetry),
	)
}

var (
	customer = entities.Identity{UserID: "u-1", Name: "Ann Lee", Email: "ann@example.com"}
	admin    = entities.Identity{UserID: "u-admin", Name: "Root", Email: "root@example.com", IsAdmin: true}

	address = entities.ShippingAddress{
		FullName:   "Ann Lee",
		Street:     "1 Main St",
		City:       "Springfield",
		PostalCode: "12345",
		Country:    "US",
	}
)

func ptr[T any](v T) *T { return &v }
