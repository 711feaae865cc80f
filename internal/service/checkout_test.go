package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/pricing"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/service"
	mocks "github.com/SergeyBogomolovv/storefront-checkout/internal/service/mocks"
	trmmocks "github.com/SergeyBogomolovv/storefront-checkout/pkg/trm/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mug() entities.Product {
	return entities.Product{ID: "P1", Name: "Mug", Image: "/img/mug.png", Price: decimal.RequireFromString("25.00")}
}

func TestOrderService_BeginCheckout(t *testing.T) {
	clientPrice := decimal.RequireFromString("1.00")

	type MockBehavior func(gateway *mocks.MockGateway)

	testCases := []struct {
		name         string
		identity     entities.Identity
		cart         []entities.CartItem
		address      entities.ShippingAddress
		saveItemsErr error
		mockBehavior MockBehavior
		wantErr      func(t *testing.T, err error)
		wantOrders   int
	}{
		{
			name:     "catalog price wins over client price",
			identity: customer,
			cart:     []entities.CartItem{{ProductID: "P1", Quantity: 2, ClientPrice: &clientPrice}},
			address:  address,
			mockBehavior: func(gateway *mocks.MockGateway) {
				gateway.EXPECT().
					CreateIntent(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
						return o.TotalAmount.Equal(decimal.RequireFromString("50.00")) &&
							len(o.Items) == 1 &&
							o.Items[0].UnitPrice.Equal(decimal.RequireFromString("25.00")) &&
							o.Status == entities.StatusPending
					})).
					Return(entities.PaymentIntent{ID: "INTENT-1", Status: "CREATED"}, nil).Once()
			},
			wantOrders: 1,
		},
		{
			name:         "unknown product",
			identity:     customer,
			cart:         []entities.CartItem{{ProductID: "P1", Quantity: 1}, {ProductID: "UNKNOWN", Quantity: 1}},
			address:      address,
			mockBehavior: func(*mocks.MockGateway) {},
			wantErr: func(t *testing.T, err error) {
				var notFound *entities.LineItemNotFoundError
				require.ErrorAs(t, err, &notFound)
				assert.Equal(t, "UNKNOWN", notFound.ProductID)
			},
		},
		{
			name:         "guest",
			identity:     entities.Identity{},
			cart:         []entities.CartItem{{ProductID: "P1", Quantity: 1}},
			address:      address,
			mockBehavior: func(*mocks.MockGateway) {},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, entities.ErrUnauthenticated)
			},
		},
		{
			name:         "empty cart",
			identity:     customer,
			address:      address,
			mockBehavior: func(*mocks.MockGateway) {},
			wantErr: func(t *testing.T, err error) {
				var ve *entities.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "items", ve.Field)
			},
		},
		{
			name:         "incomplete address",
			identity:     customer,
			cart:         []entities.CartItem{{ProductID: "P1", Quantity: 1}},
			address:      entities.ShippingAddress{FullName: "Ann Lee"},
			mockBehavior: func(*mocks.MockGateway) {},
			wantErr: func(t *testing.T, err error) {
				var ve *entities.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "shippingAddress", ve.Field)
			},
		},
		{
			name:         "failed item insert leaves no order",
			identity:     customer,
			cart:         []entities.CartItem{{ProductID: "P1", Quantity: 1}},
			address:      address,
			saveItemsErr: errDB,
			mockBehavior: func(*mocks.MockGateway) {},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errDB)
			},
		},
		{
			name:         "quantity above limit",
			identity:     customer,
			cart:         []entities.CartItem{{ProductID: "P1", Quantity: 1 << 40}},
			address:      address,
			mockBehavior: func(*mocks.MockGateway) {},
			wantErr: func(t *testing.T, err error) {
				var ve *entities.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "items[0].quantity", ve.Field)
			},
		},
		{
			name:     "transient processor failure is retried",
			identity: customer,
			cart:     []entities.CartItem{{ProductID: "P1", Quantity: 1}},
			address:  address,
			mockBehavior: func(gateway *mocks.MockGateway) {
				gateway.EXPECT().CreateIntent(mock.Anything, mock.Anything).
					Return(entities.PaymentIntent{}, &entities.GatewayError{Op: "create_intent", Status: 503}).Once()
				gateway.EXPECT().CreateIntent(mock.Anything, mock.Anything).
					Return(entities.PaymentIntent{ID: "INTENT-1"}, nil).Once()
			},
			wantOrders: 1,
		},
		{
			name:     "rejected intent keeps order pending",
			identity: customer,
			cart:     []entities.CartItem{{ProductID: "P1", Quantity: 1}},
			address:  address,
			mockBehavior: func(gateway *mocks.MockGateway) {
				gateway.EXPECT().CreateIntent(mock.Anything, mock.Anything).
					Return(entities.PaymentIntent{}, &entities.GatewayError{Op: "create_intent", Status: 400, Body: "bad"}).Once()
			},
			wantErr: func(t *testing.T, err error) {
				var gwErr *entities.GatewayError
				require.ErrorAs(t, err, &gwErr)
				assert.Equal(t, 400, gwErr.Status)
			},
			wantOrders: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv()
			e.catalog = fakeCatalog{"P1": mug()}
			e.ledger.saveItemsErr = tc.saveItemsErr

			gateway := mocks.NewMockGateway(t)
			tc.mockBehavior(gateway)

			intent, err := e.service(gateway).BeginCheckout(context.Background(), tc.identity, tc.cart, tc.address)

			assert.Equal(t, tc.wantOrders, e.ledger.count())
			if tc.wantErr != nil {
				tc.wantErr(t, err)
				if tc.wantOrders == 1 {
					assert.Equal(t, entities.StatusPending, e.ledger.only().Status)
				}
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, intent.ID)

			stored := e.ledger.only()
			require.NotNil(t, stored.OwnerID)
			assert.Equal(t, customer.UserID, *stored.OwnerID)
			assert.Equal(t, entities.StatusPending, stored.Status)
			assert.False(t, stored.IsPaid)
			assert.True(t, stored.TotalAmount.Equal(stored.ItemsTotal()))
			assert.Equal(t, address, stored.ShippingAddress)
		})
	}
}

func pendingOrder() entities.Order {
	owner := customer.UserID
	created := time.Date(2026, 5, 4, 11, 0, 0, 0, time.UTC)
	return entities.Order{
		ID:      "order-1",
		OwnerID: &owner,
		Items: []entities.LineItem{
			{ProductID: "P1", Name: "Mug", UnitPrice: decimal.RequireFromString("25.00"), Quantity: 2},
		},
		TotalAmount:     decimal.RequireFromString("50.00"),
		ShippingAddress: address,
		Status:          entities.StatusPending,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

func completed(orderID string) entities.CaptureResult {
	return entities.CaptureResult{
		IntentID:      "INTENT-1",
		Status:        entities.CaptureStatusCompleted,
		CorrelationID: orderID,
		TransactionID: "TX-1",
		PayerEmail:    "buyer@example.com",
	}
}

func TestOrderService_FinalizeCheckout(t *testing.T) {
	t.Run("completed capture pays the order once", func(t *testing.T) {
		e := newEnv()
		e.ledger.put(pendingOrder())

		gateway := mocks.NewMockGateway(t)
		gateway.EXPECT().CaptureIntent(mock.Anything, "INTENT-1").Return(completed("order-1"), nil).Once()
		again := completed("order-1")
		again.AlreadyCaptured = true
		gateway.EXPECT().CaptureIntent(mock.Anything, "INTENT-1").Return(again, nil).Once()

		svc := e.service(gateway)
		paidAt := e.clock.Now()

		res, err := svc.FinalizeCheckout(context.Background(), "INTENT-1")
		require.NoError(t, err)
		assert.Equal(t, "TX-1", res.TransactionID)

		first, err := e.ledger.GetOrderByID(context.Background(), "order-1")
		require.NoError(t, err)
		assert.Equal(t, entities.StatusPaid, first.Status)
		assert.True(t, first.IsPaid)
		require.NotNil(t, first.PaidAt)
		assert.True(t, paidAt.Equal(*first.PaidAt))
		require.NotNil(t, first.PaymentResult)
		assert.Equal(t, "buyer@example.com", first.PaymentResult.PayerEmail)

		e.clock.Advance(time.Hour)
		res, err = svc.FinalizeCheckout(context.Background(), "INTENT-1")
		require.NoError(t, err)
		assert.True(t, res.AlreadyCaptured)

		second, err := e.ledger.GetOrderByID(context.Background(), "order-1")
		require.NoError(t, err)
		assert.Equal(t, first, second)

		events := e.events.all()
		require.Len(t, events, 1)
		assert.Equal(t, entities.OrderEvent{OrderID: "order-1", From: entities.StatusPending, To: entities.StatusPaid, At: paidAt}, events[0])
	})

	t.Run("non completed capture leaves order untouched", func(t *testing.T) {
		e := newEnv()
		e.ledger.put(pendingOrder())

		pending := completed("order-1")
		pending.Status = "PENDING"
		gateway := mocks.NewMockGateway(t)
		gateway.EXPECT().CaptureIntent(mock.Anything, "INTENT-1").Return(pending, nil).Once()

		res, err := e.service(gateway).FinalizeCheckout(context.Background(), "INTENT-1")
		require.NoError(t, err)
		assert.Equal(t, "PENDING", res.Status)
		assert.Equal(t, pendingOrder(), e.ledger.only())
		assert.Empty(t, e.events.all())
	})

	t.Run("capture failure is not retried", func(t *testing.T) {
		e := newEnv()
		e.ledger.put(pendingOrder())

		gateway := mocks.NewMockGateway(t)
		gateway.EXPECT().CaptureIntent(mock.Anything, "INTENT-1").
			Return(entities.CaptureResult{}, &entities.GatewayError{Op: "capture_intent", Status: 500, Body: "boom"}).Once()

		_, err := e.service(gateway).FinalizeCheckout(context.Background(), "INTENT-1")

		var gwErr *entities.GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, 500, gwErr.Status)
		assert.Equal(t, pendingOrder(), e.ledger.only())
	})

	t.Run("completed capture without order reference", func(t *testing.T) {
		e := newEnv()
		e.ledger.put(pendingOrder())

		gateway := mocks.NewMockGateway(t)
		gateway.EXPECT().CaptureIntent(mock.Anything, "INTENT-1").Return(completed(""), nil).Once()

		res, err := e.service(gateway).FinalizeCheckout(context.Background(), "INTENT-1")

		require.ErrorIs(t, err, entities.ErrUnlinkedCapture)
		var ve *entities.ValidationError
		assert.False(t, errors.As(err, &ve))
		assert.Equal(t, "TX-1", res.TransactionID)
		assert.Equal(t, pendingOrder(), e.ledger.only())
		assert.Empty(t, e.events.all())
	})

	t.Run("blank intent id", func(t *testing.T) {
		e := newEnv()
		gateway := mocks.NewMockGateway(t)

		_, err := e.service(gateway).FinalizeCheckout(context.Background(), "  ")

		var ve *entities.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "intentId", ve.Field)
	})

	t.Run("capture for cancelled order", func(t *testing.T) {
		e := newEnv()
		o := pendingOrder()
		o.Status = entities.StatusCancelled
		e.ledger.put(o)

		gateway := mocks.NewMockGateway(t)
		gateway.EXPECT().CaptureIntent(mock.Anything, "INTENT-1").Return(completed("order-1"), nil).Once()

		_, err := e.service(gateway).FinalizeCheckout(context.Background(), "INTENT-1")

		var ite *entities.InvalidTransitionError
		require.ErrorAs(t, err, &ite)
		assert.Equal(t, entities.StatusCancelled, ite.From)
		assert.Equal(t, entities.StatusPaid, ite.To)
		assert.Equal(t, o, e.ledger.only())
	})
}

func TestOrderService_ConfirmPayment_Concurrent(t *testing.T) {
	e := newEnv()
	e.ledger.put(pendingOrder())
	svc := e.service(mocks.NewMockGateway(t))

	const workers = 16
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = svc.ConfirmPayment(context.Background(), "order-1", completed("order-1"))
		}()
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, fmt.Sprintf("worker %d", i))
	}

	stored := e.ledger.only()
	assert.Equal(t, entities.StatusPaid, stored.Status)
	assert.True(t, stored.IsPaid)
	assert.Len(t, e.events.all(), 1)
}

func TestOrderService_ConfirmPayment(t *testing.T) {
	type MockBehavior func(repo *mocks.MockOrderRepo)

	paid := pendingOrder()
	paid.Status = entities.StatusPaid
	paid.IsPaid = true

	cancelled := pendingOrder()
	cancelled.Status = entities.StatusCancelled

	testCases := []struct {
		name         string
		result       entities.CaptureResult
		mockBehavior MockBehavior
		wantErr      func(t *testing.T, err error)
		wantEvent    bool
	}{
		{
			name:   "OK",
			result: completed("order-1"),
			mockBehavior: func(repo *mocks.MockOrderRepo) {
				repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(pendingOrder(), nil).Once()
				repo.EXPECT().ApplyTransition(mock.Anything, "order-1", mock.Anything, &entities.PaymentResult{
					TransactionID: "TX-1", Status: "COMPLETED", PayerEmail: "buyer@example.com",
				}).Return(nil).Once()
			},
			wantEvent: true,
		},
		{
			name:   "already paid is a no-op",
			result: completed("order-1"),
			mockBehavior: func(repo *mocks.MockOrderRepo) {
				repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(paid, nil).Once()
			},
		},
		{
			name:   "lost race to another capture",
			result: completed("order-1"),
			mockBehavior: func(repo *mocks.MockOrderRepo) {
				repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(pendingOrder(), nil).Once()
				repo.EXPECT().ApplyTransition(mock.Anything, "order-1", mock.Anything, mock.Anything).
					Return(entities.ErrStatusConflict).Once()
				repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(paid, nil).Once()
			},
		},
		{
			name:   "lost race to a cancellation",
			result: completed("order-1"),
			mockBehavior: func(repo *mocks.MockOrderRepo) {
				repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(pendingOrder(), nil).Once()
				repo.EXPECT().ApplyTransition(mock.Anything, "order-1", mock.Anything, mock.Anything).
					Return(entities.ErrStatusConflict).Once()
				repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(cancelled, nil).Once()
			},
			wantErr: func(t *testing.T, err error) {
				var ite *entities.InvalidTransitionError
				require.ErrorAs(t, err, &ite)
				assert.Equal(t, entities.StatusCancelled, ite.From)
			},
		},
		{
			name:   "order not found",
			result: completed("missing"),
			mockBehavior: func(repo *mocks.MockOrderRepo) {
				repo.EXPECT().GetOrderByID(mock.Anything, "missing").Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, entities.ErrOrderNotFound)
			},
		},
		{
			name:   "write fails",
			result: completed("order-1"),
			mockBehavior: func(repo *mocks.MockOrderRepo) {
				repo.EXPECT().GetOrderByID(mock.Anything, "order-1").Return(pendingOrder(), nil).Once()
				repo.EXPECT().ApplyTransition(mock.Anything, "order-1", mock.Anything, mock.Anything).Return(errDB).Once()
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errDB)
			},
		},
		{
			name:         "capture not completed",
			result:       entities.CaptureResult{Status: "DECLINED", CorrelationID: "order-1"},
			mockBehavior: func(*mocks.MockOrderRepo) {},
			wantErr: func(t *testing.T, err error) {
				var ve *entities.ValidationError
				assert.ErrorAs(t, err, &ve)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv()
			repo := mocks.NewMockOrderRepo(t)
			cache := mocks.NewMockCache(t)
			events := mocks.NewMockEventPublisher(t)
			tc.mockBehavior(repo)

			if tc.wantEvent {
				cache.EXPECT().Delete("order-1").Return().Once()
				events.EXPECT().PublishOrderEvent(mock.Anything, mock.MatchedBy(func(ev entities.OrderEvent) bool {
					return ev.OrderID == "order-1" && ev.To == entities.StatusPaid
				})).Return(errDB).Once()
			}

			svc := service.NewOrderService(e.logger, e.ledger, repo, mocks.NewMockPricer(t), mocks.NewMockGateway(t), cache, events,
				service.WithClock(e.clock.Now))

			err := svc.ConfirmPayment(context.Background(), tc.result.CorrelationID, tc.result)
			if tc.wantErr != nil {
				tc.wantErr(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOrderService_BeginCheckout_StorageDown(t *testing.T) {
	e := newEnv()
	e.catalog = fakeCatalog{"P1": mug()}

	txManager := trmmocks.NewMockManager(t)
	txManager.EXPECT().
		Do(mock.Anything, mock.Anything).
		Return(errDB).Times(fastRetry.MaxAttempts)

	svc := service.NewOrderService(e.logger, txManager, e.ledger, pricing.NewReconciler(e.logger, e.catalog),
		mocks.NewMockGateway(t), e.cache, e.events, service.WithRetry(fastRetry, fastRetry))

	_, err := svc.BeginCheckout(context.Background(), customer, []entities.CartItem{{ProductID: "P1", Quantity: 1}}, address)
	assert.ErrorIs(t, err, errDB)
	assert.Zero(t, e.ledger.count())
}

func TestOrderService_BeginCheckout_SaveRetries(t *testing.T) {
	testCases := []struct {
		name         string
		saveItemsErr error
		wantAttempts int
	}{
		{
			name:         "rejected data is not retried",
			saveItemsErr: fmt.Errorf("%w: numeric field overflow", entities.ErrDataRejected),
			wantAttempts: 1,
		},
		{
			name:         "transient failure is retried",
			saveItemsErr: errDB,
			wantAttempts: fastRetry.MaxAttempts,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv()
			e.catalog = fakeCatalog{"P1": mug()}
			e.ledger.saveItemsErr = tc.saveItemsErr

			_, err := e.service(mocks.NewMockGateway(t)).BeginCheckout(context.Background(), customer,
				[]entities.CartItem{{ProductID: "P1", Quantity: 1}}, address)

			assert.ErrorIs(t, err, tc.saveItemsErr)
			assert.Equal(t, tc.wantAttempts, e.ledger.saveAttempts())
			assert.Zero(t, e.ledger.count())
		})
	}
}
