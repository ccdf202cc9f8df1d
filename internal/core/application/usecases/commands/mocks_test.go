package commands_test

import (
	"context"
	"testing"
	"time"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/address"
	"takeout/internal/core/domain/model/cart"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/domain/model/profile"
	"takeout/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, id int64, patch order.Patch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumberAndUser(ctx context.Context, number string, userID int64) (*order.Order, error) {
	args := m.Called(ctx, number, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, query ports.OrdersPageQuery) ([]*order.Order, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) ListOutstanding(ctx context.Context, status order.Status, before time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, status, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, query ports.OrderStatsQuery) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) SumAmount(ctx context.Context, query ports.OrderStatsQuery) (kernel.Money, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(kernel.Money), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) ListByUser(ctx context.Context, userID int64) ([]cart.Entry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Entry), args.Error(1)
}

func (m *MockCartRepository) DeleteByUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockAddressRepository struct{ mock.Mock }

func (m *MockAddressRepository) Get(ctx context.Context, id int64) (*address.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Entry), args.Error(1)
}

type MockProfileRepository struct{ mock.Mock }

func (m *MockProfileRepository) Get(ctx context.Context, userID int64) (*profile.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSubmitUoW struct{ MockOrderUoW }

func (m *MockSubmitUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

func (m *MockSubmitUoW) AddressRepository() ports.AddressRepository {
	args := m.Called()
	return args.Get(0).(ports.AddressRepository)
}

type MockSubmitUoWFactory struct{ mock.Mock }

func (m *MockSubmitUoWFactory) Create() commands.SubmitUoW {
	args := m.Called()
	return args.Get(0).(commands.SubmitUoW)
}

type MockPaymentUoW struct{ MockOrderUoW }

func (m *MockPaymentUoW) ProfileRepository() ports.ProfileRepository {
	args := m.Called()
	return args.Get(0).(ports.ProfileRepository)
}

type MockPaymentUoWFactory struct{ mock.Mock }

func (m *MockPaymentUoWFactory) Create() commands.PaymentUoW {
	args := m.Called()
	return args.Get(0).(commands.PaymentUoW)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Prepay(ctx context.Context, req ports.PrepayRequest) (*ports.PaymentIntent, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PaymentIntent), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, req ports.RefundRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockNotificationPublisher struct{ mock.Mock }

func (m *MockNotificationPublisher) Broadcast(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// StubLocker records lock acquisitions; the locks themselves are no-ops since
// handler tests are single-goroutine.
type StubLocker struct{ lockedIDs []int64 }

func (l *StubLocker) Lock(orderID int64) func() {
	l.lockedIDs = append(l.lockedIDs, orderID)
	return func() {}
}

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func testItems(t *testing.T) []order.Item {
	t.Helper()
	dishID := int64(11)
	item, err := order.NewItem(&dishID, nil, "Kung Pao Chicken", "extra spicy", mustMoney(t, "28.50"), 2)
	require.NoError(t, err)
	return []order.Item{item}
}

func restoreTestOrder(t *testing.T, id int64, status order.Status, payStatus order.PayStatus) *order.Order {
	t.Helper()
	aggregate, err := order.RestoreOrder(order.RestoreParams{
		ID:        id,
		Number:    "17230000000000001",
		UserID:    7,
		Consignee: "Zhang San",
		Phone:     "13800000000",
		Address:   "1 Food Street",
		Amount:    mustMoney(t, "57.00"),
		Status:    status,
		PayStatus: payStatus,
		OrderTime: time.Now().Add(-10 * time.Minute),
		Items:     testItems(t),
	})
	require.NoError(t, err)
	return aggregate
}
