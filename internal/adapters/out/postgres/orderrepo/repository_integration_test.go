package orderrepo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"takeout/internal/adapters/out/postgres/orderrepo"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id int64, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence behavior
// against a real PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	numberSeq  int
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) mustMoney(s string) kernel.Money {
	m, err := kernel.NewMoneyFromString(s)
	suite.Require().NoError(err)
	return m
}

func (suite *OrderRepositoryIntegrationTestSuite) newTestOrder(userID int64, orderTime time.Time) *order.Order {
	suite.numberSeq++
	dishID := int64(11)
	item, err := order.NewItem(&dishID, nil, "Mapo Tofu", "mild", suite.mustMoney("18.00"), 2)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		fmt.Sprintf("test-number-%d", suite.numberSeq),
		userID,
		"Li Si", "13900000000", "2 Spice Alley",
		suite.mustMoney("36.00"),
		"ring the bell",
		orderTime,
		[]order.Item{item},
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) addTestOrder(userID int64, orderTime time.Time) *order.Order {
	aggregate := suite.newTestOrder(userID, orderTime)
	suite.Require().NoError(suite.repository.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_AssignsIDAndPersistsItems() {
	ctx := context.Background()
	aggregate := suite.newTestOrder(7, time.Now())

	err := suite.repository.Add(ctx, aggregate)
	suite.Require().NoError(err)
	suite.Positive(aggregate.ID())

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(aggregate.Number(), loaded.Number())
	suite.Equal(order.PendingPayment, loaded.Status())
	suite.Equal(order.Unpaid, loaded.PayStatus())
	suite.Require().Len(loaded.Items(), 1)
	suite.Equal("Mapo Tofu", loaded.Items()[0].Name())
	suite.Equal(2, loaded.Items()[0].Quantity())
	suite.True(loaded.Amount().IsEqual(suite.mustMoney("36.00")))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), 99999)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumberAndUser_ScopesToOwner() {
	ctx := context.Background()
	aggregate := suite.addTestOrder(7, time.Now())

	loaded, err := suite.repository.GetByNumberAndUser(ctx, aggregate.Number(), 7)
	suite.Require().NoError(err)
	suite.Equal(aggregate.ID(), loaded.ID())

	_, err = suite.repository.GetByNumberAndUser(ctx, aggregate.Number(), 99)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AppliesOnlyPatchedColumns() {
	ctx := context.Background()
	aggregate := suite.addTestOrder(7, time.Now())

	patch, err := aggregate.ConfirmPayment(time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, aggregate.ID(), patch))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.AwaitingConfirmation, loaded.Status())
	suite.Equal(order.Paid, loaded.PayStatus())
	suite.Require().NotNil(loaded.CheckoutTime())

	// The untouched columns keep their stored values.
	suite.Equal("ring the bell", loaded.Remark())
	suite.Equal("Li Si", loaded.Consignee())
	suite.Nil(loaded.CancelTime())
	suite.Empty(loaded.CancelReason())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_EmptyPatchIsNoOp() {
	ctx := context.Background()
	aggregate := suite.addTestOrder(7, time.Now())

	suite.Require().NoError(suite.repository.Update(ctx, aggregate.ID(), order.Patch{}))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PendingPayment, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NotFound() {
	status := order.Cancelled
	err := suite.repository.Update(context.Background(), 99999, order.Patch{Status: &status})
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestList_PagesNewestFirst() {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	var added []*order.Order
	for i := range 5 {
		added = append(added, suite.addTestOrder(7, base.Add(time.Duration(i)*time.Minute)))
	}
	suite.addTestOrder(99, base) // another user, must not appear

	userID := int64(7)
	page1, total, err := suite.repository.List(ctx, ports.OrdersPageQuery{
		UserID: &userID, Page: 1, PageSize: 2,
	})
	suite.Require().NoError(err)
	suite.Equal(int64(5), total)
	suite.Require().Len(page1, 2)
	suite.Equal(added[4].ID(), page1[0].ID())
	suite.Equal(added[3].ID(), page1[1].ID())
	suite.Require().Len(page1[0].Items(), 1)

	page3, total, err := suite.repository.List(ctx, ports.OrdersPageQuery{
		UserID: &userID, Page: 3, PageSize: 2,
	})
	suite.Require().NoError(err)
	suite.Equal(int64(5), total)
	suite.Require().Len(page3, 1)
	suite.Equal(added[0].ID(), page3[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestList_FiltersByStatus() {
	ctx := context.Background()
	aggregate := suite.addTestOrder(7, time.Now())
	suite.addTestOrder(7, time.Now())

	patch, err := aggregate.ConfirmPayment(time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, aggregate.ID(), patch))

	status := order.AwaitingConfirmation
	matches, total, err := suite.repository.List(ctx, ports.OrdersPageQuery{
		Status: &status, Page: 1, PageSize: 10,
	})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(matches, 1)
	suite.Equal(aggregate.ID(), matches[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListOutstanding_RespectsCutoff() {
	ctx := context.Background()
	stale := suite.addTestOrder(7, time.Now().Add(-30*time.Minute))
	suite.addTestOrder(7, time.Now()) // fresh, inside the window

	outstanding, err := suite.repository.ListOutstanding(ctx, order.PendingPayment, time.Now().Add(-15*time.Minute))
	suite.Require().NoError(err)
	suite.Require().Len(outstanding, 1)
	suite.Equal(stale.ID(), outstanding[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountAndSumAmount() {
	ctx := context.Background()
	begin := time.Now().Add(-time.Hour)
	suite.addTestOrder(7, time.Now().Add(-30*time.Minute))
	suite.addTestOrder(8, time.Now().Add(-20*time.Minute))
	suite.addTestOrder(9, time.Now().Add(-2*time.Hour)) // outside the window

	end := time.Now()
	count, err := suite.repository.Count(ctx, ports.OrderStatsQuery{Begin: &begin, End: &end})
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)

	sum, err := suite.repository.SumAmount(ctx, ports.OrderStatsQuery{Begin: &begin, End: &end})
	suite.Require().NoError(err)
	suite.True(sum.IsEqual(suite.mustMoney("72.00")))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSumAmount_EmptyMatchSumsToZero() {
	status := order.Completed
	sum, err := suite.repository.SumAmount(context.Background(), ports.OrderStatsQuery{Status: &status})
	suite.Require().NoError(err)
	suite.True(sum.IsZero())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
