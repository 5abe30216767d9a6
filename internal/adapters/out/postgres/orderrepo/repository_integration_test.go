package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"production/internal/adapters/out/postgres/orderrepo"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for the
// order repository using PostgreSQL containers, covering full-aggregate
// round trips, optimistic concurrency and filtered listing.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&orderrepo.DeliveryEventDTO{},
		&orderrepo.DeliveryLineDTO{},
		&orderrepo.IssueDTO{},
		&orderrepo.ResolutionDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, delivery_events, delivery_event_lines, issues, issue_resolutions CASCADE",
	).Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.ProductionOrder {
	item1, err := order.NewLineItem(0, 10, "pcs", "", "", "frames")
	suite.Require().NoError(err)
	item2, err := order.NewLineItem(1, 6, "m²", "tempered", "4+16+4", "")
	suite.Require().NoError(err)

	supplierID := kernel.NewUUID()
	due := time.Now().AddDate(0, 0, 7)
	aggregate, err := order.NewProductionOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		"Villa Aurora windows", "Aurora Construction",
		kernel.NewUUID(), "Glazing",
		order.TypeGlass, &supplierID, "ClearView Glass",
		[]*order.LineItem{item1, item2},
		&due, "rush order", time.Now(),
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_And_Get_RoundTrip() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(aggregate.JobTitle(), loaded.JobTitle())
	suite.Equal(aggregate.CustomerName(), loaded.CustomerName())
	suite.Equal(order.TypeGlass, loaded.OrderType())
	suite.Equal(order.StatusPending, loaded.Status())
	suite.Equal(int64(1), loaded.Version())
	suite.Require().Len(loaded.Items(), 2)
	suite.Equal("m²", loaded.Items()[1].Unit())
	suite.Equal("tempered", loaded.Items()[1].GlassType())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_UnknownID_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsDeliveryAndIssues() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	line, err := order.NewDeliveryLine(0, 4, order.IssueTypeBroken, 2, "two frames bent")
	suite.Require().NoError(err)
	event, err := order.NewDeliveryEvent(time.Now(), "first truck", []order.DeliveryLine{line})
	suite.Require().NoError(err)
	spawned, err := aggregate.RecordDelivery(event)
	suite.Require().NoError(err)
	suite.Require().Len(spawned, 1)

	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusPartial, loaded.Status())
	suite.Equal(int64(2), loaded.Version())
	suite.Equal(4, loaded.Items()[0].ReceivedQty())
	suite.Require().Len(loaded.Deliveries(), 1)
	suite.Equal("first truck", loaded.Deliveries()[0].Note())
	suite.Require().Len(loaded.Issues(), 1)
	suite.True(loaded.Issues()[0].IsPending())
	suite.Equal(order.IssueTypeBroken, loaded.Issues()[0].IssueType())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsResolutionChain() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	line, err := order.NewDeliveryLine(0, 0, order.IssueTypeWrong, 3, "wrong profile")
	suite.Require().NoError(err)
	event, err := order.NewDeliveryEvent(time.Now(), "", []order.DeliveryLine{line})
	suite.Require().NoError(err)
	spawned, err := aggregate.RecordDelivery(event)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	child, err := aggregate.ResolveIssue(
		spawned[0].ID(), time.Now(), order.ResolutionReplaced, 3, "reordered",
		1, order.IssueTypeWrong, "still wrong profile",
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().Len(loaded.Issues(), 2)

	parent, err := loaded.IssueByID(spawned[0].ID())
	suite.Require().NoError(err)
	suite.Equal(order.IssueStatusResolved, parent.Status())
	suite.Require().Len(parent.History(), 1)
	suite.Equal(order.ResolutionReplaced, parent.History()[0].Resolution())

	loadedChild, err := loaded.IssueByID(child.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(loadedChild.ParentIssueID())
	suite.True(loadedChild.ParentIssueID().IsEqual(spawned[0].ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_Conflict() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	first, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	deliver := func(target *order.ProductionOrder, qty int) {
		line, lErr := order.NewDeliveryLine(0, qty, order.IssueTypeUnknown, 0, "")
		suite.Require().NoError(lErr)
		event, eErr := order.NewDeliveryEvent(time.Now(), "", []order.DeliveryLine{line})
		suite.Require().NoError(eErr)
		_, dErr := target.RecordDelivery(event)
		suite.Require().NoError(dErr)
	}

	deliver(first, 2)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	deliver(second, 3)
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder_NotFound() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()

	line, err := order.NewDeliveryLine(0, 1, order.IssueTypeUnknown, 0, "")
	suite.Require().NoError(err)
	event, err := order.NewDeliveryEvent(time.Now(), "", []order.DeliveryLine{line})
	suite.Require().NoError(err)
	_, err = aggregate.RecordDelivery(event)
	suite.Require().NoError(err)

	err = suite.repository.Update(ctx, aggregate)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_RemovesOrderAndChildren() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(suite.repository.Delete(ctx, aggregate.ID()))

	_, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var itemCount int64
	suite.Require().NoError(suite.db.Table("order_items").Count(&itemCount).Error)
	suite.Equal(int64(0), itemCount)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAll_Filters() {
	ctx := context.Background()
	glass := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, glass))

	item, err := order.NewLineItem(0, 3, "set", "", "", "cabinet doors")
	suite.Require().NoError(err)
	internal, err := order.NewProductionOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		"Harbor office fit-out", "Harborside LLC",
		kernel.NewUUID(), "Carpentry",
		order.TypeInternal, nil, "",
		[]*order.LineItem{item}, nil, "", time.Now(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, internal))

	byType, err := suite.repository.GetAll(ctx, ports.OrderFilter{OrderType: order.TypeGlass})
	suite.Require().NoError(err)
	suite.Require().Len(byType, 1)
	suite.True(byType[0].ID().IsEqual(glass.ID()))

	bySearch, err := suite.repository.GetAll(ctx, ports.OrderFilter{Search: "harbor"})
	suite.Require().NoError(err)
	suite.Require().Len(bySearch, 1)
	suite.True(bySearch[0].ID().IsEqual(internal.ID()))

	all, err := suite.repository.GetAll(ctx, ports.OrderFilter{})
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllNotCompleted_ExcludesCompleted() {
	ctx := context.Background()

	item, err := order.NewLineItem(0, 2, "pcs", "", "", "")
	suite.Require().NoError(err)
	small, err := order.NewProductionOrder(
		kernel.NewUUID(), kernel.NewUUID(), "Kiosk roof", "Parkside Cafe",
		kernel.NewUUID(), "Roofing",
		order.TypeInternal, nil, "",
		[]*order.LineItem{item}, nil, "", time.Now(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, small))

	line, err := order.NewDeliveryLine(0, 2, order.IssueTypeUnknown, 0, "")
	suite.Require().NoError(err)
	event, err := order.NewDeliveryEvent(time.Now(), "", []order.DeliveryLine{line})
	suite.Require().NoError(err)
	_, err = small.RecordDelivery(event)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, small))

	pending := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	notCompleted, err := suite.repository.GetAllNotCompleted(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(notCompleted, 1)
	suite.True(notCompleted[0].ID().IsEqual(pending.ID()))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
