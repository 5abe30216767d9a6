package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "production/internal/adapters/out/postgres"
	"production/internal/adapters/out/postgres/orderrepo"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&orderrepo.DeliveryEventDTO{},
		&orderrepo.DeliveryLineDTO{},
		&orderrepo.IssueDTO{},
		&orderrepo.ResolutionDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, delivery_events, delivery_event_lines, issues, issue_resolutions CASCADE",
	).Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.ProductionOrder {
	item, err := order.NewLineItem(0, 8, "pcs", "", "", "doors")
	suite.Require().NoError(err)

	aggregate, err := order.NewProductionOrder(
		kernel.NewUUID(), kernel.NewUUID(), "Hotel lobby doors", "Grandstay Hotels",
		kernel.NewUUID(), "Carpentry",
		order.TypeInternal, nil, "",
		[]*order.LineItem{item}, nil, "", time.Now(),
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) orderCount() int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	return count
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrder() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder()))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(int64(1), suite.orderCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrder() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder()))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(int64(0), suite.orderCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_Fails() {
	uow := suite.factory.Create()
	suite.Require().Error(uow.Commit(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackWithoutBegin_Fails() {
	uow := suite.factory.Create()
	suite.Require().Error(uow.Rollback(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDoubleBegin_IsSafe() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDeliveryWorkflow_CommitsAtomically() {
	ctx := context.Background()
	aggregate := suite.newOrder()

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(setup.Commit(ctx))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	repo := uow.OrderRepository()
	loaded, err := repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	line, err := order.NewDeliveryLine(0, 8, order.IssueTypeUnknown, 0, "")
	suite.Require().NoError(err)
	event, err := order.NewDeliveryEvent(time.Now(), "", []order.DeliveryLine{line})
	suite.Require().NoError(err)
	_, err = loaded.RecordDelivery(event)
	suite.Require().NoError(err)

	suite.Require().NoError(repo.Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()
	final, err := verify.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusCompleted, final.Status())
	suite.Equal(int64(2), final.Version())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestWorkflowRollback_LeavesOrderUntouched() {
	ctx := context.Background()
	aggregate := suite.newOrder()

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(setup.Commit(ctx))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	repo := uow.OrderRepository()
	loaded, err := repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	line, err := order.NewDeliveryLine(0, 3, order.IssueTypeUnknown, 0, "")
	suite.Require().NoError(err)
	event, err := order.NewDeliveryEvent(time.Now(), "", []order.DeliveryLine{line})
	suite.Require().NoError(err)
	_, err = loaded.RecordDelivery(event)
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Update(ctx, loaded))

	suite.Require().NoError(uow.Rollback(ctx))

	verify := suite.factory.Create()
	final, err := verify.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusPending, final.Status())
	suite.Equal(int64(1), final.Version())
	suite.Empty(final.Deliveries())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
