package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// storedOrder builds an internal order with one ten-piece line, standing in
// for an aggregate loaded from the repository.
func storedOrder(t *testing.T) *order.ProductionOrder {
	t.Helper()
	item, err := order.NewLineItem(0, 10, "pcs", "", "", "")
	require.NoError(t, err)

	o, err := order.NewProductionOrder(
		kernel.NewUUID(), kernel.NewUUID(), "Harbor office fit-out", "Harborside LLC",
		kernel.NewUUID(), "Carpentry",
		order.TypeInternal, nil, "",
		[]*order.LineItem{item}, nil, "", time.Now(),
	)
	require.NoError(t, err)
	return o
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.ProductionOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.ProductionOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.ProductionOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ProductionOrder), args.Error(1)
}

func (m *MockOrderRepository) GetAll(_ context.Context, _ ports.OrderFilter) ([]*order.ProductionOrder, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) GetAllNotCompleted(_ context.Context) ([]*order.ProductionOrder, error) {
	return nil, errors.New("not implemented in mock")
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

type MockJobProvider struct{ mock.Mock }

func (m *MockJobProvider) GetJob(ctx context.Context, id kernel.UUID) (ports.Job, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Job), args.Error(1)
}

type MockSupplierProvider struct{ mock.Mock }

func (m *MockSupplierProvider) GetSupplier(ctx context.Context, id kernel.UUID) (ports.Supplier, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Supplier), args.Error(1)
}

type MockRoleProvider struct{ mock.Mock }

func (m *MockRoleProvider) GetRole(ctx context.Context, id kernel.UUID) (ports.Role, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Role), args.Error(1)
}
