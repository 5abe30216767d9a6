package orderrepo

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
//
// Update enforces optimistic concurrency: the aggregate bumps its version
// exactly once per mutation, so the row is updated only where the persisted
// version still equals the pre-mutation version.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with all children to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.ProductionOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves a mutated order to the database.
//
// The order row is updated under a version guard; zero affected rows on an
// existing order means a concurrent writer won and surfaces as a version
// conflict. Children are rewritten wholesale: line items, history and
// issues are small per order, and a rewrite keeps them consistent with the
// aggregate without diffing.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.ProductionOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expectedVersion := dto.Version - 1

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Select("*").Omit("Items", "Deliveries", "Issues").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("orderId", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidError("version",
			errors.New("order was modified concurrently"))
	}

	if err := r.rewriteChildren(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// rewriteChildren replaces the order's child rows with the aggregate's
// current state. Runs inside the unit of work's transaction.
func (r *GormOrderRepository) rewriteChildren(ctx context.Context, dto OrderDTO) error {
	tx := r.db.WithContext(ctx)

	if err := tx.Where("order_id = ?", dto.ID).Delete(&LineItemDTO{}).Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", dto.ID).Delete(&DeliveryEventDTO{}).Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", dto.ID).Delete(&IssueDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Items) > 0 {
		if err := tx.Create(&dto.Items).Error; err != nil {
			return err
		}
	}
	if len(dto.Deliveries) > 0 {
		if err := tx.Create(&dto.Deliveries).Error; err != nil {
			return err
		}
	}
	if len(dto.Issues) > 0 {
		if err := tx.Create(&dto.Issues).Error; err != nil {
			return err
		}
	}

	return nil
}

// Delete removes an order by ID. Child rows go with it through the
// cascading foreign keys.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", id.String())
	}

	return nil
}

// Get retrieves an order by ID, fully hydrated.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.ProductionOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.withChildren(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves orders matching the filter, newest first.
func (r *GormOrderRepository) GetAll(ctx context.Context, filter ports.OrderFilter) ([]*order.ProductionOrder, error) {
	tx := r.withChildren(ctx)

	if filter.OrderType != order.TypeUnknown {
		tx = tx.Where("order_type = ?", filter.OrderType.String())
	}
	if filter.Status != order.StatusUnknown {
		tx = tx.Where("status = ?", filter.Status.String())
	}
	if filter.SupplierID != nil {
		tx = tx.Where("supplier_id = ?", filter.SupplierID.Bytes())
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tx = tx.Where("job_title ILIKE ? OR customer_name ILIKE ?", pattern, pattern)
	}
	if filter.Overdue {
		now := filter.Now
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		tx = tx.Where("status <> ?", order.StatusCompleted.String()).
			Where("estimated_delivery IS NOT NULL").
			Where("estimated_delivery < ?", dayStart)
	}

	var dtos []OrderDTO
	if err := tx.Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetAllNotCompleted retrieves every order that is not yet completed.
func (r *GormOrderRepository) GetAllNotCompleted(ctx context.Context) ([]*order.ProductionOrder, error) {
	var dtos []OrderDTO
	err := r.withChildren(ctx).
		Where("status <> ?", order.StatusCompleted.String()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// withChildren preloads every child association in its stable order.
func (r *GormOrderRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("idx") }).
		Preload("Deliveries", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Deliveries.Lines", func(db *gorm.DB) *gorm.DB { return db.Order("line_index") }).
		Preload("Issues", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Preload("Issues.Resolutions", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}

func (r *GormOrderRepository) toDomainAll(dtos []OrderDTO) ([]*order.ProductionOrder, error) {
	orders := make([]*order.ProductionOrder, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}
