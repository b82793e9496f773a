package repository

import (
	"context"
	"time"

	"clothingshop/internal/dto"
	"clothingshop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository defines the data access contract for orders. Services
// depend on this interface, not on the concrete GORM implementation, enabling
// clean unit testing via in-memory stubs.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// QueryByWindow returns orders whose OrderDate lies in [start, end], both
	// bounds inclusive and literal; a nil bound is unbounded. Callers own any
	// end-of-day extension. Rows with a NULL OrderDate match only when both
	// bounds are nil.
	QueryByWindow(ctx context.Context, start, end *time.Time) ([]model.Order, error)

	// QueryAll applies search/status/date filters, sorting and pagination,
	// returning the page slice plus the pre-pagination match count. The
	// filter's EndDate is extended to the end of its calendar day here. Search
	// is a substring match whose case sensitivity follows the database
	// collation.
	QueryAll(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)

	// DistinctStatuses lists every status value present across all orders,
	// unscoped by any filter.
	DistinctStatuses(ctx context.Context) ([]string, error)

	Recent(ctx context.Context, count int) ([]model.Order, error)

	// ExportRows returns the flat export projection, newest first.
	ExportRows(ctx context.Context, status string, start, end *time.Time) ([]model.Order, error)

	// Used inside transactions — callers must pass the tx instance. SaveTx and
	// AppendStatusHistoryTx are contractually invocable within one atomic unit.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Order, error)
	SaveTx(tx *gorm.DB, o *model.Order) error
	AppendStatusHistoryTx(tx *gorm.DB, h *model.OrderStatusHistory) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

// normalizeStatus maps a missing status to the literal "Unknown" so the
// null-check never leaks into the aggregation layer.
func normalizeStatus(orders []model.Order) {
	for i := range orders {
		if orders[i].Status == "" {
			orders[i].Status = model.StatusUnknown
		}
	}
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Payment").
		Preload("Items.Variant").
		Preload("Items.Variant.Product").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("updated_at ASC") }).
		Preload("StatusHistory.Actor").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	if o.Status == "" {
		o.Status = model.StatusUnknown
	}
	return &o, nil
}

func (r *orderRepo) QueryByWindow(ctx context.Context, start, end *time.Time) ([]model.Order, error) {
	var orders []model.Order
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if start != nil {
		q = q.Where("order_date >= ?", *start)
	}
	if end != nil {
		q = q.Where("order_date <= ?", *end)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	normalizeStatus(orders)
	return orders, nil
}

func (r *orderRepo) QueryAll(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Order{}).
		Joins("LEFT JOIN users ON users.id = orders.user_id")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where(
			"CAST(orders.id AS TEXT) LIKE ? OR users.full_name LIKE ? OR orders.shipping_address LIKE ? OR orders.phone_contact LIKE ?",
			like, like, like, like,
		)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("orders.status = ?", filter.Status)
	}
	if filter.StartDate != nil {
		q = q.Where("orders.order_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("orders.order_date <= ?", filter.EndDate.AddDate(0, 0, 1))
	}

	switch filter.SortBy {
	case "oldest":
		q = q.Order("orders.order_date ASC")
	case "highest":
		q = q.Order("orders.total_amount DESC")
	case "lowest":
		q = q.Order("orders.total_amount ASC")
	default: // newest
		q = q.Order("orders.order_date DESC")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	err := q.Preload("User").Preload("Payment").Preload("Items").
		Offset(offset).Limit(filter.PageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	normalizeStatus(orders)
	return orders, total, nil
}

func (r *orderRepo) DistinctStatuses(ctx context.Context) ([]string, error) {
	var statuses []string
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status IS NOT NULL").
		Distinct().Pluck("status", &statuses).Error
	return statuses, err
}

func (r *orderRepo) Recent(ctx context.Context, count int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("User").Preload("Payment").Preload("Items").
		Order("order_date DESC").
		Limit(count).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	normalizeStatus(orders)
	return orders, nil
}

func (r *orderRepo) ExportRows(ctx context.Context, status string, start, end *time.Time) ([]model.Order, error) {
	var orders []model.Order
	q := r.db.WithContext(ctx).Model(&model.Order{}).
		Preload("User").Preload("Payment").Preload("Items")

	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}
	if start != nil {
		q = q.Where("order_date >= ?", *start)
	}
	if end != nil {
		// To the last instant of the end date's calendar day.
		q = q.Where("order_date < ?", end.AddDate(0, 0, 1))
	}

	err := q.Order("order_date DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	normalizeStatus(orders)
	return orders, nil
}

func (r *orderRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	if err := tx.First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) SaveTx(tx *gorm.DB, o *model.Order) error {
	return tx.Save(o).Error
}

func (r *orderRepo) AppendStatusHistoryTx(tx *gorm.DB, h *model.OrderStatusHistory) error {
	return tx.Create(h).Error
}
