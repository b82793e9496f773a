package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"clothingshop/internal/apierror"
	"clothingshop/internal/dto"
	"clothingshop/internal/model"
	"clothingshop/internal/repository"
	"clothingshop/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService is the reporting and order-administration core: dashboard
// statistics, status distribution, time-bucketed sales trends, the paginated
// order listing, and the one mutation (status update + history append).
type SaleService interface {
	Dashboard(ctx context.Context, start, end *time.Time, period string) (*dto.DashboardResponse, error)
	Statistics(ctx context.Context, start, end *time.Time, period string) (*dto.OrderStatistics, error)
	StatusDistribution(ctx context.Context, start, end *time.Time, period string) ([]dto.StatusCount, error)
	SalesTrend(ctx context.Context, start, end *time.Time, period string) ([]dto.TrendPoint, error)
	ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	RecentOrders(ctx context.Context, count int) ([]dto.OrderListItem, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*dto.OrderDetail, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, req dto.UpdateOrderStatusRequest, actorID *uuid.UUID) error
	ExportRows(ctx context.Context, status string, start, end *time.Time) ([]dto.ExportRow, error)
}

type saleService struct {
	repo       repository.OrderRepository
	dispatcher *worker.Dispatcher
}

func NewSaleService(repo repository.OrderRepository, dispatcher *worker.Dispatcher) SaleService {
	return &saleService{repo: repo, dispatcher: dispatcher}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// resolveWindow fills in missing bounds: a trailing 7-day window for "week",
// the trailing calendar month for "month", and a trailing 30 days otherwise.
func resolveWindow(start, end *time.Time, period string) (time.Time, time.Time) {
	if start != nil && end != nil {
		return *start, *end
	}
	now := time.Now()
	switch period {
	case "week":
		return now.AddDate(0, 0, -7), now
	case "month":
		return now.AddDate(0, -1, 0), now
	default:
		return now.AddDate(0, 0, -30), now
	}
}

// windowEnd extends an end bound to cover the end date's entire calendar day.
func windowEnd(end time.Time) time.Time {
	return end.AddDate(0, 0, 1)
}

// ── Dashboard ────────────────────────────────────────────────────────────────

func (s *saleService) Dashboard(ctx context.Context, start, end *time.Time, period string) (*dto.DashboardResponse, error) {
	from, to := resolveWindow(start, end, period)

	stats, err := s.Statistics(ctx, &from, &to, period)
	if err != nil {
		return nil, err
	}
	recent, err := s.RecentOrders(ctx, 5)
	if err != nil {
		return nil, err
	}
	distribution, err := s.StatusDistribution(ctx, &from, &to, period)
	if err != nil {
		return nil, err
	}
	trend, err := s.SalesTrend(ctx, &from, &to, period)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Period:             period,
		StartDate:          from,
		EndDate:            to,
		Statistics:         stats,
		RecentOrders:       recent,
		StatusDistribution: distribution,
		SalesTrend:         trend,
	}, nil
}

// ── Statistics ───────────────────────────────────────────────────────────────

func (s *saleService) Statistics(ctx context.Context, start, end *time.Time, period string) (*dto.OrderStatistics, error) {
	from, to := resolveWindow(start, end, period)
	upper := windowEnd(to)

	orders, err := s.repo.QueryByWindow(ctx, &from, &upper)
	if err != nil {
		return nil, fmt.Errorf("statistics: query window: %w", err)
	}

	totalSales := decimal.Zero
	var completed, pending, cancelled int64
	for _, o := range orders {
		totalSales = totalSales.Add(o.TotalAmount)
		switch o.Status {
		case model.StatusCompleted:
			completed++
		case model.StatusPending, model.StatusProcessing:
			pending++
		case model.StatusCancelled:
			cancelled++
		}
	}
	totalOrders := int64(len(orders))

	// Comparison window: same duration, ending the day before the current
	// window starts. Its upper bound is NOT extended to end-of-day — this
	// matches the established reporting behavior.
	prevStart := from.Add(-to.Sub(from))
	prevEnd := from.AddDate(0, 0, -1)
	prevOrders, err := s.repo.QueryByWindow(ctx, &prevStart, &prevEnd)
	if err != nil {
		return nil, fmt.Errorf("statistics: query comparison window: %w", err)
	}

	prevSales := decimal.Zero
	for _, o := range prevOrders {
		prevSales = prevSales.Add(o.TotalAmount)
	}
	prevCount := int64(len(prevOrders))

	hundred := decimal.NewFromInt(100)

	// An empty comparison period reports a flat 100% growth, even when the
	// current period is empty too.
	salesGrowth := hundred
	if prevSales.IsPositive() {
		salesGrowth = totalSales.Sub(prevSales).Div(prevSales).Mul(hundred)
	}
	orderGrowth := hundred
	if prevCount > 0 {
		orderGrowth = decimal.NewFromInt(totalOrders - prevCount).Div(decimal.NewFromInt(prevCount)).Mul(hundred)
	}

	avg := decimal.Zero
	if totalOrders > 0 {
		avg = totalSales.Div(decimal.NewFromInt(totalOrders))
	}

	return &dto.OrderStatistics{
		TotalSales:        totalSales,
		TotalOrders:       totalOrders,
		CompletedOrders:   completed,
		PendingOrders:     pending,
		CancelledOrders:   cancelled,
		AverageOrderValue: avg,
		SalesGrowth:       salesGrowth,
		OrderGrowth:       orderGrowth,
	}, nil
}

// ── Status distribution ──────────────────────────────────────────────────────

func (s *saleService) StatusDistribution(ctx context.Context, start, end *time.Time, period string) ([]dto.StatusCount, error) {
	from, to := resolveWindow(start, end, period)
	upper := windowEnd(to)

	orders, err := s.repo.QueryByWindow(ctx, &from, &upper)
	if err != nil {
		return nil, fmt.Errorf("status distribution: %w", err)
	}

	counts := make(map[string]int64)
	for _, o := range orders {
		counts[o.Status]++
	}

	result := make([]dto.StatusCount, 0, len(counts))
	for status, n := range counts {
		result = append(result, dto.StatusCount{Status: status, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Status < result[j].Status })
	return result, nil
}

// ── Sales trend ──────────────────────────────────────────────────────────────

func (s *saleService) SalesTrend(ctx context.Context, start, end *time.Time, period string) ([]dto.TrendPoint, error) {
	from, to := resolveWindow(start, end, period)
	upper := windowEnd(to)

	orders, err := s.repo.QueryByWindow(ctx, &from, &upper)
	if err != nil {
		return nil, fmt.Errorf("sales trend: %w", err)
	}

	buckets := make(map[time.Time]*dto.TrendPoint)

	switch period {
	case "week":
		// One bucket per calendar day.
		for _, o := range orders {
			if o.OrderDate == nil {
				continue
			}
			d := *o.OrderDate
			day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
			b, ok := buckets[day]
			if !ok {
				b = &dto.TrendPoint{Date: day, Sales: decimal.Zero}
				buckets[day] = b
			}
			b.Sales = b.Sales.Add(o.TotalAmount)
			b.OrderCount++
		}
	case "month":
		// One bucket per ISO-8601 week, keyed by the Monday of that week.
		for _, o := range orders {
			if o.OrderDate == nil {
				continue
			}
			isoYear, isoWeek := o.OrderDate.ISOWeek()
			monday := firstDateOfISOWeek(isoYear, isoWeek, o.OrderDate.Location())
			b, ok := buckets[monday]
			if !ok {
				b = &dto.TrendPoint{Date: monday, WeekNumber: isoWeek, Sales: decimal.Zero}
				buckets[monday] = b
			}
			b.Sales = b.Sales.Add(o.TotalAmount)
			b.OrderCount++
		}
	default:
		// Unrecognized period: explicit empty trend, not an error.
		return []dto.TrendPoint{}, nil
	}

	trend := make([]dto.TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		trend = append(trend, *b)
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date.Before(trend[j].Date) })
	return trend, nil
}

// firstDateOfISOWeek returns the Monday of the given ISO-8601 week
// (Monday-starting, first-four-day-week rule). The derivation walks from the
// year's first Thursday: that Thursday anchors week 1, and each week's Monday
// sits 7*week-3 days after it (minus one week when January 1st itself falls
// in week 1). A naive day-of-year/7 shortcut misaligns buckets across year
// boundaries; this form does not.
func firstDateOfISOWeek(year, week int, loc *time.Location) time.Time {
	jan1 := time.Date(year, 1, 1, 0, 0, 0, 0, loc)
	offset := int(time.Thursday) - int(jan1.Weekday())
	firstThursday := jan1.AddDate(0, 0, offset)

	_, firstWeek := firstThursday.ISOWeek()
	if firstWeek <= 1 {
		week--
	}
	return firstThursday.AddDate(0, 0, 7*week-3)
}

// ── Order listing ────────────────────────────────────────────────────────────

func (s *saleService) ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.PageSize <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive", apierror.ErrInvalidArgument)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", apierror.ErrInvalidArgument)
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.SortBy == "" {
		filter.SortBy = "newest"
	}

	orders, total, err := s.repo.QueryAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	statuses, err := s.repo.DistinctStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: statuses: %w", err)
	}

	items := make([]dto.OrderListItem, 0, len(orders))
	for i := range orders {
		items = append(items, orderToListItem(&orders[i]))
	}

	return &dto.OrderListResponse{
		Orders:      items,
		TotalOrders: total,
		Page:        filter.Page,
		PageSize:    filter.PageSize,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.PageSize))),
		Statuses:    statuses,
	}, nil
}

func (s *saleService) RecentOrders(ctx context.Context, count int) ([]dto.OrderListItem, error) {
	orders, err := s.repo.Recent(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	items := make([]dto.OrderListItem, 0, len(orders))
	for i := range orders {
		items = append(items, orderToListItem(&orders[i]))
	}
	return items, nil
}

func (s *saleService) OrderByID(ctx context.Context, id uuid.UUID) (*dto.OrderDetail, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.ErrNotFound
	}
	return orderToDetail(o), nil
}

// ── Status update ────────────────────────────────────────────────────────────

// UpdateOrderStatus sets the order's status (and optionally its notes) and
// appends one immutable history entry. Both writes happen in a single
// transaction: on any failure neither is observable. The caller receives a
// plain error, never a panic from the storage layer.
func (s *saleService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, req dto.UpdateOrderStatusRequest, actorID *uuid.UUID) error {
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		order, err := s.repo.FindByIDTx(tx, orderID)
		if err != nil {
			return apierror.ErrNotFound
		}

		order.Status = req.Status
		if req.Notes != "" {
			notes := req.Notes
			order.Notes = &notes
		}
		if err := s.repo.SaveTx(tx, order); err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		entry := &model.OrderStatusHistory{
			OrderID:   orderID,
			Status:    req.Status,
			UpdatedBy: actorID,
			UpdatedAt: time.Now(),
		}
		if req.Notes != "" {
			notes := req.Notes
			entry.Notes = &notes
		}
		if err := s.repo.AppendStatusHistoryTx(tx, entry); err != nil {
			return fmt.Errorf("append status history: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	// Customer notification is best-effort and happens only after the
	// transaction committed — a queue outage never rolls back the update.
	if s.dispatcher != nil {
		s.enqueueStatusNotification(ctx, orderID, req.Status, req.Notes)
	}
	return nil
}

func (s *saleService) enqueueStatusNotification(ctx context.Context, orderID uuid.UUID, status, notes string) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil || order.User == nil || order.User.Email == "" {
		return
	}
	payload := worker.StatusNotificationPayload{
		OrderID:       orderID.String(),
		CustomerEmail: order.User.Email,
		CustomerName:  order.User.FullName,
		NewStatus:     status,
		Notes:         notes,
	}
	if err := s.dispatcher.EnqueueStatusNotification(ctx, payload); err != nil {
		log.Warn().Err(err).Str("order_id", orderID.String()).Msg("failed to enqueue status notification")
	}
}

// ── Export ───────────────────────────────────────────────────────────────────

func (s *saleService) ExportRows(ctx context.Context, status string, start, end *time.Time) ([]dto.ExportRow, error) {
	orders, err := s.repo.ExportRows(ctx, status, start, end)
	if err != nil {
		return nil, fmt.Errorf("export rows: %w", err)
	}

	rows := make([]dto.ExportRow, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		row := dto.ExportRow{
			OrderID:         o.ID.String(),
			OrderDate:       o.OrderDate,
			Status:          o.Status,
			TotalAmount:     o.TotalAmount,
			CustomerName:    "N/A",
			CustomerPhone:   o.PhoneContact,
			ShippingAddress: o.ShippingAddress,
			PaymentMethod:   "N/A",
			PaymentStatus:   "N/A",
			ItemCount:       len(o.Items),
		}
		if o.User != nil {
			row.CustomerName = o.User.FullName
		}
		if o.Payment != nil {
			row.PaymentMethod = o.Payment.Method
			row.PaymentStatus = o.Payment.PaymentStatus
		}
		if o.Notes != nil {
			row.Notes = *o.Notes
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ── Mapping helpers ──────────────────────────────────────────────────────────

func orderToListItem(o *model.Order) dto.OrderListItem {
	item := dto.OrderListItem{
		ID:              o.ID.String(),
		OrderDate:       o.OrderDate,
		PhoneContact:    o.PhoneContact,
		ShippingAddress: o.ShippingAddress,
		Status:          o.Status,
		TotalAmount:     o.TotalAmount,
		ItemCount:       len(o.Items),
	}
	if o.User != nil {
		item.CustomerName = o.User.FullName
	}
	if o.Payment != nil {
		item.PaymentMethod = o.Payment.Method
	}
	return item
}

func orderToDetail(o *model.Order) *dto.OrderDetail {
	d := &dto.OrderDetail{
		ID:              o.ID.String(),
		OrderDate:       o.OrderDate,
		PhoneContact:    o.PhoneContact,
		ShippingAddress: o.ShippingAddress,
		Status:          o.Status,
		TotalAmount:     o.TotalAmount,
	}
	if o.User != nil {
		d.CustomerName = o.User.FullName
		d.CustomerEmail = o.User.Email
	}
	if o.Payment != nil {
		d.PaymentMethod = o.Payment.Method
		d.PaymentStatus = o.Payment.PaymentStatus
	}
	if o.Notes != nil {
		d.Notes = *o.Notes
	}
	for _, item := range o.Items {
		detail := dto.OrderItemDetail{
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  decimal.Zero,
		}
		if item.Discount != nil {
			detail.Discount = *item.Discount
		}
		if item.Variant != nil {
			detail.Size = item.Variant.Size
			detail.Color = item.Variant.Color
			if item.Variant.Material != nil {
				detail.Material = *item.Variant.Material
			}
			if item.Variant.Product != nil {
				detail.ProductName = item.Variant.Product.Name
			}
		}
		d.Items = append(d.Items, detail)
	}
	for _, h := range o.StatusHistory {
		entry := dto.StatusHistoryEntry{
			Status:    h.Status,
			UpdatedAt: h.UpdatedAt,
		}
		if h.Actor != nil {
			entry.UpdatedBy = h.Actor.FullName
		}
		if h.Notes != nil {
			entry.Notes = *h.Notes
		}
		d.StatusHistory = append(d.StatusHistory, entry)
	}
	return d
}
