package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Named relative reporting periods.
const (
	PeriodAll        = "all"
	PeriodLastMonth  = "last_month"
	PeriodThisMonth  = "this_month"
	PeriodLast30Days = "last_30_days"
)

const dateLayout = "2006-01-02"

// SalesFilter selects the time window for sales history. An explicit
// start/end date takes precedence over the named period; with neither
// set the full history is returned.
type SalesFilter struct {
	Period    string
	StartDate string
	EndDate   string
}

// SaleRecord is a sales history row joined with merchandise and consumer
// attributes. Sales recorded under the legacy schema have no consumer;
// those come back with a nil ConsumerID and an empty ConsumerName.
type SaleRecord struct {
	ID              uint      `json:"id"`
	MerchandiseID   uint      `json:"merchandise_id"`
	MerchandiseName string    `json:"merchandise_name"`
	ConsumerID      *uint     `json:"consumer_id"`
	ConsumerName    string    `json:"consumer_name"`
	QuantitySold    int       `json:"quantity_sold"`
	UnitPrice       float64   `json:"unit_price"`
	TotalPrice      float64   `json:"total_price"`
	SaleDate        time.Time `json:"sale_date"`
}

// ListSales returns the filtered sales history, newest first. now anchors
// the relative periods so reports are reproducible in tests.
func ListSales(db *gorm.DB, filter SalesFilter, now time.Time) ([]SaleRecord, error) {
	start, end, err := resolveWindow(filter, now)
	if err != nil {
		return nil, err
	}

	query := db.Table("sales").
		Select("sales.id, sales.merchandise_id, merchandise.name AS merchandise_name, "+
			"sales.consumer_id, COALESCE(consumers.name, '') AS consumer_name, "+
			"sales.quantity_sold, sales.unit_price, sales.total_price, sales.sale_date").
		Joins("LEFT JOIN merchandise ON merchandise.id = sales.merchandise_id").
		Joins("LEFT JOIN consumers ON consumers.id = sales.consumer_id").
		Order("sales.sale_date DESC")

	if start != nil {
		query = query.Where("sales.sale_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("sales.sale_date < ?", *end)
	}

	var records []SaleRecord
	if err := query.Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// resolveWindow turns a filter into a [start, end) interval. A nil bound
// leaves that side open. Explicit dates cover full calendar days, so the
// end bound is the first instant of the following day.
func resolveWindow(filter SalesFilter, now time.Time) (*time.Time, *time.Time, error) {
	if filter.StartDate != "" || filter.EndDate != "" {
		var start, end *time.Time
		if filter.StartDate != "" {
			t, err := time.ParseInLocation(dateLayout, filter.StartDate, now.Location())
			if err != nil {
				return nil, nil, fmt.Errorf("%w: malformed start_date %q", ErrInvalidArgument, filter.StartDate)
			}
			start = &t
		}
		if filter.EndDate != "" {
			t, err := time.ParseInLocation(dateLayout, filter.EndDate, now.Location())
			if err != nil {
				return nil, nil, fmt.Errorf("%w: malformed end_date %q", ErrInvalidArgument, filter.EndDate)
			}
			e := t.AddDate(0, 0, 1)
			end = &e
		}
		return start, end, nil
	}

	switch filter.Period {
	case "", PeriodAll:
		return nil, nil, nil
	case PeriodThisMonth:
		start := firstOfMonth(now)
		return &start, nil, nil
	case PeriodLastMonth:
		end := firstOfMonth(now)
		start := end.AddDate(0, -1, 0)
		return &start, &end, nil
	case PeriodLast30Days:
		start := now.AddDate(0, 0, -30)
		return &start, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown period %q", ErrInvalidArgument, filter.Period)
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
