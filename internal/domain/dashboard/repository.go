package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Stats is the dashboard headline aggregate
type Stats struct {
	TodaySales     float64 `db:"today_sales" json:"today_sales"`
	TodayCount     int     `db:"today_count" json:"today_count"`
	CustomerCount  int     `db:"customer_count" json:"customer_count"`
	LowStockCount  int     `db:"low_stock_count" json:"low_stock_count"`
	MonthlyRevenue float64 `db:"monthly_revenue" json:"monthly_revenue"`
}

// RecentSale is one row of the recent-sales widget
type RecentSale struct {
	ID            string         `db:"id" json:"id"`
	TotalAmount   float64        `db:"total_amount" json:"total_amount"`
	PaymentMethod string         `db:"payment_method" json:"payment_method"`
	CustomerName  sql.NullString `db:"customer_name" json:"-"`
	UserName      sql.NullString `db:"user_name" json:"-"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`

	Customer string `db:"-" json:"customer_name,omitempty"`
	Operator string `db:"-" json:"user_name,omitempty"`
}

// ReportRow is one day of the sales report
type ReportRow struct {
	Day        time.Time `db:"day" json:"day"`
	SalesCount int       `db:"sales_count" json:"sales_count"`
	Total      float64   `db:"total" json:"total"`
	Tax        float64   `db:"tax" json:"tax"`
}

// Repository reads dashboard aggregates
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new dashboard repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetStats aggregates today's completed sales, the customer count,
// products at or under their minimum level and 30-day revenue.
func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.db.GetContext(ctx, &s, `
		SELECT
			COALESCE((SELECT SUM(total_amount) FROM sales
				WHERE status = 'completed' AND created_at >= CURRENT_DATE), 0) AS today_sales,
			COALESCE((SELECT COUNT(*) FROM sales
				WHERE status = 'completed' AND created_at >= CURRENT_DATE), 0) AS today_count,
			(SELECT COUNT(*) FROM customers)                                    AS customer_count,
			(SELECT COUNT(*) FROM products
				WHERE is_active = true AND stock_quantity <= min_stock_level)   AS low_stock_count,
			COALESCE((SELECT SUM(total_amount) FROM sales
				WHERE status = 'completed'
				AND created_at >= CURRENT_DATE - INTERVAL '30 days'), 0)        AS monthly_revenue
	`)
	if err != nil {
		return nil, fmt.Errorf("dashboard repository stats: %w", err)
	}
	return &s, nil
}

// GetRecentSales returns the latest completed sales with names joined
func (r *Repository) GetRecentSales(ctx context.Context, limit int) ([]*RecentSale, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}

	sales := make([]*RecentSale, 0, limit)
	err := r.db.SelectContext(ctx, &sales, `
		SELECT s.id, s.total_amount, s.payment_method, s.created_at,
		       c.name AS customer_name, u.full_name AS user_name
		FROM sales s
		LEFT JOIN customers c ON c.id = s.customer_id
		LEFT JOIN users_profile u ON u.id = s.user_id
		WHERE s.status = 'completed'
		ORDER BY s.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard repository recent sales: %w", err)
	}

	for _, s := range sales {
		s.Customer = s.CustomerName.String
		s.Operator = s.UserName.String
	}
	return sales, nil
}

// GetSalesReport returns per-day totals for completed sales in [from, to]
func (r *Repository) GetSalesReport(ctx context.Context, from, to time.Time) ([]*ReportRow, error) {
	rows := make([]*ReportRow, 0)
	err := r.db.SelectContext(ctx, &rows, `
		SELECT DATE_TRUNC('day', created_at)  AS day,
		       COUNT(*)                       AS sales_count,
		       COALESCE(SUM(total_amount), 0) AS total,
		       COALESCE(SUM(tax_amount), 0)   AS tax
		FROM sales
		WHERE status = 'completed'
		  AND created_at >= $1
		  AND created_at < ($2::date + INTERVAL '1 day')
		GROUP BY 1
		ORDER BY 1
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("dashboard repository sales report: %w", err)
	}
	return rows, nil
}
