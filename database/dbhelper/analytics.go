package dbhelper

import (
	"time"

	"github.com/quikbite/quikbite/database"
)

type CategoryPopularity struct {
	Category    string  `db:"category" json:"category"`
	OrdersCount int     `db:"orders_count" json:"orders_count"`
	Revenue     float64 `db:"revenue" json:"revenue"`
}

// CategoryPopularityReport groups order items by menu item category over an
// inclusive creation-date range. Counts are distinct orders; revenue is the
// snapshot line totals. Items without a category are left out.
func CategoryPopularityReport(from, to *time.Time) ([]CategoryPopularity, error) {
	var report []CategoryPopularity
	err := database.QuikBite.Select(&report, `
		SELECT c.name AS category,
			COUNT(DISTINCT o.id) AS orders_count,
			COALESCE(SUM(oi.unit_price * oi.quantity), 0) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		JOIN categories c ON c.id = mi.category_id
		WHERE ($1::timestamptz IS NULL OR o.created_at >= $1)
			AND ($2::timestamptz IS NULL OR o.created_at <= $2)
		GROUP BY c.name
		ORDER BY orders_count DESC, revenue DESC`, from, to)
	return report, err
}
