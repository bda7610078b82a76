package model

// Read models for the dashboard aggregations. These are computed by the
// repositories with plain GROUP BY queries; nothing here is persisted.

// AdminMetrics is the admin dashboard summary.
type AdminMetrics struct {
	TotalVendors    int             `json:"total_vendors"`
	VendorsByStatus map[string]int  `json:"vendors_by_status"`
	TotalProducts   int             `json:"total_products"`
	TotalRevenue    float64         `json:"total_revenue"`
	OrdersByStatus  map[string]int  `json:"orders_by_status"`
	TopProducts     []TopProduct    `json:"top_products"`
	CategoryShares  []CategorySales `json:"category_shares"`
}

// VendorMetrics is the vendor dashboard summary, scoped to one vendor.
type VendorMetrics struct {
	Revenue        float64        `json:"revenue"`
	OrdersByStatus map[string]int `json:"orders_by_status"`
	ActiveProducts int            `json:"active_products"`
	LowStock       []Product      `json:"low_stock"`
}

// TopProduct ranks products by quantity sold.
type TopProduct struct {
	ProductID string  `json:"product_id" db:"product_id"`
	Name      string  `json:"name"       db:"name"`
	Sold      int     `json:"sold"       db:"sold"`
	Revenue   float64 `json:"revenue"    db:"revenue"`
}

// CategorySales is revenue grouped by category.
type CategorySales struct {
	CategoryID string  `json:"category_id" db:"category_id"`
	Name       string  `json:"name"        db:"name"`
	Revenue    float64 `json:"revenue"     db:"revenue"`
}
