package model

// Dashboard is the aggregate returned by GET /api/dashboard
type Dashboard struct {
	TotalProducts int64           `json:"total_products"`
	LowStock      int64           `json:"low_stock"`
	TodaySales    float64         `json:"today_sales"`
	MonthSales    float64         `json:"month_sales"`
	DailySales    []DailySales    `json:"daily_sales"`
	TopProducts   []TopProduct    `json:"top_products"`
	CategorySales []CategorySales `json:"category_sales"`
}

type DailySales struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}

type TopProduct struct {
	Name string  `json:"name"`
	Sold float64 `json:"sold"`
}

type CategorySales struct {
	Category string  `json:"category"`
	Sales    float64 `json:"sales"`
}
