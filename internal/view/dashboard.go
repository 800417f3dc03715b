package view

import (
	"strconv"

	"go-store-console/internal/model"
)

const (
	ChartSales    = "salesChart"
	ChartProducts = "productsChart"
	ChartCategory = "categoryChart"
)

type StatCards struct {
	TotalProducts string `json:"total_products"`
	LowStock      string `json:"low_stock"`
	TodaySales    string `json:"today_sales"`
	MonthSales    string `json:"month_sales"`
}

type Dataset struct {
	Label            string    `json:"label,omitempty"`
	Data             []float64 `json:"data"`
	BorderColor      string    `json:"border_color,omitempty"`
	BackgroundColors []string  `json:"background_colors,omitempty"`
	Fill             bool      `json:"fill,omitempty"`
	Tension          float64   `json:"tension,omitempty"`
}

// Chart is a precomputed series for the chart library. It is replaced, never updated, on reload.
type Chart struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Labels      []string  `json:"labels"`
	Datasets    []Dataset `json:"datasets"`
	BeginAtZero bool      `json:"begin_at_zero"`
	MoneyTicks  bool      `json:"money_ticks"`
	// LegendPosition is empty when the legend is hidden.
	LegendPosition string `json:"legend_position,omitempty"`
}

type DashboardView struct {
	Stats  StatCards        `json:"stats"`
	Charts map[string]Chart `json:"charts"`
}

var (
	barPalette      = []string{"#667eea", "#764ba2", "#f093fb", "#f5576c", "#4facfe"}
	doughnutPalette = []string{"#667eea", "#764ba2", "#f093fb", "#f5576c", "#4facfe", "#43e97b"}
)

func BuildDashboard(d model.Dashboard) DashboardView {
	return DashboardView{
		Stats: StatCards{
			TotalProducts: strconv.FormatInt(d.TotalProducts, 10),
			LowStock:      strconv.FormatInt(d.LowStock, 10),
			TodaySales:    Money(d.TodaySales),
			MonthSales:    Money(d.MonthSales),
		},
		Charts: BuildCharts(d),
	}
}

// BuildCharts returns a fresh chart registry for d.
func BuildCharts(d model.Dashboard) map[string]Chart {
	return map[string]Chart{
		ChartSales:    salesChart(d.DailySales),
		ChartProducts: productsChart(d.TopProducts),
		ChartCategory: categoryChart(d.CategorySales),
	}
}

func salesChart(daily []model.DailySales) Chart {
	labels := make([]string, 0, len(daily))
	data := make([]float64, 0, len(daily))
	for _, s := range daily {
		labels = append(labels, Date(s.Date))
		data = append(data, s.Sales)
	}
	return Chart{
		ID:     ChartSales,
		Type:   "line",
		Labels: labels,
		Datasets: []Dataset{{
			Label:            "Daily Sales",
			Data:             data,
			BorderColor:      "#667eea",
			BackgroundColors: []string{"rgba(102, 126, 234, 0.1)"},
			Fill:             true,
			Tension:          0.4,
		}},
		BeginAtZero: true,
		MoneyTicks:  true,
	}
}

func productsChart(top []model.TopProduct) Chart {
	labels := make([]string, 0, len(top))
	data := make([]float64, 0, len(top))
	for _, p := range top {
		labels = append(labels, p.Name)
		data = append(data, p.Sold)
	}
	return Chart{
		ID:     ChartProducts,
		Type:   "bar",
		Labels: labels,
		Datasets: []Dataset{{
			Label:            "Units Sold",
			Data:             data,
			BackgroundColors: barPalette,
		}},
		BeginAtZero: true,
	}
}

func categoryChart(categories []model.CategorySales) Chart {
	labels := make([]string, 0, len(categories))
	data := make([]float64, 0, len(categories))
	for _, c := range categories {
		labels = append(labels, c.Category)
		data = append(data, c.Sales)
	}
	return Chart{
		ID:             ChartCategory,
		Type:           "doughnut",
		Labels:         labels,
		Datasets:       []Dataset{{Data: data, BackgroundColors: doughnutPalette}},
		LegendPosition: "bottom",
	}
}
