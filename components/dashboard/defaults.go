package dashboard

// Widget codes.
const (
	WidgetMetrics        = "delivery.widget.metrics"
	WidgetDeliveryRate   = "delivery.widget.delivery_rate"
	WidgetDeliveryStatus = "delivery.widget.delivery_status"
	WidgetScorecard      = "delivery.widget.scorecard"
	WidgetOnTimeGauge    = "delivery.widget.on_time_gauge"
)

// Area codes.
const (
	AreaMetrics = "delivery.dashboard.metrics"
	AreaCharts  = "delivery.dashboard.charts"
)

const (
	defaultTitle      = "Delivery Performance Dashboard"
	defaultScore      = 85
	defaultChartTheme = "white"

	metricsGrid = "grid grid-cols-1 md:grid-cols-2 lg:grid-cols-4 gap-4"
	chartsGrid  = "grid grid-cols-1 md:grid-cols-2 gap-4"
)

var defaultMetrics = []Metric{
	{Title: "Order Processing Time", Value: "24hrs", Icon: IconClock, Description: "Average time from order receipt to dispatch"},
	{Title: "Order Accuracy Rate", Value: "98.5%", Icon: IconTrendingUp, Description: "Total orders without complaints"},
	{Title: "Back Order Rate", Value: "3.2%", Icon: IconAlertTriangle, Description: "Sales return percentage"},
	{Title: "Avg Delivery Time", Value: "15 days", Icon: IconPackage, Description: "Average time from dispatch to delivery"},
}

var defaultDeliveryRates = []DeliveryRatePoint{
	{Days: "0-3", Rate: 27},
	{Days: "4-7", Rate: 30},
	{Days: "8-12", Rate: 40},
}

var defaultDeliveryStatus = []DeliveryStatusSlice{
	{Name: "On Time", Value: 65, Color: ColorGreen},
	{Name: "Delayed", Value: 20, Color: ColorAmber},
	{Name: "Late", Value: 15, Color: ColorRed},
}

var scorecardCells = []ScorecardCell{
	{Label: "Average Delivery Time", Value: "15 days"},
	{Label: "Shipment Delay Rate", Value: "5.2%"},
}

var defaultAreaDefinitions = []WidgetAreaDefinition{
	{
		Code:    AreaMetrics,
		Name:    "Key Metrics",
		Widgets: []string{WidgetMetrics},
	},
	{
		Code: AreaCharts,
		Name: "Charts",
		Grid: chartsGrid,
		Widgets: []string{
			WidgetDeliveryRate,
			WidgetDeliveryStatus,
			WidgetScorecard,
			WidgetOnTimeGauge,
		},
	},
}

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Code:        WidgetMetrics,
		Name:        "Key Metrics",
		Description: "Order processing and delivery KPIs",
		Category:    "stats",
		Kind:        KindMetrics,
	},
	{
		Code: WidgetDeliveryRate,
		Name: "Delivery Rate Distribution",
		NameLocalized: map[string]string{
			"es": "Distribución de la tasa de entrega",
		},
		Description: "Delivery rate per days-to-deliver bucket",
		Category:    "charts",
		Kind:        KindChart,
	},
	{
		Code: WidgetDeliveryStatus,
		Name: "Delivery Status Distribution",
		NameLocalized: map[string]string{
			"es": "Distribución del estado de entrega",
		},
		Description: "Share of on time, delayed and late deliveries",
		Category:    "charts",
		Kind:        KindChart,
	},
	{
		Code:        WidgetScorecard,
		Name:        "Shipment Performance Scorecard",
		Description: "Average delivery time and shipment delay rate",
		Category:    "stats",
		Kind:        KindScorecard,
	},
	{
		Code: WidgetOnTimeGauge,
		Name: "On-Time Delivery Performance",
		NameLocalized: map[string]string{
			"es": "Rendimiento de entregas a tiempo",
		},
		Description: "On-time delivery score against its remainder",
		Category:    "charts",
		Kind:        KindChart,
	},
}

// DefaultData returns a copy of the built-in sample data.
func DefaultData() Data {
	return Data{
		Title:          defaultTitle,
		Metrics:        DefaultMetrics(),
		DeliveryRates:  DefaultDeliveryRates(),
		DeliveryStatus: DefaultDeliveryStatus(),
		OnTimeScore:    defaultScore,
	}
}

// DefaultMetrics returns copies of the built-in KPI cards.
func DefaultMetrics() []Metric {
	out := make([]Metric, len(defaultMetrics))
	copy(out, defaultMetrics)
	return out
}

// DefaultDeliveryRates returns copies of the built-in delivery rate points.
func DefaultDeliveryRates() []DeliveryRatePoint {
	out := make([]DeliveryRatePoint, len(defaultDeliveryRates))
	copy(out, defaultDeliveryRates)
	return out
}

// DefaultDeliveryStatus returns copies of the built-in delivery status slices.
func DefaultDeliveryStatus() []DeliveryStatusSlice {
	out := make([]DeliveryStatusSlice, len(defaultDeliveryStatus))
	copy(out, defaultDeliveryStatus)
	return out
}

// ScorecardCells returns the fixed scorecard cells.
func ScorecardCells() []ScorecardCell {
	out := make([]ScorecardCell, len(scorecardCells))
	copy(out, scorecardCells)
	return out
}

// DefaultAreaDefinitions returns copies of built-in area definitions.
func DefaultAreaDefinitions() []WidgetAreaDefinition {
	out := make([]WidgetAreaDefinition, len(defaultAreaDefinitions))
	for i, area := range defaultAreaDefinitions {
		area.Widgets = append([]string(nil), area.Widgets...)
		out[i] = area
	}
	return out
}

// DefaultWidgetDefinitions returns copies of built-in widget definitions.
func DefaultWidgetDefinitions() []WidgetDefinition {
	out := make([]WidgetDefinition, len(defaultWidgetDefinitions))
	for i, def := range defaultWidgetDefinitions {
		if def.NameLocalized != nil {
			names := make(map[string]string, len(def.NameLocalized))
			for locale, name := range def.NameLocalized {
				names[locale] = name
			}
			def.NameLocalized = names
		}
		out[i] = def
	}
	return out
}
