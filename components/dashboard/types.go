package dashboard

import "context"

// Authorizer determines if a viewer can see a widget.
type Authorizer interface {
	CanViewWidget(ctx context.Context, viewer ViewerContext, def WidgetDefinition) bool
}

// ProviderRegistry stores widget definitions/providers discoverable via hooks.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (WidgetDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions() []WidgetDefinition
}

// IconName references a lucide icon by name.
type IconName string

const (
	IconClock         IconName = "clock"
	IconTrendingUp    IconName = "trending-up"
	IconAlertTriangle IconName = "alert-triangle"
	IconPackage       IconName = "package"
)

// Widget kinds drive which template block renders a widget.
const (
	KindMetrics   = "metrics"
	KindChart     = "chart"
	KindScorecard = "scorecard"
)

// Metric is a single KPI card (icon, title, value, description).
type Metric struct {
	Title       string   `json:"title" yaml:"title"`
	Value       string   `json:"value" yaml:"value"`
	Icon        IconName `json:"icon" yaml:"icon"`
	Description string   `json:"description" yaml:"description"`
}

// DeliveryRatePoint is one bar of the delivery rate chart.
type DeliveryRatePoint struct {
	Days string  `json:"days" yaml:"days"`
	Rate float64 `json:"rate" yaml:"rate"`
}

// DeliveryStatusSlice is one wedge of the delivery status pie.
type DeliveryStatusSlice struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Color string  `json:"color" yaml:"color"`
}

// GaugeSlice is one wedge of the on-time gauge. Gauges always carry a
// Score and a Remaining slice, see GaugeSlices.
type GaugeSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// ScorecardCell is a labeled value in the shipment scorecard.
type ScorecardCell struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Data is everything the dashboard renders. DefaultData returns the
// built-in sample values.
type Data struct {
	Title          string                `json:"title" yaml:"title"`
	Metrics        []Metric              `json:"metrics" yaml:"metrics"`
	DeliveryRates  []DeliveryRatePoint   `json:"delivery_rates" yaml:"delivery_rates"`
	DeliveryStatus []DeliveryStatusSlice `json:"delivery_status" yaml:"delivery_status"`
	OnTimeScore    int                   `json:"on_time_score" yaml:"on_time_score"`
}

// Clone returns a deep copy. Nil and empty slices are preserved as such.
func (d Data) Clone() Data {
	out := d
	if d.Metrics != nil {
		out.Metrics = append([]Metric{}, d.Metrics...)
	}
	if d.DeliveryRates != nil {
		out.DeliveryRates = append([]DeliveryRatePoint{}, d.DeliveryRates...)
	}
	if d.DeliveryStatus != nil {
		out.DeliveryStatus = append([]DeliveryStatusSlice{}, d.DeliveryStatus...)
	}
	return out
}

// WidgetAreaDefinition models a dashboard area and the widgets it holds, in order.
type WidgetAreaDefinition struct {
	Code    string
	Name    string
	Grid    string
	Widgets []string
}

// WidgetDefinition describes a widget the registry knows how to render.
type WidgetDefinition struct {
	Code          string            `json:"code" yaml:"code"`
	Name          string            `json:"name" yaml:"name"`
	NameLocalized map[string]string `json:"name_localized,omitempty" yaml:"name_localized,omitempty"`
	Description   string            `json:"description,omitempty" yaml:"description,omitempty"`
	Category      string            `json:"category,omitempty" yaml:"category,omitempty"`
	Kind          string            `json:"kind" yaml:"kind"`
}

// ViewerContext captures the active user/locale information needed to render dashboards.
type ViewerContext struct {
	UserID string
	Locale string
}

// View is the resolved dashboard: page chrome plus widgets per area.
type View struct {
	Title        string   `json:"title"`
	Theme        string   `json:"theme"`
	CSSVariables string   `json:"css_variables,omitempty"`
	Scripts      []string `json:"scripts,omitempty"`
	Areas        []Area   `json:"areas"`
}

// Area is a rendered dashboard area.
type Area struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Grid    string   `json:"grid,omitempty"`
	Widgets []Widget `json:"widgets"`
}

// Widget is a rendered widget with the payload its provider returned.
type Widget struct {
	ID    string     `json:"id"`
	Code  string     `json:"code"`
	Kind  string     `json:"kind"`
	Title string     `json:"title"`
	Data  WidgetData `json:"data,omitempty"`
	Error string     `json:"error,omitempty"`
}

// Area returns the area with the given code.
func (v View) Area(code string) (Area, bool) {
	for _, area := range v.Areas {
		if area.Code == code {
			return area, true
		}
	}
	return Area{}, false
}

// Widget returns the first widget with the given code across all areas.
func (v View) Widget(code string) (Widget, bool) {
	for _, area := range v.Areas {
		for _, w := range area.Widgets {
			if w.Code == code {
				return w, true
			}
		}
	}
	return Widget{}, false
}
