package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ettle/strcase"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Chart types rendered by EChartsProvider.
const (
	ChartBar   = "bar"
	ChartPie   = "pie"
	ChartGauge = "gauge"
)

const (
	defaultChartHeight = "256px"
	defaultChartWidth  = "100%"

	pieOuterRadius   = 80
	gaugeInnerRadius = 60
	gaugeOuterRadius = 100

	deliveryRateSeries   = "Delivery Rate (%)"
	deliveryStatusSeries = "Delivery Status"
	onTimeSeries         = "On-Time Delivery"

	pieLabelFormat types.FuncStr = "{b}: {c}%"
)

const defaultCacheTTL = 5 * time.Minute

// sharedChartCache backs providers used outside a Service.
var sharedChartCache = NewChartCache(defaultCacheTTL)

type chartRenderContext struct {
	ChartID    string
	Theme      string
	AssetsHost string
}

// ChartSnippet is a chart rendered for embedding in a page: the container
// element, the init script, the raw option JSON and the JS assets it needs.
type ChartSnippet struct {
	ID      string   `json:"id"`
	Element string   `json:"element"`
	Script  string   `json:"script"`
	Option  string   `json:"option"`
	Assets  []string `json:"assets,omitempty"`
}

// EChartsProvider renders server-side chart markup for one of the dashboard charts.
type EChartsProvider struct {
	chartType     string
	cache         RenderCache
	theme         string
	themeResolver ThemeResolver
	assetsHost    string
}

// EChartsProviderOption customizes provider behavior.
type EChartsProviderOption func(*EChartsProvider)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.cache = cache
	}
}

// WithChartTheme pins a static theme, overriding the service theme.
func WithChartTheme(theme string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.theme = theme
	}
}

// WithChartThemeResolver resolves themes dynamically per viewer.
func WithChartThemeResolver(resolver ThemeResolver) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.themeResolver = resolver
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) EChartsProviderOption {
	return func(p *EChartsProvider) {
		p.assetsHost = ensureTrailingSlash(host)
	}
}

// NewEChartsProvider builds a provider for a specific chart type.
func NewEChartsProvider(chartType string, opts ...EChartsProviderOption) *EChartsProvider {
	p := &EChartsProvider{
		chartType: strings.ToLower(chartType),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch converts the dashboard data into go-echarts markup.
func (p *EChartsProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	renderCtx := chartRenderContext{
		ChartID:    chartID(meta.Definition.Code),
		Theme:      p.resolveTheme(meta),
		AssetsHost: p.resolveAssetsHost(meta),
	}
	cache := p.resolveCache(meta)

	data := WidgetData{
		dataKeyChartType: p.chartType,
		dataKeyTheme:     renderCtx.Theme,
	}

	var (
		source   any
		renderFn func() (ChartSnippet, error)
	)

	switch p.chartType {
	case ChartBar:
		points := append([]DeliveryRatePoint(nil), meta.Data.DeliveryRates...)
		series := translateOrFallback(ctx, meta.Translator, "dashboard.chart.delivery_rate.series", meta.Viewer.Locale, deliveryRateSeries, nil)
		days := p.translateLabels(ctx, meta, rateLabels(points))
		data[dataKeyPoints] = points
		source = []any{series, days, points}
		renderFn = func() (ChartSnippet, error) {
			bar := newDeliveryRateBar(series, days, points, renderCtx)
			return snippetOf(renderCtx.ChartID, bar, &bar.Assets)
		}
	case ChartPie:
		slices := append([]DeliveryStatusSlice(nil), meta.Data.DeliveryStatus...)
		names := p.translateLabels(ctx, meta, statusLabels(slices))
		data[dataKeySlices] = slices
		source = []any{names, slices}
		renderFn = func() (ChartSnippet, error) {
			pie := newDeliveryStatusPie(names, slices, renderCtx)
			return snippetOf(renderCtx.ChartID, pie, &pie.Assets)
		}
	case ChartGauge:
		score := ClampScore(meta.Data.OnTimeScore)
		slices := GaugeSlices(score)
		data[dataKeyScore] = score
		data[dataKeySlices] = slices
		source = slices
		renderFn = func() (ChartSnippet, error) {
			gauge := newOnTimeGauge(score, slices, renderCtx)
			return snippetOf(renderCtx.ChartID, gauge, &gauge.Assets)
		}
	default:
		return nil, fmt.Errorf("unsupported chart type: %s", p.chartType)
	}

	var (
		snippet ChartSnippet
		err     error
	)
	if cache != nil {
		// source holds the translated labels, so the locale is implied by the hash.
		key := fmt.Sprintf("%s:%s:%s:%s:%s",
			meta.Definition.Code, p.chartType, renderCtx.Theme, renderCtx.AssetsHost, configHash(source))
		snippet, err = cache.GetOrRender(key, renderFn)
	} else {
		snippet, err = renderFn()
	}
	if err != nil {
		return nil, err
	}
	data[dataKeyChart] = snippet
	return data, nil
}

func newDeliveryRateBar(series string, days []string, points []DeliveryRatePoint, ctx chartRenderContext) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalChartOptions(ctx),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{SplitLine: gridLines()}),
		charts.WithYAxisOpts(opts.YAxis{SplitLine: gridLines()}),
	)...)
	bar.SetXAxis(days)

	items := make([]opts.BarData, len(points))
	for i, point := range points {
		items[i] = opts.BarData{Name: days[i], Value: point.Rate}
	}
	bar.AddSeries(series, items, charts.WithItemStyleOpts(opts.ItemStyle{Color: ColorBlue}))
	return bar
}

func newDeliveryStatusPie(names []string, slices []DeliveryStatusSlice, ctx chartRenderContext) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(append(globalChartOptions(ctx),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
	)...)

	items := make([]opts.PieData, len(slices))
	for i, slice := range slices {
		name := names[i]
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		items[i] = opts.PieData{
			Name:      name,
			Value:     slice.Value,
			ItemStyle: &opts.ItemStyle{Color: slice.Color},
		}
	}
	pie.AddSeries(deliveryStatusSeries, items,
		charts.WithPieChartOpts(opts.PieChart{
			Radius: pieOuterRadius,
			Center: []string{"50%", "50%"},
		}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: pieLabelFormat}),
	)
	return pie
}

func newOnTimeGauge(score int, slices []GaugeSlice, ctx chartRenderContext) *charts.Pie {
	gauge := charts.NewPie()
	gauge.SetGlobalOptions(append(globalChartOptions(ctx),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(false)}),
		charts.WithTitleOpts(opts.Title{
			Title:  fmt.Sprintf("%d%%", score),
			Left:   "center",
			Bottom: "0",
			TitleStyle: &opts.TextStyle{
				Color:      ColorNavy,
				FontWeight: "bold",
				FontSize:   24,
			},
		}),
	)...)

	items := make([]opts.PieData, len(slices))
	for i, slice := range slices {
		items[i] = opts.PieData{
			Name:      slice.Name,
			Value:     slice.Value,
			ItemStyle: &opts.ItemStyle{Color: slice.Color},
		}
	}
	gauge.AddSeries(onTimeSeries, items,
		charts.WithPieChartOpts(opts.PieChart{
			Radius: []int{gaugeInnerRadius, gaugeOuterRadius},
			Center: []string{"50%", "100%"},
		}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		charts.WithSeriesOpts(func(s *charts.SingleSeries) {
			s.StartAngle = 180
			// 360 normalizes to 0; a literal 0 would be dropped by omitempty.
			s.EndAngle = 360
		}),
	)
	return gauge
}

func globalChartOptions(ctx chartRenderContext) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		ChartID: ctx.ChartID,
		Theme:   ctx.Theme,
		Width:   defaultChartWidth,
		Height:  defaultChartHeight,
	}
	initOpts.AssetsHost = ctx.AssetsHost
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	}
}

func gridLines() *opts.SplitLine {
	return &opts.SplitLine{
		Show:      opts.Bool(true),
		LineStyle: &opts.LineStyle{Type: "dashed"},
	}
}

type snippetRenderer interface {
	RenderSnippet() render.ChartSnippet
}

func snippetOf(id string, chart snippetRenderer, assets *opts.Assets) (snippet ChartSnippet, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dashboard: render chart %s: %v", id, r)
		}
	}()
	out := chart.RenderSnippet()
	snippet = ChartSnippet{
		ID:      id,
		Element: out.Element,
		Script:  out.Script,
		Option:  strings.TrimSpace(out.Option),
	}
	if assets != nil {
		snippet.Assets = append([]string(nil), assets.JSAssets.Values...)
	}
	return snippet, nil
}

func (p *EChartsProvider) resolveTheme(meta WidgetContext) string {
	if p.themeResolver != nil {
		if theme := p.themeResolver(meta.Viewer); theme != "" {
			return theme
		}
	}
	if p.theme != "" {
		return p.theme
	}
	if meta.Theme != "" {
		return meta.Theme
	}
	return defaultChartTheme
}

func (p *EChartsProvider) resolveAssetsHost(meta WidgetContext) string {
	if p.assetsHost != "" {
		return p.assetsHost
	}
	if meta.AssetsHost != "" {
		return ensureTrailingSlash(meta.AssetsHost)
	}
	return DefaultEChartsAssetsHost()
}

func (p *EChartsProvider) resolveCache(meta WidgetContext) RenderCache {
	if p.cache != nil {
		return p.cache
	}
	if meta.Cache != nil {
		return meta.Cache
	}
	return sharedChartCache
}

func (p *EChartsProvider) translateLabels(ctx context.Context, meta WidgetContext, labels []string) []string {
	if meta.Translator == nil || len(labels) == 0 {
		return labels
	}
	out := make([]string, len(labels))
	for i, label := range labels {
		out[i] = translateOrFallback(ctx, meta.Translator, label, meta.Viewer.Locale, label, nil)
	}
	return out
}

func rateLabels(points []DeliveryRatePoint) []string {
	out := make([]string, len(points))
	for i, point := range points {
		out[i] = point.Days
	}
	return out
}

func statusLabels(slices []DeliveryStatusSlice) []string {
	out := make([]string, len(slices))
	for i, slice := range slices {
		out[i] = slice.Name
	}
	return out
}

// chartID derives a stable DOM/JS identifier from a widget code.
func chartID(code string) string {
	return "chart_" + strcase.ToSnake(code)
}
