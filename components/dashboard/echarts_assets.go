package dashboard

import (
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	// DefaultEChartsCDN is where go-echarts loads echarts.min.js and theme scripts from.
	DefaultEChartsCDN = "https://go-echarts.github.io/go-echarts-assets/assets/"
	// envEChartsCDN overrides the default assets host (e.g., to point at a self-hosted bucket).
	envEChartsCDN = "DELIVERY_DASHBOARD_ECHARTS_CDN"
)

// DefaultEChartsAssetsHost returns the default assets host, respecting DELIVERY_DASHBOARD_ECHARTS_CDN if set.
func DefaultEChartsAssetsHost() string {
	if host := strings.TrimSpace(os.Getenv(envEChartsCDN)); host != "" {
		return ensureTrailingSlash(host)
	}
	return DefaultEChartsCDN
}

// EChartsRuntimeURL returns the runtime script URL for a given host.
func EChartsRuntimeURL(host string) string {
	if host == "" {
		host = DefaultEChartsAssetsHost()
	}
	return ensureTrailingSlash(host) + opts.EchartsJS
}

func ensureTrailingSlash(value string) string {
	if value == "" {
		return ""
	}
	if strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
