package dashboard

import (
	"sort"
	"strings"
)

// Fixed visual tokens.
const (
	ColorGreen = "#22c55e"
	ColorAmber = "#eab308"
	ColorRed   = "#ef4444"
	ColorBlue  = "#3b82f6"
	ColorGray  = "#e5e7eb"
	ColorNavy  = "#1e3a8a"
)

const cssVariablePrefix = "--delivery-"

// ThemeResolver selects a chart theme per viewer.
type ThemeResolver func(ViewerContext) string

// Palette maps token names to colors.
type Palette map[string]string

// DefaultPalette returns the dashboard color tokens.
func DefaultPalette() Palette {
	return Palette{
		"green": ColorGreen,
		"amber": ColorAmber,
		"red":   ColorRed,
		"blue":  ColorBlue,
		"gray":  ColorGray,
		"navy":  ColorNavy,
	}
}

// CSSVariables normalizes token keys into CSS variable names.
func (p Palette) CSSVariables() map[string]string {
	if len(p) == 0 {
		return nil
	}
	vars := make(map[string]string, len(p))
	for key, value := range p {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variable map as a style string, sorted by name.
func (p Palette) CSSVariablesInline() string {
	vars := p.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		value := vars[key]
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return cssVariablePrefix + name
}
