package chart

import "wdikit/internal/frame"

// Fixed design constants shared by every chart in an artifact. Not
// configurable per call beyond the documented Params fields.

// palette assigns categorical colors by first-seen category order.
var palette = []string{
	"#1f77b4", // steel blue
	"#ff7f0e", // vibrant orange
	"#2ca02c", // forest green
	"#d62728", // crimson
	"#9467bd", // purple
	"#8c564b", // brown
	"#e377c2", // pink
	"#7f7f7f", // gray
	"#bcbd22", // olive
	"#17becf", // cyan
	"#393b79", // deep blue
	"#e7ba52", // gold
	"#5254a3", // dark purple
	"#8c6d31", // dark olive
	"#d95f0e", // dark orange
}

const (
	fontFamily = "Inter, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif"

	titleFontSize    = 16
	titleFontWeight  = 600
	subtitleFontSize = 13
	subtitleColor    = "#64748b"
	labelFontSize    = 11

	backgroundColor = "#ffffff"
	gridColor       = "#f1f5f9"
	deselectedColor = "#e2e8f0"
	artifactPadding = 20

	defaultPointWidth = 500
	defaultBarWidth   = 450
	defaultHeight     = 400

	pointSize            = 80
	pointOpacity         = 0.75
	pointOpacitySelected = 0.95
	pointOpacityDimmed   = 0.3
	lineStrokeWidth      = 2.5
	linePointSize        = 40
	barOpacity           = 0.9
	barCornerRadius      = 2

	defaultHistogramBins = 30
)

// colorDomain returns the distinct categories of a column in first-seen
// row order, so color meaning stays stable across the charts of one
// artifact built on the same dataset.
func colorDomain(ds *frame.Dataset, column string) []string {
	var domain []string
	seen := make(map[string]bool)
	for i := 0; i < ds.Len(); i++ {
		v, ok := ds.Value(i, column)
		if !ok {
			continue
		}
		s, ok := v.Text()
		if !ok || seen[s] {
			continue
		}
		seen[s] = true
		domain = append(domain, s)
	}
	return domain
}
