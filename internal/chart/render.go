package chart

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fogleman/gg"

	"github.com/esabling477/sura-trading/internal/market"
	"github.com/esabling477/sura-trading/pkg/format"
	"github.com/esabling477/sura-trading/pkg/metrics"
)

// Kind selects the chart style.
type Kind string

const (
	KindCandlestick Kind = "candlestick"
	KindLine        Kind = "line"
)

// Pointer is a hover position in chart pixel coordinates.
type Pointer struct {
	X float64
	Y float64
}

// Theme holds the chart palette.
type Theme struct {
	Name          string
	Background    string
	Grid          string
	Text          string
	Up            string
	Down          string
	Line          string
	Area          string
	Crosshair     string
	TooltipBG     string
	TooltipBorder string
}

var (
	DarkTheme = Theme{
		Name:          "dark",
		Background:    "#1e222d",
		Grid:          "#2a2e39",
		Text:          "#9ca3af",
		Up:            "#10b981",
		Down:          "#ef4444",
		Line:          "#3b82f6",
		Area:          "#3b82f61a",
		Crosshair:     "#9ca3af",
		TooltipBG:     "#1f2937",
		TooltipBorder: "#374151",
	}

	LightTheme = Theme{
		Name:          "light",
		Background:    "#ffffff",
		Grid:          "#e5e7eb",
		Text:          "#6b7280",
		Up:            "#10b981",
		Down:          "#ef4444",
		Line:          "#3b82f6",
		Area:          "#3b82f61a",
		Crosshair:     "#6b7280",
		TooltipBG:     "#f9fafb",
		TooltipBorder: "#d1d5db",
	}
)

// ThemeByName resolves "light" to the light palette and everything else to
// dark, the dashboard default.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme
	}
	return DarkTheme
}

const (
	candlePadding = 60
	linePadding   = 40
)

// Renderer draws series to PNG images.
type Renderer struct {
	theme Theme
}

func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

// Render draws the series in the requested style and encodes it as PNG.
// hover, when non-nil, adds the crosshair and tooltip overlay if the
// position falls inside the plot area.
func (r *Renderer) Render(kind Kind, points []Point, symbol string, width, height int, hover *Pointer) ([]byte, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("cannot render empty series for %s", symbol)
	}

	start := time.Now()
	var buf bytes.Buffer
	var err error

	switch kind {
	case KindLine:
		err = r.renderLine(&buf, points, symbol, width, height, hover)
	default:
		kind = KindCandlestick
		err = r.renderCandlestick(&buf, points, symbol, width, height, hover)
	}
	if err != nil {
		return nil, err
	}

	metrics.RecordChartRender("terminal", string(kind), time.Since(start))
	return buf.Bytes(), nil
}

func (r *Renderer) renderCandlestick(buf *bytes.Buffer, points []Point, symbol string, width, height int, hover *Pointer) error {
	layout := Layout{Width: float64(width), Height: float64(height), Padding: candlePadding, N: len(points)}

	min, max := points[0].Low, points[0].High
	for _, p := range points {
		if p.Low < min {
			min = p.Low
		}
		if p.High > max {
			max = p.High
		}
	}
	priceRange := max - min

	dc := gg.NewContext(width, height)
	dc.SetHexColor(r.theme.Background)
	dc.Clear()

	r.drawGrid(dc, layout, min, priceRange, symbol, 8, 10, true)
	r.drawTimeLabels(dc, layout, points)

	candleW := layout.PlotWidth() / float64(len(points)) * 0.7
	if candleW < 1 {
		candleW = 1
	}

	for i, p := range points {
		x := layout.X(i)
		yOpen := layout.Y(p.Open, min, priceRange)
		yClose := layout.Y(p.Close, min, priceRange)
		yHigh := layout.Y(p.High, min, priceRange)
		yLow := layout.Y(p.Low, min, priceRange)

		color := r.theme.Up
		if p.Close < p.Open {
			color = r.theme.Down
		}
		dc.SetHexColor(color)

		// Wick
		dc.SetLineWidth(1)
		dc.DrawLine(x, yHigh, x, yLow)
		dc.Stroke()

		// Body; a body under one pixel tall is a doji and draws as a bar.
		top, bottom := yClose, yOpen
		if top > bottom {
			top, bottom = bottom, top
		}
		if bottom-top < 1 {
			dc.DrawLine(x-candleW/2, top, x+candleW/2, top)
			dc.Stroke()
		} else {
			dc.DrawRectangle(x-candleW/2, top, candleW, bottom-top)
			dc.Fill()
		}
	}

	if hover != nil {
		r.drawHover(dc, layout, points, symbol, *hover)
	}

	return dc.EncodePNG(buf)
}

func (r *Renderer) renderLine(buf *bytes.Buffer, points []Point, symbol string, width, height int, hover *Pointer) error {
	layout := Layout{Width: float64(width), Height: float64(height), Padding: linePadding, N: len(points)}

	min, max := points[0].Close, points[0].Close
	for _, p := range points {
		if p.Close < min {
			min = p.Close
		}
		if p.Close > max {
			max = p.Close
		}
	}
	priceRange := max - min

	dc := gg.NewContext(width, height)
	dc.SetHexColor(r.theme.Background)
	dc.Clear()

	r.drawGrid(dc, layout, min, priceRange, symbol, 5, 6, false)
	r.drawTimeLabels(dc, layout, points)

	dc.SetHexColor(r.theme.Line)
	dc.SetLineWidth(2)
	for i, p := range points {
		x := layout.X(i)
		y := layout.Y(p.Close, min, priceRange)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()

	// Area fill under the line down to the baseline.
	dc.SetHexColor(r.theme.Area)
	for i, p := range points {
		x := layout.X(i)
		y := layout.Y(p.Close, min, priceRange)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.LineTo(layout.Width-layout.Padding, layout.Height-layout.Padding)
	dc.LineTo(layout.Padding, layout.Height-layout.Padding)
	dc.ClosePath()
	dc.Fill()

	if hover != nil {
		r.drawHover(dc, layout, points, symbol, *hover)
	}

	return dc.EncodePNG(buf)
}

// drawGrid draws rows horizontal gridlines with a price axis, and cols
// vertical gridlines. Candlesticks label prices on the right edge, the line
// variant on the left.
func (r *Renderer) drawGrid(dc *gg.Context, layout Layout, min, priceRange float64, symbol string, rows, cols int, labelsRight bool) {
	dc.SetLineWidth(1)

	for i := 0; i <= rows; i++ {
		y := layout.Padding + float64(i)/float64(rows)*layout.PlotHeight()
		dc.SetHexColor(r.theme.Grid)
		dc.DrawLine(layout.Padding, y, layout.Width-layout.Padding, y)
		dc.Stroke()

		price := min + priceRange*(1-float64(i)/float64(rows))
		dc.SetHexColor(r.theme.Text)
		if labelsRight {
			dc.DrawStringAnchored(priceLabel(price, symbol), layout.Width-layout.Padding+5, y, 0, 0.35)
		} else {
			dc.DrawStringAnchored(priceLabel(price, symbol), layout.Padding-6, y, 1, 0.35)
		}
	}

	for i := 0; i <= cols; i++ {
		x := layout.Padding + float64(i)/float64(cols)*layout.PlotWidth()
		dc.SetHexColor(r.theme.Grid)
		dc.DrawLine(x, layout.Padding, x, layout.Height-layout.Padding)
		dc.Stroke()
	}
}

func (r *Renderer) drawTimeLabels(dc *gg.Context, layout Layout, points []Point) {
	step := len(points) / 6
	if step < 1 {
		step = 1
	}

	dc.SetHexColor(r.theme.Text)
	for i := 0; i < len(points); i += step {
		x := layout.X(i)
		dc.DrawStringAnchored(points[i].Time.Format("Jan 2"), x, layout.Height-layout.Padding+14, 0.5, 0.5)
	}
}

func (r *Renderer) drawHover(dc *gg.Context, layout Layout, points []Point, symbol string, hover Pointer) {
	view := NewView(layout)
	view.PointerMove(hover.X, hover.Y)
	idx, ok := view.Hovered()
	if !ok {
		return
	}
	p := points[idx]
	x := layout.X(idx)

	// Crosshair: vertical at the snapped candle, horizontal at the pointer.
	dc.SetHexColor(r.theme.Crosshair)
	dc.SetLineWidth(1)
	dc.SetDash(3, 3)
	dc.DrawLine(x, layout.Padding, x, layout.Height-layout.Padding)
	dc.Stroke()
	dc.DrawLine(layout.Padding, hover.Y, layout.Width-layout.Padding, hover.Y)
	dc.Stroke()
	dc.SetDash()

	tx, ty := layout.TooltipOrigin(hover.X, hover.Y)
	dc.SetHexColor(r.theme.TooltipBG)
	dc.DrawRectangle(tx, ty, TooltipWidth, TooltipHeight)
	dc.Fill()
	dc.SetHexColor(r.theme.TooltipBorder)
	dc.DrawRectangle(tx, ty, TooltipWidth, TooltipHeight)
	dc.Stroke()

	dc.SetHexColor(r.theme.Text)
	for i, line := range tooltipLines(p, symbol) {
		dc.DrawString(line, tx+8, ty+16+float64(i)*16)
	}
}

// tooltipLines builds the three hover tooltip rows: price, date, volume.
func tooltipLines(p Point, symbol string) []string {
	return []string{
		"Price: " + priceLabel(p.Close, symbol),
		"Date: " + p.Time.Format("Jan 2, 2006"),
		"Volume: " + format.FormatVolume(int64(p.Volume)),
	}
}

// priceLabel formats an axis or tooltip price: pairs print plain with four
// decimals, everything else as dollars with two.
func priceLabel(v float64, symbol string) string {
	if market.IsPair(symbol) {
		return fmt.Sprintf("%.4f", v)
	}
	return fmt.Sprintf("$%.2f", v)
}
