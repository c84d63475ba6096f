// Package scene holds the four visualization scenes of the story. Every
// scene is a pure function of the dataset: building a view recomputes the
// scales from the live data extents and fully replaces whatever was drawn
// before, so no stale content can leak across scene switches.
package scene

import (
	"errors"
	"strconv"
	"strings"

	"github.com/venek/scenery/chart"
	"github.com/venek/scenery/internal/dataset"
)

// ErrNoPoints is returned when no valid point survives filtering. The
// caller logs it and keeps the previous state; it never reaches the user.
var ErrNoPoints = errors.New("no valid points")

// Geometry is the shared drawing box: a fixed outer size with fixed
// margins on four sides, all content drawn inside the inner area.
type Geometry struct {
	Width  float64
	Height float64
	Pad    chart.Padding
}

func DefaultGeometry() Geometry {
	return Geometry{
		Width:  800,
		Height: 600,
		Pad: chart.Padding{
			Top:    40,
			Right:  30,
			Bottom: 60,
			Left:   80,
		},
	}
}

func (g Geometry) InnerWidth() float64 {
	return g.Width - g.Pad.Horizontal()
}

func (g Geometry) InnerHeight() float64 {
	return g.Height - g.Pad.Vertical()
}

// HoverPoint is one hover target: pixel coordinates inside the rendered
// SVG and the preformatted tooltip markup shown when it is hovered. The
// points are listed in the same document order as the hit elements of
// the SVG, which is how the page script pairs them up.
type HoverPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// MetricOption is one entry of the explore scene's metric selector.
type MetricOption struct {
	Value    string
	Label    string
	Selected bool
}

// View is a fully rendered scene.
type View struct {
	Title   string
	SVG     []byte
	Hover   []HoverPoint
	Options []MetricOption
}

// Scene renders one self-contained visualization state.
type Scene interface {
	Title() string
	Build(*dataset.Dataset) (*View, error)
}

// Sequence returns the story's scenes in viewing order.
func Sequence(g Geometry, def dataset.Metric) []Scene {
	return []Scene{
		NewUrbanShift(g),
		NewEnergy(g),
		NewCarbon(g),
		NewExplore(g, def),
	}
}

func formatYear(y float64) string {
	return strconv.Itoa(int(y))
}

// formatValue renders v with at most two fractional digits.
func formatValue(v float64) string {
	str := strconv.FormatFloat(v, 'f', 2, 64)
	str = strings.TrimRight(str, "0")
	return strings.TrimRight(str, ".")
}

func yearAxis(scaler chart.Scaler[float64], ticks int) *chart.Axis[float64] {
	return &chart.Axis[float64]{
		Label:          "year",
		Orientation:    chart.OrientBottom,
		Ticks:          ticks,
		Scaler:         scaler,
		Format:         formatYear,
		WithInnerTicks: true,
		WithLabelTicks: true,
	}
}

func valueAxis(scaler chart.Scaler[float64], format func(float64) string) *chart.Axis[float64] {
	return &chart.Axis[float64]{
		Orientation:    chart.OrientLeft,
		Ticks:          8,
		Scaler:         scaler,
		Format:         format,
		WithInnerTicks: true,
		WithLabelTicks: true,
		WithOuterTicks: true,
	}
}

func wholeNumber(f float64) string {
	return strconv.Itoa(int(f))
}

func oneDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

func tooltip(parts ...string) string {
	return strings.Join(parts, "<br>")
}

func metricOptions(selected dataset.Metric) []MetricOption {
	var opts []MetricOption
	for _, m := range dataset.Metrics() {
		opts = append(opts, MetricOption{
			Value:    string(m),
			Label:    m.Label(),
			Selected: m == selected,
		})
	}
	return opts
}
