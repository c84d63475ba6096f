package scene

import (
	"bytes"
	"math"

	"github.com/venek/scenery/chart"
	"github.com/venek/scenery/internal/dataset"
)

// crossoverYear anchors the first scene's callout: the year the urban
// population overtook the rural one.
const crossoverYear = 2007

// crossoverFallbackY is the pixel y used when the dataset has no record
// for the crossover year.
const crossoverFallbackY = 150.0

// UrbanShift superimposes the urban and rural population time series on
// shared scales.
type UrbanShift struct {
	geom Geometry
}

func NewUrbanShift(g Geometry) *UrbanShift {
	return &UrbanShift{
		geom: g,
	}
}

func (*UrbanShift) Title() string {
	return "The Urban Shift"
}

func (s *UrbanShift) Build(ds *dataset.Dataset) (*View, error) {
	xscale, ok := s.xscale(ds)
	if !ok {
		return nil, ErrNoPoints
	}
	top := populationTop(ds)

	yscale := chart.NumberScaler(chart.NumberDomain(top, 0), chart.NewRange(0, s.geom.InnerHeight()))
	urban := lineSerie(ds, dataset.MetricUrban, chart.Tableau10[0], chart.GetCircle, xscale, yscale)
	rural := lineSerie(ds, dataset.MetricRural, chart.Tableau10[1], chart.GetSquare, xscale, yscale)

	ch := chart.Chart[float64, float64]{
		Width:   s.geom.Width,
		Height:  s.geom.Height,
		Padding: s.geom.Pad,
		Bottom:  yearAxis(xscale, 10),
		Left:    valueAxis(yscale, oneDecimal),
	}
	ch.Legend.Orient = chart.OrientLeft | chart.OrientTop
	ch.Legend.Entries = []chart.LegendEntry{
		{Label: dataset.MetricUrban.Label(), Color: chart.Tableau10[0]},
		{Label: dataset.MetricRural.Label(), Color: chart.Tableau10[1]},
	}
	ch.Annotations = []chart.Annotation{s.annotation(ds, xscale, yscale)}

	var buf bytes.Buffer
	ch.Render(&buf, urban, rural)
	return &View{
		Title: s.Title(),
		SVG:   buf.Bytes(),
	}, nil
}

// xscale maps the exact year extent of the dataset onto the inner width,
// first year at the left edge and last year at the right edge.
func (s *UrbanShift) xscale(ds *dataset.Dataset) (chart.Scaler[float64], bool) {
	fst, lst, ok := ds.YearExtent()
	if !ok {
		return nil, false
	}
	return chart.NumberScaler(chart.NumberDomain(fst, lst), chart.NewRange(0, s.geom.InnerWidth())), true
}

func (s *UrbanShift) annotation(ds *dataset.Dataset, x, y chart.Scaler[float64]) chart.Annotation {
	ay := crossoverFallbackY
	if rec, ok := ds.ByYear(crossoverYear); ok && !math.IsNaN(rec.Urban) {
		ay = y.Scale(rec.Urban)
	}
	return chart.Annotation{
		X:           x.Scale(crossoverYear),
		Y:           ay,
		Label:       "Urban overtakes rural",
		Note:        "more than half of humanity now lives in cities",
		Orientation: chart.OrientLeft,
	}
}

// populationTop is the shared y ceiling: 1.05 times the larger of the
// two series maxima.
func populationTop(ds *dataset.Dataset) float64 {
	var top float64
	if _, max, ok := ds.Extent(dataset.MetricUrban); ok {
		top = max
	}
	if _, max, ok := ds.Extent(dataset.MetricRural); ok && max > top {
		top = max
	}
	return top * 1.05
}

func lineSerie(ds *dataset.Dataset, m dataset.Metric, color string, pt chart.PointFunc, x, y chart.Scaler[float64]) chart.Serie[float64, float64] {
	ser := chart.Serie[float64, float64]{
		Title: string(m),
		Color: color,
		X:     x,
		Y:     y,
		Renderer: chart.LinearRenderer[float64, float64]{
			Color: color,
			Point: pt,
			Text:  chart.TextAfter,
		},
	}
	for _, r := range ds.Records() {
		if !r.Valid() || math.IsNaN(m.Value(r)) {
			continue
		}
		ser.Points = append(ser.Points, chart.NumberPoint(r.Year, m.Value(r)))
	}
	return ser
}
