package scene

import (
	"bytes"
	"fmt"
	"math"

	"github.com/venek/scenery/chart"
	"github.com/venek/scenery/internal/dataset"
)

// Explore is the free-exploration scene: one line chart whose metric the
// viewer selects. Switching the metric rebuilds the axis, the line and
// all hover targets from scratch; the visible marker circle starts out
// hidden until the next hover.
type Explore struct {
	geom Geometry
	def  dataset.Metric
}

func NewExplore(g Geometry, def dataset.Metric) *Explore {
	return &Explore{
		geom: g,
		def:  def,
	}
}

func (*Explore) Title() string {
	return "Explore the Data"
}

func (s *Explore) Build(ds *dataset.Dataset) (*View, error) {
	return s.BuildMetric(ds, s.def)
}

// BuildMetric rebuilds the scene for one metric. Pairs where either the
// year or the value is not numeric are dropped; when nothing survives it
// returns ErrNoPoints and the caller keeps whatever it showed before.
func (s *Explore) BuildMetric(ds *dataset.Dataset, m dataset.Metric) (*View, error) {
	type pair struct {
		year  float64
		value float64
	}
	var pairs []pair
	for _, r := range ds.Records() {
		v := m.Value(r)
		if !r.Valid() || math.IsNaN(v) {
			continue
		}
		pairs = append(pairs, pair{year: r.Year, value: v})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("metric %s: %w", m, ErrNoPoints)
	}

	var (
		fstYear, lstYear = pairs[0].year, pairs[0].year
		minV, maxV       = pairs[0].value, pairs[0].value
	)
	for _, p := range pairs {
		fstYear = math.Min(fstYear, p.year)
		lstYear = math.Max(lstYear, p.year)
		minV = math.Min(minV, p.value)
		maxV = math.Max(maxV, p.value)
	}
	lo, hi := chart.NiceExtent(minV, maxV)

	var (
		xscale = chart.NumberScaler(chart.NumberDomain(fstYear, lstYear), chart.NewRange(0, s.geom.InnerWidth()))
		yscale = chart.NumberScaler(chart.NumberDomain(hi, lo), chart.NewRange(0, s.geom.InnerHeight()))
		color  = chart.Tableau10[4]
	)

	line := chart.Serie[float64, float64]{
		Title: string(m),
		Color: color,
		X:     xscale,
		Y:     yscale,
		Renderer: chart.LinearRenderer[float64, float64]{
			Color: color,
			Fill:  true,
		},
	}
	// Enlarged invisible circles for hover precision, one per point.
	hits := chart.Serie[float64, float64]{
		Title: "hits",
		X:     xscale,
		Y:     yscale,
		Renderer: chart.PointRenderer[float64, float64]{
			Color:     color,
			Size:      16,
			Opacity:   0,
			Hoverable: true,
		},
	}
	marker := chart.Serie[float64, float64]{
		Title: "focus",
		X:     xscale,
		Y:     yscale,
		Renderer: chart.MarkerRenderer[float64, float64]{
			Color: color,
			Size:  8,
		},
	}

	var hover []HoverPoint
	for _, p := range pairs {
		pt := chart.NumberPoint(p.year, p.value)
		line.Points = append(line.Points, pt)
		hits.Points = append(hits.Points, pt)
		hover = append(hover, HoverPoint{
			X:     s.geom.Pad.Left + xscale.Scale(p.year),
			Y:     s.geom.Pad.Top + yscale.Scale(p.value),
			Label: tooltip("Year: "+formatYear(p.year), m.Label()+": "+formatValue(p.value)+" "+m.Unit()),
		})
	}

	ch := chart.Chart[float64, float64]{
		Width:   s.geom.Width,
		Height:  s.geom.Height,
		Padding: s.geom.Pad,
		Bottom:  yearAxis(xscale, 10),
		Left:    valueAxis(yscale, formatValue),
	}

	var buf bytes.Buffer
	ch.Render(&buf, line, hits, marker)
	return &View{
		Title:   s.Title(),
		SVG:     buf.Bytes(),
		Hover:   hover,
		Options: metricOptions(m),
	}, nil
}
