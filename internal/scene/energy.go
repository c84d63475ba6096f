package scene

import (
	"bytes"
	"math"

	"github.com/venek/scenery/chart"
	"github.com/venek/scenery/internal/dataset"
)

// crisisYear anchors the energy scene's callout.
const crisisYear = 2008

// Energy draws one bar per year over a band scale; every bar is a hover
// target showing the year and consumption.
type Energy struct {
	geom Geometry
}

func NewEnergy(g Geometry) *Energy {
	return &Energy{
		geom: g,
	}
}

func (*Energy) Title() string {
	return "The Price of Power"
}

func (s *Energy) Build(ds *dataset.Dataset) (*View, error) {
	type bar struct {
		label string
		year  float64
		value float64
	}
	var bars []bar
	for _, r := range ds.Records() {
		if !r.Valid() || math.IsNaN(r.Energy) {
			continue
		}
		bars = append(bars, bar{
			label: formatYear(r.Year),
			year:  r.Year,
			value: r.Energy,
		})
	}
	if len(bars) == 0 {
		return nil, ErrNoPoints
	}

	var labels []string
	top := 0.0
	for _, b := range bars {
		labels = append(labels, b.label)
		if b.value > top {
			top = b.value
		}
	}
	top *= 1.1

	var (
		xscale = chart.StringScaler(labels, chart.NewRange(0, s.geom.InnerWidth()))
		yscale = chart.NumberScaler(chart.NumberDomain(top, 0), chart.NewRange(0, s.geom.InnerHeight()))
	)

	ser := chart.Serie[string, float64]{
		Title: "energy",
		X:     xscale,
		Y:     yscale,
		Renderer: chart.BarRenderer[string, float64]{
			Width:     0.7,
			Fill:      []string{chart.Tableau10[2]},
			Hoverable: true,
		},
	}
	var hover []HoverPoint
	for _, b := range bars {
		ser.Points = append(ser.Points, chart.CategoryPoint(b.label, b.value))
		hover = append(hover, HoverPoint{
			X:     s.geom.Pad.Left + xscale.Scale(b.label) + xscale.Space()/2,
			Y:     s.geom.Pad.Top + yscale.Scale(b.value),
			Label: tooltip("Year: "+b.label, "Energy: "+oneDecimal(b.value)+" Quads"),
		})
	}

	ch := chart.Chart[string, float64]{
		Width:   s.geom.Width,
		Height:  s.geom.Height,
		Padding: s.geom.Pad,
		Bottom: &chart.Axis[string]{
			Label:          "year",
			Orientation:    chart.OrientBottom,
			Scaler:         xscale,
			WithInnerTicks: true,
			WithLabelTicks: true,
		},
		Left: valueAxis(yscale, wholeNumber),
	}
	ch.Annotations = []chart.Annotation{s.annotation(ds, xscale, yscale)}

	var buf bytes.Buffer
	ch.Render(&buf, ser)
	return &View{
		Title: s.Title(),
		SVG:   buf.Bytes(),
		Hover: hover,
	}, nil
}

func (s *Energy) annotation(ds *dataset.Dataset, x chart.Scaler[string], y chart.Scaler[float64]) chart.Annotation {
	note := chart.Annotation{
		X:           s.geom.InnerWidth() / 2,
		Y:           s.geom.InnerHeight() / 3,
		Label:       "2008 financial crisis",
		Note:        "global demand dips before resuming its climb",
		Orientation: chart.OrientLeft,
	}
	if rec, ok := ds.ByYear(crisisYear); ok && !math.IsNaN(rec.Energy) {
		note.X = x.Scale(formatYear(rec.Year)) + x.Space()/2
		note.Y = y.Scale(rec.Energy)
	}
	return note
}
