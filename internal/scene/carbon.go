package scene

import (
	"bytes"
	"math"

	"github.com/venek/scenery/chart"
	"github.com/venek/scenery/internal/dataset"
)

// Carbon scatters CO2 emissions against energy consumption; each point is
// a hover target carrying its year and both values.
type Carbon struct {
	geom Geometry
}

func NewCarbon(g Geometry) *Carbon {
	return &Carbon{
		geom: g,
	}
}

func (*Carbon) Title() string {
	return "The Carbon Bill"
}

func (s *Carbon) Build(ds *dataset.Dataset) (*View, error) {
	var recs []dataset.Record
	for _, r := range ds.Records() {
		if !r.Valid() || math.IsNaN(r.Energy) || math.IsNaN(r.CO2) {
			continue
		}
		recs = append(recs, r)
	}
	if len(recs) == 0 {
		return nil, ErrNoPoints
	}

	var (
		minX, maxX = recs[0].Energy, recs[0].Energy
		minY, maxY = recs[0].CO2, recs[0].CO2
	)
	for _, r := range recs {
		minX = math.Min(minX, r.Energy)
		maxX = math.Max(maxX, r.Energy)
		minY = math.Min(minY, r.CO2)
		maxY = math.Max(maxY, r.CO2)
	}

	var (
		xscale = chart.NumberScaler(chart.NumberDomain(minX/1.1, maxX*1.1), chart.NewRange(0, s.geom.InnerWidth()))
		yscale = chart.NumberScaler(chart.NumberDomain(maxY*1.1, minY/1.1), chart.NewRange(0, s.geom.InnerHeight()))
	)

	ser := chart.Serie[float64, float64]{
		Title: "co2",
		Color: chart.Tableau10[3],
		X:     xscale,
		Y:     yscale,
		Renderer: chart.PointRenderer[float64, float64]{
			Color:     chart.Tableau10[3],
			Size:      8,
			Opacity:   0.8,
			Hoverable: true,
		},
	}
	var hover []HoverPoint
	for _, r := range recs {
		ser.Points = append(ser.Points, chart.NumberPoint(r.Energy, r.CO2))
		hover = append(hover, HoverPoint{
			X: s.geom.Pad.Left + xscale.Scale(r.Energy),
			Y: s.geom.Pad.Top + yscale.Scale(r.CO2),
			Label: tooltip(
				"Year: "+formatYear(r.Year),
				"Energy: "+oneDecimal(r.Energy)+" Quads",
				"CO2: "+oneDecimal(r.CO2)+" Gt",
			),
		})
	}

	xaxis := valueAxis(xscale, wholeNumber)
	xaxis.Label = "energy (quads)"
	xaxis.Orientation = chart.OrientBottom

	ch := chart.Chart[float64, float64]{
		Width:   s.geom.Width,
		Height:  s.geom.Height,
		Padding: s.geom.Pad,
		Bottom:  xaxis,
		Left:    valueAxis(yscale, wholeNumber),
	}
	last := recs[len(recs)-1]
	for _, r := range recs {
		if r.Energy > last.Energy {
			last = r
		}
	}
	ch.Annotations = []chart.Annotation{{
		X:           xscale.Scale(last.Energy),
		Y:           yscale.Scale(last.CO2),
		Label:       "More power, more carbon",
		Note:        "emissions track consumption almost linearly",
		Orientation: chart.OrientLeft,
	}}

	var buf bytes.Buffer
	ch.Render(&buf, ser)
	return &View{
		Title: s.Title(),
		SVG:   buf.Bytes(),
		Hover: hover,
	}, nil
}
