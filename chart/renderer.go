package chart

import (
	"math"

	"github.com/midbel/slices"
	"github.com/midbel/svg"
)

type TextPosition int

const (
	TextBefore TextPosition = 1 << iota
	TextAfter
)

const currentColour = "currentColour"

// ClassHit marks the hover targets the page script binds tooltips to.
const ClassHit = "hit"

// ClassMarker marks the single moving hover marker of a line chart.
const ClassMarker = "marker"

type Renderer[T, U ScalerConstraint] interface {
	Render(Serie[T, U]) svg.Element
}

// LinearRenderer joins the points of a serie with straight segments. A
// point with a NaN value is dropped and the path restarts after the gap;
// missing values are never interpolated through.
type LinearRenderer[T, U ScalerConstraint] struct {
	Fill  bool
	Color string
	Point PointFunc
	Text  TextPosition
}

func (r LinearRenderer[T, U]) Render(serie Serie[T, U]) svg.Element {
	var (
		grp   = getBaseGroup(r.Color, "line")
		pat   = getBasePath(r.Fill)
		pos   svg.Pos
		first = true
	)
	grp.Id = serie.Title
	for _, pt := range serie.Points {
		if f, ok := isFloat(pt.Y); ok && math.IsNaN(f) {
			first = true
			continue
		}
		pos.X = serie.X.Scale(pt.X)
		pos.Y = serie.Y.Scale(pt.Y)
		if first {
			first = false
			pat.AbsMoveTo(pos)
		} else {
			pat.AbsLineTo(pos)
		}
		if r.Point != nil {
			if el := r.Point(pos); el != nil {
				grp.Append(el)
			}
		}
	}

	if len(serie.Points) == 0 {
		r.Text = 0
	}
	switch r.Text {
	case TextBefore:
		pt := slices.Fst(serie.Points)
		txt := getLineText(serie.Title, 0, serie.Y.Scale(pt.Y), true)
		grp.Append(txt.AsElement())
	case TextAfter:
		pt := slices.Lst(serie.Points)
		txt := getLineText(serie.Title, serie.X.Scale(pt.X), serie.Y.Scale(pt.Y), false)
		grp.Append(txt.AsElement())
	default:
	}

	if r.Fill {
		pos.Y = serie.Y.Max()
		pat.AbsLineTo(pos)
	}
	grp.Append(pat.AsElement())
	return grp.AsElement()
}

// BarRenderer draws one bar per category. Each bar lives in its own group
// of class "hit" so the page script can attach a tooltip to it.
type BarRenderer[T ~string, U ~float64] struct {
	Fill      []string
	Width     float64
	Hoverable bool
}

func (r BarRenderer[T, U]) Render(serie Serie[T, U]) svg.Element {
	if r.Width <= 0 {
		r.Width = 1
	}
	if len(r.Fill) == 0 {
		r.Fill = Category10
	}
	grp := getBaseGroup("", "bars")
	for i, pt := range serie.Points {
		var (
			w = serie.X.Space() * r.Width
			o = (serie.X.Space() - w) / 2
			x = serie.X.Scale(pt.X) + o
			y = serie.Y.Scale(pt.Y)
		)
		var el svg.Rect
		el.Pos = svg.NewPos(x, y)
		el.Dim = svg.NewDim(w, serie.Y.Max()-y)
		el.Fill = svg.NewFill(r.Fill[i%len(r.Fill)])
		if r.Hoverable {
			hit := getBaseGroup("", ClassHit)
			hit.Append(el.AsElement())
			grp.Append(hit.AsElement())
		} else {
			grp.Append(el.AsElement())
		}
	}
	return grp.AsElement()
}

// PointRenderer draws a detached marker per point, wrapped in a hover
// group when Hoverable is set. Size 0 falls back to DefaultSize and an
// Opacity of 0 makes the markers pure hit targets.
type PointRenderer[T, U ScalerConstraint] struct {
	Color     string
	Size      float64
	Opacity   float64
	Hoverable bool
}

func (r PointRenderer[T, U]) Render(serie Serie[T, U]) svg.Element {
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	grp := getBaseGroup(r.Color, "scatter")
	for _, pt := range serie.Points {
		pos := svg.NewPos(serie.X.Scale(pt.X), serie.Y.Scale(pt.Y))

		var el svg.Circle
		el.Pos = pos
		el.Radius = r.Size / 2
		el.Fill = svg.NewFill(currentColour)
		el.Fill.Opacity = r.Opacity

		if r.Hoverable {
			hit := getBaseGroup(r.Color, ClassHit)
			hit.Append(el.AsElement())
			grp.Append(hit.AsElement())
		} else {
			grp.Append(el.AsElement())
		}
	}
	return grp.AsElement()
}

// MarkerRenderer emits a single invisible circle the page script moves to
// the hovered point. It renders once per serie regardless of point count
// and stays at opacity 0 until a hover happens.
type MarkerRenderer[T, U ScalerConstraint] struct {
	Color string
	Size  float64
}

func (r MarkerRenderer[T, U]) Render(serie Serie[T, U]) svg.Element {
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	grp := getBaseGroup(r.Color, ClassMarker)

	var el svg.Circle
	el.Pos = svg.NewPos(0, 0)
	el.Radius = r.Size / 2
	el.Fill = svg.NewFill(currentColour)
	el.Fill.Opacity = 0

	grp.Append(el.AsElement())
	return grp.AsElement()
}

func getLineText(str string, x, y float64, before bool) svg.Text {
	txt := svg.NewText(str)
	txt.Font = svg.NewFont(FontSize)
	txt.Pos = svg.NewPos(x, y)
	txt.Anchor = "end"
	txt.Baseline = "middle"
	if !before {
		txt.Anchor = "start"
		txt.Pos.X += FontSize * 0.4
	} else {
		txt.Pos.X -= FontSize * 0.4
	}
	return txt
}

func getBasePath(fill bool) svg.Path {
	var pat svg.Path
	pat.Rendering = "geometricPrecision"
	pat.Stroke = svg.NewStroke(currentColour, 1)
	if fill {
		pat.Fill = svg.NewFill(currentColour)
		pat.Fill.Opacity = 0.5
	} else {
		pat.Fill = svg.NewFill("none")
	}
	return pat
}

func getBaseGroup(color string, class ...string) svg.Group {
	var g svg.Group
	if color != "" {
		g.Fill = svg.NewFill(color)
		g.Stroke = svg.NewStroke(color, 1)
	}
	g.Class = class
	return g
}

func isFloat[T any](v T) (float64, bool) {
	x, ok := any(v).(float64)
	return x, ok
}
