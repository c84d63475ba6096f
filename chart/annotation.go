package chart

import (
	"github.com/midbel/svg"
)

// Annotation is a textual callout anchored at a position inside the
// plotting area. The anchor is given in pixel coordinates (already
// scaled); the label is offset from it and linked by a connector line.
type Annotation struct {
	X     float64
	Y     float64
	Label string
	Note  string
	Color string
	Orientation
}

func (a Annotation) Render() svg.Element {
	color := a.Color
	if color == "" {
		color = "black"
	}
	var (
		grp  = getBaseGroup(color, "annotation")
		dx   = FontSize * 3
		dy   = -FontSize * 2.5
		font = svg.NewFont(FontSize)
	)
	if a.Orientation&OrientLeft != 0 {
		dx = -dx
	}
	if a.Orientation&OrientBottom != 0 {
		dy = -dy
	}

	dot := svg.Circle{
		Pos:    svg.NewPos(a.X, a.Y),
		Radius: DefaultSize / 2,
	}
	dot.Fill = svg.NewFill(color)
	grp.Append(dot.AsElement())

	lnk := svg.NewLine(svg.NewPos(a.X, a.Y), svg.NewPos(a.X+dx, a.Y+dy))
	lnk.Stroke = svg.NewStroke(color, 1)
	lnk.Stroke.DashArray(3)
	grp.Append(lnk.AsElement())

	anchor := "start"
	if a.Orientation&OrientLeft != 0 {
		anchor = "end"
	}
	txt := svg.NewText(a.Label)
	txt.Pos = svg.NewPos(a.X+dx, a.Y+dy)
	txt.Font = font
	txt.Anchor = anchor
	txt.Baseline = "auto"
	grp.Append(txt.AsElement())

	if a.Note != "" {
		sub := svg.NewText(a.Note)
		sub.Pos = svg.NewPos(a.X+dx, a.Y+dy+FontSize*1.2)
		sub.Font = font
		sub.Anchor = anchor
		sub.Baseline = "auto"
		grp.Append(sub.AsElement())
	}
	return grp.AsElement()
}
