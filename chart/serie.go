package chart

import (
	"github.com/midbel/svg"
)

// Data is anything a chart can draw inside its plotting area.
type Data interface {
	Render() svg.Element
}

type Serie[T, U ScalerConstraint] struct {
	Color string
	Title string

	X      Scaler[T]
	Y      Scaler[U]
	Points []Point[T, U]

	Renderer Renderer[T, U]
}

func (s Serie[T, U]) Render() svg.Element {
	return s.Renderer.Render(s)
}

type Point[T, U ScalerConstraint] struct {
	X T
	Y U
}

func NumberPoint(x, y float64) Point[float64, float64] {
	return Point[float64, float64]{
		X: x,
		Y: y,
	}
}

func CategoryPoint(x string, y float64) Point[string, float64] {
	return Point[string, float64]{
		X: x,
		Y: y,
	}
}
