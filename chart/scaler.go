package chart

import (
	"fmt"
	"math"
)

type ScalerConstraint interface {
	~float64 | ~string
}

type Domain[T ScalerConstraint] interface {
	Diff(T) float64
	Extend() float64
	Values(int) []T
	Merge(Domain[T]) (Domain[T], error)
}

type numberDomain struct {
	fst float64
	lst float64
}

func NumberDomain(f, t float64) Domain[float64] {
	return numberDomain{
		fst: f,
		lst: t,
	}
}

// NiceExtent expands [f, t] outward to multiples of a round step, the way
// d3 nices a linear scale before drawing ticks. Callers flip the bounds
// themselves when building a y scale.
func NiceExtent(f, t float64) (float64, float64) {
	if f > t {
		f, t = t, f
	}
	step := niceStep(t - f)
	if step > 0 {
		f = math.Floor(f/step) * step
		t = math.Ceil(t/step) * step
	}
	return f, t
}

func niceStep(span float64) float64 {
	if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return 0
	}
	pow := math.Pow(10, math.Floor(math.Log10(span)))
	switch frac := span / pow; {
	case frac <= 2:
		return pow / 5
	case frac <= 5:
		return pow / 2
	default:
		return pow
	}
}

func (n numberDomain) Merge(other Domain[float64]) (Domain[float64], error) {
	d, ok := other.(numberDomain)
	if !ok {
		return nil, fmt.Errorf("number domain can not be merged with %T", other)
	}
	x := n
	if d.fst < x.fst {
		x.fst = d.fst
	}
	if d.lst > x.lst {
		x.lst = d.lst
	}
	return x, nil
}

func (n numberDomain) Diff(v float64) float64 {
	return v - n.fst
}

func (n numberDomain) Extend() float64 {
	return n.lst - n.fst
}

func (n numberDomain) Values(c int) []float64 {
	if c <= 0 {
		return []float64{n.fst, n.lst}
	}
	var (
		all  = make([]float64, c)
		step = n.Extend() / float64(c)
	)
	for i := 0; i < c; i++ {
		all[i] = n.fst + float64(i)*step
	}
	all = append(all, n.lst)
	return all
}

type Range struct {
	F float64
	T float64
}

func NewRange(f, t float64) Range {
	return Range{
		F: f,
		T: t,
	}
}

func (r Range) Len() float64 {
	return r.T - r.F
}

func (r Range) Max() float64 {
	return r.T
}

func (r Range) Min() float64 {
	return r.F
}

type Scaler[T ScalerConstraint] interface {
	Scale(T) float64
	Space() float64
	Values(int) []T
	Max() float64
	Min() float64
}

type numberScaler struct {
	Range
	Domain[float64]
}

func NumberScaler(dom Domain[float64], rg Range) Scaler[float64] {
	return numberScaler{
		Range:  rg,
		Domain: dom,
	}
}

func (n numberScaler) Scale(v float64) float64 {
	return n.Diff(v) * n.Space()
}

func (n numberScaler) Space() float64 {
	e := n.Extend()
	if e == 0 {
		return 0
	}
	return n.Len() / e
}

type stringScaler struct {
	Range
	Strings []string
}

func StringScaler(str []string, rg Range) Scaler[string] {
	return stringScaler{
		Range:   rg,
		Strings: str,
	}
}

func (s stringScaler) Scale(v string) float64 {
	var x int
	for i := range s.Strings {
		if s.Strings[i] == v {
			x = i
			break
		}
	}
	return float64(x) * s.Space()
}

func (s stringScaler) Space() float64 {
	if len(s.Strings) == 0 {
		return 0
	}
	return s.Len() / float64(len(s.Strings))
}

func (s stringScaler) Values(c int) []string {
	if c > 0 && c < len(s.Strings) {
		return s.Strings[:c]
	}
	return s.Strings
}
