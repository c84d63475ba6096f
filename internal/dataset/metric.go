package dataset

import (
	"fmt"
)

// Metric selects one numeric field of a Record. It parameterizes the
// explore scene's selectable line chart.
type Metric string

const (
	MetricUrban  Metric = "urban"
	MetricRural  Metric = "rural"
	MetricEnergy Metric = "energy"
	MetricCO2    Metric = "co2"
)

// Metrics returns the selectable metrics in display order.
func Metrics() []Metric {
	return []Metric{MetricUrban, MetricRural, MetricEnergy, MetricCO2}
}

func ParseMetric(str string) (Metric, error) {
	switch m := Metric(str); m {
	case MetricUrban, MetricRural, MetricEnergy, MetricCO2:
		return m, nil
	default:
		return "", fmt.Errorf("unknown metric %q", str)
	}
}

func (m Metric) Label() string {
	switch m {
	case MetricUrban:
		return "Urban Population"
	case MetricRural:
		return "Rural Population"
	case MetricEnergy:
		return "Energy Consumption"
	case MetricCO2:
		return "CO2 Emissions"
	default:
		return string(m)
	}
}

func (m Metric) Unit() string {
	switch m {
	case MetricUrban, MetricRural:
		return "billion"
	case MetricEnergy:
		return "Quads"
	case MetricCO2:
		return "Gt"
	default:
		return ""
	}
}

// Value returns the metric's field of the record. NaN marks a value that
// failed coercion and must be filtered before use.
func (m Metric) Value(r Record) float64 {
	switch m {
	case MetricUrban:
		return r.Urban
	case MetricRural:
		return r.Rural
	case MetricEnergy:
		return r.Energy
	case MetricCO2:
		return r.CO2
	default:
		return 0
	}
}
