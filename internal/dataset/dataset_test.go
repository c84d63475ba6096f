package dataset

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `year,urban_population_billion,rural_population_billion,global_energy_consumption_quads,global_co2_emission_gt
2018,4.2,3.4,580,33
2019,4.3,3.3,590,34
2020,4.4,3.2,600,35
`

func TestRead(t *testing.T) {
	ds, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	recs := ds.Records()
	assert.Equal(t, 2018.0, recs[0].Year)
	assert.Equal(t, 4.2, recs[0].Urban)
	assert.Equal(t, 3.4, recs[0].Rural)
	assert.Equal(t, 580.0, recs[0].Energy)
	assert.Equal(t, 33.0, recs[0].CO2)
}

func TestReadMalformedValuesBecomeNaN(t *testing.T) {
	csv := `year,urban_population_billion,rural_population_billion,global_energy_consumption_quads,global_co2_emission_gt
2018,4.2,3.4,580,oops
2019,4.3,3.3,590,34
`
	ds, err := Read(strings.NewReader(csv))
	require.NoError(t, err, "a malformed cell must not fail the load")
	require.Equal(t, 2, ds.Len())

	recs := ds.Records()
	assert.True(t, math.IsNaN(recs[0].CO2))
	assert.True(t, recs[0].Valid(), "the year is still usable")
	assert.Equal(t, 34.0, recs[1].CO2)
}

func TestReadMalformedYear(t *testing.T) {
	csv := `year,urban_population_billion,rural_population_billion,global_energy_consumption_quads,global_co2_emission_gt
n/a,4.2,3.4,580,33
2019,4.3,3.3,590,34
`
	ds, err := Read(strings.NewReader(csv))
	require.NoError(t, err)

	recs := ds.Records()
	assert.False(t, recs[0].Valid())
	assert.Equal(t, []float64{2019}, ds.Years())
}

func TestReadRejectsBadHeader(t *testing.T) {
	csv := `year,urban,rural,energy,co2
2018,4.2,3.4,580,33
`
	_, err := Read(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestYearExtent(t *testing.T) {
	ds, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	fst, lst, ok := ds.YearExtent()
	require.True(t, ok)
	assert.Equal(t, 2018.0, fst)
	assert.Equal(t, 2020.0, lst)
}

func TestExtentIgnoresNaN(t *testing.T) {
	csv := `year,urban_population_billion,rural_population_billion,global_energy_consumption_quads,global_co2_emission_gt
2018,4.2,3.4,580,x
2019,4.3,3.3,590,34
2020,4.4,3.2,600,35
`
	ds, err := Read(strings.NewReader(csv))
	require.NoError(t, err)

	min, max, ok := ds.Extent(MetricCO2)
	require.True(t, ok)
	assert.Equal(t, 34.0, min)
	assert.Equal(t, 35.0, max)
}

func TestExtentEmpty(t *testing.T) {
	ds := New(nil)
	_, _, ok := ds.Extent(MetricUrban)
	assert.False(t, ok)
}

func TestByYear(t *testing.T) {
	ds, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	rec, ok := ds.ByYear(2019)
	require.True(t, ok)
	assert.Equal(t, 4.3, rec.Urban)

	_, ok = ds.ByYear(1900)
	assert.False(t, ok)
}

func TestParseMetric(t *testing.T) {
	for _, m := range Metrics() {
		got, err := ParseMetric(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMetric("bogus")
	assert.Error(t, err)
}

func TestMetricValue(t *testing.T) {
	rec := Record{Year: 2019, Urban: 4.3, Rural: 3.3, Energy: 590, CO2: 34}
	assert.Equal(t, 4.3, MetricUrban.Value(rec))
	assert.Equal(t, 3.3, MetricRural.Value(rec))
	assert.Equal(t, 590.0, MetricEnergy.Value(rec))
	assert.Equal(t, 34.0, MetricCO2.Value(rec))
}

func TestMetricLabels(t *testing.T) {
	assert.Equal(t, "Urban Population", MetricUrban.Label())
	assert.Equal(t, "Rural Population", MetricRural.Label())
	assert.Equal(t, "Energy Consumption", MetricEnergy.Label())
	assert.Equal(t, "CO2 Emissions", MetricCO2.Label())
}
