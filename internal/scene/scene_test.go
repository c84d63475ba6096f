package scene

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venek/scenery/internal/dataset"
)

func testDataset() *dataset.Dataset {
	ds, err := dataset.Read(strings.NewReader(
		`year,urban_population_billion,rural_population_billion,global_energy_consumption_quads,global_co2_emission_gt
2018,4.2,3.4,580,33
2019,4.3,3.3,590,34
2020,4.4,3.2,600,35
`))
	if err != nil {
		panic(err)
	}
	return ds
}

func testGeometry() Geometry {
	return DefaultGeometry()
}

func TestPopulationTop(t *testing.T) {
	top := populationTop(testDataset())
	assert.InDelta(t, 4.4*1.05, top, 1e-9)
}

func TestUrbanShiftBuild(t *testing.T) {
	view, err := NewUrbanShift(testGeometry()).Build(testDataset())
	require.NoError(t, err)

	out := string(view.SVG)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Urban Population")
	assert.Contains(t, out, "Rural Population")
	assert.Contains(t, out, "Urban overtakes rural")
	assert.Empty(t, view.Hover, "scene 1 has no hover targets")
	assert.Empty(t, view.Options)
}

func TestUrbanShiftExactYearDomain(t *testing.T) {
	g := testGeometry()
	xscale, ok := NewUrbanShift(g).xscale(testDataset())
	require.True(t, ok)

	// first year at the left edge, last year at the right edge
	assert.InDelta(t, 0, xscale.Scale(2018), 1e-9)
	assert.InDelta(t, g.InnerWidth()/2, xscale.Scale(2019), 1e-9)
	assert.InDelta(t, g.InnerWidth(), xscale.Scale(2020), 1e-9)

	_, ok = NewUrbanShift(g).xscale(dataset.New(nil))
	assert.False(t, ok)
}

func TestEnergyBuildTooltip(t *testing.T) {
	g := testGeometry()
	view, err := NewEnergy(g).Build(testDataset())
	require.NoError(t, err)
	require.Len(t, view.Hover, 3)

	assert.Equal(t, "Year: 2019<br>Energy: 590.0 Quads", view.Hover[1].Label)

	// bar centers over a three-band scale of the inner width
	space := g.InnerWidth() / 3
	assert.InDelta(t, g.Pad.Left+space+space/2, view.Hover[1].X, 1e-9)
}

func TestEnergySkipsInvalidRows(t *testing.T) {
	ds, err := dataset.Read(strings.NewReader(
		`year,urban_population_billion,rural_population_billion,global_energy_consumption_quads,global_co2_emission_gt
2018,4.2,3.4,oops,33
2019,4.3,3.3,590,34
`))
	require.NoError(t, err)

	view, err := NewEnergy(testGeometry()).Build(ds)
	require.NoError(t, err)
	require.Len(t, view.Hover, 1)
	assert.Contains(t, view.Hover[0].Label, "2019")
}

func TestCarbonBuild(t *testing.T) {
	view, err := NewCarbon(testGeometry()).Build(testDataset())
	require.NoError(t, err)
	require.Len(t, view.Hover, 3)

	assert.Equal(t, "Year: 2020<br>Energy: 600.0 Quads<br>CO2: 35.0 Gt", view.Hover[2].Label)
	assert.Contains(t, string(view.SVG), "scatter")
}

func TestExploreExactYearDomain(t *testing.T) {
	g := testGeometry()
	view, err := NewExplore(g, dataset.MetricUrban).Build(testDataset())
	require.NoError(t, err)
	require.Len(t, view.Hover, 3)

	// exact extent: first point at the left edge, last at the right edge
	assert.InDelta(t, g.Pad.Left, view.Hover[0].X, 1e-9)
	assert.InDelta(t, g.Pad.Left+g.InnerWidth(), view.Hover[2].X, 1e-9)
}

func TestExploreMetricSwitch(t *testing.T) {
	ex := NewExplore(testGeometry(), dataset.MetricUrban)
	ds := testDataset()

	view, err := ex.BuildMetric(ds, dataset.MetricUrban)
	require.NoError(t, err)
	assert.Contains(t, view.Hover[0].Label, "Urban Population: 4.2 billion")

	view, err = ex.BuildMetric(ds, dataset.MetricCO2)
	require.NoError(t, err)
	require.Len(t, view.Hover, 3)
	assert.Equal(t, "Year: 2018<br>CO2 Emissions: 33 Gt", view.Hover[0].Label)
	assert.Equal(t, "Year: 2020<br>CO2 Emissions: 35 Gt", view.Hover[2].Label)

	var selected []string
	for _, o := range view.Options {
		if o.Selected {
			selected = append(selected, o.Value)
		}
	}
	assert.Equal(t, []string{"co2"}, selected)
}

func TestExploreFiltersInvalidPairs(t *testing.T) {
	ds, err := dataset.Read(strings.NewReader(
		`year,urban_population_billion,rural_population_billion,global_energy_consumption_quads,global_co2_emission_gt
2018,4.2,3.4,580,33
2019,4.3,3.3,590,broken
2020,4.4,3.2,600,35
`))
	require.NoError(t, err)

	ex := NewExplore(testGeometry(), dataset.MetricUrban)
	view, buildErr := ex.BuildMetric(ds, dataset.MetricCO2)
	require.NoError(t, buildErr, "a broken row must not halt rendering")
	require.Len(t, view.Hover, 2)
	assert.Contains(t, view.Hover[0].Label, "2018")
	assert.Contains(t, view.Hover[1].Label, "2020")
}

func TestExploreNoValidPoints(t *testing.T) {
	ds, err := dataset.Read(strings.NewReader(
		`year,urban_population_billion,rural_population_billion,global_energy_consumption_quads,global_co2_emission_gt
2018,4.2,3.4,580,x
2019,4.3,3.3,590,y
`))
	require.NoError(t, err)

	ex := NewExplore(testGeometry(), dataset.MetricUrban)
	_, buildErr := ex.BuildMetric(ds, dataset.MetricCO2)
	assert.ErrorIs(t, buildErr, ErrNoPoints)
}

func TestExploreMarkerPresent(t *testing.T) {
	view, err := NewExplore(testGeometry(), dataset.MetricUrban).Build(testDataset())
	require.NoError(t, err)
	assert.Contains(t, string(view.SVG), "marker")
}

func TestScenesRejectEmptyDataset(t *testing.T) {
	empty := dataset.New(nil)
	for _, sc := range Sequence(testGeometry(), dataset.MetricUrban) {
		_, err := sc.Build(empty)
		assert.ErrorIs(t, err, ErrNoPoints, "%T", sc)
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "33", formatValue(33))
	assert.Equal(t, "4.2", formatValue(4.2))
	assert.Equal(t, "4.25", formatValue(4.25))
	assert.Equal(t, "4.26", formatValue(4.256))
	assert.Equal(t, "0", formatValue(0))
}
