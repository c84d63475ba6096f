package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venek/scenery/internal/dataset"
	"github.com/venek/scenery/internal/scene"
)

func testServer(t *testing.T, opts Options) *Server {
	t.Helper()
	srv, err := New(zap.NewNop(), opts)
	require.NoError(t, err)
	return srv
}

func storyServer(t *testing.T) *Server {
	t.Helper()
	ds, err := dataset.Read(strings.NewReader(
		`year,urban_population_billion,rural_population_billion,global_energy_consumption_quads,global_co2_emission_gt
2018,4.2,3.4,580,33
2019,4.3,3.3,590,34
2020,4.4,3.2,600,35
`))
	require.NoError(t, err)
	return testServer(t, Options{
		Dataset: ds,
		Scenes:  scene.Sequence(scene.DefaultGeometry(), dataset.MetricUrban),
		Metric:  dataset.MetricUrban,
	})
}

func get(srv *Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRootRedirectsToCurrentScene(t *testing.T) {
	srv := storyServer(t)
	rec := get(srv, "/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/scenes/0", rec.Header().Get("Location"))
}

func TestFirstScene(t *testing.T) {
	srv := storyServer(t)
	rec := get(srv, "/scenes/0")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "The Urban Shift")
	assert.Contains(t, body, "1 of 4")
	assert.Contains(t, body, `<span class="nav-btn disabled">&larr; Previous</span>`)
	assert.Contains(t, body, `href="/scenes/1"`)
	assert.Contains(t, body, "<svg")
}

func TestLastSceneDisablesNext(t *testing.T) {
	srv := storyServer(t)
	rec := get(srv, "/scenes/3")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "4 of 4")
	assert.Contains(t, body, `<span class="nav-btn disabled">Next &rarr;</span>`)
	assert.Contains(t, body, `href="/scenes/2"`)
}

func TestOutOfRangeSceneRedirects(t *testing.T) {
	srv := storyServer(t)
	require.Equal(t, http.StatusOK, get(srv, "/scenes/1").Code)

	for _, target := range []string{"/scenes/4", "/scenes/-1", "/scenes/abc"} {
		rec := get(srv, target)
		assert.Equal(t, http.StatusFound, rec.Code, target)
		assert.Equal(t, "/scenes/1", rec.Header().Get("Location"), target)
	}
	// the failed transitions must not have moved the story
	assert.Equal(t, 1, srv.ctrl.Current())
}

func TestExploreMetricSelection(t *testing.T) {
	srv := storyServer(t)

	rec := get(srv, "/scenes/3?metric=co2")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<option value="co2" selected>`)
	assert.Contains(t, body, "CO2 Emissions: 33 Gt")
	assert.Equal(t, dataset.MetricCO2, srv.currentMetric())

	// an unknown metric keeps the previous one
	rec = get(srv, "/scenes/3?metric=bogus")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<option value="co2" selected>`)
	assert.Equal(t, dataset.MetricCO2, srv.currentMetric())
}

func TestExploreKeepsMetricWithoutPoints(t *testing.T) {
	ds, err := dataset.Read(strings.NewReader(
		`year,urban_population_billion,rural_population_billion,global_energy_consumption_quads,global_co2_emission_gt
2018,4.2,3.4,580,x
2019,4.3,3.3,590,y
`))
	require.NoError(t, err)
	srv := testServer(t, Options{
		Dataset: ds,
		Scenes:  scene.Sequence(scene.DefaultGeometry(), dataset.MetricUrban),
		Metric:  dataset.MetricUrban,
	})

	rec := get(srv, "/scenes/3?metric=co2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<option value="urban" selected>`)
	assert.Equal(t, dataset.MetricUrban, srv.currentMetric())
}

func TestLoadFailureShell(t *testing.T) {
	srv := testServer(t, Options{
		LoadErr: errors.New("no such file"),
	})

	for _, target := range []string{"/scenes/0", "/scenes/3"} {
		rec := get(srv, target)
		require.Equal(t, http.StatusOK, rec.Code, target)
		body := rec.Body.String()
		assert.Contains(t, body, loadErrorMessage, target)
		assert.Contains(t, body, `<span class="nav-btn disabled">&larr; Previous</span>`, target)
		assert.Contains(t, body, `<span class="nav-btn disabled">Next &rarr;</span>`, target)
		assert.NotContains(t, body, "<svg", target)
	}
}

func TestHealth(t *testing.T) {
	srv := storyServer(t)
	rec := get(srv, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	degraded := testServer(t, Options{LoadErr: errors.New("boom")})
	rec = get(degraded, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"degraded"}`, rec.Body.String())
}

func TestStaticAssets(t *testing.T) {
	srv := storyServer(t)
	for _, target := range []string{"/static/app.js", "/static/style.css"} {
		rec := get(srv, target)
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.NotZero(t, rec.Body.Len(), target)
	}
}

func TestNewRequiresLoggerAndScenes(t *testing.T) {
	_, err := New(nil, Options{Scenes: scene.Sequence(scene.DefaultGeometry(), dataset.MetricUrban)})
	assert.Error(t, err)

	_, err = New(zap.NewNop(), Options{})
	assert.Error(t, err)
}
