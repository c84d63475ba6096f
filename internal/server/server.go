// Package server exposes the scenes over HTTP: each scene is an HTML page
// with prev/next navigation, a scene indicator, a tooltip overlay and, on
// the explore scene, a metric selector.
package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/venek/scenery/internal/dataset"
	"github.com/venek/scenery/internal/nav"
	"github.com/venek/scenery/internal/scene"
)

//go:embed web
var webFS embed.FS

// loadErrorMessage replaces the title when the dataset could not be
// loaded. It is the only externally visible error channel.
const loadErrorMessage = "Failed to load the dataset. The story cannot be told."

// Config holds the HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// Server wires the navigation controller, the scenes and the dataset
// behind an echo instance.
type Server struct {
	echo   *echo.Echo
	logger *zap.Logger
	config *Config

	ctrl    *nav.Controller
	scenes  []scene.Scene
	ds      *dataset.Dataset
	loadErr error

	page *template.Template

	// metric is the last metric the explore scene rendered without
	// error; a failing selection keeps it.
	mu     sync.Mutex
	metric dataset.Metric
}

// Options carries everything New needs. LoadErr marks the terminal
// data-load failure state: the server still answers but every page is
// the fixed error shell with navigation disabled.
type Options struct {
	Config  *Config
	Dataset *dataset.Dataset
	LoadErr error
	Scenes  []scene.Scene
	Metric  dataset.Metric
}

func New(logger *zap.Logger, opts Options) (*Server, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if len(opts.Scenes) == 0 && opts.LoadErr == nil {
		return nil, fmt.Errorf("at least one scene is required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 8080,
		}
	}

	page, err := template.ParseFS(webFS, "web/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	})

	s := &Server{
		echo:    e,
		logger:  logger,
		config:  cfg,
		ctrl:    nav.New(max(len(opts.Scenes), 1)),
		scenes:  opts.Scenes,
		ds:      opts.Dataset,
		loadErr: opts.LoadErr,
		page:    page,
		metric:  opts.Metric,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", s.handleRoot)
	s.echo.GET("/scenes/:index", s.handleScene)
	s.echo.GET("/healthz", s.handleHealth)
	s.echo.StaticFS("/static", echo.MustSubFS(webFS, "web/static"))
}

type pageData struct {
	Title        string
	Indicator    string
	PrevHref     string
	NextHref     string
	PrevDisabled bool
	NextDisabled bool
	SVG          template.HTML
	Hover        []scene.HoverPoint
	Options      []scene.MetricOption
	Error        string
}

func scenePath(i int) string {
	return "/scenes/" + strconv.Itoa(i)
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.Redirect(http.StatusFound, scenePath(s.ctrl.Current()))
}

func (s *Server) handleHealth(c echo.Context) error {
	status := "ok"
	if s.loadErr != nil {
		status = "degraded"
	}
	return c.JSON(http.StatusOK, map[string]string{"status": status})
}

// handleScene is the navigation transition: an in-range index becomes the
// current scene and is rendered; anything else is ignored and the client
// is sent back to the scene it was on.
func (s *Server) handleScene(c echo.Context) error {
	if s.loadErr != nil {
		return s.renderError(c)
	}
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil || !s.ctrl.GoTo(idx) {
		s.logger.Debug("ignoring out of range scene index", zap.String("index", c.Param("index")))
		return c.Redirect(http.StatusFound, scenePath(s.ctrl.Current()))
	}

	view, err := s.buildView(c, s.scenes[idx])
	if err != nil {
		s.logger.Error("scene build failed", zap.Int("scene", idx), zap.Error(err))
		return s.renderEmpty(c, s.scenes[idx].Title())
	}

	st := s.ctrl.State()
	return s.renderPage(c, pageData{
		Title:        view.Title,
		Indicator:    st.Indicator,
		PrevHref:     scenePath(st.Prev),
		NextHref:     scenePath(st.Next),
		PrevDisabled: st.PrevDisabled,
		NextDisabled: st.NextDisabled,
		SVG:          template.HTML(view.SVG),
		Hover:        view.Hover,
		Options:      view.Options,
	})
}

// buildView renders the scene. On the explore scene the metric query
// parameter selects the line; a selection with no valid points keeps the
// previously rendered metric and only logs the failure.
func (s *Server) buildView(c echo.Context, sc scene.Scene) (*scene.View, error) {
	ex, ok := sc.(*scene.Explore)
	if !ok {
		return sc.Build(s.ds)
	}

	want := s.currentMetric()
	if raw := c.QueryParam("metric"); raw != "" {
		m, err := dataset.ParseMetric(raw)
		if err != nil {
			s.logger.Warn("falling back to previous metric", zap.String("metric", raw), zap.Error(err))
		} else {
			want = m
		}
	}

	used := want
	view, err := ex.BuildMetric(s.ds, want)
	if errors.Is(err, scene.ErrNoPoints) && want != s.currentMetric() {
		s.logger.Warn("metric has no valid points, keeping previous", zap.String("metric", string(want)), zap.Error(err))
		used = s.currentMetric()
		view, err = ex.BuildMetric(s.ds, used)
	}
	if err != nil {
		return nil, err
	}
	s.setMetric(used)
	return view, nil
}

func (s *Server) currentMetric() dataset.Metric {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metric
}

func (s *Server) setMetric(m dataset.Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metric = m
}

func (s *Server) renderError(c echo.Context) error {
	return s.renderPage(c, pageData{
		Title:        loadErrorMessage,
		Indicator:    "",
		PrevDisabled: true,
		NextDisabled: true,
		Error:        loadErrorMessage,
	})
}

func (s *Server) renderEmpty(c echo.Context, title string) error {
	st := s.ctrl.State()
	return s.renderPage(c, pageData{
		Title:        title,
		Indicator:    st.Indicator,
		PrevHref:     scenePath(st.Prev),
		NextHref:     scenePath(st.Next),
		PrevDisabled: st.PrevDisabled,
		NextDisabled: st.NextDisabled,
		Error:        "No data to display for this scene.",
	})
}

func (s *Server) renderPage(c echo.Context, data pageData) error {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// Start starts the HTTP server and blocks until it is shut down.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	err := s.echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
