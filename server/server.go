// Package server exposes the layout engine over HTTP. Each request loads a
// graph, runs a fixed number of steps and returns the rendered result; no
// graph outlives its request.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TFMV/springgraph/config"
	"github.com/TFMV/springgraph/ingest"
	"github.com/TFMV/springgraph/models"
	"github.com/TFMV/springgraph/render"
	"github.com/TFMV/springgraph/sim"
)

// Server is the HTTP host.
type Server struct {
	cfg    config.Config
	logger *log.Logger
	engine *gin.Engine
}

// New creates a server. A nil logger defaults to log.Default().
func New(cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{cfg: cfg, logger: logger}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	engine.GET("/healthz", s.handleHealth)
	engine.GET("/v1/formats", s.handleFormats)
	engine.POST("/v1/layout", s.handleLayout)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.engine = engine

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"input":  []string{"adjacency", "json"},
		"output": render.Formats(),
	})
}

// layoutQuery holds the query parameters of POST /v1/layout.
type layoutQuery struct {
	steps  int
	dt     float64
	format string
	input  string
	labels bool
}

func (s *Server) parseQuery(c *gin.Context) (layoutQuery, error) {
	q := layoutQuery{
		steps:  s.cfg.Run.Steps,
		dt:     s.cfg.Run.DeltaTime,
		format: strings.ToLower(c.DefaultQuery("format", "json")),
		input:  strings.ToLower(c.DefaultQuery("input", "adjacency")),
		labels: c.Query("labels") == "true",
	}
	if v := c.Query("steps"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return q, fmt.Errorf("steps must be a non-negative integer, got %q", v)
		}
		q.steps = n
	}
	if q.steps > s.cfg.Server.MaxSteps {
		return q, fmt.Errorf("steps must not exceed %d", s.cfg.Server.MaxSteps)
	}
	if v := c.Query("dt"); v != "" {
		dt, err := strconv.ParseFloat(v, 64)
		if err != nil || dt < 0 {
			return q, fmt.Errorf("dt must be a non-negative number, got %q", v)
		}
		q.dt = dt
	}
	return q, nil
}

func (s *Server) handleLayout(c *gin.Context) {
	q, err := s.parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	renderer, err := render.GetRenderer(q.format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := ingest.Options{
		Strict:   s.cfg.Run.Strict,
		Params:   s.cfg.Simulation.Params(),
		MaxSpeed: s.cfg.Simulation.MaxSpeed,
	}
	processor, err := ingest.GetProcessor(q.input, opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Server.MaxBytes))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	}

	res, err := processor.ProcessData(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": ingest.KindOf(err)})
		return
	}
	defer res.Graph.Destroy()

	if s.cfg.Run.Scatter > 0 {
		sim.Scatter(res.Graph, s.cfg.Run.Scatter, s.cfg.Run.Seed)
	}

	runner := sim.NewRunner(res.Graph, sim.FixedClock{Step: q.dt}, s.viewport(), s.logger)
	if err := runner.Run(c.Request.Context(), q.steps); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	snap := models.Snapshot("layout", res.Graph, res.Labels, s.cfg.Viewport.Width, s.cfg.Viewport.Height)
	ropts := render.NewDefaultOptions(q.format)
	ropts.Width = s.cfg.Viewport.Width
	ropts.Height = s.cfg.Viewport.Height
	ropts.ShowLabels = q.labels

	out, err := renderer.Render(snap, ropts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, contentType(q.format), out)
}

func (s *Server) viewport() sim.Viewport {
	if !s.cfg.Viewport.Clamp {
		return sim.Viewport{}
	}
	return sim.Viewport{
		Width:   s.cfg.Viewport.Width,
		Height:  s.cfg.Viewport.Height,
		Padding: s.cfg.Viewport.Padding,
	}
}

func contentType(format string) string {
	switch format {
	case "svg":
		return "image/svg+xml"
	case "json":
		return "application/json"
	case "dot":
		return "text/vnd.graphviz"
	default:
		return "text/plain; charset=utf-8"
	}
}
