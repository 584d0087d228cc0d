package httpserver

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/feedpulse/feedpulse/internal/freshness"
	"github.com/feedpulse/feedpulse/internal/metrics"
	"github.com/feedpulse/feedpulse/internal/model"
	"github.com/feedpulse/feedpulse/internal/series"
)

// DashboardStore is the narrow store contract required by the HTTP API.
type DashboardStore interface {
	Suppliers() ([]model.SupplierSnapshot, error)
	AllActivitySeries(days int) (map[string][]series.TimePoint, error)
	TotalSupplierCount() (int64, error)
}

// Server provides the dashboard's HTTP API.
type Server struct {
	addr        string
	store       DashboardStore
	thresholds  freshness.Thresholds
	historyDays int
	server      *http.Server
	ctx         context.Context
	cancel      context.CancelFunc
	startTime   time.Time
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, store DashboardStore, th freshness.Thresholds, historyDays int) *Server {
	if addr == "" {
		addr = "0.0.0.0:3000"
	}
	if historyDays <= 0 {
		historyDays = model.DefaultHistoryDays
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:        addr,
		store:       store,
		thresholds:  th,
		historyDays: historyDays,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/suppliers", s.handleSuppliers)
	r.GET("/api/summary", s.handleSummary)
	r.GET("/api/activity", s.handleActivity)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	count, err := s.store.TotalSupplierCount()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read health metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"uptime":    time.Since(s.startTime).String(),
		"suppliers": count,
	})
}

// classify loads the stored snapshots and classifies them at request time.
// Per-item failures are returned as data; only a store or thresholds
// failure is an error.
func (s *Server) classify() (freshness.Result, error) {
	snaps, err := s.store.Suppliers()
	if err != nil {
		return freshness.Result{}, err
	}
	res, err := freshness.ClassifyAll(snaps, s.thresholds, time.Now())
	if err != nil {
		return freshness.Result{}, err
	}
	metrics.ClassifyErrorsTotal.Add(float64(len(res.Errors)))
	return res, nil
}

type supplierError struct {
	Supplier string `json:"supplier"`
	Error    string `json:"error"`
}

func supplierErrors(errs []freshness.ClassifyError) []supplierError {
	out := make([]supplierError, 0, len(errs))
	for _, e := range errs {
		out = append(out, supplierError{Supplier: e.Supplier, Error: e.Err.Error()})
	}
	return out
}

func (s *Server) handleSuppliers(c *gin.Context) {
	res, err := s.classify()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suppliers": res.Classified,
		"errors":    supplierErrors(res.Errors),
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	res, err := s.classify()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": freshness.Summarize(res.Classified),
		"errors":  supplierErrors(res.Errors),
	})
}

func (s *Server) handleActivity(c *gin.Context) {
	days := s.historyDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = parsed
	}

	input, err := s.store.AllActivitySeries(days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rows, alignErrs := series.Align(input)
	errs := make([]gin.H, 0, len(alignErrs))
	for _, e := range alignErrs {
		errs = append(errs, gin.H{"series": e.Series, "date": e.Date, "error": e.Error()})
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":   rows,
		"errors": errs,
	})
}
