// Package transport exposes the engine state and batch analysis over HTTP.
package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/goodnatureofminers/chainguard-backend/internal/engine"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/alert"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/profile"
	"github.com/goodnatureofminers/chainguard-backend/internal/service/batch"
	"go.uber.org/zap"
)

const (
	defaultLiveLimit       = 10
	defaultHighRiskLimit   = 20
	defaultSuspiciousLimit = 50
	defaultTopProfiles     = 20
	maxLimit               = 1000
	historyPoints          = 100
	reportCacheSize        = 32
	maxUploadBytes         = 32 << 20
	maxSampleRows          = 10_000
)

// Deps are the collaborators served by the handler. Monitor and Analyzer are optional.
type Deps struct {
	Engine   Engine
	Alerts   Alerts
	Profiles Profiles
	Monitor  Monitor
	Analyzer Analyzer
}

// MonitoringHandler serves the monitoring API.
type MonitoringHandler struct {
	deps   Deps
	logger *zap.Logger

	mu      sync.Mutex
	reports *alert.Ring[batch.Report]
}

// NewMonitoringHandler validates deps and returns a handler.
func NewMonitoringHandler(deps Deps, logger *zap.Logger) (*MonitoringHandler, error) {
	if deps.Engine == nil || deps.Alerts == nil || deps.Profiles == nil {
		return nil, errors.New("monitoring handler requires engine, alerts and profiles")
	}
	return &MonitoringHandler{
		deps:    deps,
		logger:  logger.Named("monitoringHandler"),
		reports: alert.NewRing[batch.Report](reportCacheSize, alert.NewestFirst),
	}, nil
}

// Router builds a gin engine with every route under /api.
func (h *MonitoringHandler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.logRequests())
	h.RegisterRoutes(r.Group("/api"))
	return r
}

// RegisterRoutes mounts the monitoring routes.
func (h *MonitoringHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.Health)

	r.GET("/monitoring/metrics", h.Metrics)
	r.GET("/monitoring/transactions", h.Transactions)
	r.GET("/monitoring/fraud-history", h.FraudHistory)
	r.GET("/monitoring/stats", h.Stats)
	r.GET("/monitoring/high-risk", h.HighRisk)
	r.GET("/monitoring/suspicious-alerts", h.SuspiciousAlerts)

	r.GET("/nodes/top", h.TopProfiles)
	r.GET("/nodes/flagged", h.FlaggedProfiles)
	r.GET("/nodes/:address", h.Profile)
	r.POST("/nodes/:address/flag", h.Flag)

	r.GET("/csv/sample", h.Sample)
	if h.deps.Analyzer != nil {
		r.POST("/csv/analyze", h.AnalyzeCSV)
		r.GET("/csv/report/:id", h.Report)
	}
}

func (h *MonitoringHandler) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
		}
		if status >= http.StatusInternalServerError {
			h.logger.Error("request failed", append(fields, zap.Strings("errors", c.Errors.Errors()))...)
			return
		}
		h.logger.Debug("request served", fields...)
	}
}

// Health handles GET /api/health
func (h *MonitoringHandler) Health(c *gin.Context) {
	snap := h.deps.Engine.Metrics()
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"scorer":    snap.Scorer,
		"connected": snap.Connected,
		"active":    h.active(),
	})
}

type metricsResponse struct {
	engine.Snapshot
	Active                bool `json:"is_active"`
	HighRiskCount         int  `json:"high_risk_count"`
	SuspiciousAlertsCount int  `json:"suspicious_alerts_count"`
}

// Metrics handles GET /api/monitoring/metrics
func (h *MonitoringHandler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, metricsResponse{
		Snapshot:              h.deps.Engine.Metrics(),
		Active:                h.active(),
		HighRiskCount:         len(h.deps.Alerts.HighRisk(0)),
		SuspiciousAlertsCount: len(h.deps.Alerts.Suspicious(0)),
	})
}

// Transactions handles GET /api/monitoring/transactions
func (h *MonitoringHandler) Transactions(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Alerts.Live(parseLimit(c, defaultLiveLimit)))
}

// FraudHistory handles GET /api/monitoring/fraud-history
func (h *MonitoringHandler) FraudHistory(c *gin.Context) {
	history := h.deps.Alerts.History()
	if len(history) > historyPoints {
		history = history[len(history)-historyPoints:]
	}
	c.JSON(http.StatusOK, history)
}

// Stats handles GET /api/monitoring/stats
func (h *MonitoringHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Alerts.Stats())
}

// HighRisk handles GET /api/monitoring/high-risk
func (h *MonitoringHandler) HighRisk(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Alerts.HighRisk(parseLimit(c, defaultHighRiskLimit)))
}

// SuspiciousAlerts handles GET /api/monitoring/suspicious-alerts
func (h *MonitoringHandler) SuspiciousAlerts(c *gin.Context) {
	all := h.deps.Alerts.Suspicious(0)
	limit := parseLimit(c, defaultSuspiciousLimit)
	alerts := all
	if len(alerts) > limit {
		alerts = alerts[:limit]
	}
	c.JSON(http.StatusOK, gin.H{
		"alerts":       alerts,
		"total_alerts": len(all),
	})
}

// TopProfiles handles GET /api/nodes/top
func (h *MonitoringHandler) TopProfiles(c *gin.Context) {
	profiles, err := h.deps.Profiles.Top(c.Request.Context(), parseLimit(c, defaultTopProfiles))
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": nonNil(profiles), "count": len(profiles)})
}

// FlaggedProfiles handles GET /api/nodes/flagged
func (h *MonitoringHandler) FlaggedProfiles(c *gin.Context) {
	profiles, err := h.deps.Profiles.Flagged(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": nonNil(profiles), "count": len(profiles)})
}

// Profile handles GET /api/nodes/:address
func (h *MonitoringHandler) Profile(c *gin.Context) {
	p, found, err := h.deps.Profiles.Get(c.Request.Context(), c.Param("address"))
	if err != nil {
		h.internalError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Address has no profile"})
		return
	}
	c.JSON(http.StatusOK, p)
}

type flagRequest struct {
	Flagged *bool `json:"flagged"`
}

// Flag handles POST /api/nodes/:address/flag
func (h *MonitoringHandler) Flag(c *gin.Context) {
	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Flagged == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": `Body must be {"flagged": bool}`})
		return
	}

	p, err := h.deps.Profiles.SetFlagged(c.Request.Context(), c.Param("address"), *req.Flagged)
	if err != nil {
		if errors.Is(err, profile.ErrInvalidAddress) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_address", "message": err.Error()})
			return
		}
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// AnalyzeCSV handles POST /api/csv/analyze. Multipart requests carry the file
// in the "file" field; any other request carries it as the body.
func (h *MonitoringHandler) AnalyzeCSV(c *gin.Context) {
	body, err := uploadedFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}
	defer func() {
		_ = body.Close()
	}()

	res, err := h.deps.Analyzer.AnalyzeCSV(c.Request.Context(), body, nil)
	if err != nil {
		if errors.Is(err, batch.ErrMissingColumn) || errors.Is(err, batch.ErrEmptyInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_csv", "message": err.Error()})
			return
		}
		h.internalError(c, err)
		return
	}

	h.mu.Lock()
	h.reports.Push(res.Report)
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"report_id":       res.Report.ID,
		"total_processed": len(res.Transactions),
		"results":         nonNil(res.Transactions),
		"report":          res.Report,
		"row_errors":      rowErrors(res.RowErrors),
	})
}

// Report handles GET /api/csv/report/:id?format=txt|json
func (h *MonitoringHandler) Report(c *gin.Context) {
	report, ok := h.findReport(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Report not found"})
		return
	}

	var buf bytes.Buffer
	switch format := c.DefaultQuery("format", "txt"); format {
	case "json":
		c.JSON(http.StatusOK, report)
		return
	case "txt":
		if err := report.WriteText(&buf); err != nil {
			h.internalError(c, err)
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_format", "message": fmt.Sprintf("unknown format %q", format)})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="chainguard_report_%s.txt"`, report.ID))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

// Sample handles GET /api/csv/sample?rows=50&seed=1
func (h *MonitoringHandler) Sample(c *gin.Context) {
	rows, err := strconv.Atoi(c.DefaultQuery("rows", "50"))
	if err != nil || rows <= 0 || rows > maxSampleRows {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_rows", "message": fmt.Sprintf("rows must be within 1..%d", maxSampleRows)})
		return
	}
	seed, err := strconv.ParseInt(c.DefaultQuery("seed", "1"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_seed", "message": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := batch.GenerateSample(&buf, rows, seed); err != nil {
		h.internalError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *MonitoringHandler) findReport(id string) (batch.Report, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.reports.Snapshot(0) {
		if r.ID == id {
			return r, true
		}
	}
	return batch.Report{}, false
}

func (h *MonitoringHandler) active() bool {
	return h.deps.Monitor != nil && h.deps.Monitor.Active()
}

func (h *MonitoringHandler) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
}

func uploadedFile(c *gin.Context) (io.ReadCloser, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("no file uploaded: %w", err)
		}
		if !strings.HasSuffix(strings.ToLower(fh.Filename), ".csv") {
			return nil, errors.New("please upload a CSV file")
		}
		return openPart(fh)
	}
	if c.Request.ContentLength == 0 {
		return nil, errors.New("empty request body")
	}
	return c.Request.Body, nil
}

func openPart(fh *multipart.FileHeader) (io.ReadCloser, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	return f, nil
}

type rowError struct {
	Line    int    `json:"line"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

func rowErrors(errs []*batch.RowParseError) []rowError {
	out := make([]rowError, 0, len(errs))
	for _, e := range errs {
		out = append(out, rowError{Line: e.Line, Column: e.Column, Message: e.Err.Error()})
	}
	return out
}

func parseLimit(c *gin.Context, def int) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 {
		return def
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
