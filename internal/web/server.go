package web

import (
	"context"
	"embed"
	"html/template"
	"mime"
	"net/http"
	"strings"

	"wallet-analyzer-go/internal/config"
	"wallet-analyzer-go/internal/dashboard"
	"wallet-analyzer-go/internal/export"
	"wallet-analyzer-go/internal/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const exportPath = "/export"

// Server serves the dashboard page, the JSON API and ledger downloads.
type Server struct {
	router   *gin.Engine
	ctrl     *dashboard.Controller
	exporter *export.LedgerExporter
	display  config.Display
	logger   *zap.Logger
}

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	WalletAddress string `json:"wallet_address" form:"wallet_address"`
}

// StateResponse is returned by the JSON endpoints.
type StateResponse struct {
	State   dashboard.Snapshot `json:"state"`
	Results *view.Results      `json:"results,omitempty"`
}

type pageData struct {
	State   dashboard.Snapshot
	Results *view.Results
}

// NewServer creates the HTTP handler for the dashboard.
func NewServer(ctrl *dashboard.Controller, exporter *export.LedgerExporter, display config.Display, logger *zap.Logger) *Server {
	s := &Server{
		router:   gin.New(),
		ctrl:     ctrl,
		exporter: exporter,
		display:  display,
		logger:   logger.Named("web"),
	}

	tmpl := template.Must(template.New("").ParseFS(templatesFS, "templates/*.tmpl"))
	s.router.SetHTMLTemplate(tmpl)

	s.router.Use(AccessLogger(s.logger, "/health", "/api/state"), gin.Recovery())

	s.router.GET("/", s.indexHandler)
	s.router.POST("/analyze", s.analyzeFormHandler)
	s.router.GET(exportPath, s.exportHandler)
	s.router.GET("/health", s.healthHandler)

	api := s.router.Group("/api")
	api.GET("/state", s.stateHandler)
	api.POST("/analyze", s.analyzeHandler)

	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) results(snap dashboard.Snapshot) *view.Results {
	if !snap.HasResult() {
		return nil
	}
	return view.NewResults(snap.Result, view.Options{
		Location:    s.display.Location(),
		TimeLayout:  s.display.TimeLayout,
		ChartWidth:  s.display.ChartWidth,
		ChartHeight: s.display.ChartHeight,
		ExportPath:  exportPath,
	})
}

func (s *Server) indexHandler(c *gin.Context) {
	snap := s.ctrl.State()
	c.HTML(http.StatusOK, "index.html.tmpl", pageData{
		State:   snap,
		Results: s.results(snap),
	})
}

// analyzeFormHandler starts an analysis from the page form and sends the browser
// back to the page, which refreshes itself while the request is in flight.
func (s *Server) analyzeFormHandler(c *gin.Context) {
	address := c.PostForm("wallet_address")
	// The analysis outlives this request.
	s.ctrl.SubmitAsync(context.WithoutCancel(c.Request.Context()), address)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) analyzeHandler(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snap := s.ctrl.Submit(context.WithoutCancel(c.Request.Context()), req.WalletAddress)

	status := http.StatusOK
	switch {
	case strings.TrimSpace(req.WalletAddress) == "":
		status = http.StatusUnprocessableEntity
	case snap.Phase == dashboard.PhaseFailed:
		status = http.StatusBadGateway
	}
	c.JSON(status, StateResponse{State: snap, Results: s.results(snap)})
}

func (s *Server) stateHandler(c *gin.Context) {
	snap := s.ctrl.State()
	c.JSON(http.StatusOK, StateResponse{State: snap, Results: s.results(snap)})
}

func (s *Server) exportHandler(c *gin.Context) {
	snap := s.ctrl.State()
	if !snap.HasResult() {
		c.String(http.StatusNotFound, "no analysis result to export")
		return
	}

	err := s.exporter.With(snap.Result.TradeLedger, snap.Result.WalletAddress, func(d *export.Download) error {
		f, err := d.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		disposition := mime.FormatMediaType("attachment", map[string]string{"filename": d.Filename})
		if disposition == "" {
			disposition = "attachment"
		}
		c.DataFromReader(http.StatusOK, d.Size(), d.ContentType, f, map[string]string{
			"Content-Disposition": disposition,
		})
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to export ledger", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to export ledger")
	}
}

func (s *Server) healthHandler(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
