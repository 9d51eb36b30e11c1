// Package server exposes the workflow validator over HTTP for the canvas
// editor. The validator never chooses status codes: a parseable workflow
// always yields 200 with the full result, valid or not, and the editor
// renders errors as blocking and warnings as advisory.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avi3tal/flowguard/pkg/validation"
	"github.com/avi3tal/flowguard/pkg/workflow"
)

// Server wires the validator behind a gin router.
type Server struct {
	engine    *gin.Engine
	validator *validation.Validator
	logger    *slog.Logger
}

// New builds a Server around the given validator.
func New(v *validation.Validator, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), accessLog(logger))

	s := &Server{engine: engine, validator: v, logger: logger}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	api.POST("/workflows/validate", s.handleValidate)
	api.POST("/workflows/cycles", s.handleCycles)
	api.POST("/workflows/entrypoint", s.handleEntryPoint)

	return s
}

// Handler returns the router for use with httptest or a custom listener.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return s.engine.Run(addr)
}

func (s *Server) handleValidate(c *gin.Context) {
	var wf workflow.WorkflowDefinition
	if err := c.ShouldBindJSON(&wf); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workflow payload"})
		return
	}

	result := s.validator.Validate(&wf)
	observeResult(result)
	s.logger.Info("workflow validated",
		"request_id", c.GetString("request_id"),
		"workflow", wf.Name,
		"valid", result.Valid,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
	)
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleCycles(c *gin.Context) {
	var wf workflow.WorkflowDefinition
	if err := c.ShouldBindJSON(&wf); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workflow payload"})
		return
	}

	findings := s.validator.DetectCycles(&wf)
	if findings == nil {
		findings = []validation.Finding{}
	}
	c.JSON(http.StatusOK, gin.H{"findings": findings})
}

func (s *Server) handleEntryPoint(c *gin.Context) {
	var wf workflow.WorkflowDefinition
	if err := c.ShouldBindJSON(&wf); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workflow payload"})
		return
	}

	if entry, ok := s.validator.FindEntryNode(&wf); ok {
		c.JSON(http.StatusOK, gin.H{"entry_point": entry})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry_point": nil})
}
