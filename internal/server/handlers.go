package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/specialistvlad/depscope/internal/depmap"
	"github.com/tidwall/gjson"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidMode    = "INVALID_MODE"
	CodeInvalidTarget  = "INVALID_TARGET"
	CodeInvalidGraph   = "INVALID_GRAPH"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// DependenciesRequest is the envelope of POST /v1/dependencies. Graph is
// decoded separately to keep its key order.
type DependenciesRequest struct {
	Target string `json:"target" validate:"required"`
	Mode   string `json:"mode" validate:"omitempty,oneof=entity raw"`
}

func (s *Server) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	v1.GET("/graph", s.handleGraph)
	v1.GET("/entities/:name/dependencies", s.handleEntityDependencies)
	v1.POST("/dependencies", s.handlePostDependencies)

	realtime := gin.WrapH(s.io.ServeHandler(nil))
	router.Any("/socket.io/*any", realtime)

	return router
}

// requestLogger tags every request with an X-Request-ID and logs it at
// debug level once served.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := getOrCreateRequestID(c)
		c.Next()
		s.logger.Debug("Request served.",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}

func (s *Server) handleHealth(c *gin.Context) {
	s.logger.Debug("Health check endpoint hit.", "remote_addr", c.Request.RemoteAddr)
	c.String(http.StatusOK, "OK\n")
}

// handleGraph returns the loaded inverse map in its original key order.
func (s *Server) handleGraph(c *gin.Context) {
	c.JSON(http.StatusOK, s.view.inverse)
}

func (s *Server) handleEntityDependencies(c *gin.Context) {
	logger := s.logger.With("request_id", c.Writer.Header().Get("X-Request-ID"), "handler", "EntityDependencies")

	mode, err := ParseMode(c.Query("mode"))
	if err != nil {
		logger.Warn("Invalid mode", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidMode})
		return
	}

	resp, err := s.query(c.Param("name"), mode, transportHTTP)
	if err != nil {
		logger.Warn("Invalid target", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidTarget})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePostDependencies(c *gin.Context) {
	logger := s.logger.With("request_id", c.Writer.Header().Get("X-Request-ID"), "handler", "PostDependencies")

	body, err := c.GetRawData()
	if err != nil || !gjson.ValidBytes(body) {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: CodeInvalidRequest})
		return
	}

	root := gjson.ParseBytes(body)
	req := DependenciesRequest{
		Target: root.Get("target").String(),
		Mode:   root.Get("mode").String(),
	}
	if err := s.validate.Struct(req); err != nil {
		logger.Warn("Request validation failed", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidRequest})
		return
	}

	graph := root.Get("graph")
	if !graph.Exists() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "graph is required", Code: CodeInvalidGraph})
		return
	}
	inverse, err := depmap.FromJSONResult(graph)
	if err != nil {
		logger.Warn("Invalid graph", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid graph: %v", err), Code: CodeInvalidGraph})
		return
	}

	mode, _ := ParseMode(req.Mode)
	target, err := normalizeTarget(req.Target, mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidTarget})
		return
	}

	resp := newGraphView(inverse).evaluate(target, mode)
	queriesTotal.WithLabelValues(string(mode), transportHTTP, cacheNone).Inc()
	logger.Debug("Posted graph evaluated.", "keys", inverse.Len(), "target", target, "mode", mode)
	c.JSON(http.StatusOK, resp)
}
