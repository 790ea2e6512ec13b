// Package server exposes the verification pipeline over HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/factlens/factlens/internal/cache"
	"github.com/factlens/factlens/internal/kg"
	"github.com/factlens/factlens/internal/pipeline"
)

// Server handles verification requests. The pipeline never errors, so
// the only failure a caller can see is a malformed request body; every
// verification outcome is a 200 with a well-formed result.
type Server struct {
	verifier *pipeline.Verifier
	graph    *kg.Graph
	cache    cache.Cache
	cacheTTL time.Duration
}

// New creates a server. A nil responseCache disables response caching.
func New(verifier *pipeline.Verifier, graph *kg.Graph, responseCache cache.Cache, cacheTTL time.Duration) *Server {
	return &Server{
		verifier: verifier,
		graph:    graph,
		cache:    responseCache,
		cacheTTL: cacheTTL,
	}
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Use(requestID(), cors())

	r.POST("/verify", s.handleVerify)
	r.GET("/healthz", s.handleHealth)

	return r
}

type verifyRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleVerify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	key := cache.Key(req.Text)
	if s.cache != nil {
		if body, ok := s.cache.Get(key); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			return
		}
	}

	result := s.verifier.Verify(c.Request.Context(), req.Text)

	if s.cache != nil {
		if body, err := json.Marshal(result); err == nil {
			s.cache.Set(key, body, s.cacheTTL)
		}
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleHealth(c *gin.Context) {
	entities, sources, facts := s.graph.Counts()
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"entities": entities,
		"sources":  sources,
		"facts":    facts,
	})
}
