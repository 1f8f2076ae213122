package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"vidscribe/analysis"
	"vidscribe/cache"
	"vidscribe/events"
	"vidscribe/generator"
	"vidscribe/metadata"
	"vidscribe/pipeline"
	"vidscribe/storage"
	"vidscribe/transcript"
	"vidscribe/types"
)

// PipelineRunner abstracts the processing pipeline for the SSE endpoint.
// Satisfied by *pipeline.ProcessingPipeline; tests supply fakes.
type PipelineRunner interface {
	Process(ctx context.Context, videoURL string, options types.GenerationOptions, onProgress pipeline.ProgressFunc) *types.PipelineResult
}

// Server bundles the stage services behind the HTTP API.
// Analyzer and Generator may be nil when no LLM is configured; their routes
// then report an error instead of failing at startup.
type Server struct {
	Metadata   *metadata.Fetcher
	Transcript *transcript.Fetcher
	Analyzer   *analysis.Analyzer
	Generator  *generator.Generator
	Cache      *cache.Cache
	Pipeline   PipelineRunner
	Uploader   *storage.Uploader
	Publisher  *events.Publisher
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	s.RegisterStageRoutes(r)
	s.RegisterProcessRoutes(r)
	s.RegisterVideoRoutes(r)
	RegisterHealthRoutes(r)
	return r
}

// RegisterStageRoutes registers the four stage endpoints the pipeline
// calls back into.
func (s *Server) RegisterStageRoutes(r *gin.Engine) {
	g := r.Group("/api")
	g.POST("/metadata", s.handleMetadata)
	g.GET("/transcript", s.handleTranscript)
	g.POST("/analyze", s.handleAnalyze)
	g.POST("/generate", s.handleGenerate)
}

// RegisterProcessRoutes registers the streaming pipeline endpoint.
func (s *Server) RegisterProcessRoutes(r *gin.Engine) {
	r.POST("/api/process", s.handleProcess)
}

// RegisterVideoRoutes registers channel listing endpoints.
func (s *Server) RegisterVideoRoutes(r *gin.Engine) {
	r.GET("/api/videos", s.handleListVideos)
}

// corsMiddleware allows any origin, matching the open streaming contract.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
