package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"vidscribe/analysis"
	"vidscribe/api"
	"vidscribe/cache"
	"vidscribe/client"
	"vidscribe/config"
	"vidscribe/events"
	"vidscribe/generator"
	"vidscribe/llm"
	"vidscribe/metadata"
	"vidscribe/pipeline"
	"vidscribe/storage"
	"vidscribe/transcript"
	"vidscribe/watcher"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	server, pipe := buildServer(addr)
	r := api.NewRouter(server)

	if w := watcher.NewFromEnv(pipe, server.Cache, server.Uploader, server.Publisher); w != nil {
		if err := w.Start(); err != nil {
			log.Printf("Warning: channel watcher failed to start: %v", err)
		} else {
			defer w.Stop()
		}
	}

	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/metadata")
	log.Println("  GET  /api/transcript")
	log.Println("  POST /api/analyze")
	log.Println("  POST /api/generate")
	log.Println("  POST /api/process")
	log.Println("  GET  /api/videos")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func buildServer(addr string) (*api.Server, *pipeline.ProcessingPipeline) {
	c := cache.New()

	var analyzer *analysis.Analyzer
	var gen *generator.Generator
	chat, err := llm.NewCohereChat(config.DefaultChatModel)
	if err != nil {
		log.Printf("Warning: %v. Analysis and generation will be disabled.", err)
	} else {
		analyzer = analysis.NewAnalyzer(chat)
		gen = generator.NewGenerator(chat)
	}

	uploader, err := storage.NewUploaderFromEnv(context.Background())
	if err != nil {
		log.Printf("Warning: S3 uploader unavailable: %v. Article archival will be disabled.", err)
	}

	publisher, err := events.NewPublisherFromEnv()
	if err != nil {
		log.Printf("Warning: Kafka producer unavailable: %v. Event publishing will be disabled.", err)
	}

	// Stage calls go over HTTP against this same server unless
	// STAGE_API_URL points somewhere else.
	stageURL := os.Getenv("STAGE_API_URL")
	if stageURL == "" {
		stageURL = "http://localhost" + addr
	}
	pipe := pipeline.New(client.NewStageClient(stageURL))

	server := &api.Server{
		Metadata:   metadata.NewFetcher(),
		Transcript: transcript.NewFetcher(),
		Analyzer:   analyzer,
		Generator:  gen,
		Cache:      c,
		Pipeline:   pipe,
		Uploader:   uploader,
		Publisher:  publisher,
	}
	return server, pipe
}
