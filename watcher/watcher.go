package watcher

import (
	"context"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"vidscribe/cache"
	"vidscribe/config"
	"vidscribe/events"
	"vidscribe/feeds"
	"vidscribe/pipeline"
	"vidscribe/storage"
	"vidscribe/types"
)

const defaultSchedule = "@every 30m"

// Runner is the slice of the pipeline the watcher needs.
type Runner interface {
	Process(ctx context.Context, videoURL string, options types.GenerationOptions, onProgress pipeline.ProgressFunc) *types.PipelineResult
}

// Watcher polls configured channel feeds on a cron schedule and runs the
// pipeline for every upload it has not seen before.
type Watcher struct {
	channels  []string
	schedule  string
	runner    Runner
	cache     *cache.Cache
	uploader  *storage.Uploader
	publisher *events.Publisher
	cron      *cron.Cron

	mu     sync.Mutex
	seen   map[string]bool
	primed map[string]bool
}

// NewFromEnv builds a watcher from WATCH_CHANNELS (comma-separated channel
// IDs) and WATCH_SCHEDULE (cron expression, default every 30 minutes).
// Returns nil when no channels are configured.
func NewFromEnv(runner Runner, c *cache.Cache, uploader *storage.Uploader, publisher *events.Publisher) *Watcher {
	raw := strings.TrimSpace(os.Getenv("WATCH_CHANNELS"))
	if raw == "" {
		return nil
	}

	var channels []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			channels = append(channels, id)
		}
	}
	if len(channels) == 0 {
		return nil
	}

	schedule := os.Getenv("WATCH_SCHEDULE")
	if schedule == "" {
		schedule = defaultSchedule
	}

	return &Watcher{
		channels:  channels,
		schedule:  schedule,
		runner:    runner,
		cache:     c,
		uploader:  uploader,
		publisher: publisher,
		cron:      cron.New(),
		seen:      make(map[string]bool),
		primed:    make(map[string]bool),
	}
}

// Start registers the cron job and begins polling.
func (w *Watcher) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.pollAll); err != nil {
		return err
	}
	w.cron.Start()
	log.Printf("Watching %d channel(s) on schedule %q", len(w.channels), w.schedule)

	// Prime the seen sets so a fresh start does not process the backlog.
	go w.pollAll()
	return nil
}

// Stop halts the cron scheduler. In-flight polls finish on their own.
func (w *Watcher) Stop() {
	w.cron.Stop()
}

func (w *Watcher) pollAll() {
	ctx := context.Background()
	for _, channelID := range w.channels {
		if err := w.pollChannel(ctx, channelID); err != nil {
			log.Printf("Channel %s poll failed: %v", channelID, err)
		}
	}
}

func (w *Watcher) pollChannel(ctx context.Context, channelID string) error {
	entries, err := feeds.FetchChannelUploads(ctx, channelID, config.DefaultFeedCount)
	if err != nil {
		return err
	}

	first := w.primeChannel(channelID)

	processed := 0
	for _, entry := range entries {
		isNew, err := w.markSeen(ctx, channelID, entry.VideoID)
		if err != nil {
			log.Printf("Seen-set update failed for %s: %v", entry.VideoID, err)
			continue
		}
		if !isNew || first {
			continue
		}

		log.Printf("New upload on %s: %s (%s)", channelID, entry.Title, entry.VideoID)
		result := w.runner.Process(ctx, entry.URL, types.GenerationOptions{}, nil)
		if !result.Success {
			log.Printf("Pipeline failed for %s: %s", entry.VideoID, result.Error)
			continue
		}

		processed++
		if w.uploader != nil {
			if err := w.uploader.UploadResult(ctx, result); err != nil {
				log.Printf("S3 upload failed for %s: %v", entry.VideoID, err)
			}
		}
		if w.publisher != nil {
			if err := w.publisher.PublishResult(result); err != nil {
				log.Printf("Kafka publish failed for %s: %v", entry.VideoID, err)
			}
		}
	}

	if processed > 0 {
		log.Printf("Channel %s: processed %d new upload(s)", channelID, processed)
	}
	return nil
}

// primeChannel reports whether this is the first poll for the channel.
func (w *Watcher) primeChannel(channelID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.primed[channelID] {
		return false
	}
	w.primed[channelID] = true
	return true
}

// markSeen records the video in Redis when available, falling back to the
// in-memory set. Returns true when the video was not seen before.
func (w *Watcher) markSeen(ctx context.Context, channelID, videoID string) (bool, error) {
	if w.cache != nil && w.cache.Enabled() {
		return w.cache.MarkSeen(ctx, channelID, videoID)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	key := channelID + ":" + videoID
	if w.seen[key] {
		return false, nil
	}
	w.seen[key] = true
	return true, nil
}
