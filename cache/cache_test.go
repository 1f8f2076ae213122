package cache

import (
	"context"
	"testing"
	"time"
)

func TestDisabledCacheBehavior(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	c := New()
	ctx := context.Background()

	if c.Enabled() {
		t.Fatal("cache should be disabled without REDIS_ADDR")
	}

	var dest map[string]string
	hit, err := c.GetJSON(ctx, "any", &dest)
	if err != nil || hit {
		t.Fatalf("GetJSON on disabled cache: hit=%v err=%v", hit, err)
	}

	if err := c.SetJSON(ctx, "any", map[string]string{"a": "b"}, time.Minute); err != nil {
		t.Fatalf("SetJSON on disabled cache: %v", err)
	}

	// A disabled cache cannot remember sightings, so everything is unseen.
	isNew, err := c.MarkSeen(ctx, "UCabc", "vid1")
	if err != nil || !isNew {
		t.Fatalf("MarkSeen on disabled cache: new=%v err=%v", isNew, err)
	}
}

func TestCacheKeys(t *testing.T) {
	if got := MetadataKey("dQw4w9WgXcQ"); got != "vidscribe:metadata:dQw4w9WgXcQ" {
		t.Fatalf("MetadataKey = %q", got)
	}
	if got := TranscriptKey("dQw4w9WgXcQ"); got != "vidscribe:transcript:dQw4w9WgXcQ" {
		t.Fatalf("TranscriptKey = %q", got)
	}
	if got := seenKey("UCabc"); got != "vidscribe:seen:UCabc" {
		t.Fatalf("seenKey = %q", got)
	}
}
