package insight

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"edascope/internal/config"
)

// TestLiveStreamChat exercises the real endpoint end to end. It only runs
// when EDA_API_KEY is present.
func TestLiveStreamChat(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		_ = godotenv.Load(".env")
	}

	key := os.Getenv("EDA_API_KEY")
	if key == "" {
		t.Skip("Skipping live test: EDA_API_KEY not set")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load config failed: %v", err)
	}

	client := NewClient(cfg.AI)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	stream, err := client.StreamChat(ctx, "Reply with the single word: ok")
	if err != nil {
		t.Fatalf("StreamChat failed: %v", err)
	}

	text, err := Collect(stream)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if text == "" {
		t.Error("Expected a non-empty model response")
	}
	t.Logf("Model replied: %q", text)
}
