package main

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickhole/internal/config"
	"github.com/vovakirdan/brickhole/internal/storage"
)

func testSimOptions(seed int64) simOptions {
	return simOptions{
		Variant:   "classic",
		Seed:      seed,
		Cols:      80,
		Rows:      24,
		MaxFrames: 3000,
		TickRate:  60,
		Aim:       0.6,
	}
}

func TestSimulateDeterministic(t *testing.T) {
	cfg := config.DefaultBrickholeConfig()
	logger := log.New(io.Discard)

	a, err := simulate(context.Background(), cfg, testSimOptions(42), logger)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	b, err := simulate(context.Background(), cfg, testSimOptions(42), logger)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	if a != b {
		t.Errorf("same seed produced different results: %+v vs %+v", a, b)
	}
	if a.Frames == 0 || a.Frames > 3000 {
		t.Errorf("Frames = %d, expected 1..3000", a.Frames)
	}
	if a.Level < 1 {
		t.Errorf("Level = %d, expected at least 1", a.Level)
	}
}

func TestSimulateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := simulate(ctx, config.DefaultBrickholeConfig(), testSimOptions(1), log.New(io.Discard))
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if res.Outcome != storage.OutcomeAbandoned || res.Frames != 0 {
		t.Errorf("cancelled run = %+v, expected abandoned with 0 frames", res)
	}
}

func TestSimulateRejects(t *testing.T) {
	cfg := config.DefaultBrickholeConfig()
	logger := log.New(io.Discard)

	tests := []struct {
		name string
		opts func(*simOptions)
	}{
		{"tiny arena", func(o *simOptions) { o.Cols, o.Rows = 10, 5 }},
		{"unknown variant", func(o *simOptions) { o.Variant = "plasma" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testSimOptions(1)
			tt.opts(&opts)
			if _, err := simulate(context.Background(), cfg, opts, logger); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
