package core

import (
	"context"
	"time"
)

// StepFunc advances the simulation by one frame and reports whether
// scheduling should continue.
type StepFunc func(frame uint64) bool

// Scheduler drives a step function once per frame on the calling goroutine.
// Steps never overlap: the next tick is only consumed after the previous step
// returns. Physics is frame-coupled, so the tick rate sets the game speed.
type Scheduler struct {
	interval time.Duration
	frames   uint64
}

// NewScheduler creates a scheduler for the given tick rate (ticks per second).
// Non-positive rates fall back to 60.
func NewScheduler(tickRate int) *Scheduler {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Scheduler{interval: time.Second / time.Duration(tickRate)}
}

// Interval returns the time between frames.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Frames returns how many frames have been stepped so far.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// Run paces step at the configured rate until ctx is cancelled or step returns false.
// A cancelled context is reported as its error; a step that stops returns nil.
func (s *Scheduler) Run(ctx context.Context, step StepFunc) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.frames++
			if !step(s.frames) {
				return nil
			}
		}
	}
}

// RunUnpaced steps back to back without waiting, up to maxFrames (0 = no limit).
// Used for headless simulation where wall-clock pacing is irrelevant.
func (s *Scheduler) RunUnpaced(ctx context.Context, maxFrames uint64, step StepFunc) error {
	for maxFrames == 0 || s.frames < maxFrames {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.frames++
		if !step(s.frames) {
			return nil
		}
	}
	return nil
}
