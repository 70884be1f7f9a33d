// Package config holds the engine's named timing constants. Every
// delay and threshold the engine uses lives here so tests can shrink
// them to zero and run deterministically.
package config

import "time"

// Config groups the engine's tunable delays and thresholds.
type Config struct {
	// PlaybackSaveDelta is the minimum playback movement, in seconds,
	// that persists a position update from an explicit seek or pause.
	PlaybackSaveDelta float64

	// PlaybackTickDelta is the minimum movement, in seconds, that
	// persists a position update from continuous playback ticks.
	PlaybackTickDelta float64

	// VideoCompleteRatio is the watched fraction at which a video
	// lesson auto-completes.
	VideoCompleteRatio float64

	// SettleDelay is how long the engine waits after a completion
	// before recomputing overall progress and pushing it, so a batch
	// of local mutations settles first.
	SettleDelay time.Duration

	// BannerWindow is how long success and error notifications stay
	// visible before auto-clearing.
	BannerWindow time.Duration

	// TextDwell is the delay after a mark-as-read action before a text
	// lesson counts as completed.
	TextDwell time.Duration
}

// DefaultConfig returns the production timing constants.
func DefaultConfig() Config {
	return Config{
		PlaybackSaveDelta:  1.0,
		PlaybackTickDelta:  2.0,
		VideoCompleteRatio: 0.9,
		SettleDelay:        500 * time.Millisecond,
		BannerWindow:       3 * time.Second,
		TextDwell:          2 * time.Second,
	}
}
