// Package sound provides audio feedback for game events.
// It supports cross-platform playback via OS-native audio commands.
package sound

import "embed"

// soundFiles contains the embedded WAV cues: the intro sting, the buzz,
// and the two verdict clips.
//
//go:embed sounds/*.wav
var soundFiles embed.FS
