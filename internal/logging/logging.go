// Package logging builds the JSON line logger shared by every component.
// Each entry carries ts, level and msg, with ts rendered in the configured location.
package logging

import (
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var setupOnce sync.Once

func setupGlobals() {
	zerolog.TimestampFieldName = "ts"
	zerolog.MessageFieldName = "msg"
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// New returns a zerolog logger writing one JSON object per line to w.
// Unknown levels fall back to info.
func New(w io.Writer, loc *time.Location, level string) zerolog.Logger {
	setupOnce.Do(setupGlobals)
	if loc == nil {
		loc = time.UTC
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	// The location is per logger, so ts is stamped by a hook rather than zerolog.TimestampFunc.
	stamp := zerolog.HookFunc(func(e *zerolog.Event, _ zerolog.Level, _ string) {
		e.Time(zerolog.TimestampFieldName, time.Now().In(loc))
	})
	return zerolog.New(w).Level(lvl).Hook(stamp)
}
