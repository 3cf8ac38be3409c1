package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"":      zapcore.InfoLevel,
	}
	for in, want := range cases {
		l, err := New(in, "json")
		if err != nil {
			t.Fatalf("new(%q): %v", in, err)
		}
		if !l.Core().Enabled(want) {
			t.Fatalf("level %q: %v not enabled", in, want)
		}
		if want > zapcore.DebugLevel && l.Core().Enabled(want-1) {
			t.Fatalf("level %q: %v unexpectedly enabled", in, want-1)
		}
	}
}
