package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestDefaultLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewDefaultLogger(LevelWarn, &buf)
	l.Info("should not appear")
	l.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Fatalf("Info below configured level was logged: %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Fatalf("Warn at configured level was not logged: %q", out)
	}
}

func TestWithFieldIncludesKeyValue(t *testing.T) {
	var buf bytes.Buffer
	l := NewDefaultLogger(LevelInfo, &buf)
	l.WithField("iteration", 3).Info("stepped")

	if !strings.Contains(buf.String(), "iteration=3") {
		t.Fatalf("expected field in output, got %q", buf.String())
	}
}

func TestParseLogLevelFallsBackToInfo(t *testing.T) {
	if ParseLogLevel("nonsense") != LevelInfo {
		t.Fatalf("expected unrecognised level to fall back to Info")
	}
}

func TestNullLoggerDiscardsEverything(t *testing.T) {
	var l Logger = NullLogger{}
	l.Debug("x")
	l = l.WithField("a", 1)
	l.Info("y")
}
