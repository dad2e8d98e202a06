package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{LevelOff, false, false},
		{LevelNormal, false, true},
		{LevelVerbose, true, true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		log := New(tt.level, &buf)
		log.Debug("debug %d", 1)
		log.Info("info %d", 2)

		out := buf.String()
		if got := strings.Contains(out, "debug 1"); got != tt.wantDebug {
			t.Errorf("level %d: debug visible=%v, want %v", tt.level, got, tt.wantDebug)
		}
		if got := strings.Contains(out, "info 2"); got != tt.wantInfo {
			t.Errorf("level %d: info visible=%v, want %v", tt.level, got, tt.wantInfo)
		}
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelOff, &buf)
	log.Error("hidden")

	log.SetLevel(LevelVerbose)
	if log.GetLevel() != LevelVerbose {
		t.Fatalf("expected verbose, got %d", log.GetLevel())
	}
	log.Debug("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatal("message logged while level was off")
	}
	if !strings.Contains(out, "shown") {
		t.Fatal("debug message missing after SetLevel(verbose)")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"off":     LevelOff,
		"quiet":   LevelOff,
		"verbose": LevelVerbose,
		"debug":   LevelVerbose,
		"normal":  LevelNormal,
		"":        LevelNormal,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestZapSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelNormal, &buf)
	z := log.Zap()

	z.Debug("structured debug")
	z.Info("structured info", zap.String("recipe", "r1"))
	log.SetLevel(LevelVerbose)
	z.Debug("now visible")

	out := buf.String()
	if strings.Contains(out, "structured debug") {
		t.Fatal("debug logged at normal level")
	}
	if !strings.Contains(out, `"recipe": "r1"`) {
		t.Fatalf("missing structured field in %q", out)
	}
	if !strings.Contains(out, "now visible") {
		t.Fatal("Zap logger ignored SetLevel")
	}
	if !strings.Contains(out, "logger_test.go") {
		t.Fatalf("caller should point at the call site: %q", out)
	}
}
