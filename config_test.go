package sprig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TapHoldDelay != 500*time.Millisecond {
		t.Errorf("TapHoldDelay = %v", cfg.TapHoldDelay)
	}
	if cfg.DoubleTapWindow != 500*time.Millisecond {
		t.Errorf("DoubleTapWindow = %v", cfg.DoubleTapWindow)
	}
	if cfg.AutoHideDelay != time.Second {
		t.Errorf("AutoHideDelay = %v", cfg.AutoHideDelay)
	}
	if cfg.Theme.Scrollbar == (Color{}) {
		t.Error("theme should be populated")
	}
}

func TestParseConfigPartial(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
tap_hold_delay: 750ms
drag_threshold: 10
theme:
  accent: "#ff0000"
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TapHoldDelay != 750*time.Millisecond {
		t.Errorf("TapHoldDelay = %v", cfg.TapHoldDelay)
	}
	if cfg.DragThreshold != 10 {
		t.Errorf("DragThreshold = %d", cfg.DragThreshold)
	}
	if cfg.Theme.Accent != (Color{0xff, 0, 0, 0xff}) {
		t.Errorf("Accent = %v", cfg.Theme.Accent)
	}
	if cfg.DoubleTapWindow != defaultConfig.DoubleTapWindow {
		t.Errorf("unset DoubleTapWindow = %v, want default", cfg.DoubleTapWindow)
	}
	if cfg.Theme.Background != defaultTheme.Background {
		t.Errorf("unset Background = %v, want default", cfg.Theme.Background)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{"unknown key", "tap_hold: 1s", "not found"},
		{"negative duration", "auto_hide_delay: -1s", "durations"},
		{"negative distance", "swipe_distance: -5", "distances"},
		{"negative thumb", "min_thumb_length: -1", "scrollbar"},
		{"bad duration", "render_wait: soon", ""},
		{"bad color", `theme: {border: "#xyz"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.in))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseConfigEmpty(t *testing.T) {
	for _, in := range []string{"", "# only a comment\n"} {
		cfg, err := ParseConfig([]byte(in))
		if err != nil {
			t.Fatalf("ParseConfig(%q): %v", in, err)
		}
		if cfg.TapHoldDelay != defaultConfig.TapHoldDelay {
			t.Errorf("ParseConfig(%q) did not apply defaults", in)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if cfg.RenderWait != defaultConfig.RenderWait {
		t.Error("missing file should yield defaults")
	}

	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("keyboard_poll_interval: 20ms\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(good)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.KeyboardPollInterval != 20*time.Millisecond {
		t.Errorf("KeyboardPollInterval = %v", cfg.KeyboardPollInterval)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("drag_threshold: [1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("bad file err = %v", err)
	}
}

func TestNewDisplayRejectsInvalidConfig(t *testing.T) {
	_, err := NewDisplay(newRecordingSurface(10, 10), Config{DragThreshold: -1})
	if err == nil {
		t.Error("expected validation error")
	}
	if _, err := NewDisplay(nil, Config{}); err == nil {
		t.Error("expected error for nil surface")
	}
}
