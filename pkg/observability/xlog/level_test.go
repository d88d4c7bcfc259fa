package xlog_test

import (
	"log/slog"
	"testing"

	"github.com/omeyang/xpine/pkg/observability/xlog"
)

func TestLevelConstants(t *testing.T) {
	tests := []struct {
		level    xlog.Level
		slogLvl  slog.Level
		wantName string
	}{
		{xlog.LevelDebug, slog.LevelDebug, "DEBUG"},
		{xlog.LevelInfo, slog.LevelInfo, "INFO"},
		{xlog.LevelWarn, slog.LevelWarn, "WARN"},
		{xlog.LevelError, slog.LevelError, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			if slog.Level(tt.level) != tt.slogLvl {
				t.Errorf("level = %d, want slog equivalent %d", tt.level, tt.slogLvl)
			}
			if tt.level.String() != tt.wantName {
				t.Errorf("String() = %q, want %q", tt.level.String(), tt.wantName)
			}
		})
	}
}

func TestLevel_NonStandardString(t *testing.T) {
	if got := (xlog.LevelInfo + 2).String(); got != "INFO+2" {
		t.Errorf("String() = %q, want INFO+2", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  xlog.Level
		err   bool
	}{
		{"debug", xlog.LevelDebug, false},
		{"INFO", xlog.LevelInfo, false},
		{" warn ", xlog.LevelWarn, false},
		{"warning", xlog.LevelWarn, false},
		{"Error", xlog.LevelError, false},
		{"verbose", xlog.LevelDebug, false},
		{"v", xlog.LevelDebug, false},
		{"d", xlog.LevelDebug, false},
		{"i", xlog.LevelInfo, false},
		{"w", xlog.LevelWarn, false},
		{"e", xlog.LevelError, false},
		{"assert", xlog.LevelError, false},
		{"A", xlog.LevelError, false},
		{"", xlog.LevelInfo, true},
		{"fatal", xlog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := xlog.ParseLevel(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevel_TextRoundTrip(t *testing.T) {
	for _, l := range []xlog.Level{xlog.LevelDebug, xlog.LevelInfo, xlog.LevelWarn, xlog.LevelError} {
		data, err := l.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText() error: %v", err)
		}
		var got xlog.Level
		if err := got.UnmarshalText(data); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", data, err)
		}
		if got != l {
			t.Errorf("round trip %v = %v", l, got)
		}
	}

	var l xlog.Level
	if err := l.UnmarshalText([]byte("loud")); err == nil {
		t.Error("UnmarshalText(loud) should fail")
	}
}
