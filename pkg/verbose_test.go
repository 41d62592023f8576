package mmqa

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		valid    bool
	}{
		{"DEBUG", slog.LevelDebug, true},
		{"info", slog.LevelInfo, true},
		{"Warning", slog.LevelWarn, true},
		{"warn", slog.LevelWarn, true},
		{"ERROR", slog.LevelError, true},
		{" critical ", LevelCritical, true},
		{"verbose", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			if !tt.valid {
				if err == nil {
					t.Errorf("ParseLogLevel(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLogLevel(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseLogLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message", "path", "a.txt")
	logger.Log(context.Background(), LevelCritical, "critical message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("Expected debug and info to be filtered at warning level, got:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "path=a.txt") {
		t.Errorf("Expected warning record with attributes, got:\n%s", out)
	}
	if !strings.Contains(out, "level=CRITICAL") {
		t.Errorf("Expected CRITICAL level name, got:\n%s", out)
	}
}

func TestParseDebugFlags(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectedWalk bool
		expectedHash bool
	}{
		{"empty string", "", false, false},
		{"single option", "walk", true, false},
		{"multiple options", "walk,hash", true, true},
		{"options with values", "walk:true,hash:false", true, false},
		{"numeric values", "walk:0,hash:1", false, true},
		{"whitespace handling", " walk , hash ", true, true},
		{"case insensitive", "WALK,Hash", true, true},
		{"unknown value defaults on", "walk:maybe", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := ParseDebugFlags(tt.input)
			if flags.Enabled("walk") != tt.expectedWalk {
				t.Errorf("walk: expected %v, got %v", tt.expectedWalk, flags.Enabled("walk"))
			}
			if flags.Enabled("HASH") != tt.expectedHash {
				t.Errorf("hash: expected %v, got %v", tt.expectedHash, flags.Enabled("HASH"))
			}
		})
	}

	var none DebugFlags
	if none.Enabled("walk") {
		t.Error("Expected nil DebugFlags to report every flag off")
	}
}
