package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fd1az/usdt-bridge/internal/logger"
)

func TestLogger_WritesServiceAndTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, logger.LevelInfo, "bridge", func(context.Context) string { return "abc123" })

	log.Info(context.Background(), "transfer submitted", "hash", "0x01")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if rec["service"] != "bridge" {
		t.Errorf("expected service=bridge, got %v", rec["service"])
	}
	if rec["trace_id"] != "abc123" {
		t.Errorf("expected trace_id=abc123, got %v", rec["trace_id"])
	}
	if rec["hash"] != "0x01" {
		t.Errorf("expected hash=0x01, got %v", rec["hash"])
	}
}

func TestLogger_RespectsMinLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, logger.LevelWarn, "bridge", nil)

	log.Debug(context.Background(), "noise")
	log.Info(context.Background(), "noise")

	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}

	log.Warn(context.Background(), "kept")
	if buf.Len() == 0 {
		t.Error("expected warn record to be written")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]logger.Level{
		"debug": logger.LevelDebug,
		"info":  logger.LevelInfo,
		"warn":  logger.LevelWarn,
		"error": logger.LevelError,
		"":      logger.LevelInfo,
		"loud":  logger.LevelInfo,
	}

	for in, want := range tests {
		if got := logger.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
