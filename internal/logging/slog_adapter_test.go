// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestSlogLogger(buf *bytes.Buffer) *slog.Logger {
	SetLogger(zerolog.New(buf).With().Timestamp().Logger())
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	return slog.New(NewSlogHandler())
}

func TestSlogHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestSlogLogger(&buf)

	tests := []struct {
		name    string
		logFunc func()
		level   string
	}{
		{"Debug", func() { logger.Debug("dbg") }, `"level":"debug"`},
		{"Info", func() { logger.Info("inf") }, `"level":"info"`},
		{"Warn", func() { logger.Warn("wrn") }, `"level":"warn"`},
		{"Error", func() { logger.Error("err") }, `"level":"error"`},
	}

	for _, tt := range tests {
		buf.Reset()
		tt.logFunc()
		if output := buf.String(); !strings.Contains(output, tt.level) {
			t.Errorf("%s: expected %s in output: %s", tt.name, tt.level, output)
		}
	}
}

func TestSlogHandlerAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestSlogLogger(&buf)

	logger.Info("restart", slog.String("service", "http"), slog.Int("attempt", 3))

	output := buf.String()
	if !strings.Contains(output, `"service":"http"`) {
		t.Errorf("expected string attribute in output: %s", output)
	}
	if !strings.Contains(output, `"attempt":3`) {
		t.Errorf("expected int attribute in output: %s", output)
	}
}

func TestSlogHandlerWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestSlogLogger(&buf)

	child := logger.With(slog.String("supervisor", "root")).WithGroup("tree")
	child.Info("service started", slog.String("name", "analysis"))

	output := buf.String()
	if !strings.Contains(output, `"supervisor":"root"`) {
		t.Errorf("expected inherited attribute in output: %s", output)
	}
	if !strings.Contains(output, `"tree.name":"analysis"`) {
		t.Errorf("expected group-qualified key in output: %s", output)
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	tests := []struct {
		in  slog.Level
		out zerolog.Level
	}{
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.out {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.out)
		}
	}
}
