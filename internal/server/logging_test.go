package server_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"github.com/example/go-meddl/internal/server"
)

// capturingHandler captures all slog records during a test.
type capturingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (c *capturingHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }
func (c *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, r)
	return nil
}
func (c *capturingHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return c }
func (c *capturingHandler) WithGroup(name string) slog.Handler       { return c }

func (c *capturingHandler) attrMap(idx int) map[string]any {
	m := make(map[string]any)
	c.records[idx].Attrs(func(a slog.Attr) bool {
		m[a.Key] = a.Value.Any()
		return true
	})
	return m
}

func TestTranslate_LogsRequestIDAndTextLen(t *testing.T) {
	cap := &capturingHandler{}

	h := newTestHandler(&stubTranslator{out: "Meddl"}, server.WithLogger(slog.New(cap)))

	rec := postTranslate(h, `{"text":"Hallo Leute."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	if len(cap.records) == 0 {
		t.Fatal("want at least one log record, got none")
	}

	var found bool
	for i := range cap.records {
		attrs := cap.attrMap(i)
		if _, ok := attrs["request_id"]; !ok {
			continue
		}
		found = true
		if attrs["request_id"] != rec.Header().Get(server.RequestIDHeader) {
			t.Errorf("request_id = %v; want %q", attrs["request_id"], rec.Header().Get(server.RequestIDHeader))
		}
		if attrs["text_len"] != int64(len("Hallo Leute.")) {
			t.Errorf("text_len = %v; want %d", attrs["text_len"], len("Hallo Leute."))
		}
		if attrs["words"] != int64(2) {
			t.Errorf("words = %v; want 2", attrs["words"])
		}
		if _, ok := attrs["duration_ms"]; !ok {
			t.Error("want duration_ms attribute in log record")
		}
	}
	if !found {
		t.Error("no log record contained a 'request_id' attribute")
	}
}

func TestTranslate_LogsErrorOnFailure(t *testing.T) {
	cap := &capturingHandler{}

	h := newTestHandler(&stubTranslator{err: errors.New("broken")}, server.WithLogger(slog.New(cap)))

	rec := postTranslate(h, `{"text":"Hallo."}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", rec.Code)
	}

	var foundError bool
	for i := range cap.records {
		if _, ok := cap.attrMap(i)["error"]; ok {
			foundError = true
			if cap.records[i].Level != slog.LevelError {
				t.Errorf("level = %v; want ERROR", cap.records[i].Level)
			}
		}
	}
	if !foundError {
		t.Error("want a log record with an 'error' attribute on translation failure")
	}
}

func TestSetupLogger_LevelFromString(t *testing.T) {
	cases := []struct {
		level   string
		wantLvl slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo}, // default
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			lvl, err := server.ParseLogLevel(tc.level)
			if err != nil {
				t.Fatalf("ParseLogLevel(%q) error: %v", tc.level, err)
			}
			if lvl != tc.wantLvl {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tc.level, lvl, tc.wantLvl)
			}
		})
	}
}

func TestSetupLogger_InvalidLevelReturnsError(t *testing.T) {
	_, err := server.ParseLogLevel("verbose")
	if err == nil {
		t.Error("want error for unknown log level")
	}
}
