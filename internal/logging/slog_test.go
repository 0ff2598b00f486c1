package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func newBufLogger() (*SlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	h := slog.NewJSONHandler(buf, nil)
	return NewSlogLogger(slog.New(h)), buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	return m
}

func TestSlogLogger_Info(t *testing.T) {
	log, buf := newBufLogger()
	log.Info(context.Background(), "hello", "key", "value")

	m := decodeLine(t, buf)
	if m["msg"] != "hello" || m["key"] != "value" || m["level"] != "INFO" {
		t.Fatalf("unexpected log record: %v", m)
	}
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newBufLogger()
	child := log.With("module", "vault")
	child.Error(context.Background(), "boom")

	m := decodeLine(t, buf)
	if m["module"] != "vault" || m["level"] != "ERROR" {
		t.Fatalf("unexpected log record: %v", m)
	}
}
