package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPrettyHandler_Structural(t *testing.T) {
	var buf bytes.Buffer
	opts := &slog.HandlerOptions{Level: LevelDebug}
	h := NewPrettyHandler(&buf, opts, false)
	l := slog.New(h)

	t.Run("WithAttrs", func(t *testing.T) {
		buf.Reset()
		l2 := l.With("input", "strings.csv")
		l2.Info("test message", "rows", 42)

		output := buf.String()
		if !strings.Contains(output, "input=") || !strings.Contains(output, "strings.csv") {
			t.Errorf("output missing persistent attr: %q", output)
		}
		if !strings.Contains(output, "rows=") || !strings.Contains(output, "42") {
			t.Errorf("output missing record attr: %q", output)
		}
	})

	t.Run("WithGroup", func(t *testing.T) {
		buf.Reset()
		l2 := l.WithGroup("batch").With("total", 100)
		l2.Info("progress", "done", 7)

		output := buf.String()
		if !strings.Contains(output, "batch.total=") || !strings.Contains(output, "100") {
			t.Errorf("output missing grouped persistent attr: %q", output)
		}
		if !strings.Contains(output, "batch.done=") || !strings.Contains(output, "7") {
			t.Errorf("output missing grouped record attr: %q", output)
		}
	})

	t.Run("NestedGroups", func(t *testing.T) {
		buf.Reset()
		l2 := l.WithGroup("outer").WithGroup("inner").With("key", "val")
		l2.Info("msg")

		output := buf.String()
		if !strings.Contains(output, "outer.inner.key=") || !strings.Contains(output, "val") {
			t.Errorf("output missing nested grouped attr: %q", output)
		}
	})
}

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	opts := &slog.HandlerOptions{Level: LevelWarn}
	h := NewPrettyHandler(&buf, opts, false)
	l := slog.New(h)

	l.Info("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("info record leaked through warn-level handler: %q", buf.String())
	}

	l.Warn("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Errorf("warn record missing: %q", buf.String())
	}
}

func TestMultiHandler_FansOut(t *testing.T) {
	var pretty, jsonl bytes.Buffer
	opts := &slog.HandlerOptions{Level: LevelDebug}
	m := &multiHandler{handlers: []slog.Handler{
		NewPrettyHandler(&pretty, opts, false),
		slog.NewJSONHandler(&jsonl, opts),
	}}
	l := slog.New(m)

	l.Info("fan out", "path", "out.csv")

	if !strings.Contains(pretty.String(), "fan out") {
		t.Errorf("pretty handler missed record: %q", pretty.String())
	}
	if !strings.Contains(jsonl.String(), `"path":"out.csv"`) {
		t.Errorf("json handler missed record: %q", jsonl.String())
	}
}
