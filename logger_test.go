package gesture

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultLoggerDiscards(t *testing.T) {
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger should never be nil")
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("the default logger should discard everything")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	d, _ := newTestDetector(t, Config{NoTapClassifier: true})
	d.Process(ev(ActionDown, 0, 0, pt(0, 10, 10)))
	d.Process(ev(ActionUp, 0, 50, pt(0, 10, 10)))

	out := buf.String()
	for _, want := range []string{"gesture begin", "gesture click", "session="} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
