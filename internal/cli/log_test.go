package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerWritesLayoutFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Info("simulated chart", "kind", "packedbubble", "iterations", 42)

	got := buf.String()
	for _, want := range []string{"simulated chart", "kind=packedbubble", "iterations=42"} {
		if !strings.Contains(got, want) {
			t.Errorf("log output %q missing %q", got, want)
		}
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "step summary at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("layout stable", "iteration", 12) },
			wantLog: true,
		},
		{
			name:    "per-step trace hidden at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("step", "temperature", 0.5) },
			wantLog: false,
		},
		{
			name:    "per-step trace at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("step", "temperature", 0.5) },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))

	time.Sleep(10 * time.Millisecond)
	prog.done("Simulated chart.yaml")

	got := buf.String()
	if !strings.Contains(got, "Simulated chart.yaml (") {
		t.Errorf("progress output %q missing message with duration", got)
	}
	if !strings.Contains(got, "ms)") && !strings.Contains(got, "s)") {
		t.Errorf("progress output %q missing elapsed time", got)
	}
}
