package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/glyphquest/internal/config"
)

func TestNewWithWriterLevels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"bogus", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}
	for _, tt := range tests {
		log := NewWithWriter(config.LogConfig{Level: tt.level}, &bytes.Buffer{})
		if log.GetLevel() != tt.want {
			t.Errorf("level %q: GetLevel() = %v, want %v", tt.level, log.GetLevel(), tt.want)
		}
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "info", Format: "JSON"}, &buf)
	log.WithField("component", "test").Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "hello" || entry["component"] != "test" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewWithWriterText(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "info", Format: "text"}, &buf)
	log.Info("changing to combat")

	if !strings.Contains(buf.String(), `msg="changing to combat"`) {
		t.Errorf("text output = %q", buf.String())
	}
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, closer := New(config.LogConfig{Level: "info", File: path, MaxSizeMB: 1})
	log.Info("started")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "started") {
		t.Errorf("log file = %q", data)
	}
}
