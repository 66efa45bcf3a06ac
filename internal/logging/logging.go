// Package logging builds the application logger.
//
// The terminal belongs to the game screen, so logs go to a rotating file instead of stdout.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/samdwyer/glyphquest/internal/config"
)

// New creates a logger configured from cfg, writing to a lumberjack-rotated file.
// The returned closer flushes and closes the file.
func New(cfg config.LogConfig) (*logrus.Logger, io.Closer) {
	out := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   false,
	}
	return NewWithWriter(cfg, out), out
}

// NewWithWriter creates a logger configured from cfg that writes to out.
func NewWithWriter(cfg config.LogConfig, out io.Writer) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.ToLower(cfg.Format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: true,
		})
	}

	log.SetOutput(out)
	return log
}
