package logger

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"quotes-scraper/config"
)

// NewLogger creates a new logger writing to stderr
func NewLogger(cfg config.LogConfig) (*logrus.Logger, error) {
	return New(cfg, os.Stderr)
}

// New creates a logger writing to out with the configured level and format
func New(cfg config.LogConfig, out io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(out)

	level := logrus.InfoLevel
	if cfg.Level != "" {
		l, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, eris.Wrapf(config.ErrInvalidConfig, "log level %q", cfg.Level)
		}
		level = l
	}
	log.SetLevel(level)

	switch cfg.Format {
	case config.LogFormatJSON:
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return log, nil
}

// Discard returns a logger that drops everything, for tests
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
