package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

const componentField = "component"

// New инициализирует логгер. В продакшене (GIN_MODE=release) пишет json с уровнем info, в остальных
// окружениях текст с уровнем debug.
func New(output io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(output)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	l.SetLevel(logrus.InfoLevel)

	if os.Getenv("GIN_MODE") != "release" {
		l.SetLevel(logrus.DebugLevel)
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		l.SetLevel(lvl)
	}

	return l
}

// Component запись лога с полем component. nil логгер заменяется логгером, который ничего не пишет.
func Component(l *logrus.Logger, name string) *logrus.Entry {
	if l == nil {
		l = New(io.Discard)
	}
	return l.WithField(componentField, name)
}
