package middlewares

import (
	"time"

	"github.com/fsdevblog/adashi/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger пишет в лог каждый запрос. Ошибки, добавленные хендлерами в контекст, выводятся полем errors.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	entry := logger.Component(l, "http")

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"size":     c.Writer.Size(),
		}
		if userID, ok := c.Get(CurrentUserIDKey); ok {
			fields["userID"] = userID
		}

		le := entry.WithFields(fields)
		switch {
		case len(c.Errors) > 0:
			le.WithField("errors", c.Errors.String()).Error("request")
		case c.Writer.Status() >= 500: //nolint:mnd
			le.Error("request")
		default:
			le.Info("request")
		}
	}
}
