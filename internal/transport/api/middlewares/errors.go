package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrorResponse тело ответа с ошибкой.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// errorMessage текст для клиента. Приватные ошибки (ошибки базы, брокера) наружу не отдаются.
func errorMessage(err *gin.Error, status int) string {
	if err.IsType(gin.ErrorTypePublic) {
		return err.Error()
	}
	if status < http.StatusBadRequest || status >= http.StatusInternalServerError {
		status = http.StatusInternalServerError
	}
	return strings.ToLower(http.StatusText(status))
}

// Errors рендерит первую ошибку контекста. Клиент получает json, если не попросил text/plain.
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// тело уже отдано хендлером, ошибка нужна только для лога.
		if len(c.Errors) == 0 || c.Writer.Size() > 0 {
			return
		}

		status := c.Writer.Status()
		msg := errorMessage(c.Errors[0], status)

		if strings.Contains(c.GetHeader("Accept"), "text/plain") {
			c.String(status, msg)
		} else {
			c.JSON(status, ErrorResponse{Error: msg, Status: status})
		}
		c.Abort()
	}
}
