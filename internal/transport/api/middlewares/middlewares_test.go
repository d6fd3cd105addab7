package middlewares

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/service/tokens"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("middlewares-test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, r *gin.Engine, header http.Header) (int, ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k := range header {
		req.Header.Set(k, header.Get(k))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var body ErrorResponse
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") != "text/plain; charset=utf-8" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func bearer(t *testing.T, role domain.RoleType) http.Header {
	t.Helper()
	token, err := tokens.GenerateUserJWT(uuid.New(), role, time.Hour, testSecret)
	require.NoError(t, err)
	return http.Header{"Authorization": []string{"Bearer " + token}}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		name       string
		status     int
		errType    gin.ErrorType
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "public error is shown",
			status:     http.StatusConflict,
			errType:    gin.ErrorTypePublic,
			wantStatus: http.StatusConflict,
			wantMsg:    "boom",
		},
		{
			name:       "private error is hidden",
			status:     http.StatusInternalServerError,
			errType:    gin.ErrorTypePrivate,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
		{
			name:       "bind error uses status text",
			status:     http.StatusBadRequest,
			errType:    gin.ErrorTypeBind,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "bad request",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(Errors())
			r.GET("/", func(c *gin.Context) {
				_ = c.AbortWithError(tc.status, errors.New("boom")).SetType(tc.errType)
			})

			status, body := serve(t, r, nil)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantMsg, body.Error)
			assert.Equal(t, tc.wantStatus, body.Status)
		})
	}
}

func TestErrors_SkipsWrittenBody(t *testing.T) {
	r := gin.New()
	r.Use(Errors())
	r.GET("/", func(c *gin.Context) {
		_ = c.Error(errors.New("logged only"))
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "custom", Status: http.StatusUnauthorized})
	})

	status, body := serve(t, r, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "custom", body.Error)
}

func TestAuthRequired(t *testing.T) {
	r := gin.New()
	r.GET("/", AuthRequired(testSecret), AdminRequired(), func(c *gin.Context) {
		_, hasID := c.Get(CurrentUserIDKey)
		assert.True(t, hasID)
		c.Status(http.StatusNoContent)
	})

	status, _ := serve(t, r, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = serve(t, r, http.Header{"Authorization": []string{"Bearer broken"}})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := serve(t, r, bearer(t, domain.RoleMember))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", body.Error)

	status, _ = serve(t, r, bearer(t, domain.RoleAdmin))
	assert.Equal(t, http.StatusNoContent, status)
}

func TestNonAuthRequired(t *testing.T) {
	r := gin.New()
	r.GET("/", NonAuthRequired(testSecret), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	status, _ := serve(t, r, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body := serve(t, r, bearer(t, domain.RoleMember))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "already authorized", body.Error)
}

func TestLogger(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)

	r := gin.New()
	r.Use(Logger(l))
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	status, _ := serve(t, r, nil)
	assert.Equal(t, http.StatusNoContent, status)
}
