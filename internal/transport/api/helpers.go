package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// getActorFromContext собирает domain.Actor из значений, которые кладет middlewares.AuthRequired. Для
// неавторизованного запроса вернется пустой Actor.
func getActorFromContext(c *gin.Context) domain.Actor {
	var actor domain.Actor
	if v, ok := c.Get(middlewares.CurrentUserIDKey); ok {
		actor.UserID, _ = v.(uuid.UUID)
	}
	if v, ok := c.Get(middlewares.CurrentUserRoleKey); ok {
		actor.Role, _ = v.(domain.RoleType)
	}
	return actor
}

// uuidParam читает uuid из параметра пути. При ошибке запрос прерывается со статусом 400.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, fmt.Errorf("invalid %s", name)).SetType(gin.ErrorTypePublic)
		return uuid.Nil, false
	}
	return id, true
}

// intQuery читает целое из query string. Пустое значение дает def.
func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, fmt.Errorf("invalid %s", name)).SetType(gin.ErrorTypePublic)
		return 0, false
	}
	return v, true
}

// bindJSON ошибки валидации отдаются со статусом 422, ошибки разбора тела со статусом 400.
func bindJSON(c *gin.Context, params any) bool {
	bindErr := c.ShouldBindJSON(params)
	if bindErr == nil {
		return true
	}
	var valErrs validator.ValidationErrors
	if errors.As(bindErr, &valErrs) {
		_ = c.AbortWithError(http.StatusUnprocessableEntity, valErrs).SetType(gin.ErrorTypePublic)
		return false
	}
	_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
	return false
}

// abortWithServiceError переводит ошибку сервисного слоя в http статус.
func abortWithServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateKey), errors.Is(err, domain.ErrNothingToPayOut):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrFundsLocked):
		status = http.StatusLocked
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidAmount):
		status = http.StatusUnprocessableEntity
	}

	errType := gin.ErrorTypePublic
	if status == http.StatusInternalServerError {
		errType = gin.ErrorTypePrivate
	}
	_ = c.AbortWithError(status, err).SetType(errType)
}
