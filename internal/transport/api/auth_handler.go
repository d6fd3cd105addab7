package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/service"
	"github.com/fsdevblog/adashi/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	accountService AccountServicer
}

func NewAuthHandler(accountService AccountServicer) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
	}
}

type UserLoginParams struct {
	Login    string `binding:"required,max_bytes=255" json:"login"`
	Password string `binding:"required,max_bytes=255" json:"password"`
}

// Login POST RouteGroup + LoginRoute. Аутентификация по email или телефону и паролю.
func (h *AuthHandler) Login(c *gin.Context) {
	var params UserLoginParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, token, err := h.accountService.Login(ctx, service.LoginArgs{
		Login:    params.Login,
		Password: params.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) || errors.Is(err, domain.ErrPasswordMissMatch) {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, middlewares.ErrorResponse{
				Error:  "invalid credentials",
				Status: http.StatusUnauthorized,
			})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}
	c.Header("Authorization", "Bearer "+token)

	c.JSON(http.StatusOK, gin.H{
		"user":  newUserResponse(user),
		"token": token,
	})
}
