package api

import (
	"context"
	"net/http"

	"github.com/fsdevblog/adashi/internal/service"
	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	accountService AccountServicer
}

func NewMemberHandler(accountService AccountServicer) *MemberHandler {
	return &MemberHandler{accountService: accountService}
}

type CreateMemberParams struct {
	FullName       string `binding:"required,max_bytes=255"        json:"full_name"`
	PhoneNumber    string `binding:"required,max_bytes=32"         json:"phone_number"`
	AltPhoneNumber string `binding:"omitempty,max_bytes=32"        json:"alt_phone_number"`
	HomeAddress    string `binding:"omitempty,max_bytes=1024"      json:"home_address"`
	Email          string `binding:"omitempty,email,max_bytes=255" json:"email"`
	Password       string `binding:"omitempty,min=6,max_bytes=72"  json:"password"`
}

type CreateMemberResponse struct {
	User        UserResponse `json:"user"`
	Credentials struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	} `json:"credentials"`
}

// Create POST RouteGroup + AdminMembersRoute. Регистрирует участника и возвращает данные для первого входа.
func (h *MemberHandler) Create(c *gin.Context) {
	var params CreateMemberParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, creds, err := h.accountService.CreateMember(ctx, getActorFromContext(c), service.CreateMemberArgs{
		FullName:       params.FullName,
		PhoneNumber:    params.PhoneNumber,
		AltPhoneNumber: params.AltPhoneNumber,
		HomeAddress:    params.HomeAddress,
		Email:          params.Email,
		Password:       params.Password,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	var response CreateMemberResponse
	response.User = newUserResponse(user)
	response.Credentials.Login = creds.Login
	response.Credentials.Password = creds.Password
	c.JSON(http.StatusCreated, response)
}

// Index GET RouteGroup + AdminMembersRoute?q=. Поиск участников.
func (h *MemberHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	users, err := h.accountService.SearchMembers(ctx, getActorFromContext(c), c.Query("q"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]UserResponse, len(users))
	for i := range users {
		response[i] = newUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, response)
}
