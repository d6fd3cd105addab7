package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fsdevblog/adashi/internal/domain"
	"github.com/fsdevblog/adashi/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SchemeHandler struct {
	schemeService SchemeServicer
}

func NewSchemeHandler(schemeService SchemeServicer) *SchemeHandler {
	return &SchemeHandler{schemeService: schemeService}
}

type CreateSchemeParams struct {
	Name               string               `binding:"required,max_bytes=255"   json:"name"`
	Description        string               `binding:"omitempty,max_bytes=2048" json:"description"`
	Type               domain.SchemeType    `binding:"required"                 json:"type"`
	ContributionAmount decimal.Decimal      `binding:"positive_decimal"         json:"contribution_amount"`
	Frequency          domain.FrequencyType `binding:"required"                 json:"frequency"`
	Rules              domain.SchemeRules   `json:"rules"`
	StartDate          *time.Time           `json:"start_date"`
	EndDate            *time.Time           `json:"end_date"`
}

// Create POST RouteGroup + AdminSchemesRoute.
func (h *SchemeHandler) Create(c *gin.Context) {
	var params CreateSchemeParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	scheme, err := h.schemeService.Create(ctx, getActorFromContext(c), service.CreateSchemeArgs{
		Name:               params.Name,
		Description:        params.Description,
		Type:               params.Type,
		ContributionAmount: params.ContributionAmount,
		Frequency:          params.Frequency,
		Rules:              params.Rules,
		StartDate:          params.StartDate,
		EndDate:            params.EndDate,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newSchemeResponse(scheme))
}

// Index GET RouteGroup + AdminSchemesRoute.
func (h *SchemeHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	schemes, err := h.schemeService.List(ctx, getActorFromContext(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	response := make([]SchemeResponse, len(schemes))
	for i := range schemes {
		response[i] = newSchemeResponse(&schemes[i])
	}
	c.JSON(http.StatusOK, response)
}

type SchemeDetailsResponse struct {
	SchemeResponse
	Members []MemberResponse `json:"members"`
}

// Show GET RouteGroup + AdminSchemeRoute. Схема вместе с участниками.
func (h *SchemeHandler) Show(c *gin.Context) {
	schemeID, ok := uuidParam(c, schemeIDParam)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	details, err := h.schemeService.GetByID(ctx, getActorFromContext(c), schemeID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := SchemeDetailsResponse{
		SchemeResponse: newSchemeResponse(&details.Scheme),
		Members:        make([]MemberResponse, len(details.Members)),
	}
	for i, m := range details.Members {
		response.Members[i] = MemberResponse{
			MembershipResponse: newMembershipResponse(&m.Membership),
			FullName:           m.FullName,
			PhoneNumber:        m.PhoneNumber,
			Email:              m.Email,
		}
	}
	c.JSON(http.StatusOK, response)
}

type AssignMembersParams struct {
	UserIDs []uuid.UUID `json:"user_ids"`
}

type AssignMembersResponse struct {
	Added   []uuid.UUID `json:"added"`
	Removed []uuid.UUID `json:"removed"`
	Kept    []uuid.UUID `json:"kept"`
}

// AssignMembers PUT RouteGroup + AdminSchemeMembersRoute. Полностью заменяет состав участников схемы.
func (h *SchemeHandler) AssignMembers(c *gin.Context) {
	schemeID, ok := uuidParam(c, schemeIDParam)
	if !ok {
		return
	}
	var params AssignMembersParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, err := h.schemeService.AssignMembers(ctx, getActorFromContext(c), schemeID, params.UserIDs)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, AssignMembersResponse{
		Added:   nonNil(result.Added),
		Removed: nonNil(result.Removed),
		Kept:    nonNil(result.Kept),
	})
}

type UpdateMembershipParams struct {
	Status      *domain.MembershipStatusType `json:"status"`
	PayoutOrder *int32                       `json:"payout_order"`
}

// UpdateMembership PATCH RouteGroup + AdminSchemeMemberRoute.
func (h *SchemeHandler) UpdateMembership(c *gin.Context) {
	schemeID, ok := uuidParam(c, schemeIDParam)
	if !ok {
		return
	}
	userID, ok := uuidParam(c, userIDParam)
	if !ok {
		return
	}
	var params UpdateMembershipParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	membership, err := h.schemeService.UpdateMembership(ctx, getActorFromContext(c), service.UpdateMembershipArgs{
		SchemeID:    schemeID,
		UserID:      userID,
		Status:      params.Status,
		PayoutOrder: params.PayoutOrder,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMembershipResponse(membership))
}

type MemberSchemeResponse struct {
	Scheme     SchemeResponse     `json:"scheme"`
	Membership MembershipResponse `json:"membership"`
}

// MySchemes GET RouteGroup + UserSchemesRoute. Схемы текущего юзера.
func (h *SchemeHandler) MySchemes(c *gin.Context) {
	actor := getActorFromContext(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	items, err := h.schemeService.MemberSchemes(ctx, actor, actor.UserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	response := make([]MemberSchemeResponse, len(items))
	for i, item := range items {
		response[i] = MemberSchemeResponse{
			Scheme:     newSchemeResponse(&item.Scheme),
			Membership: newMembershipResponse(&item.Membership),
		}
	}
	c.JSON(http.StatusOK, response)
}

func nonNil(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
