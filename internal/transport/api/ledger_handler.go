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

type LedgerHandler struct {
	ledgerService LedgerServicer
}

func NewLedgerHandler(ledgerService LedgerServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// memberParams читает schemeID и userID из пути.
func memberParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	schemeID, ok := uuidParam(c, schemeIDParam)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	userID, ok := uuidParam(c, userIDParam)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return schemeID, userID, true
}

type RecordContributionParams struct {
	Amount decimal.Decimal        `binding:"positive_decimal"         json:"amount"`
	Type   domain.TransactionType `json:"type"`
	Date   *time.Time             `json:"date"`
	Notes  string                 `binding:"omitempty,max_bytes=1024" json:"notes"`
}

// RecordContribution POST RouteGroup + AdminContributionsRoute. Тип по умолчанию deposit.
func (h *LedgerHandler) RecordContribution(c *gin.Context) {
	schemeID, userID, ok := memberParams(c)
	if !ok {
		return
	}
	var params RecordContributionParams
	if !bindJSON(c, &params) {
		return
	}
	if params.Type == "" {
		params.Type = domain.TransactionDeposit
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	t, err := h.ledgerService.RecordContribution(ctx, getActorFromContext(c), service.RecordContributionArgs{
		UserID:   userID,
		SchemeID: schemeID,
		Amount:   params.Amount,
		Type:     params.Type,
		Date:     params.Date,
		Notes:    params.Notes,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTransactionResponse(t))
}

// ContributedToday GET RouteGroup + AdminContributedTodayRoute.
func (h *LedgerHandler) ContributedToday(c *gin.Context) {
	schemeID, userID, ok := memberParams(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	contributed, err := h.ledgerService.HasContributedToday(ctx, getActorFromContext(c), schemeID, userID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contributed": contributed})
}

// Balance GET RouteGroup + AdminMemberBalanceRoute.
func (h *LedgerHandler) Balance(c *gin.Context) {
	schemeID, userID, ok := memberParams(c)
	if !ok {
		return
	}
	h.balance(c, schemeID, userID)
}

// MyBalance GET RouteGroup + UserBalanceRoute.
func (h *LedgerHandler) MyBalance(c *gin.Context) {
	schemeID, ok := uuidParam(c, schemeIDParam)
	if !ok {
		return
	}
	h.balance(c, schemeID, getActorFromContext(c).UserID)
}

func (h *LedgerHandler) balance(c *gin.Context, schemeID, userID uuid.UUID) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balance, err := h.ledgerService.MemberBalance(ctx, getActorFromContext(c), schemeID, userID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBalanceResponse(*balance))
}

type PayoutQuoteResponse struct {
	PayoutResponse
	Balance   BalanceResponse `json:"balance"`
	Locked    bool            `json:"locked"`
	UnlocksAt *time.Time      `json:"unlocks_at,omitempty"`
}

// PayoutQuote GET RouteGroup + AdminPayoutRoute. Расчет выплаты без записи в журнал.
func (h *LedgerHandler) PayoutQuote(c *gin.Context) {
	schemeID, userID, ok := memberParams(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	quote, err := h.ledgerService.CalculatePayout(ctx, getActorFromContext(c), schemeID, userID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := PayoutQuoteResponse{
		PayoutResponse: newPayoutResponse(quote.Payout),
		Balance:        newBalanceResponse(quote.Balance),
		Locked:         quote.Locked,
	}
	if quote.Locked {
		response.UnlocksAt = quote.Scheme.EndDate
	}
	c.JSON(http.StatusOK, response)
}

type ProcessPayoutParams struct {
	Mode         service.PayoutMode `json:"mode"`
	CustomAmount decimal.Decimal    `json:"custom_amount"`
	Notes        string             `binding:"omitempty,max_bytes=1024" json:"notes"`
}

type ProcessPayoutResponse struct {
	PayoutResponse
	Mode       service.PayoutMode   `json:"mode"`
	Withdrawal TransactionResponse  `json:"withdrawal"`
	Fee        *TransactionResponse `json:"fee,omitempty"`
}

// ProcessPayout POST RouteGroup + AdminPayoutRoute.
func (h *LedgerHandler) ProcessPayout(c *gin.Context) {
	schemeID, userID, ok := memberParams(c)
	if !ok {
		return
	}
	var params ProcessPayoutParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, err := h.ledgerService.ProcessPayout(ctx, getActorFromContext(c), service.ProcessPayoutArgs{
		UserID:       userID,
		SchemeID:     schemeID,
		Mode:         params.Mode,
		CustomAmount: params.CustomAmount,
		Notes:        params.Notes,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := ProcessPayoutResponse{
		PayoutResponse: newPayoutResponse(result.Payout),
		Mode:           result.Mode,
		Withdrawal:     newTransactionResponse(&result.Withdrawal),
	}
	if result.Fee != nil {
		fee := newTransactionResponse(result.Fee)
		response.Fee = &fee
	}
	c.JSON(http.StatusCreated, response)
}

// Passbook GET RouteGroup + AdminMemberPassbookRoute?months=.
func (h *LedgerHandler) Passbook(c *gin.Context) {
	schemeID, userID, ok := memberParams(c)
	if !ok {
		return
	}
	h.passbook(c, schemeID, userID)
}

// MyPassbook GET RouteGroup + UserPassbookRoute?months=.
func (h *LedgerHandler) MyPassbook(c *gin.Context) {
	schemeID, ok := uuidParam(c, schemeIDParam)
	if !ok {
		return
	}
	h.passbook(c, schemeID, getActorFromContext(c).UserID)
}

func (h *LedgerHandler) passbook(c *gin.Context, schemeID, userID uuid.UUID) {
	months, ok := intQuery(c, "months", 0)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	passbook, err := h.ledgerService.Passbook(ctx, getActorFromContext(c), schemeID, userID, months)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPassbookResponse(passbook))
}

type TransactionsPageResponse struct {
	Items      []TransactionResponse `json:"items"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	Total      int64                 `json:"total"`
	TotalPages int                   `json:"total_pages"`
	Totals     struct {
		Deposits    decimal.Decimal `json:"deposits"`
		Withdrawals decimal.Decimal `json:"withdrawals"`
		Fees        decimal.Decimal `json:"fees"`
		Volume      decimal.Decimal `json:"volume"`
	} `json:"totals"`
}

// Transactions GET RouteGroup + AdminTransactionsRoute?type=&q=&page=&page_size=.
func (h *LedgerHandler) Transactions(c *gin.Context) {
	page, ok := intQuery(c, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := intQuery(c, "page_size", service.DefaultPageSize)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, err := h.ledgerService.Transactions(ctx, getActorFromContext(c), service.TransactionsQuery{
		Type:     domain.TransactionType(c.Query("type")),
		Search:   c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := TransactionsPageResponse{
		Items:      newTransactionRowsResponse(result.Items),
		Page:       result.Page,
		PageSize:   result.PageSize,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	}
	response.Totals.Deposits = result.Totals.Deposits
	response.Totals.Withdrawals = result.Totals.Withdrawals
	response.Totals.Fees = result.Totals.Fees
	response.Totals.Volume = result.Totals.Volume()
	c.JSON(http.StatusOK, response)
}

// MyTransactions GET RouteGroup + UserTransactionsRoute. История текущего юзера по всем схемам.
func (h *LedgerHandler) MyTransactions(c *gin.Context) {
	actor := getActorFromContext(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	rows, err := h.ledgerService.MemberHistory(ctx, actor, actor.UserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTransactionRowsResponse(rows))
}
