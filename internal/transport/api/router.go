package api

import (
	"time"

	"github.com/fsdevblog/adashi/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	schemeIDParam = "schemeID"
	userIDParam   = "userID"
)

const (
	RouteGroup = "/api"
	LoginRoute = "/user/login"

	UserSchemesRoute      = "/user/schemes"
	UserBalanceRoute      = "/user/schemes/:" + schemeIDParam + "/balance"
	UserPassbookRoute     = "/user/schemes/:" + schemeIDParam + "/passbook"
	UserTransactionsRoute = "/user/transactions"

	AdminMembersRoute          = "/admin/members"
	AdminSchemesRoute          = "/admin/schemes"
	AdminSchemeRoute           = AdminSchemesRoute + "/:" + schemeIDParam
	AdminSchemeMembersRoute    = AdminSchemeRoute + "/members"
	AdminSchemeMemberRoute     = AdminSchemeMembersRoute + "/:" + userIDParam
	AdminContributionsRoute    = AdminSchemeMemberRoute + "/contributions"
	AdminContributedTodayRoute = AdminContributionsRoute + "/today"
	AdminMemberBalanceRoute    = AdminSchemeMemberRoute + "/balance"
	AdminPayoutRoute           = AdminSchemeMemberRoute + "/payout"
	AdminMemberPassbookRoute   = AdminSchemeMemberRoute + "/passbook"
	AdminTransactionsRoute     = "/admin/transactions"
)

type RouterArgs struct {
	Logger         *logrus.Logger
	AccountService AccountServicer
	SchemeService  SchemeServicer
	LedgerService  LedgerServicer
	JWTSecretKey   []byte
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.AccountService)
	memberHandler := NewMemberHandler(args.AccountService)
	schemeHandler := NewSchemeHandler(args.SchemeService)
	ledgerHandler := NewLedgerHandler(args.LedgerService)

	api := r.Group(RouteGroup)
	api.POST(LoginRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Login)

	// ниже все роуты группы требуют авторизованного пользователя.
	user := api.Group("", middlewares.AuthRequired(args.JWTSecretKey))
	user.GET(UserSchemesRoute, schemeHandler.MySchemes)
	user.GET(UserBalanceRoute, ledgerHandler.MyBalance)
	user.GET(UserPassbookRoute, ledgerHandler.MyPassbook)
	user.GET(UserTransactionsRoute, ledgerHandler.MyTransactions)

	admin := user.Group("", middlewares.AdminRequired())
	admin.POST(AdminMembersRoute, memberHandler.Create)
	admin.GET(AdminMembersRoute, memberHandler.Index)

	admin.POST(AdminSchemesRoute, schemeHandler.Create)
	admin.GET(AdminSchemesRoute, schemeHandler.Index)
	admin.GET(AdminSchemeRoute, schemeHandler.Show)
	admin.PUT(AdminSchemeMembersRoute, schemeHandler.AssignMembers)
	admin.PATCH(AdminSchemeMemberRoute, schemeHandler.UpdateMembership)

	admin.POST(AdminContributionsRoute, ledgerHandler.RecordContribution)
	admin.GET(AdminContributedTodayRoute, ledgerHandler.ContributedToday)
	admin.GET(AdminMemberBalanceRoute, ledgerHandler.Balance)
	admin.GET(AdminPayoutRoute, ledgerHandler.PayoutQuote)
	admin.POST(AdminPayoutRoute, ledgerHandler.ProcessPayout)
	admin.GET(AdminMemberPassbookRoute, ledgerHandler.Passbook)
	admin.GET(AdminTransactionsRoute, ledgerHandler.Transactions)
	return r, nil
}
