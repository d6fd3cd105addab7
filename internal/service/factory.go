package service

import (
	"fmt"
	"time"

	"github.com/fsdevblog/adashi/pkg/uow"
	"github.com/sirupsen/logrus"
)

type AppServices struct {
	AccountService *AccountService
	SchemeService  *SchemeService
	LedgerService  *LedgerService
}

type FactoryArgs struct {
	UOW       uow.UOW
	JWTSecret []byte
	Hasher    PasswordHasher
	Publisher EventPublisher
	Location  *time.Location
	Logger    *logrus.Logger
}

func Factory(args FactoryArgs) (*AppServices, error) {
	accountService, err := NewAccountService(args.UOW, args.JWTSecret, args.Hasher)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}

	schemeService, err := NewSchemeService(args.UOW, args.Location)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}

	ledgerService, err := NewLedgerService(args.UOW, args.Publisher, args.Location, args.Logger)
	if err != nil {
		return nil, fmt.Errorf("service factory: %s", err.Error())
	}

	return &AppServices{
		AccountService: accountService,
		SchemeService:  schemeService,
		LedgerService:  ledgerService,
	}, nil
}
