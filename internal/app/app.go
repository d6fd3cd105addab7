package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/adashi/internal/config"
	"github.com/fsdevblog/adashi/internal/events"
	"github.com/fsdevblog/adashi/internal/repository/pgrepo"
	"github.com/fsdevblog/adashi/internal/repository/repoargs"
	"github.com/fsdevblog/adashi/internal/service"
	"github.com/fsdevblog/adashi/internal/service/psswd"
	"github.com/fsdevblog/adashi/internal/transport/api"
	"github.com/fsdevblog/adashi/internal/transport/maturity"
	"github.com/fsdevblog/adashi/pkg/uow"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	bootstrapTimeout  = 10 * time.Second
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

// Run поднимает зависимости и работает до SIGINT/SIGTERM. HTTP сервер и обработчик завершенных схем
// живут в одной errgroup: падение одного останавливает другого.
func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.WithFields(logrus.Fields{
		"address":  a.Config.RunAddress,
		"timezone": a.Config.Timezone,
		"amqp":     a.Config.AMQPURL != "",
	}).Info("starting app")

	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	publisher, pubErr := a.initPublisher()
	if pubErr != nil {
		return fmt.Errorf("app run: %s", pubErr.Error())
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			a.Logger.WithError(err).Error("failed to close events publisher")
		}
	}()

	services, sErr := service.Factory(service.FactoryArgs{
		UOW:       unitOfWork,
		JWTSecret: []byte(a.Config.JWTUserSecret),
		Hasher:    psswd.New(),
		Publisher: publisher,
		Location:  a.Config.Location(),
		Logger:    a.Logger,
	})
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	if err := a.bootstrapAdmin(notifyCtx, services.AccountService); err != nil {
		return fmt.Errorf("app run: %s", err.Error())
	}

	router, rErr := api.New(api.RouterArgs{
		Logger:         a.Logger,
		AccountService: services.AccountService,
		SchemeService:  services.SchemeService,
		LedgerService:  services.LedgerService,
		JWTSecretKey:   []byte(a.Config.JWTUserSecret),
	})
	if rErr != nil {
		return fmt.Errorf("app run: %s", rErr.Error())
	}

	srv := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	processor := maturity.New(services.SchemeService, a.Logger).
		SetInterval(a.Config.MaturityInterval).
		SetLimitPerIteration(50). //nolint:mnd
		SetWorkers(5)             //nolint:mnd

	g, gCtx := errgroup.WithContext(notifyCtx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		processor.Run(gCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err //nolint:wrapcheck
	}
	return notifyCtx.Err() //nolint:wrapcheck
}

// Publisher события журнала. Без AMQP_URL события никуда не уходят.
type Publisher interface {
	service.EventPublisher
	Close() error
}

func (a *App) initPublisher() (Publisher, error) {
	if a.Config.AMQPURL == "" {
		a.Logger.Info("AMQP_URL is not set, ledger events are disabled")
		return events.NopPublisher{}, nil
	}
	p, err := events.NewPublisher(a.Config.AMQPURL, a.Config.AMQPExchange, a.Config.AMQPQueue, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("init publisher: %w", err)
	}
	return p, nil
}

func (a *App) bootstrapAdmin(ctx context.Context, accounts *service.AccountService) error {
	if a.Config.AdminEmail == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	created, err := accounts.EnsureAdmin(ctx, service.EnsureAdminArgs{
		Email:       a.Config.AdminEmail,
		PhoneNumber: a.Config.AdminPhone,
		Password:    a.Config.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		a.Logger.WithField("email", a.Config.AdminEmail).Info("admin account created")
	}
	return nil
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewUserRepository(dbtx)
		},
		repoargs.SchemeRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewSchemeRepository(dbtx)
		},
		repoargs.MembershipRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewMembershipRepository(dbtx)
		},
		repoargs.TransactionRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewTransactionRepository(dbtx)
		},
	}
	for name, factory := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}
	return unitOfWork, nil
}
