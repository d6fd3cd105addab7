package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
	_ "time/tzdata" //nolint:revive

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultTimezone         = "Africa/Lagos"
	defaultMaturityInterval = time.Minute
	defaultAMQPExchange     = "adashi.ledger"
	defaultAMQPQueue        = "adashi.ledger.events"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`
	JWTUserSecret string `env:"JWT_SECRET"`

	// AMQPURL пустой - события не публикуются.
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE"`
	AMQPQueue    string `env:"AMQP_QUEUE"`

	Timezone         string        `env:"TIMEZONE"`
	MaturityInterval time.Duration `env:"MATURITY_INTERVAL"`

	// Учетка администратора, которая создается при первом запуске.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPhone    string `env:"ADMIN_PHONE"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	location *time.Location
}

// Location часовой пояс, в котором считаются календарные дни.
func (c *Config) Location() *time.Location {
	return c.location
}

// LoadConfig читает .env (если есть), переменные окружения и флаги. Переменные окружения имеют приоритет
// над флагами.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %s", err.Error())
	}
	return loadConfig(flag.CommandLine, os.Args[1:])
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func loadConfig(fs *flag.FlagSet, args []string) (*Config, error) {
	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	if err := loadFlags(fs, args, &flagsConfig); err != nil {
		return nil, fmt.Errorf("parse flags: %s", err.Error())
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.JWTUserSecret == "" {
		return nil, errors.New("jwt secret is not set")
	}
	if conf.MaturityInterval <= 0 {
		return nil, fmt.Errorf("invalid maturity interval %s", conf.MaturityInterval)
	}

	loc, err := time.LoadLocation(conf.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %s", conf.Timezone, err.Error())
	}
	conf.location = loc
	return conf, nil
}

func loadFlags(fs *flag.FlagSet, args []string, flagConfig *Config) error {
	fs.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	fs.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	fs.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	fs.StringVar(&flagConfig.JWTUserSecret, "j", "", "JWT secret key")
	fs.StringVar(&flagConfig.AMQPURL, "q", "", "AMQP broker URL")
	fs.StringVar(&flagConfig.AMQPExchange, "qe", defaultAMQPExchange, "AMQP exchange")
	fs.StringVar(&flagConfig.AMQPQueue, "qq", defaultAMQPQueue, "AMQP queue")
	fs.StringVar(&flagConfig.Timezone, "tz", defaultTimezone, "Timezone of calendar days")
	fs.DurationVar(&flagConfig.MaturityInterval, "mi", defaultMaturityInterval, "Matured schemes check interval")

	return fs.Parse(args) //nolint:wrapcheck
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	maturityInterval := envConfig.MaturityInterval
	if maturityInterval == 0 {
		maturityInterval = flagsConfig.MaturityInterval
	}
	return &Config{
		RunAddress:       defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabaseDSN:      defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir:    defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		JWTUserSecret:    defaultIfBlank(envConfig.JWTUserSecret, flagsConfig.JWTUserSecret),
		AMQPURL:          defaultIfBlank(envConfig.AMQPURL, flagsConfig.AMQPURL),
		AMQPExchange:     defaultIfBlank(envConfig.AMQPExchange, flagsConfig.AMQPExchange),
		AMQPQueue:        defaultIfBlank(envConfig.AMQPQueue, flagsConfig.AMQPQueue),
		Timezone:         defaultIfBlank(envConfig.Timezone, flagsConfig.Timezone),
		MaturityInterval: maturityInterval,
		AdminEmail:       envConfig.AdminEmail,
		AdminPhone:       envConfig.AdminPhone,
		AdminPassword:    envConfig.AdminPassword,
	}
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
