package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv      string `env:"APP_ENV" envDefault:"production"`

	// PINLength is the required length of the numeric transaction PIN.
	PINLength int `env:"PIN_LENGTH" envDefault:"4"`

	// MaxTxAmount is the absolute per-transaction ceiling, independent of
	// privilege level. Decimal string with at most two fractional digits.
	MaxTxAmount string `env:"MAX_TX_AMOUNT" envDefault:"1000000.00"`

	// LimitTimezone pins the calendar day used for daily limit windows.
	// NEFT/RTGS/IMPS/UPI settle on IST banking days.
	LimitTimezone string `env:"LIMIT_TIMEZONE" envDefault:"Asia/Kolkata"`

	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`

	DBMaxOpenConns     int `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns     int `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetimeS int `env:"DB_CONN_MAX_LIFETIME_S" envDefault:"300"`
	DBConnMaxIdleTimeS int `env:"DB_CONN_MAX_IDLE_TIME_S" envDefault:"60"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}
