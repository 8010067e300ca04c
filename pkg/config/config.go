// Package config reads the service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port    string `default:"8080"`
	Prefix  string `default:"/"`
	Debug   bool   `default:"false"`
	LogFile string `split_words:"true"`

	// Ephemeris selects the solar position provider: suncalc or meeus.
	Ephemeris string `default:"suncalc"`
	// TZSource selects time zone inference: openmeteo or tzf.
	TZSource string `envconfig:"TZ_SOURCE" default:"openmeteo"`

	GeocodingURL   string `split_words:"true" default:"https://geocoding-api.open-meteo.com/v1/search"`
	ForecastURL    string `split_words:"true" default:"https://api.open-meteo.com/v1/forecast"`
	PostalURL      string `split_words:"true" default:"https://api.zippopotam.us"`
	PostalCountry  string `split_words:"true" default:"us"`
	Language       string `envconfig:"GEOCODING_LANGUAGE" default:"en"`
	DefaultCountry string `split_words:"true" default:"US"`

	CacheTTL  time.Duration `split_words:"true" default:"1h"`
	RedisAddr string        `split_words:"true"`

	DatabaseURL   string `split_words:"true"`
	SessionKey    string `split_words:"true" default:"deadbeef"`
	EncryptionKey string `split_words:"true" default:"deadbeef"`
	// SecureCookies restricts the session cookie to HTTPS.
	SecureCookies bool `split_words:"true" default:"true"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var env Config
	if err := envconfig.Process("", &env); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if err := env.validate(); err != nil {
		return Config{}, err
	}
	return env, nil
}

func (c Config) validate() error {
	switch c.Ephemeris {
	case "suncalc", "meeus":
	default:
		return fmt.Errorf("unknown ephemeris %q", c.Ephemeris)
	}
	switch c.TZSource {
	case "openmeteo", "tzf":
	default:
		return fmt.Errorf("unknown time zone source %q", c.TZSource)
	}
	return nil
}
