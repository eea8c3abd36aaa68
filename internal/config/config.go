package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Sin JWT_SECRET la API corre sin autenticacion (solo desarrollo).
	JWTSecret    string        `env:"JWT_SECRET"`
	JWTIssuer    string        `env:"JWT_ISSUER" envDefault:"spiegelmatch"`
	JWTAccessTTL time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`

	GenerateRateLimit  int           `env:"GENERATE_RATE_LIMIT" envDefault:"10"`
	GenerateRateWindow time.Duration `env:"GENERATE_RATE_WINDOW" envDefault:"1h"`
	MatchRateLimit     int           `env:"MATCH_RATE_LIMIT" envDefault:"60"`
	MatchRateWindow    time.Duration `env:"MATCH_RATE_WINDOW" envDefault:"1m"`
	MatchCacheTTL      time.Duration `env:"MATCH_CACHE_TTL" envDefault:"10m"`

	LogDevelopment bool `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
