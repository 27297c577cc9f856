package configs

import "time"

type RedisConfig struct {
	Host     string        `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string        `env:"REDIS_PORT" envDefault:"6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_CACHE_TTL" envDefault:"5m"`
	// Lookup data such as postal carriers changes rarely.
	LookupTTL time.Duration `env:"REDIS_LOOKUP_TTL" envDefault:"1h"`
}
