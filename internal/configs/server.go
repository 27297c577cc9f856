package configs

import "time"

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	AuthEnabled     bool          `env:"AUTH_ENABLED" envDefault:"true"`
	JWTSecret       string        `env:"JWT_SECRET"`
	Audience        string        `env:"JWT_AUDIENCE"`
	AllowedRoles    []string      `env:"ALLOWED_ROLES" envSeparator:"," envDefault:"admin,staff"`
	CookieSecure    bool          `env:"COOKIE_SECURE" envDefault:"true"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}
