package configs

type PostgreConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER,required"`
	Password string `env:"DB_PASSWORD,required"`
	Name     string `env:"DB_NAME,required"`
}

type MigrationConfig struct {
	Path string `env:"MIGRATION_PATH" envDefault:"file://db/migrations"`
}
