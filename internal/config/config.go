package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
// The admin credential defaults match the dashboard build this service
// replaced; set ADMIN_PASSWORD_HASH to a bcrypt hash to keep the plain
// password out of the environment.
type Config struct {
	Port              int      `envconfig:"PORT" default:"8080"`
	LogLevel          string   `envconfig:"LOG_LEVEL" default:"info"`
	StoreDriver       string   `envconfig:"STORE_DRIVER" default:"sqlite"`
	DataDir           string   `envconfig:"DATA_DIR" default:"data"`
	DatabaseURL       string   `envconfig:"DATABASE_URL" default:""`
	AdminEmail        string   `envconfig:"ADMIN_EMAIL" default:"admin@kirnagrma"`
	AdminPassword     string   `envconfig:"ADMIN_PASSWORD" default:"1234567890"`
	AdminPasswordHash string   `envconfig:"ADMIN_PASSWORD_HASH" default:""`
	PlatformAPIURL    string   `envconfig:"PLATFORM_API_URL" default:"http://127.0.0.1:8000"`
	SeedAgentsPath    string   `envconfig:"SEED_AGENTS_PATH" default:""`
	CORSOrigins       []string `envconfig:"CORS_ORIGINS" default:"*"`
	LoginRateLimit    int      `envconfig:"LOGIN_RATE_LIMIT" default:"10"`
	Version           string   `envconfig:"VERSION" default:"dev"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
