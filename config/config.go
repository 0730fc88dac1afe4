package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	// Database
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`

	// Auth
	JWTSecret string `yaml:"jwt_secret"`

	// Server
	ServerPort string `yaml:"server_port"`
}

// Load builds the configuration in three layers: built-in defaults, an
// optional YAML file, then environment variables (a .env file is honoured
// for local development). Environment always wins.
func Load(path string) (*Config, error) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "postgres",
		DBPassword: "railmate123",
		DBName:     "railmate",
		JWTSecret:  "change-me-in-production",
		ServerPort: "5001",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	// Try to load .env file (optional for local development)
	_ = godotenv.Load()

	overrideEnv(&cfg.DBHost, "DB_HOST")
	overrideEnv(&cfg.DBPort, "DB_PORT")
	overrideEnv(&cfg.DBUser, "DB_USER")
	overrideEnv(&cfg.DBPassword, "DB_PASSWORD")
	overrideEnv(&cfg.DBName, "DB_NAME")
	overrideEnv(&cfg.JWTSecret, "JWT_SECRET")
	overrideEnv(&cfg.ServerPort, "SERVER_PORT")

	return cfg, nil
}

func overrideEnv(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}
