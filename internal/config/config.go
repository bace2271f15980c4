package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"qual-store/internal/logger"
	"qual-store/internal/models"
)

// DevJWTSecretKey signs tokens outside production only; Validate rejects it in production.
const DevJWTSecretKey = "defaultsecret"

type Config struct {
	Env                  string              `yaml:"env"`
	HTTPAddr             string              `yaml:"http_addr"`
	DBDriver             string              `yaml:"db_driver"`
	DBDSN                string              `yaml:"db_dsn"`
	JWTSecretKey         string              `yaml:"jwt_secret_key"`
	AccessTokenTTL       time.Duration       `yaml:"access_token_ttl"`
	DefaultDeliveryPrice float64             `yaml:"default_delivery_price"`
	AdminUsername        string              `yaml:"admin_username"`
	AdminPassword        string              `yaml:"admin_password"`
	CORSOrigins          []string            `yaml:"cors_origins"`
	StatusPermissions    map[string][]string `yaml:"status_permissions"`
}

func Defaults() Config {
	return Config{
		Env:            "development",
		HTTPAddr:       ":8080",
		DBDriver:       "sqlite",
		DBDSN:          "file:qual-store.db?_foreign_keys=on",
		JWTSecretKey:   DevJWTSecretKey,
		AccessTokenTTL: time.Hour,
		CORSOrigins:    []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Load starts from Defaults, applies the YAML file named by CONFIG_FILE (if any),
// then lets environment variables override individual keys.
func Load(log *logger.Logger) (Config, error) {
	cfg := Defaults()

	if path := GetEnv("CONFIG_FILE", "", log); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Env = GetEnv("ENV", cfg.Env, log)
	cfg.HTTPAddr = GetEnv("HTTP_ADDR", cfg.HTTPAddr, log)
	cfg.DBDriver = GetEnv("DB_DRIVER", cfg.DBDriver, log)
	cfg.DBDSN = GetEnv("DB_DSN", cfg.DBDSN, nil)
	cfg.JWTSecretKey = GetEnv("JWT_SECRET_KEY", cfg.JWTSecretKey, nil)
	cfg.AccessTokenTTL = GetEnvAsDuration("ACCESS_TOKEN_TTL", cfg.AccessTokenTTL, log)
	cfg.DefaultDeliveryPrice = GetEnvAsFloat("DEFAULT_DELIVERY_PRICE", cfg.DefaultDeliveryPrice, log)
	cfg.AdminUsername = GetEnv("ADMIN_USERNAME", cfg.AdminUsername, log)
	cfg.AdminPassword = GetEnv("ADMIN_PASSWORD", cfg.AdminPassword, nil)
	cfg.CORSOrigins = GetEnvAsList("CORS_ORIGINS", cfg.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DefaultDeliveryPrice < 0 {
		return fmt.Errorf("default delivery price must be non-negative, got %v", c.DefaultDeliveryPrice)
	}
	if c.Production() && (c.JWTSecretKey == "" || c.JWTSecretKey == DevJWTSecretKey) {
		return fmt.Errorf("JWT_SECRET_KEY must be set to a non-default value in production")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("access token ttl must be positive")
	}
	if _, err := c.Permissions(); err != nil {
		return err
	}
	return nil
}

func (c Config) Production() bool { return c.Env == "production" || c.Env == "prod" }

// Permissions converts the status_permissions override into typed form. A nil
// result means "use the built-in table".
func (c Config) Permissions() (map[models.RoleName][]models.OrderStatus, error) {
	if len(c.StatusPermissions) == 0 {
		return nil, nil
	}
	out := make(map[models.RoleName][]models.OrderStatus, len(c.StatusPermissions))
	for role, names := range c.StatusPermissions {
		r := models.RoleName(role)
		if !r.Valid() {
			return nil, fmt.Errorf("status_permissions: unknown role %q", role)
		}
		for _, name := range names {
			s, ok := models.ParseOrderStatus(name)
			if !ok {
				return nil, fmt.Errorf("status_permissions: unknown status %q for role %s", name, role)
			}
			out[r] = append(out[r], s)
		}
	}
	return out, nil
}
