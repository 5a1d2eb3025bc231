package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port      string `mapstructure:"port"`
			CertFile  string `mapstructure:"certFile"`
			KeyFile   string `mapstructure:"keyFile"`
			EnableTLS bool   `mapstructure:"enableTLS"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort          string        `mapstructure:"HTTPPort"`
		Timeout           time.Duration `mapstructure:"HTTPTimeout"`
		GenerateRateLimit int           `mapstructure:"generateRateLimit"` // per client IP per minute
	} `mapstructure:"server"`
	GenAI    GenAIConfig `mapstructure:"genai"`
	Services struct {
		Weather  UpstreamConfig `mapstructure:"weather"`
		Distance UpstreamConfig `mapstructure:"distance"`
	} `mapstructure:"services"`
	Auth struct {
		JWTSecret string `mapstructure:"jwtSecret"`
		AdminRole string `mapstructure:"adminRole"`
	} `mapstructure:"auth"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
}

// GenAIConfig is handed to the generation client constructor as-is.
type GenAIConfig struct {
	APIKey      string        `mapstructure:"apiKey"`
	Model       string        `mapstructure:"model"`
	Temperature float32       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// UpstreamConfig describes one external HTTP API.
type UpstreamConfig struct {
	BaseURL  string        `mapstructure:"baseURL"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cacheTTL"`
}

// IsDevelopment reports whether the app runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Mode == "" || c.Mode == "development"
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")
	v.AddConfigPath("/usr/local/bin")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Secrets come from the environment, never from the yaml
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindings := map[string]string{
		"mode":                           "APP_ENV",
		"genai.apiKey":                   "GOOGLE_API_KEY",
		"auth.jwtSecret":                 "JWT_SECRET_KEY",
		"repositories.postgres.host":     "POSTGRES_HOST",
		"repositories.postgres.port":     "POSTGRES_PORT",
		"repositories.postgres.username": "POSTGRES_USER",
		"repositories.postgres.password": "POSTGRES_PASSWORD",
		"repositories.postgres.db":       "POSTGRES_DB",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
