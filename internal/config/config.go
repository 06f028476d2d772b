package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Admin    AdminConfig
	LottoAPI LottoAPIConfig
	Cache    CacheConfig
	NATS     NATSConfig
	Engine   EngineConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            string
	AllowedHosts    []string
	Mode            string // gin mode: debug, release, test
	ShutdownTimeout time.Duration
}

// MongoDBConfig holds MongoDB-specific configuration.
// An empty URI runs the API on in-memory repositories.
type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// AdminConfig seeds the first admin account on startup
type AdminConfig struct {
	Email    string
	Password string
}

// LottoAPIConfig holds the official results endpoint configuration
type LottoAPIConfig struct {
	BaseURL    string
	MockAPI    bool
	Timeout    time.Duration
	MaxRetries int
	CacheTTL   time.Duration
	SyncOnBoot bool
}

// CacheConfig holds the local Badger store configuration.
// An empty Dir keeps the store in memory.
type CacheConfig struct {
	Dir string
}

// NATSConfig holds event publishing configuration. An empty URL disables it.
type NATSConfig struct {
	URL           string
	SubjectPrefix string
}

// EngineConfig holds statistics defaults
type EngineConfig struct {
	DefaultWindow int
	HighThreshold int
	PredictWindow int
	PredictCount  int
}

// LoadConfig loads configuration from config.yaml under path (optional) and
// from environment variables such as MONGODB_URI or JWT_SECRET
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read configuration
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// PORT is what most PaaS runtimes inject
	if port := GetEnv("PORT", ""); port != "" {
		config.Server.Port = port
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "8000")
	v.SetDefault("Server.AllowedHosts", []string{"*"})
	v.SetDefault("Server.Mode", "release")
	v.SetDefault("Server.ShutdownTimeout", 5*time.Second)
	v.SetDefault("MongoDB.URI", "")
	v.SetDefault("MongoDB.Database", "lotto645")
	v.SetDefault("MongoDB.Timeout", 10*time.Second)
	v.SetDefault("JWT.Secret", "")
	v.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	v.SetDefault("Admin.Email", "")
	v.SetDefault("Admin.Password", "")
	v.SetDefault("LottoAPI.BaseURL", "https://www.dhlottery.co.kr")
	v.SetDefault("LottoAPI.MockAPI", false)
	v.SetDefault("LottoAPI.Timeout", 10*time.Second)
	v.SetDefault("LottoAPI.MaxRetries", 3)
	v.SetDefault("LottoAPI.CacheTTL", time.Hour)
	v.SetDefault("LottoAPI.SyncOnBoot", false)
	v.SetDefault("Cache.Dir", "")
	v.SetDefault("NATS.URL", "")
	v.SetDefault("NATS.SubjectPrefix", "lotto")
	v.SetDefault("Engine.DefaultWindow", 10)
	v.SetDefault("Engine.HighThreshold", 23)
	v.SetDefault("Engine.PredictWindow", 10)
	v.SetDefault("Engine.PredictCount", 5)
	v.SetDefault("LogLevel", "info")
}
