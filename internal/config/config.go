package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the LMS API service.
type Config struct {
	AppName string
	AppEnv  string
	AppPort string

	MongoURI      string
	MongoDatabase string
	RedisURL      string
	NATSURL       string
	EventSubject  string

	JWTSecret string
	TokenTTL  time.Duration

	AdminUID      string
	AdminName     string
	AdminPassword string

	CourseCacheTTL    time.Duration
	DashboardCacheTTL time.Duration
	IdempotencyTTL    time.Duration

	UploadDriver  string
	UploadDir     string
	UploadBaseURL string
	UploadMaxMB   int

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional
// .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MAXBYTE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "MaxByte LMS API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "5000")
	v.SetDefault("mongo.database", "maxbytelms")
	v.SetDefault("token.ttl", "24h")
	v.SetDefault("course.cache_ttl", "10m")
	v.SetDefault("dashboard.cache_ttl", "5m")
	v.SetDefault("idempotency.ttl", "24h")
	v.SetDefault("upload.driver", "local")
	v.SetDefault("upload.dir", "uploads/images")
	v.SetDefault("upload.base_url", "/uploads/images")
	v.SetDefault("upload.max_mb", 10)
	v.SetDefault("cloudinary.folder", "maxbyte/profiles")
	v.SetDefault("events.subject", "maxbyte.activity")

	tokenTTL, err := parseTTL(v.GetString("token.ttl"), "token ttl")
	if err != nil {
		return Config{}, err
	}
	courseTTL, err := parseTTL(v.GetString("course.cache_ttl"), "course cache ttl")
	if err != nil {
		return Config{}, err
	}
	dashboardTTL, err := parseTTL(v.GetString("dashboard.cache_ttl"), "dashboard cache ttl")
	if err != nil {
		return Config{}, err
	}
	idempotencyTTL, err := parseTTL(v.GetString("idempotency.ttl"), "idempotency ttl")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		MongoURI:               v.GetString("mongo.uri"),
		MongoDatabase:          v.GetString("mongo.database"),
		RedisURL:               v.GetString("redis.url"),
		NATSURL:                v.GetString("nats.url"),
		EventSubject:           v.GetString("events.subject"),
		JWTSecret:              v.GetString("jwt.secret"),
		TokenTTL:               tokenTTL,
		AdminUID:               v.GetString("admin.uid"),
		AdminName:              v.GetString("admin.name"),
		AdminPassword:          v.GetString("admin.password"),
		CourseCacheTTL:         courseTTL,
		DashboardCacheTTL:      dashboardTTL,
		IdempotencyTTL:         idempotencyTTL,
		UploadDriver:           strings.ToLower(v.GetString("upload.driver")),
		UploadDir:              v.GetString("upload.dir"),
		UploadBaseURL:          v.GetString("upload.base_url"),
		UploadMaxMB:            v.GetInt("upload.max_mb"),
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}
	if cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("mongo uri must be provided")
	}
	if cfg.UploadMaxMB <= 0 {
		cfg.UploadMaxMB = 10
	}

	return cfg, nil
}

func parseTTL(value, name string) (time.Duration, error) {
	ttl, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return ttl, nil
}
