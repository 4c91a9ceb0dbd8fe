package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port          string
	Production    bool
	MongoURI      string
	MongoDatabase string
	StoreTimeout  time.Duration

	TokenSecret string
	CORSOrigins []string

	StripeSecretKey string
	Currency        string

	UploadProvider   string
	ImgbbUploadURL   string
	ImgbbAPIKey      string
	CloudinaryName   string
	CloudinaryAPIKey string
	CloudinarySecret string
	CloudinaryFolder string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads the process environment. Call godotenv.Load first if a .env file should be honoured.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8000"),
		Production:    os.Getenv("NODE_ENV") == "production",
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "MedCampConnect"),
		StoreTimeout:  10 * time.Second,

		TokenSecret: os.Getenv("ACCESS_TOKEN_SECRET"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:5174")),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		Currency:        strings.ToLower(getEnv("PAYMENT_CURRENCY", "usd")),

		UploadProvider:   strings.ToLower(getEnv("UPLOAD_PROVIDER", "imgbb")),
		ImgbbUploadURL:   getEnv("IMGBB_UPLOAD_URL", "https://api.imgbb.com/1/upload"),
		ImgbbAPIKey:      os.Getenv("IMGBB_API_KEY"),
		CloudinaryName:   os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey: os.Getenv("CLOUDINARY_API_KEY"),
		CloudinarySecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder: getEnv("CLOUDINARY_FOLDER", "camps"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if v := os.Getenv("STORE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("STORE_TIMEOUT %q is not a duration, using %s", v, cfg.StoreTimeout)
		} else {
			cfg.StoreTimeout = d
		}
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("REDIS_DB %q is not a number, using 0", v)
		} else {
			cfg.RedisDB = n
		}
	}

	if len(cfg.CORSOrigins) == 0 {
		return nil, errors.New("CORS_ORIGINS must list at least one origin")
	}
	if cfg.TokenSecret == "" {
		return nil, errors.New("ACCESS_TOKEN_SECRET is not configured")
	}
	if cfg.UploadProvider != "imgbb" && cfg.UploadProvider != "cloudinary" {
		return nil, errors.New("UPLOAD_PROVIDER must be imgbb or cloudinary")
	}
	return cfg, nil
}

// LogSummary prints the effective settings without leaking secrets.
func (c *Config) LogSummary() {
	log.Printf("PORT: %s", c.Port)
	log.Printf("MONGO_DATABASE: %s", c.MongoDatabase)
	log.Printf("Production mode: %t", c.Production)
	log.Printf("CORS origins: %s", strings.Join(c.CORSOrigins, ", "))
	log.Printf("Upload provider: %s", c.UploadProvider)
	logSecret("ACCESS_TOKEN_SECRET", c.TokenSecret)
	logSecret("STRIPE_SECRET_KEY", c.StripeSecretKey)
	if c.RedisAddr != "" {
		log.Printf("REDIS_ADDR: %s (logout revocation enabled)", c.RedisAddr)
	}
}

func logSecret(name, value string) {
	if value != "" {
		log.Printf("%s is SET.", name)
	} else {
		log.Printf("%s is NOT SET.", name)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
