package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	ServerPort int
	LogLevel   string

	StorageDriver string
	DatabaseURL   string

	JWTSecret     []byte
	SessionSecret []byte

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string

	StripeSecretKey string
	CheckoutBaseURL string

	MailerURL string
	MailerKey string
	MailFrom  string

	GeocoderURL string

	CarrierURL string
	CarrierKey string

	ImageHostURL string
	ImageHostKey string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
}

func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found, using system environment: %v", err)
	}

	return Config{
		Env:        EnvDefault("APP_ENV", "development"),
		ServerPort: EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		StorageDriver: EnvDefault("STORAGE_DRIVER", "postgres"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		JWTSecret:     []byte(os.Getenv("JWT_SECRET")),
		SessionSecret: []byte(os.Getenv("SESSION_SECRET")),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		CheckoutBaseURL: EnvDefault("CHECKOUT_BASE_URL", "http://localhost:3000"),

		MailerURL: os.Getenv("MAILER_URL"),
		MailerKey: os.Getenv("MAILER_KEY"),
		MailFrom:  EnvDefault("MAIL_FROM", "no-reply@techzone.com.py"),

		GeocoderURL: EnvDefault("GEOCODER_URL", "https://nominatim.openstreetmap.org"),

		CarrierURL: os.Getenv("CARRIER_URL"),
		CarrierKey: os.Getenv("CARRIER_KEY"),

		ImageHostURL: os.Getenv("IMAGE_HOST_URL"),
		ImageHostKey: os.Getenv("IMAGE_HOST_KEY"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleCallbackURL:  os.Getenv("GOOGLE_CALLBACK_URL"),
	}
}

func (c Config) Production() bool {
	return c.Env == "production"
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}
