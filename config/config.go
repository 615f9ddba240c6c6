package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	SecretKey []byte

	DatabaseURL string
	ServerPort  string

	// Payment processor credentials. The gateway client built from these is
	// injected into the settlement service; nothing reads them at call time.
	StripeSecretKey     string
	StripeWebhookSecret string

	// Settlement and pricing knobs.
	Currency           string
	PlatformFeePercent float64
	DeliveryFee        float64

	// Object storage for menu item images.
	S3Bucket string
	S3Region string
)

func Init() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("JWT secret key not set")
	}
	SecretKey = []byte(secret)

	DatabaseURL = os.Getenv("DATABASE_URL")
	if DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	StripeSecretKey = os.Getenv("STRIPE_SECRET_KEY")
	if StripeSecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY not set")
	}
	StripeWebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")
	if StripeWebhookSecret == "" {
		log.Fatal("STRIPE_WEBHOOK_SECRET not set")
	}

	ServerPort = getEnv("SERVER_PORT", ":8080")
	Currency = getEnv("CURRENCY", "usd")
	PlatformFeePercent = getEnvFloat("PLATFORM_FEE_PERCENT", 20)
	DeliveryFee = getEnvFloat("DELIVERY_FEE", 15000)
	S3Bucket = getEnv("S3_BUCKET", "")
	S3Region = getEnv("S3_REGION", "us-east-1")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid value for %s: %v", key, err)
	}
	return f
}
