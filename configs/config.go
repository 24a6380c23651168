package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	// rental defaults, overridable per booking at confirmation
	FreeKmPerDay int64
	ExtraKmRate  int64

	// invoicing
	TaxName        string
	TaxRateBps     int64 // basis points, 1800 = 18%
	Currency       string
	InvoicePrefix  string
	InvoiceDueDays int

	UploadDir string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBSource:  getEnv("DB_SOURCE", "rental.db"),
		Port:      getEnv("PORT", "8000"),
		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    time.Duration(24) * time.Hour,

		FreeKmPerDay: getEnvInt64("FREE_KM_PER_DAY", 100),
		ExtraKmRate:  getEnvInt64("EXTRA_KM_RATE", 50),

		TaxName:        getEnv("TAX_NAME", "VAT"),
		TaxRateBps:     getEnvInt64("TAX_RATE_BPS", 0),
		Currency:       getEnv("CURRENCY", "LKR"),
		InvoicePrefix:  getEnv("INVOICE_PREFIX", "INV"),
		InvoiceDueDays: int(getEnvInt64("INVOICE_DUE_DAYS", 14)),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		log.Printf("invalid %s=%q, using default %d", key, v, fallback)
	}
	return fallback
}
