// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	BaseURL     string `envconfig:"BASE_URL" default:"http://localhost:8080"`
	UploadDir   string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`

	StoreDriver    string `envconfig:"STORE_DRIVER" default:"memory"`
	DBDSN          string `envconfig:"DB_DSN_PRIMARY"`
	DBMaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`

	JWTSecret         string        `envconfig:"JWT_SECRET"`
	JWTTTL            time.Duration `envconfig:"JWT_TTL" default:"168h"`
	AuthRatePerMinute int           `envconfig:"AUTH_RATE_PER_MINUTE" default:"20"`
	AuthRateBurst     int           `envconfig:"AUTH_RATE_BURST" default:"5"`
	AdminAPIKey       string        `envconfig:"ADMIN_API_KEY"`

	ProofMirror           string `envconfig:"PROOF_MIRROR" default:"none"`
	GoogleClientEmail     string `envconfig:"GOOGLE_CLIENT_EMAIL"`
	GooglePrivateKey      string `envconfig:"GOOGLE_PRIVATE_KEY"`
	GoogleCredentialsFile string `envconfig:"GOOGLE_CREDENTIALS_FILE"`
	DriveFolderID         string `envconfig:"GOOGLE_DRIVE_FOLDER_ID" default:"root"`
	SheetID               string `envconfig:"GOOGLE_SHEET_ID"`
	SheetsDefaultTab      string `envconfig:"SHEETS_DEFAULT_TAB" default:"Sheet1"`
	CloudinaryURL         string `envconfig:"CLOUDINARY_URL"`
	CloudinaryFolder      string `envconfig:"CLOUDINARY_FOLDER" default:"payment-proofs"`

	KafkaBrokers string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"order-events"`

	UPIVPA   string `envconfig:"UPI_VPA"`
	UPIPayee string `envconfig:"UPI_PAYEE" default:"ShopEase"`

	OrderReceipts bool `envconfig:"ORDER_RECEIPTS" default:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	// Keys pasted into a single env line carry literal \n sequences.
	cfg.GooglePrivateKey = strings.ReplaceAll(cfg.GooglePrivateKey, `\n`, "\n")
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.StoreDriver {
	case "memory":
	case "mysql":
		if c.DBDSN == "" {
			errs = append(errs, errors.New("DB_DSN_PRIMARY is required when STORE_DRIVER=mysql"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	switch c.ProofMirror {
	case "none", "drive", "cloudinary":
	default:
		errs = append(errs, fmt.Errorf("unknown PROOF_MIRROR %q", c.ProofMirror))
	}

	if c.IsProduction() && c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required in production"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Origins splits CORS_ORIGINS on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Brokers splits KAFKA_BROKERS on commas.
func (c *Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
