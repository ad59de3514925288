package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	API      APIConfig
	PayHere  PayHereConfig
	Alert    AlertConfig
	Sweep    SweepConfig
}

type ServerConfig struct {
	Port int
	Env  string // "development", "production"
}

type DatabaseConfig struct {
	Host    string
	Port    string
	Name    string
	User    string
	Pass    string
	Charset string
}

type RedisConfig struct {
	Addr string
	Pass string
	DB   int
}

type APIConfig struct {
	Key string
}

// PayHereConfig holds the merchant account and the URLs baked into the
// outbound checkout form. The secret must never reach any client-facing
// surface; the merchant id may.
type PayHereConfig struct {
	MerchantID     string
	MerchantSecret string
	Sandbox        bool
	ReturnURL      string
	CancelURL      string
	NotifyURL      string
}

// AlertConfig configures the staff Telegram channel. Empty values disable
// alerting.
type AlertConfig struct {
	TelegramToken  string
	TelegramChatID string
}

// SweepConfig controls the stale-payment sweep job.
type SweepConfig struct {
	Schedule      string
	PendingMaxAge time.Duration
}

// Load reads configuration from .env file and environment variables.
func Load() (*Config, error) {
	// Load .env file (ignore error if missing)
	_ = godotenv.Load()

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_PORT", 8080)
	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_CHARSET", "utf8mb4")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("PAYHERE_SANDBOX", true)
	viper.SetDefault("SWEEP_SCHEDULE", "@every 1h")
	viper.SetDefault("SWEEP_PENDING_MAX_AGE", "24h")

	maxAge, err := time.ParseDuration(viper.GetString("SWEEP_PENDING_MAX_AGE"))
	if err != nil {
		maxAge = 24 * time.Hour
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Database: DatabaseConfig{
			Host:    viper.GetString("DB_HOST"),
			Port:    viper.GetString("DB_PORT"),
			Name:    viper.GetString("DB_NAME"),
			User:    viper.GetString("DB_USER"),
			Pass:    viper.GetString("DB_PASS"),
			Charset: viper.GetString("DB_CHARSET"),
		},
		Redis: RedisConfig{
			Addr: viper.GetString("REDIS_ADDR"),
			Pass: viper.GetString("REDIS_PASS"),
			DB:   viper.GetInt("REDIS_DB"),
		},
		API: APIConfig{
			Key: viper.GetString("API_KEY"),
		},
		PayHere: PayHereConfig{
			MerchantID:     viper.GetString("PAYHERE_MERCHANT_ID"),
			MerchantSecret: viper.GetString("PAYHERE_MERCHANT_SECRET"),
			Sandbox:        viper.GetBool("PAYHERE_SANDBOX"),
			ReturnURL:      viper.GetString("PAYHERE_RETURN_URL"),
			CancelURL:      viper.GetString("PAYHERE_CANCEL_URL"),
			NotifyURL:      viper.GetString("PAYHERE_NOTIFY_URL"),
		},
		Alert: AlertConfig{
			TelegramToken:  viper.GetString("ALERT_TELEGRAM_TOKEN"),
			TelegramChatID: viper.GetString("ALERT_TELEGRAM_CHAT_ID"),
		},
		Sweep: SweepConfig{
			Schedule:      viper.GetString("SWEEP_SCHEDULE"),
			PendingMaxAge: maxAge,
		},
	}

	if cfg.Database.Name == "" {
		log.Println("WARNING: DB_NAME is not set")
	}
	if cfg.PayHere.MerchantID == "" || cfg.PayHere.MerchantSecret == "" {
		log.Println("WARNING: PayHere merchant credentials are not set; payment processing is disabled")
	}

	return cfg, nil
}

// DSN returns the MySQL DSN string for GORM.
func (d *DatabaseConfig) DSN() string {
	return d.User + ":" + d.Pass + "@tcp(" + d.Host + ":" + d.Port + ")/" + d.Name + "?charset=" + d.Charset + "&parseTime=True&loc=Local"
}
