package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	DB       DBConfig
	Redis    RedisConfig
	AI       AIConfig
	Blob     BlobConfig
	Calendar CalendarConfig
}

type AppConfig struct {
	Port     string
	Env      string
	SeedDemo bool
}

// StoreConfig selects the durable backend: "memory" keeps everything
// in-process, "postgres" goes through gorm.
type StoreConfig struct {
	Driver string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type AIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// BlobConfig selects where uploaded clinical files land: "fs" writes under
// Dir, "s3" writes to Bucket.
type BlobConfig struct {
	Driver   string
	Dir      string
	Bucket   string
	Region   string
	Endpoint string
}

// CalendarConfig drives the day-view slot geometry.
type CalendarConfig struct {
	StartHour     int
	Hours         int
	RowPx         int
	SlotPaddingPx int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env is fine, environment variables still apply
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("STORE_DRIVER", "memory")
	viper.SetDefault("AI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("AI_TIMEOUT", "30s")
	viper.SetDefault("BLOB_DRIVER", "fs")
	viper.SetDefault("BLOB_DIR", "uploads")
	viper.SetDefault("CALENDAR_START_HOUR", 8)
	viper.SetDefault("CALENDAR_HOURS", 10)
	viper.SetDefault("CALENDAR_ROW_PX", 80)
	viper.SetDefault("CALENDAR_SLOT_PADDING_PX", 2)

	aiTimeout, err := time.ParseDuration(viper.GetString("AI_TIMEOUT"))
	if err != nil {
		aiTimeout = 30 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port:     viper.GetString("APP_PORT"),
			Env:      viper.GetString("APP_ENV"),
			SeedDemo: viper.GetBool("APP_SEED_DEMO"),
		},
		Store: StoreConfig{
			Driver: viper.GetString("STORE_DRIVER"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		AI: AIConfig{
			APIKey:  viper.GetString("AI_API_KEY"),
			Model:   viper.GetString("AI_MODEL"),
			BaseURL: viper.GetString("AI_BASE_URL"),
			Timeout: aiTimeout,
		},
		Blob: BlobConfig{
			Driver:   viper.GetString("BLOB_DRIVER"),
			Dir:      viper.GetString("BLOB_DIR"),
			Bucket:   viper.GetString("BLOB_BUCKET"),
			Region:   viper.GetString("BLOB_REGION"),
			Endpoint: viper.GetString("BLOB_ENDPOINT"),
		},
		Calendar: CalendarConfig{
			StartHour:     viper.GetInt("CALENDAR_START_HOUR"),
			Hours:         viper.GetInt("CALENDAR_HOURS"),
			RowPx:         viper.GetInt("CALENDAR_ROW_PX"),
			SlotPaddingPx: viper.GetInt("CALENDAR_SLOT_PADDING_PX"),
		},
	}

	return config, nil
}
