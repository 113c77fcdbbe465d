package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Meta         Meta         `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	MetaAdsSync  MetaAdsSync  `mapstructure:",squash"`
	ParallelSync ParallelSync `mapstructure:",squash"`
	ImageCache   ImageCache   `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL          string          `mapstructure:"meta_base_url"`
	URL              string          `mapstructure:"meta_url"`
	Version          string          `mapstructure:"meta_version"`
	AppID            string          `mapstructure:"meta_app_id"`
	AppSecret        string          `mapstructure:"meta_app_secret"`
	PageLimit        int             `mapstructure:"meta_page_limit"`
	RequestTimeout   time.Duration   `mapstructure:"meta_request_timeout"`
	RateLimitBackoff []time.Duration `mapstructure:"-"`
	RawBackoff       []string        `mapstructure:"meta_rate_limit_backoff"`
}

type App struct {
	LogLevel      string `mapstructure:"log_level"`
	LogFile       string `mapstructure:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`
}

type Auth struct {
	JWTSecret string `mapstructure:"auth_jwt_secret"`
}

type MetaAdsSync struct {
	ValidationMaxRetries int           `mapstructure:"meta_ads_sync_validation_max_retries"`
	ValidationRetryDelay time.Duration `mapstructure:"meta_ads_sync_validation_retry_delay"`
	DefaultPreset        string        `mapstructure:"meta_ads_sync_default_preset"`
	UpsertChunkSize      int           `mapstructure:"meta_ads_sync_upsert_chunk_size"`
}

type ParallelSync struct {
	CronSchedule          string        `mapstructure:"parallel_sync_cron"`
	Enabled               bool          `mapstructure:"parallel_sync_enabled"`
	MaxConcurrentProjects int           `mapstructure:"parallel_sync_max_concurrent_projects"`
	BatchDelay            time.Duration `mapstructure:"parallel_sync_batch_delay"`
	PeriodDelay           time.Duration `mapstructure:"parallel_sync_period_delay"`
	Periods               []string      `mapstructure:"parallel_sync_periods"`
}

type ImageCache struct {
	Enabled                bool          `mapstructure:"image_cache_enabled"`
	StorageType            string        `mapstructure:"image_cache_storage_type"`
	LocalPath              string        `mapstructure:"image_cache_local_path"`
	PublicBaseURL          string        `mapstructure:"image_cache_public_base_url"`
	S3Bucket               string        `mapstructure:"image_cache_s3_bucket"`
	S3Region               string        `mapstructure:"image_cache_s3_region"`
	S3Endpoint             string        `mapstructure:"image_cache_s3_endpoint"`
	S3AccessKeyID          string        `mapstructure:"image_cache_s3_access_key_id"`
	S3SecretAccessKey      string        `mapstructure:"image_cache_s3_secret_access_key"`
	MaxConcurrentDownloads int           `mapstructure:"image_cache_max_concurrent_downloads"`
	TTL                    time.Duration `mapstructure:"image_cache_ttl"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/meta_ads?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "")
	viper.SetDefault("META_APP_SECRET", "")
	viper.SetDefault("META_PAGE_LIMIT", 500)
	viper.SetDefault("META_REQUEST_TIMEOUT", "60s")
	viper.SetDefault("META_RATE_LIMIT_BACKOFF", "5s,15s,30s") // 3 tentativas após rate limit

	viper.SetDefault("AUTH_JWT_SECRET", "your_jwt_secret")

	viper.SetDefault("META_ADS_SYNC_VALIDATION_MAX_RETRIES", 2)
	viper.SetDefault("META_ADS_SYNC_VALIDATION_RETRY_DELAY", "10s")
	viper.SetDefault("META_ADS_SYNC_DEFAULT_PRESET", "last_30d")
	viper.SetDefault("META_ADS_SYNC_UPSERT_CHUNK_SIZE", 500)

	viper.SetDefault("PARALLEL_SYNC_CRON", "0 */6 * * *") // A cada 6 horas
	viper.SetDefault("PARALLEL_SYNC_ENABLED", false)
	viper.SetDefault("PARALLEL_SYNC_MAX_CONCURRENT_PROJECTS", 10)
	viper.SetDefault("PARALLEL_SYNC_BATCH_DELAY", "5s")
	viper.SetDefault("PARALLEL_SYNC_PERIOD_DELAY", "2s")
	viper.SetDefault("PARALLEL_SYNC_PERIODS", "last_7d,last_30d,this_month,last_month,last_90d")

	viper.SetDefault("IMAGE_CACHE_ENABLED", true)
	viper.SetDefault("IMAGE_CACHE_STORAGE_TYPE", "local")
	viper.SetDefault("IMAGE_CACHE_LOCAL_PATH", "./data/images")
	viper.SetDefault("IMAGE_CACHE_PUBLIC_BASE_URL", "http://localhost:8000/images")
	viper.SetDefault("IMAGE_CACHE_S3_REGION", "us-east-1")
	viper.SetDefault("IMAGE_CACHE_MAX_CONCURRENT_DOWNLOADS", 5)
	viper.SetDefault("IMAGE_CACHE_TTL", "24h")

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("LOG_MAX_SIZE_MB", 100)
	viper.SetDefault("LOG_MAX_BACKUPS", 5)
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.finalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// finalize calcula os campos derivados depois do unmarshal
func (c *Config) finalize() error {
	c.Meta.URL = fmt.Sprintf("%s/%s", c.Meta.BaseURL, c.Meta.Version)

	backoff, err := ParseBackoff(c.Meta.RawBackoff)
	if err != nil {
		return fmt.Errorf("erro ao ler META_RATE_LIMIT_BACKOFF: %w", err)
	}
	c.Meta.RateLimitBackoff = backoff

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)

	return nil
}

// ParseBackoff converte a lista de intervalos ("5s", "15s") em durações
func ParseBackoff(raw []string) ([]time.Duration, error) {
	backoff := make([]time.Duration, 0, len(raw))
	for _, item := range raw {
		if item == "" {
			continue
		}

		d, err := time.ParseDuration(item)
		if err != nil {
			return nil, err
		}
		backoff = append(backoff, d)
	}

	return backoff, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
