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
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Backend       Backend       `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	AnalyticsSync AnalyticsSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
	AutoMigrate  bool   `mapstructure:"database_auto_migrate"`
}

// Backend é a API REST do marketplace que fornece campanhas e analytics diários
type Backend struct {
	URL      string        `mapstructure:"vikareta_api_url"`
	APIToken string        `mapstructure:"vikareta_api_token"`
	Timeout  time.Duration `mapstructure:"vikareta_api_timeout"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type AnalyticsSync struct {
	CronSchedule        string `mapstructure:"analytics_sync_cron"`
	LookbackDays        int    `mapstructure:"analytics_sync_lookback_days"`
	RetentionDays       int    `mapstructure:"analytics_sync_retention_days"`
	RequestDelaySeconds int    `mapstructure:"analytics_sync_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"analytics_sync_max_concurrent_jobs"`
	Enabled             bool   `mapstructure:"analytics_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://dashboard.vikareta.com")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/vikareta_analytics?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_AUTO_MIGRATE", true)

	viper.SetDefault("VIKARETA_API_URL", "http://localhost:5001/api")
	viper.SetDefault("VIKARETA_API_TOKEN", "")
	viper.SetDefault("VIKARETA_API_TIMEOUT", "30s")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	// Defaults para sincronização de analytics
	viper.SetDefault("ANALYTICS_SYNC_CRON", "0 3 * * *")        // Todos os dias às 3h da manhã
	viper.SetDefault("ANALYTICS_SYNC_LOOKBACK_DAYS", 7)         // 7 dias para buscar dados
	viper.SetDefault("ANALYTICS_SYNC_RETENTION_DAYS", 400)      // 0 desabilita a limpeza
	viper.SetDefault("ANALYTICS_SYNC_REQUEST_DELAY_SECONDS", 1) // 1 segundo entre campanhas
	viper.SetDefault("ANALYTICS_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 jobs concorrentes
	viper.SetDefault("ANALYTICS_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if config.AnalyticsSync.MaxConcurrentJobs <= 0 {
		config.AnalyticsSync.MaxConcurrentJobs = 1
	}

	return config, nil
}

// loadEnvFile carrega o .env do diretório atual ou de diretórios acima
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
