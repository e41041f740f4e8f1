package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
	Storage  StorageConfig
	I18n     I18nConfig
}

type ServerConfig struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"development" validate:"required,oneof=development staging testing production"`
	HTTPPort        string        `envconfig:"HTTP_PORT" default:":8080" validate:"required"`
	GRPCPort        string        `envconfig:"GRPC_PORT" default:":9090"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"*"`
}

type LoggerConfig struct {
	Level             string `envconfig:"LOGGER_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Encoding          string `envconfig:"LOGGER_ENCODING" default:"json" validate:"oneof=json console"`
	DisableCaller     bool   `envconfig:"LOGGER_DISABLE_CALLER" default:"false"`
	DisableStacktrace bool   `envconfig:"LOGGER_DISABLE_STACKTRACE" default:"true"`
	FilePath          string `envconfig:"LOGGER_FILE_PATH"`
	MaxSize           int    `envconfig:"LOGGER_MAX_SIZE" default:"50" validate:"omitempty,min=1,max=1024"`
	MaxBackups        int    `envconfig:"LOGGER_MAX_BACKUPS" default:"5" validate:"omitempty,min=1,max=50"`
	MaxAge            int    `envconfig:"LOGGER_MAX_AGE" default:"28" validate:"omitempty,min=1,max=365"`
}

type PostgresConfig struct {
	Host            string `envconfig:"POSTGRES_HOST" default:"localhost" validate:"required"`
	Port            string `envconfig:"POSTGRES_PORT" default:"5432" validate:"required"`
	User            string `envconfig:"POSTGRES_USER" default:"kitmed" validate:"required"`
	Password        string `envconfig:"POSTGRES_PASSWORD" default:"kitmed"`
	DBName          string `envconfig:"POSTGRES_DB" default:"kitmed" validate:"required"`
	SSLMode         string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	MaxOpenConns    int    `envconfig:"POSTGRES_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int    `envconfig:"POSTGRES_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime int    `envconfig:"POSTGRES_CONN_MAX_LIFETIME" default:"300"`
	ConnMaxIdleTime int    `envconfig:"POSTGRES_CONN_MAX_IDLE_TIME" default:"60"`
}

type JWTConfig struct {
	SecretKey string        `envconfig:"JWT_SECRET_KEY" default:"your-secret-key-change-this-in-prod" validate:"required,min=16"`
	Issuer    string        `envconfig:"JWT_ISSUER" default:"kitmed"`
	TTL       time.Duration `envconfig:"JWT_TTL" default:"12h"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379" validate:"required"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CartTTL  time.Duration `envconfig:"REDIS_CART_TTL" default:"168h"`
	CacheTTL time.Duration `envconfig:"REDIS_CACHE_TTL" default:"5m"`
}

type KafkaConfig struct {
	Enabled  bool     `envconfig:"KAFKA_ENABLED" default:"true"`
	Brokers  []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	RFPTopic string   `envconfig:"KAFKA_TOPIC_RFP" default:"rfp.events"`
	GroupID  string   `envconfig:"KAFKA_GROUP_RFP" default:"kitmed-rfp"`
}

type ElasticsearchConfig struct {
	Enabled   bool     `envconfig:"ELASTICSEARCH_ENABLED" default:"true"`
	Addresses []string `envconfig:"ELASTICSEARCH_ADDRESSES" default:"http://localhost:9200"`
	Username  string   `envconfig:"ELASTICSEARCH_USERNAME"`
	Password  string   `envconfig:"ELASTICSEARCH_PASSWORD"`
	Index     string   `envconfig:"ELASTICSEARCH_INDEX" default:"kitmed_products"`
}

type StorageConfig struct {
	UploadDir     string `envconfig:"UPLOAD_DIR" default:"./uploads" validate:"required"`
	PublicBaseURL string `envconfig:"UPLOAD_PUBLIC_BASE_URL" default:"/uploads"`
	MaxUploadSize int64  `envconfig:"UPLOAD_MAX_SIZE" default:"20971520" validate:"min=1"`
}

type I18nConfig struct {
	DefaultLocale string   `envconfig:"I18N_DEFAULT_LOCALE" default:"fr" validate:"oneof=fr en"`
	MessagesFiles []string `envconfig:"I18N_MESSAGES_FILES"`
}

// LoadEnv reads the process environment. Call godotenv.Load beforehand to
// pick up a local .env file.
func LoadEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for Config: %w", err)
	}
	if c.Logger.FilePath != "" && c.Logger.MaxSize == 0 {
		return fmt.Errorf("max size is required for file logger")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development"
}
