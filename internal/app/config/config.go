package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"designer/internal/app/dsn"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string      `mapstructure:"service_host"`
	ServicePort int         `mapstructure:"service_port"`
	DB          DBConfig    `mapstructure:"db"`
	JWT         JWTConfig   `mapstructure:"jwt"`
	Redis       RedisConfig `mapstructure:"redis"`
	MinIO       MinIOConfig `mapstructure:"minio"`
	CORS        CORSConfig  `mapstructure:"cors"`
}

type DBConfig struct {
	DSN string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Token         string            `mapstructure:"secret"`
	ExpiresIn     time.Duration     `mapstructure:"expires_in"`
	CookieName    string            `mapstructure:"cookie_name"`
	Issuer        string            `mapstructure:"issuer"`
	SigningMethod jwt.SigningMethod `mapstructure:"-"`
}

type RedisConfig struct {
	Host        string        `mapstructure:"host"`
	Password    string        `mapstructure:"password"`
	Port        int           `mapstructure:"port"`
	User        string        `mapstructure:"user"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type CORSConfig struct {
	AllowOrigin string `mapstructure:"allow_origin"`
}

const envPrefix = "DESIGNER"

// NewConfig читает config/<CONFIG_NAME>.toml, .env и переменные окружения DESIGNER_*
func NewConfig() (*Config, error) {
	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Warn("config file not found, using defaults and environment")
	}

	return load(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_host", "localhost")
	v.SetDefault("service_port", 3000)
	v.SetDefault("db.dsn", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expires_in", 2*time.Hour)
	v.SetDefault("jwt.cookie_name", "token")
	v.SetDefault("jwt.issuer", "designer")
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.user", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.dial_timeout", 10*time.Second)
	v.SetDefault("redis.read_timeout", 10*time.Second)
	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", "projects")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("cors.allow_origin", "http://localhost:8080")
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if cfg.DB.DSN == "" {
		cfg.DB.DSN = dsn.FromEnv()
	}
	if cfg.DB.DSN == "" {
		return nil, errors.New("db dsn is empty: set db.dsn or DB_HOST/DB_NAME")
	}
	if cfg.JWT.Token == "" {
		return nil, errors.New("jwt secret is empty: set jwt.secret or DESIGNER_JWT_SECRET")
	}
	cfg.JWT.SigningMethod = jwt.SigningMethodHS256

	log.Info("config parsed")

	return cfg, nil
}

// RedisEnabled - blacklist токенов включается только при заданном хосте
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// MinIOEnabled - выгрузка снимков проектов включается только при заданном endpoint
func (c *Config) MinIOEnabled() bool {
	return c.MinIO.Endpoint != ""
}
