package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Uploads      UploadsConfig
	GCP          GCPConfig
	Mail         MailConfig
	Cleanup      CleanupConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"PRINTDESK_APP_ENV" required:"true"`
	Port         string   `envconfig:"PRINTDESK_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"PRINTDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"PRINTDESK_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"PRINTDESK_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"PRINTDESK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"PRINTDESK_DB_DSN"`
	Driver string `envconfig:"PRINTDESK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PRINTDESK_DB_HOST"`
	LegacyPort     int    `envconfig:"PRINTDESK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PRINTDESK_DB_USER"`
	LegacyPassword string `envconfig:"PRINTDESK_DB_PASSWORD"`
	LegacyName     string `envconfig:"PRINTDESK_DB_NAME"`
	LegacySSLMode  string `envconfig:"PRINTDESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PRINTDESK_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"PRINTDESK_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"PRINTDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PRINTDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PRINTDESK_REDIS_URL"`
	Address      string        `envconfig:"PRINTDESK_REDIS_ADDR"`
	Password     string        `envconfig:"PRINTDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"PRINTDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PRINTDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PRINTDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PRINTDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRINTDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PRINTDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// UploadsConfig points at the bucket that holds per-order upload folders.
type UploadsConfig struct {
	BucketName string `envconfig:"PRINTDESK_UPLOADS_BUCKET_NAME" required:"true"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"PRINTDESK_GCP_PROJECT_ID"`
	ApplicationCredentials string `envconfig:"PRINTDESK_GOOGLE_APPLICATION_CREDENTIALS"`
}

// MailConfig carries the SendGrid transport settings and the shop's
// sender identity used on every outbound message.
type MailConfig struct {
	SendgridAPIKey string `envconfig:"PRINTDESK_SENDGRID_API_KEY"`
	FromEmail      string `envconfig:"PRINTDESK_MAIL_FROM_EMAIL" default:"noreply@westminster.ac.uk"`
	SenderName     string `envconfig:"PRINTDESK_MAIL_SENDER_NAME" default:"Harrow Digital Print"`
	ReplyTo        string `envconfig:"PRINTDESK_MAIL_REPLY_TO" default:"harrow.digitalprint@westminster.ac.uk"`
	UniversityName string `envconfig:"PRINTDESK_MAIL_UNIVERSITY_NAME" default:"University of Westminster"`
	MaxRetries     int    `envconfig:"PRINTDESK_MAIL_MAX_RETRIES" default:"3"`
}

type CleanupConfig struct {
	RetentionDays int           `envconfig:"PRINTDESK_CLEANUP_RETENTION_DAYS" default:"14"`
	Interval      time.Duration `envconfig:"PRINTDESK_CLEANUP_INTERVAL" default:"24h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PRINTDESK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PRINTDESK_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
