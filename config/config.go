package config

import (
	"fmt"
	"time"

	"github.com/mangrove-guardian/backend/pkg/storage"
)

type Configs struct {
	Env      string
	LogLevel int

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Storage   storage.S3Configs
	File      FileConfigs
	Validator ValidatorConfigs
	Redis     RedisConfigs
	Kafka     KafkaConfigs
	Cron      CronConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host          string
	Port          string
	AllowedOrigin string
	MaxLimit      int
	DefaultLimit  int
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type FileConfigs struct {
	MaxSize int64
}

// ValidatorConfigs points at the external AI report-validation service.
type ValidatorConfigs struct {
	Endpoints []string
	Timeout   time.Duration
}

type RedisConfigs struct {
	Addr string

	RateLimit       int
	RateLimitWindow time.Duration
}

type KafkaConfigs struct {
	Addr string
}

type CronConfigs struct {
	ReconcileInterval time.Duration
}
