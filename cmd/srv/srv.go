package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mangrove-guardian/backend/config"
	"github.com/mangrove-guardian/backend/internal/domain"
	"github.com/mangrove-guardian/backend/internal/model"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/api/validator"
	"github.com/mangrove-guardian/backend/pkg/authenticator"
	"github.com/mangrove-guardian/backend/pkg/kafka"
	"github.com/mangrove-guardian/backend/pkg/logger"
	"github.com/mangrove-guardian/backend/pkg/pubsub"
	"github.com/mangrove-guardian/backend/pkg/router"
	"github.com/mangrove-guardian/backend/pkg/storage"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"github.com/mangrove-guardian/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	userRepo      repository.UserRepository
	profileRepo   repository.ProfileRepository
	coinRepo      repository.CoinRepository
	adminRoleRepo repository.AdminRoleRepository
	reportRepo    repository.ReportRepository
	courseRepo    repository.CourseRepository
	quizRepo      repository.QuizRepository
	guideRepo     repository.GuideRepository
	quizScoreRepo repository.QuizScoreRepository
	rewardLogRepo repository.RewardLogRepository

	authDomain      domain.AuthDomain
	userDomain      domain.UserDomain
	reportDomain    domain.ReportDomain
	adminDomain     domain.AdminDomain
	educationDomain domain.EducationDomain
	fileDomain      domain.FileDomain

	fileStorage       storage.Storage
	publisher         pubsub.Publisher
	redisClient       xredis.Client
	validatorEndpoint validator.IEndpoint

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	cfg := config.Configs{
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnvAsInt("LOG_LEVEL", logger.INFO),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "mangrove_guardian"),
			User:     getEnv("MYSQL_USER", "mysql"),
			Password: getEnv("MYSQL_PASSWORD", "mysql"),
		},
		ApiServer: config.ServerConfigs{
			Host:          getEnv("HOST", "localhost"),
			Port:          getEnv("PORT", "8080"),
			AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
			MaxLimit:      getEnvAsInt("API_MAX_LIMIT", 50),
			DefaultLimit:  getEnvAsInt("API_DEFAULT_LIMIT", 10),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getEnvAsDuration("ACCESS_TOKEN_DURATION", time.Hour*24*30),
			},
		},
		Storage: storage.S3Configs{
			Region:         getEnv("STORAGE_REGION", "auto"),
			Endpoint:       getEnv("STORAGE_ENDPOINT", "http://localhost:9000"),
			PublicEndpoint: getEnv("STORAGE_PUBLIC_ENDPOINT", "http://localhost:9000"),
			AccessKey:      getEnv("STORAGE_ACCESS_KEY", "access_key"),
			SecretKey:      getEnv("STORAGE_SECRET_KEY", "secret_key"),
			SSLDisabled:    getEnvAsBool("STORAGE_SSL_DISABLED", true),
		},
		File: config.FileConfigs{
			MaxSize: int64(getEnvAsInt("MAX_UPLOAD_SIZE", 2<<20)),
		},
		Validator: config.ValidatorConfigs{
			Endpoints: strings.Fields(getEnv("VALIDATOR_ENDPOINTS", "")),
			Timeout:   getEnvAsDuration("VALIDATOR_TIMEOUT", 10*time.Second),
		},
		Redis: config.RedisConfigs{
			Addr:            getEnv("REDIS_ADDRESS", "localhost:6379"),
			RateLimit:       getEnvAsInt("RATE_LIMIT", 0),
			RateLimitWindow: getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Kafka: config.KafkaConfigs{
			Addr: getEnv("KAFKA_ADDRESS", "localhost:9092"),
		},
		Cron: config.CronConfigs{
			ReconcileInterval: getEnvAsDuration("RECONCILE_INTERVAL", time.Hour),
		},
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(cfg.LogLevel))
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration))
	s.ctx = xcontext.WithHTTPClient(s.ctx, http.DefaultClient)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}

	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}

	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}

	return fallback
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx)
	db, err := gorm.Open(mysql.Open(cfg.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) loadStorage() {
	s.fileStorage = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
}

func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx)
	publisher, err := kafka.NewPublisher("mangrove-guardian", []string{cfg.Kafka.Addr})
	if err != nil {
		panic(err)
	}

	s.publisher = publisher
}

func (s *srv) loadRedisClient() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadEndpoint() {
	s.validatorEndpoint = validator.New(xcontext.Configs(s.ctx).Validator)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.profileRepo = repository.NewProfileRepository()
	s.coinRepo = repository.NewCoinRepository()
	s.adminRoleRepo = repository.NewAdminRoleRepository()
	s.reportRepo = repository.NewReportRepository()
	s.courseRepo = repository.NewCourseRepository()
	s.quizRepo = repository.NewQuizRepository()
	s.guideRepo = repository.NewGuideRepository()
	s.quizScoreRepo = repository.NewQuizScoreRepository()
	s.rewardLogRepo = repository.NewRewardLogRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.profileRepo, s.coinRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.profileRepo, s.coinRepo, s.adminRoleRepo)
	s.reportDomain = domain.NewReportDomain(s.reportRepo, s.coinRepo, s.profileRepo,
		s.rewardLogRepo, s.adminRoleRepo, s.validatorEndpoint, s.publisher)
	s.adminDomain = domain.NewAdminDomain(s.adminRoleRepo, s.userRepo, s.profileRepo,
		s.reportRepo, s.courseRepo, s.quizRepo)
	s.educationDomain = domain.NewEducationDomain(s.courseRepo, s.quizRepo, s.guideRepo,
		s.quizScoreRepo, s.coinRepo, s.profileRepo, s.rewardLogRepo, s.adminRoleRepo)
	s.fileDomain = domain.NewFileDomain(s.fileStorage, s.profileRepo)
}
