package db

import (
	"fmt"
	"time"

	"github.com/ozalperen/auth-service/internal/config"
	"github.com/ozalperen/auth-service/internal/infrastructure/db/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 연결 재시도 정책
const (
	connectAttempts = 3
	connectBackoff  = 2 * time.Second
)

// Infrastructure 인프라스트럭처 구조체
type Infrastructure struct {
	DB          *gorm.DB
	RedisClient *redis.Client

	logger *zap.Logger
}

// NewInfrastructure 인프라스트럭처 초기화
// 연결 실패는 제한된 재시도 후 에러로 반환됩니다 (백그라운드 연결 없음)
func NewInfrastructure(cfg *config.Config) (*Infrastructure, error) {
	logger := cfg.Logger
	infrastructure := &Infrastructure{logger: logger}

	// 데이터베이스 연결 설정
	dbConfig := Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Name:            cfg.Database.Name,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		SSLMode:         cfg.Database.SSLMode,
	}

	// 데이터베이스 연결 (재시도 포함)
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		infrastructure.DB, err = NewPostgresDB(dbConfig, logger)
		if err == nil {
			break
		}
		logger.Warn("데이터베이스 연결 재시도",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		time.Sleep(time.Duration(attempt) * connectBackoff)
	}
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}

	// 감사 로그 테이블 마이그레이션
	if err := infrastructure.DB.AutoMigrate(&model.AuditLogModel{}); err != nil {
		return nil, fmt.Errorf("감사 로그 테이블 마이그레이션 실패: %w", err)
	}

	// Redis 설정
	redisConfig := RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	// Redis 클라이언트 초기화 (재시도 포함)
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		infrastructure.RedisClient, err = NewRedisClient(redisConfig, logger)
		if err == nil {
			break
		}
		logger.Warn("Redis 연결 재시도",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		time.Sleep(time.Duration(attempt) * connectBackoff)
	}
	if err != nil {
		return nil, fmt.Errorf("Redis 연결 실패: %w", err)
	}

	logger.Info("인프라스트럭처 초기화 완료",
		zap.String("database", "PostgreSQL"),
		zap.String("redis", "Redis"),
	)

	return infrastructure, nil
}

// Close 모든 연결 종료
func (i *Infrastructure) Close() error {
	// DB 연결 종료
	sqlDB, err := i.DB.DB()
	if err != nil {
		return fmt.Errorf("DB 인스턴스 획득 실패: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("데이터베이스 연결 종료 실패: %w", err)
	}

	// Redis 연결 종료
	if err := i.RedisClient.Close(); err != nil {
		return fmt.Errorf("Redis 연결 종료 실패: %w", err)
	}

	i.logger.Info("모든 인프라스트럭처 연결 종료됨")
	return nil
}
