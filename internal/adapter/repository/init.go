package repository

import (
	domainrepo "github.com/ozalperen/auth-service/internal/domain/repository"
	"github.com/ozalperen/auth-service/internal/infrastructure/db"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InitRepositories 모든 레포지토리를 초기화하고 컬렉션을 반환합니다
func InitRepositories(database *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *domainrepo.Repositories {
	// 감사 로그 레포지토리
	auditLogRepo := NewAuditLogRepository(database)

	// 캐시 레포지토리 (Redis 기반)
	cacheRepo := db.NewRedisRepository(redisClient, logger)

	// 세션 레포지토리 (캐시 저장소 기반)
	sessionRepo := NewSessionRepository(cacheRepo, logger)

	// 레포지토리 컬렉션 생성 및 반환
	return domainrepo.NewRepositories(
		auditLogRepo,
		sessionRepo,
		cacheRepo,
	)
}
