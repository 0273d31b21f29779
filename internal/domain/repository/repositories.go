package repository

// Repositories 모든 레포지토리 인터페이스의 컬렉션
type Repositories struct {
	AuditLog AuditLogRepository
	Session  SessionRepository
	Cache    CacheRepository
}

// NewRepositories 모든 레포지토리를 포함하는 컬렉션 생성
func NewRepositories(
	auditLogRepo AuditLogRepository,
	sessionRepo SessionRepository,
	cacheRepo CacheRepository,
) *Repositories {
	return &Repositories{
		AuditLog: auditLogRepo,
		Session:  sessionRepo,
		Cache:    cacheRepo,
	}
}
