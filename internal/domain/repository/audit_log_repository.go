package repository

import (
	"context"
	"time"

	"github.com/ozalperen/auth-service/internal/domain/dto"
	"github.com/ozalperen/auth-service/internal/domain/entity"
)

// AuditLogRepository 감사 로그 저장소 인터페이스
// 추가 전용 저장소이며 정상 플로우에서는 수정/삭제가 없습니다
type AuditLogRepository interface {
	// Create 새 감사 로그 생성 (ID와 생성 시간은 저장 시점에 할당)
	Create(ctx context.Context, log *entity.AuditLog) error

	// GetByID ID로 감사 로그 조회 (없으면 nil, nil)
	GetByID(ctx context.Context, id string) (*entity.AuditLog, error)

	// Search 검색 조건으로 감사 로그 조회 (조건은 AND 결합, created_at 내림차순)
	Search(ctx context.Context, filter dto.AuditLogFilter, page dto.Pagination) ([]*entity.AuditLog, int64, error)

	// ListByUserID 사용자 ID로 감사 로그 목록 조회
	ListByUserID(ctx context.Context, userID string, page dto.Pagination) ([]*entity.AuditLog, int64, error)

	// ListByIPAddress IP 주소로 감사 로그 목록 조회
	ListByIPAddress(ctx context.Context, ipAddress string, page dto.Pagination) ([]*entity.AuditLog, int64, error)

	// ListByAction 액션으로 감사 로그 목록 조회
	ListByAction(ctx context.Context, action entity.AuditAction, page dto.Pagination) ([]*entity.AuditLog, int64, error)

	// ListByDateRange 날짜 범위로 감사 로그 목록 조회
	ListByDateRange(ctx context.Context, startDate, endDate time.Time, page dto.Pagination) ([]*entity.AuditLog, int64, error)

	// StatsByUser 사용자별 감사 통계 조회
	StatsByUser(ctx context.Context, userID string) (*dto.UserAuditStats, error)

	// StatsByIPAddress IP별 감사 통계 조회
	StatsByIPAddress(ctx context.Context, ipAddress string) (*dto.IPAuditStats, error)
}
