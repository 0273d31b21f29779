package interfaces

import (
	"context"
	"time"

	"github.com/ozalperen/auth-service/internal/domain/dto"
	"github.com/ozalperen/auth-service/internal/domain/entity"
)

// AuditLogUseCase 감사 로그 유스케이스 인터페이스
// 기록 측(타입별 이벤트 방출)과 조회 측(필터/통계)을 함께 노출합니다.
// 기록 실패는 호출자에게 반환되지만, 호출자는 이를 베스트 에포트로 취급하며
// 본래의 비즈니스 작업을 중단시키지 않습니다.
type AuditLogUseCase interface {
	// Create 임의 이벤트 기록 (타입별 메서드가 내부적으로 사용)
	Create(ctx context.Context, input dto.CreateAuditLogInput) (*entity.AuditLog, error)

	// 인증 플로우 이벤트
	LogLogin(ctx context.Context, user *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error)
	LogLogout(ctx context.Context, user *entity.User, ipAddress string, userAgent *string) (*entity.AuditLog, error)
	LogRegister(ctx context.Context, user *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error)
	LogPasswordChange(ctx context.Context, user *entity.User, ipAddress string, userAgent *string) (*entity.AuditLog, error)
	LogPasswordReset(ctx context.Context, user *entity.User, ipAddress string, userAgent *string) (*entity.AuditLog, error)
	LogEmailChange(ctx context.Context, user *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error)
	LogProfileUpdate(ctx context.Context, user *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error)

	// 관리자 플로우 이벤트 (행위자 + 대상)
	LogUserCreate(ctx context.Context, adminUser, createdUser *entity.User, ipAddress string, userAgent *string) (*entity.AuditLog, error)
	LogUserUpdate(ctx context.Context, adminUser, updatedUser *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error)
	LogUserDelete(ctx context.Context, adminUser, deletedUser *entity.User, ipAddress string, userAgent *string) (*entity.AuditLog, error)
	LogRoleChange(ctx context.Context, adminUser, targetUser *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error)
	LogStatusChange(ctx context.Context, adminUser, targetUser *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error)

	// 파일/세션/접근 이벤트
	LogFileUpload(ctx context.Context, user *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error)
	LogFileDelete(ctx context.Context, user *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error)
	LogSessionCreate(ctx context.Context, user *entity.User, sessionID, ipAddress string, userAgent *string) (*entity.AuditLog, error)
	LogSessionDelete(ctx context.Context, user *entity.User, sessionID, ipAddress string, userAgent *string) (*entity.AuditLog, error)
	LogAccessDenied(ctx context.Context, user *entity.User, ipAddress, endpoint string, userAgent *string) (*entity.AuditLog, error)
	LogAPIAccess(ctx context.Context, user *entity.User, ipAddress, endpoint, method string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error)

	// 조회 측 (페이지 크기는 서버에서 항상 클램프됩니다)
	FindAllWithPagination(ctx context.Context, filter dto.AuditLogFilter, page dto.Pagination) ([]*entity.AuditLog, int64, error)
	FindByID(ctx context.Context, id string) (*entity.AuditLog, error)
	FindByUserID(ctx context.Context, userID string, page dto.Pagination) ([]*entity.AuditLog, int64, error)
	FindByIPAddress(ctx context.Context, ipAddress string, page dto.Pagination) ([]*entity.AuditLog, int64, error)
	FindByAction(ctx context.Context, action entity.AuditAction, page dto.Pagination) ([]*entity.AuditLog, int64, error)
	FindByDateRange(ctx context.Context, startDate, endDate time.Time, page dto.Pagination) ([]*entity.AuditLog, int64, error)
	GetStatsByUser(ctx context.Context, userID string) (*dto.UserAuditStats, error)
	GetStatsByIPAddress(ctx context.Context, ipAddress string) (*dto.IPAuditStats, error)
}
