package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ozalperen/auth-service/internal/domain/dto"
	"github.com/ozalperen/auth-service/internal/domain/entity"
	"github.com/ozalperen/auth-service/internal/domain/repository"
	apperrors "github.com/ozalperen/auth-service/internal/errors"
	"github.com/ozalperen/auth-service/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// 메타데이터에서 제거되는 민감 필드 이름 조각
// 비밀번호/토큰류가 감사 로그에 저장되는 것을 방지합니다
var sensitiveMetadataKeys = []string{
	"password",
	"token",
	"secret",
	"hash",
	"authorization",
}

// AuditLogUseCase 감사 로그 유스케이스 구현체
// 데이터 형태만 결정하며, 기록 여부의 판단은 호출자의 몫입니다
type AuditLogUseCase struct {
	logger          *zap.Logger
	auditRepository repository.AuditLogRepository
}

// NewAuditLogUseCase 새 감사 로그 유스케이스 생성
func NewAuditLogUseCase(
	logger *zap.Logger,
	auditRepo repository.AuditLogRepository,
) interfaces.AuditLogUseCase {
	return &AuditLogUseCase{
		logger:          logger,
		auditRepository: auditRepo,
	}
}

// sanitizeMetadata 민감 필드를 제거한 메타데이터 복사본 반환
func sanitizeMetadata(metadata map[string]interface{}) map[string]interface{} {
	if metadata == nil {
		return nil
	}

	sanitized := make(map[string]interface{}, len(metadata))
	for key, value := range metadata {
		lowered := strings.ToLower(key)
		sensitive := false
		for _, fragment := range sensitiveMetadataKeys {
			if strings.Contains(lowered, fragment) {
				sensitive = true
				break
			}
		}
		if !sensitive {
			sanitized[key] = value
		}
	}
	return sanitized
}

// actorEmail 설명 문자열에 사용할 행위자 이메일 반환
func actorEmail(user *entity.User) string {
	if user == nil || user.Email == "" {
		return "anonymous user"
	}
	return user.Email
}

// strPtr 문자열 포인터 헬퍼
func strPtr(s string) *string {
	return &s
}

// Create 감사 로그 기록
// IP는 저장 전에 정제되며, 메타데이터의 민감 필드는 제거됩니다
func (uc *AuditLogUseCase) Create(ctx context.Context, input dto.CreateAuditLogInput) (*entity.AuditLog, error) {
	if !input.Action.IsValid() {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument,
			fmt.Sprintf("유효하지 않은 감사 액션: %s", input.Action), nil)
	}

	auditLog := entity.NewAuditLog(input.Action, input.Description, SanitizeIP(input.IPAddress))
	auditLog.SetActor(input.Actor)
	auditLog.UserAgent = input.UserAgent
	auditLog.Endpoint = input.Endpoint
	auditLog.Method = input.Method
	auditLog.Metadata = sanitizeMetadata(input.Metadata)

	if err := uc.auditRepository.Create(ctx, auditLog); err != nil {
		uc.logger.Error("감사 로그 저장 실패",
			zap.String("action", string(input.Action)),
			zap.String("ip", auditLog.IPAddress),
			zap.Error(err),
		)
		return nil, err
	}

	return auditLog, nil
}

// LogLogin 로그인 이벤트 기록
func (uc *AuditLogUseCase) LogLogin(ctx context.Context, user *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error) {
	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       user,
		Action:      entity.AuditActionLogin,
		Description: fmt.Sprintf("User %s logged in", actorEmail(user)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr("/auth/email/login"),
		Method:      strPtr("POST"),
		Metadata:    metadata,
	})
}

// LogLogout 로그아웃 이벤트 기록
func (uc *AuditLogUseCase) LogLogout(ctx context.Context, user *entity.User, ipAddress string, userAgent *string) (*entity.AuditLog, error) {
	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       user,
		Action:      entity.AuditActionLogout,
		Description: fmt.Sprintf("User %s logged out", actorEmail(user)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr("/auth/logout"),
		Method:      strPtr("POST"),
	})
}

// LogRegister 사용자 등록 이벤트 기록
func (uc *AuditLogUseCase) LogRegister(ctx context.Context, user *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error) {
	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       user,
		Action:      entity.AuditActionRegister,
		Description: fmt.Sprintf("New user %s registered", actorEmail(user)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr("/auth/email/register"),
		Method:      strPtr("POST"),
		Metadata:    metadata,
	})
}

// LogPasswordChange 비밀번호 변경 이벤트 기록
func (uc *AuditLogUseCase) LogPasswordChange(ctx context.Context, user *entity.User, ipAddress string, userAgent *string) (*entity.AuditLog, error) {
	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       user,
		Action:      entity.AuditActionPasswordChange,
		Description: fmt.Sprintf("User %s changed password", actorEmail(user)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr("/auth/change-password"),
		Method:      strPtr("POST"),
	})
}

// LogPasswordReset 비밀번호 재설정 이벤트 기록
func (uc *AuditLogUseCase) LogPasswordReset(ctx context.Context, user *entity.User, ipAddress string, userAgent *string) (*entity.AuditLog, error) {
	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       user,
		Action:      entity.AuditActionPasswordReset,
		Description: fmt.Sprintf("User %s reset password", actorEmail(user)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr("/auth/reset/password"),
		Method:      strPtr("POST"),
	})
}

// LogEmailChange 이메일 변경 이벤트 기록
func (uc *AuditLogUseCase) LogEmailChange(ctx context.Context, user *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error) {
	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       user,
		Action:      entity.AuditActionEmailChange,
		Description: fmt.Sprintf("User %s changed email", actorEmail(user)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr("/auth/email/confirm/new"),
		Method:      strPtr("POST"),
		Metadata:    metadata,
	})
}

// LogProfileUpdate 프로필 수정 이벤트 기록
func (uc *AuditLogUseCase) LogProfileUpdate(ctx context.Context, user *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error) {
	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       user,
		Action:      entity.AuditActionProfileUpdate,
		Description: fmt.Sprintf("User %s updated profile", actorEmail(user)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr("/auth/me"),
		Method:      strPtr("PATCH"),
		Metadata:    metadata,
	})
}

// LogUserCreate 관리자의 사용자 생성 이벤트 기록
func (uc *AuditLogUseCase) LogUserCreate(ctx context.Context, adminUser, createdUser *entity.User, ipAddress string, userAgent *string) (*entity.AuditLog, error) {
	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       adminUser,
		Action:      entity.AuditActionUserCreate,
		Description: fmt.Sprintf("Admin %s created user %s", actorEmail(adminUser), actorEmail(createdUser)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr("/users"),
		Method:      strPtr("POST"),
		Metadata: map[string]interface{}{
			"createdUserId":    createdUser.ID,
			"createdUserEmail": createdUser.Email,
		},
	})
}

// LogUserUpdate 관리자의 사용자 수정 이벤트 기록
func (uc *AuditLogUseCase) LogUserUpdate(ctx context.Context, adminUser, updatedUser *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error) {
	merged := make(map[string]interface{}, len(metadata)+2)
	for k, v := range metadata {
		merged[k] = v
	}
	merged["updatedUserId"] = updatedUser.ID
	merged["updatedUserEmail"] = updatedUser.Email

	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       adminUser,
		Action:      entity.AuditActionUserUpdate,
		Description: fmt.Sprintf("Admin %s updated user %s", actorEmail(adminUser), actorEmail(updatedUser)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr(fmt.Sprintf("/users/%s", updatedUser.ID)),
		Method:      strPtr("PATCH"),
		Metadata:    merged,
	})
}

// LogUserDelete 관리자의 사용자 삭제 이벤트 기록
func (uc *AuditLogUseCase) LogUserDelete(ctx context.Context, adminUser, deletedUser *entity.User, ipAddress string, userAgent *string) (*entity.AuditLog, error) {
	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       adminUser,
		Action:      entity.AuditActionUserDelete,
		Description: fmt.Sprintf("Admin %s deleted user %s", actorEmail(adminUser), actorEmail(deletedUser)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr(fmt.Sprintf("/users/%s", deletedUser.ID)),
		Method:      strPtr("DELETE"),
		Metadata: map[string]interface{}{
			"deletedUserId":    deletedUser.ID,
			"deletedUserEmail": deletedUser.Email,
		},
	})
}

// LogRoleChange 역할 변경 이벤트 기록
func (uc *AuditLogUseCase) LogRoleChange(ctx context.Context, adminUser, targetUser *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error) {
	merged := make(map[string]interface{}, len(metadata)+2)
	for k, v := range metadata {
		merged[k] = v
	}
	merged["targetUserId"] = targetUser.ID
	merged["targetUserEmail"] = targetUser.Email

	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       adminUser,
		Action:      entity.AuditActionRoleChange,
		Description: fmt.Sprintf("Admin %s changed role of user %s", actorEmail(adminUser), actorEmail(targetUser)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr(fmt.Sprintf("/users/%s", targetUser.ID)),
		Method:      strPtr("PATCH"),
		Metadata:    merged,
	})
}

// LogStatusChange 계정 상태 변경 이벤트 기록
func (uc *AuditLogUseCase) LogStatusChange(ctx context.Context, adminUser, targetUser *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error) {
	merged := make(map[string]interface{}, len(metadata)+2)
	for k, v := range metadata {
		merged[k] = v
	}
	merged["targetUserId"] = targetUser.ID
	merged["targetUserEmail"] = targetUser.Email

	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       adminUser,
		Action:      entity.AuditActionStatusChange,
		Description: fmt.Sprintf("Admin %s changed status of user %s", actorEmail(adminUser), actorEmail(targetUser)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr(fmt.Sprintf("/users/%s", targetUser.ID)),
		Method:      strPtr("PATCH"),
		Metadata:    merged,
	})
}

// LogFileUpload 파일 업로드 이벤트 기록
func (uc *AuditLogUseCase) LogFileUpload(ctx context.Context, user *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error) {
	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       user,
		Action:      entity.AuditActionFileUpload,
		Description: fmt.Sprintf("User %s uploaded a file", actorEmail(user)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr("/files/upload"),
		Method:      strPtr("POST"),
		Metadata:    metadata,
	})
}

// LogFileDelete 파일 삭제 이벤트 기록
func (uc *AuditLogUseCase) LogFileDelete(ctx context.Context, user *entity.User, ipAddress string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error) {
	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       user,
		Action:      entity.AuditActionFileDelete,
		Description: fmt.Sprintf("User %s deleted a file", actorEmail(user)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr("/files"),
		Method:      strPtr("DELETE"),
		Metadata:    metadata,
	})
}

// LogSessionCreate 세션 생성 이벤트 기록
func (uc *AuditLogUseCase) LogSessionCreate(ctx context.Context, user *entity.User, sessionID, ipAddress string, userAgent *string) (*entity.AuditLog, error) {
	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       user,
		Action:      entity.AuditActionSessionCreate,
		Description: fmt.Sprintf("Session created for user %s", actorEmail(user)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr("/auth/email/login"),
		Method:      strPtr("POST"),
		Metadata: map[string]interface{}{
			"sessionId": sessionID,
		},
	})
}

// LogSessionDelete 세션 삭제 이벤트 기록
func (uc *AuditLogUseCase) LogSessionDelete(ctx context.Context, user *entity.User, sessionID, ipAddress string, userAgent *string) (*entity.AuditLog, error) {
	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       user,
		Action:      entity.AuditActionSessionDelete,
		Description: fmt.Sprintf("Session revoked for user %s", actorEmail(user)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr("/auth/logout"),
		Method:      strPtr("POST"),
		Metadata: map[string]interface{}{
			"sessionId": sessionID,
		},
	})
}

// LogAccessDenied 접근 거부 이벤트 기록 (행위자는 익명일 수 있음)
func (uc *AuditLogUseCase) LogAccessDenied(ctx context.Context, user *entity.User, ipAddress, endpoint string, userAgent *string) (*entity.AuditLog, error) {
	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       user,
		Action:      entity.AuditActionAccessDenied,
		Description: fmt.Sprintf("Access denied to %s for %s", endpoint, actorEmail(user)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr(endpoint),
		Method:      strPtr("GET"),
	})
}

// LogAPIAccess 일반 API 접근 이벤트 기록 (패시브 레코더가 사용)
func (uc *AuditLogUseCase) LogAPIAccess(ctx context.Context, user *entity.User, ipAddress, endpoint, method string, userAgent *string, metadata map[string]interface{}) (*entity.AuditLog, error) {
	return uc.Create(ctx, dto.CreateAuditLogInput{
		Actor:       user,
		Action:      entity.AuditActionAPIAccess,
		Description: fmt.Sprintf("API access: %s %s by %s", method, endpoint, actorEmail(user)),
		IPAddress:   ipAddress,
		UserAgent:   userAgent,
		Endpoint:    strPtr(endpoint),
		Method:      strPtr(method),
		Metadata:    metadata,
	})
}

// validateFilter 검색 조건 검증
// 잘못된 입력은 저장소에 도달하기 전에 거부됩니다
func validateFilter(filter dto.AuditLogFilter) error {
	if filter.Action != nil && !filter.Action.IsValid() {
		return apperrors.NewAppError(apperrors.ErrInvalidArgument,
			fmt.Sprintf("action: 유효하지 않은 감사 액션 %q", *filter.Action), nil)
	}
	if filter.IPAddress != nil && !IsValidIP(*filter.IPAddress) {
		return apperrors.NewAppError(apperrors.ErrInvalidArgument,
			fmt.Sprintf("ipAddress: 유효하지 않은 IP 형식 %q", *filter.IPAddress), nil)
	}
	return nil
}

// FindAllWithPagination 필터 조건으로 감사 로그 조회
func (uc *AuditLogUseCase) FindAllWithPagination(ctx context.Context, filter dto.AuditLogFilter, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	if err := validateFilter(filter); err != nil {
		return nil, 0, err
	}

	logs, total, err := uc.auditRepository.Search(ctx, filter, page.Normalize())
	if err != nil {
		uc.logger.Error("감사 로그 조회 실패", zap.Error(err))
		return nil, 0, err
	}
	return logs, total, nil
}

// FindByID ID로 감사 로그 조회 (없으면 nil)
func (uc *AuditLogUseCase) FindByID(ctx context.Context, id string) (*entity.AuditLog, error) {
	return uc.auditRepository.GetByID(ctx, id)
}

// FindByUserID 사용자 ID로 감사 로그 조회
func (uc *AuditLogUseCase) FindByUserID(ctx context.Context, userID string, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	logs, total, err := uc.auditRepository.ListByUserID(ctx, userID, page.Normalize())
	if err != nil {
		uc.logger.Error("사용자 감사 로그 조회 실패",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, 0, err
	}
	return logs, total, nil
}

// FindByIPAddress IP 주소로 감사 로그 조회
func (uc *AuditLogUseCase) FindByIPAddress(ctx context.Context, ipAddress string, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	if !IsValidIP(ipAddress) {
		return nil, 0, apperrors.NewAppError(apperrors.ErrInvalidArgument,
			fmt.Sprintf("ipAddress: 유효하지 않은 IP 형식 %q", ipAddress), nil)
	}

	logs, total, err := uc.auditRepository.ListByIPAddress(ctx, ipAddress, page.Normalize())
	if err != nil {
		uc.logger.Error("IP 감사 로그 조회 실패",
			zap.String("ip", ipAddress),
			zap.Error(err),
		)
		return nil, 0, err
	}
	return logs, total, nil
}

// FindByAction 액션으로 감사 로그 조회
func (uc *AuditLogUseCase) FindByAction(ctx context.Context, action entity.AuditAction, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	if !action.IsValid() {
		return nil, 0, apperrors.NewAppError(apperrors.ErrInvalidArgument,
			fmt.Sprintf("action: 유효하지 않은 감사 액션 %q", action), nil)
	}

	logs, total, err := uc.auditRepository.ListByAction(ctx, action, page.Normalize())
	if err != nil {
		uc.logger.Error("액션 감사 로그 조회 실패",
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return nil, 0, err
	}
	return logs, total, nil
}

// FindByDateRange 날짜 범위로 감사 로그 조회
func (uc *AuditLogUseCase) FindByDateRange(ctx context.Context, startDate, endDate time.Time, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	if endDate.Before(startDate) {
		return nil, 0, apperrors.NewAppError(apperrors.ErrInvalidArgument,
			"endDate: 종료 시각이 시작 시각보다 빠릅니다", nil)
	}

	logs, total, err := uc.auditRepository.ListByDateRange(ctx, startDate, endDate, page.Normalize())
	if err != nil {
		uc.logger.Error("날짜 범위 감사 로그 조회 실패", zap.Error(err))
		return nil, 0, err
	}
	return logs, total, nil
}

// GetStatsByUser 사용자별 감사 통계 조회
func (uc *AuditLogUseCase) GetStatsByUser(ctx context.Context, userID string) (*dto.UserAuditStats, error) {
	stats, err := uc.auditRepository.StatsByUser(ctx, userID)
	if err != nil {
		uc.logger.Error("사용자 감사 통계 조회 실패",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	return stats, nil
}

// GetStatsByIPAddress IP별 감사 통계 조회
func (uc *AuditLogUseCase) GetStatsByIPAddress(ctx context.Context, ipAddress string) (*dto.IPAuditStats, error) {
	if !IsValidIP(ipAddress) {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument,
			fmt.Sprintf("ipAddress: 유효하지 않은 IP 형식 %q", ipAddress), nil)
	}

	stats, err := uc.auditRepository.StatsByIPAddress(ctx, ipAddress)
	if err != nil {
		uc.logger.Error("IP 감사 통계 조회 실패",
			zap.String("ip", ipAddress),
			zap.Error(err),
		)
		return nil, err
	}
	return stats, nil
}
