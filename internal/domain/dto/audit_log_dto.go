package dto

import (
	"time"

	"github.com/ozalperen/auth-service/internal/domain/entity"
)

// 페이지 크기 관련 상수
const (
	// DefaultPageLimit 기본 페이지 크기
	DefaultPageLimit = 10

	// MaxPageLimit 서버에서 강제하는 최대 페이지 크기
	MaxPageLimit = 50
)

// Pagination 페이징 옵션
type Pagination struct {
	Page  int
	Limit int
}

// Normalize 페이지와 페이지 크기를 서버 정책에 맞게 보정합니다
// limit은 클라이언트 요청과 무관하게 항상 MaxPageLimit 이하로 클램프됩니다
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Offset 페이징 오프셋 계산
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// AuditLogFilter 감사 로그 검색 조건 (AND 결합)
type AuditLogFilter struct {
	UserID    *string
	Action    *entity.AuditAction
	IPAddress *string
	StartDate *time.Time // 날짜 범위는 양쪽 경계가 모두 있을 때만 적용됩니다
	EndDate   *time.Time
}

// CreateAuditLogInput 감사 로그 생성 입력
type CreateAuditLogInput struct {
	Actor       *entity.User // 익명 이벤트의 경우 nil
	Action      entity.AuditAction
	Description string
	IPAddress   string
	UserAgent   *string
	Endpoint    *string
	Method      *string
	Metadata    map[string]interface{}
}

// UserAuditStats 사용자별 감사 통계
type UserAuditStats struct {
	TotalLogs         int64      `json:"totalLogs"`
	UniqueIPAddresses int64      `json:"uniqueIpAddresses"`
	LastActivity      *time.Time `json:"lastActivity"`
}

// IPAuditStats IP별 감사 통계
type IPAuditStats struct {
	TotalLogs    int64      `json:"totalLogs"`
	UniqueUsers  int64      `json:"uniqueUsers"`
	LastActivity *time.Time `json:"lastActivity"`
}
