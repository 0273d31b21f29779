package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLogModel 감사 로그 데이터베이스 모델
// created_at, action, ip_address 각각에 보조 인덱스를 두어
// 전체 스캔 없이 필터 조회를 지원합니다
type AuditLogModel struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      *string        `gorm:"type:uuid;index" json:"user_id,omitempty"` // 행위 사용자 ID (선택 사항)
	UserEmail   *string        `gorm:"size:255" json:"user_email,omitempty"`     // 이벤트 시점 이메일 스냅샷
	Action      string         `gorm:"size:50;not null;index" json:"action"`     // 감사 액션
	Description string         `gorm:"type:text;not null" json:"description"`    // 사람이 읽는 요약
	IPAddress   string         `gorm:"size:45;not null;index" json:"ip_address"` // 클라이언트 IP
	UserAgent   *string        `gorm:"type:text" json:"user_agent,omitempty"`
	Endpoint    *string        `gorm:"size:255" json:"endpoint,omitempty"`
	Method      *string        `gorm:"size:10" json:"method,omitempty"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"` // 액션별 구조화 컨텍스트
	CreatedAt   time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 테이블 이름 지정
func (AuditLogModel) TableName() string {
	return "audit_logs"
}
