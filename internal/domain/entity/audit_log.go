package entity

import (
	"encoding/json"
	"time"
)

// AuditLog 보안 추적 및 컴플라이언스를 위한 시스템 감사 이벤트를 저장합니다
// 생성 이후에는 수정되지 않는 불변 레코드입니다
type AuditLog struct {
	ID          string
	UserID      *string // 행위 사용자 ID (익명 이벤트의 경우 nil)
	UserEmail   *string // 이벤트 시점의 사용자 이메일 스냅샷
	Action      AuditAction
	Description string
	IPAddress   string
	UserAgent   *string
	Endpoint    *string
	Method      *string
	Metadata    map[string]interface{}

	CreatedAt time.Time
}

// NewAuditLog 새 감사 로그 생성
func NewAuditLog(action AuditAction, description, ipAddress string) *AuditLog {
	return &AuditLog{
		Action:      action,
		Description: description,
		IPAddress:   ipAddress,
		CreatedAt:   time.Now(),
	}
}

// SetActor 행위 사용자 스냅샷 설정
func (al *AuditLog) SetActor(user *User) {
	if user == nil {
		return
	}
	id := user.ID
	email := user.Email
	al.UserID = &id
	al.UserEmail = &email
}

// AddMetadataField 메타데이터에 필드 추가
func (al *AuditLog) AddMetadataField(key string, value interface{}) {
	if al.Metadata == nil {
		al.Metadata = make(map[string]interface{})
	}
	al.Metadata[key] = value
}

// MetadataJSON JSON 형식으로 메타데이터 반환
func (al *AuditLog) MetadataJSON() (string, error) {
	if al.Metadata == nil {
		return "{}", nil
	}

	data, err := json.Marshal(al.Metadata)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
