package entity

import "time"

// Session 하나의 인증된 기기/로그인을 뒷받침하는 서버 측 세션 레코드입니다
// ID는 발급된 리프레시 토큰에서 불투명 참조로 사용됩니다
type Session struct {
	ID     string
	UserID string
	Hash   string // 리프레시 토큰 검증용 시크릿 해시, 갱신 시 교체됨

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // 형태 호환용 필드, 삭제는 물리 삭제이므로 조회에 사용되지 않음
}

// RotateHash 리프레시 갱신 시 해시 교체
func (s *Session) RotateHash(hash string) {
	s.Hash = hash
	s.UpdatedAt = time.Now()
}
