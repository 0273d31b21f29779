package constants

import "time"

// Redis 키 관련 상수
const (
	// SessionPrefix 세션 Redis 접두사
	SessionPrefix = "session:"

	// UserSessionsPrefix 사용자별 세션 ID 집합 접두사 (역인덱스)
	UserSessionsPrefix = "session:user:"

	// SessionTTL 세션 만료 시간 (1년, 저장소가 수동 삭제와 무관하게 강제)
	SessionTTL = 365 * 24 * time.Hour

	// RefreshSecretLength 리프레시 시크릿 길이
	RefreshSecretLength = 32

	// SessionIDRandomLength 세션 ID의 무작위 구성 요소 길이
	SessionIDRandomLength = 9
)
