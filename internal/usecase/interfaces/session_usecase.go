package interfaces

import (
	"context"

	"github.com/ozalperen/auth-service/internal/domain/entity"
)

// SessionUseCase 세션 수명주기 유스케이스 인터페이스
type SessionUseCase interface {
	// IssueSession 새 세션 발급
	// 무작위 리프레시 시크릿을 생성하여 해시를 저장하고 평문 시크릿을 반환합니다
	IssueSession(ctx context.Context, userID string) (*entity.Session, string, error)

	// GetSession 세션 조회 (부재/장애 시 nil — 미인증으로 닫힘)
	GetSession(ctx context.Context, sessionID string) (*entity.Session, error)

	// VerifyRefresh 제시된 리프레시 시크릿 검증
	VerifyRefresh(ctx context.Context, sessionID, secret string) (bool, error)

	// RotateSession 리프레시 갱신 시 시크릿 교체, 새 평문 시크릿 반환
	RotateSession(ctx context.Context, sessionID string) (*entity.Session, string, error)

	// RevokeSession 단일 세션 폐기
	RevokeSession(ctx context.Context, sessionID string) error

	// RevokeAllSessions 사용자의 모든 세션 폐기 (강제 로그아웃, 계정 삭제)
	RevokeAllSessions(ctx context.Context, userID string) error

	// RevokeOtherSessions 현재 세션을 제외한 모든 세션 폐기
	RevokeOtherSessions(ctx context.Context, userID, currentSessionID string) error
}
