package repository

import (
	"context"

	"github.com/ozalperen/auth-service/internal/domain/entity"
)

// SessionRepository 세션 저장소 인터페이스
// 세션 키와 사용자별 역인덱스(사용자 ID → 세션 ID 집합)를 함께 관리합니다
type SessionRepository interface {
	// Create 새 세션 생성 (ID 할당, TTL 설정, 역인덱스 등록)
	Create(ctx context.Context, userID string, hash string) (*entity.Session, error)

	// FindByID ID로 세션 조회
	// 만료/부재뿐 아니라 저장소 장애도 nil을 반환하여 인증 검사가 실패 쪽으로 닫히게 합니다
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Update 세션 해시 교체 (read-modify-write, 세션이 없으면 nil 반환)
	Update(ctx context.Context, id string, hash string) (*entity.Session, error)

	// DeleteByID 세션 삭제 (이미 없는 세션 삭제는 에러가 아님)
	DeleteByID(ctx context.Context, id string) error

	// DeleteByUserID 사용자의 모든 세션 삭제
	DeleteByUserID(ctx context.Context, userID string) error

	// DeleteByUserIDExcluding 지정한 세션을 제외한 사용자의 모든 세션 삭제
	DeleteByUserIDExcluding(ctx context.Context, userID string, excludeSessionID string) error
}
