package repository

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/ozalperen/auth-service/internal/domain/entity"
	"github.com/ozalperen/auth-service/internal/domain/repository"
	"github.com/ozalperen/auth-service/internal/usecase/constants"
	"go.uber.org/zap"
)

// SessionRepositoryImpl 캐시 저장소 기반 세션 저장소 구현체
// 세션 본문은 session:<id> 키에 JSON으로, 역인덱스는 session:user:<userID>
// 집합에 저장됩니다. TTL은 저장소가 수동 삭제와 무관하게 강제합니다.
type SessionRepositoryImpl struct {
	cache  repository.CacheRepository
	logger *zap.Logger
}

// NewSessionRepository 세션 저장소 구현체 생성
func NewSessionRepository(cache repository.CacheRepository, logger *zap.Logger) repository.SessionRepository {
	return &SessionRepositoryImpl{
		cache:  cache,
		logger: logger,
	}
}

// 세션 키 생성
func sessionKey(id string) string {
	return constants.SessionPrefix + id
}

// 사용자별 세션 집합 키 생성
func userSessionsKey(userID string) string {
	return constants.UserSessionsPrefix + userID
}

// 세션 ID 생성 (시간 + 무작위 구성 요소)
func generateSessionID() (string, error) {
	const letters = "0123456789abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, constants.SessionIDRandomLength)
	for i := range b {
		randIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		b[i] = letters[randIndex.Int64()]
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), string(b)), nil
}

// Create 새 세션 생성
// 세션 키 저장과 역인덱스 등록은 베스트 에포트로 순차 수행됩니다
func (r *SessionRepositoryImpl) Create(ctx context.Context, userID string, hash string) (*entity.Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("세션 ID 생성 실패: %w", err)
	}

	now := time.Now()
	session := &entity.Session{
		ID:        id,
		UserID:    userID,
		Hash:      hash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("세션 직렬화 실패: %w", err)
	}

	// 세션 저장
	if err := r.cache.Set(ctx, sessionKey(session.ID), string(data), constants.SessionTTL); err != nil {
		return nil, fmt.Errorf("세션 저장 실패: %w", err)
	}

	// 사용자의 세션 집합에 세션 ID 추가
	if err := r.cache.SAdd(ctx, userSessionsKey(userID), session.ID); err != nil {
		return nil, fmt.Errorf("세션 역인덱스 등록 실패: %w", err)
	}

	return session, nil
}

// FindByID ID로 세션 조회
// 키가 없거나 저장소 장애가 발생하면 nil을 반환하여
// 인증 검사가 "로그인되지 않음"으로 닫히게 합니다
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.cache.Get(ctx, sessionKey(id))
	if err != nil {
		if !r.cache.IsNotFound(err) {
			r.logger.Error("세션 조회 실패, 미인증으로 처리",
				zap.String("session_id", id),
				zap.Error(err),
			)
		}
		return nil, nil
	}

	var session entity.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		r.logger.Error("세션 역직렬화 실패, 미인증으로 처리",
			zap.String("session_id", id),
			zap.Error(err),
		)
		return nil, nil
	}

	return &session, nil
}

// Update 세션 해시 교체 (read-modify-write)
// 세션이 더 이상 존재하지 않으면 새로 만들지 않고 nil을 반환합니다
func (r *SessionRepositoryImpl) Update(ctx context.Context, id string, hash string) (*entity.Session, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	existing.RotateHash(hash)

	data, err := json.Marshal(existing)
	if err != nil {
		return nil, fmt.Errorf("세션 직렬화 실패: %w", err)
	}

	if err := r.cache.Set(ctx, sessionKey(id), string(data), constants.SessionTTL); err != nil {
		return nil, fmt.Errorf("세션 갱신 실패: %w", err)
	}

	return existing, nil
}

// DeleteByID 세션 삭제
// 이미 없는 세션 삭제는 에러가 아닙니다 (멱등)
func (r *SessionRepositoryImpl) DeleteByID(ctx context.Context, id string) error {
	// 역인덱스 정리를 위해 소유 사용자 확인
	session, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if session != nil {
		if err := r.cache.SRem(ctx, userSessionsKey(session.UserID), id); err != nil {
			return fmt.Errorf("세션 역인덱스 제거 실패: %w", err)
		}
	}

	if err := r.cache.Delete(ctx, sessionKey(id)); err != nil {
		return fmt.Errorf("세션 삭제 실패: %w", err)
	}

	return nil
}

// DeleteByUserID 사용자의 모든 세션 삭제
// 개별 삭제 실패는 전체를 중단시키지 않습니다. 남은 세션 ID는
// 다음 접근 시 부재 세션으로 해소됩니다 (지연 재검증)
func (r *SessionRepositoryImpl) DeleteByUserID(ctx context.Context, userID string) error {
	userKey := userSessionsKey(userID)
	sessionIDs, err := r.cache.SMembers(ctx, userKey)
	if err != nil {
		return fmt.Errorf("사용자 세션 목록 조회 실패: %w", err)
	}

	if len(sessionIDs) > 0 {
		sessionKeys := make([]string, len(sessionIDs))
		for i, id := range sessionIDs {
			sessionKeys[i] = sessionKey(id)
		}

		if err := r.cache.DeleteMulti(ctx, sessionKeys); err != nil {
			r.logger.Warn("일부 세션 삭제 실패",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}

	// 역인덱스 전체 삭제
	if err := r.cache.Delete(ctx, userKey); err != nil {
		return fmt.Errorf("세션 역인덱스 삭제 실패: %w", err)
	}

	return nil
}

// DeleteByUserIDExcluding 지정한 세션을 제외한 사용자의 모든 세션 삭제
// "다른 기기 모두 로그아웃"에 사용됩니다
func (r *SessionRepositoryImpl) DeleteByUserIDExcluding(ctx context.Context, userID string, excludeSessionID string) error {
	userKey := userSessionsKey(userID)
	sessionIDs, err := r.cache.SMembers(ctx, userKey)
	if err != nil {
		return fmt.Errorf("사용자 세션 목록 조회 실패: %w", err)
	}

	sessionIDsToDelete := make([]string, 0, len(sessionIDs))
	for _, id := range sessionIDs {
		if id != excludeSessionID {
			sessionIDsToDelete = append(sessionIDsToDelete, id)
		}
	}

	if len(sessionIDsToDelete) == 0 {
		return nil
	}

	sessionKeys := make([]string, len(sessionIDsToDelete))
	for i, id := range sessionIDsToDelete {
		sessionKeys[i] = sessionKey(id)
	}

	if err := r.cache.DeleteMulti(ctx, sessionKeys); err != nil {
		r.logger.Warn("일부 세션 삭제 실패",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	// 삭제된 세션 ID를 역인덱스에서 제거
	if err := r.cache.SRem(ctx, userKey, sessionIDsToDelete...); err != nil {
		return fmt.Errorf("세션 역인덱스 제거 실패: %w", err)
	}

	return nil
}
