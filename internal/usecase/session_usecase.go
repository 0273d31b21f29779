package usecase

import (
	"context"
	"fmt"

	"github.com/ozalperen/auth-service/internal/domain/entity"
	"github.com/ozalperen/auth-service/internal/domain/repository"
	apperrors "github.com/ozalperen/auth-service/internal/errors"
	"github.com/ozalperen/auth-service/internal/usecase/constants"
	"github.com/ozalperen/auth-service/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// SessionUseCase 세션 수명주기 유스케이스 구현체
// 리프레시 시크릿은 평문으로 반환되고 bcrypt 해시만 저장됩니다
type SessionUseCase struct {
	logger            *zap.Logger
	sessionRepository repository.SessionRepository
}

// NewSessionUseCase 새 세션 유스케이스 생성
func NewSessionUseCase(
	logger *zap.Logger,
	sessionRepo repository.SessionRepository,
) interfaces.SessionUseCase {
	return &SessionUseCase{
		logger:            logger,
		sessionRepository: sessionRepo,
	}
}

// IssueSession 새 세션 발급
func (uc *SessionUseCase) IssueSession(ctx context.Context, userID string) (*entity.Session, string, error) {
	if userID == "" {
		return nil, "", apperrors.NewAppError(apperrors.ErrInvalidArgument, "userID: 비어 있을 수 없습니다", nil)
	}

	secret, err := GenerateRandomString(constants.RefreshSecretLength)
	if err != nil {
		return nil, "", fmt.Errorf("리프레시 시크릿 생성 실패: %w", err)
	}

	hash, err := HashSecret(secret)
	if err != nil {
		return nil, "", fmt.Errorf("리프레시 시크릿 해시 실패: %w", err)
	}

	session, err := uc.sessionRepository.Create(ctx, userID, hash)
	if err != nil {
		uc.logger.Error("세션 발급 실패",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, "", err
	}

	return session, secret, nil
}

// GetSession 세션 조회
func (uc *SessionUseCase) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	return uc.sessionRepository.FindByID(ctx, sessionID)
}

// VerifyRefresh 제시된 리프레시 시크릿 검증
// 세션 부재는 에러가 아니라 검증 실패입니다
func (uc *SessionUseCase) VerifyRefresh(ctx context.Context, sessionID, secret string) (bool, error) {
	session, err := uc.sessionRepository.FindByID(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if session == nil {
		return false, nil
	}
	return CompareSecret(session.Hash, secret), nil
}

// RotateSession 리프레시 갱신 시 시크릿 교체
// 세션이 사라졌으면 NOT_FOUND를 반환합니다
func (uc *SessionUseCase) RotateSession(ctx context.Context, sessionID string) (*entity.Session, string, error) {
	secret, err := GenerateRandomString(constants.RefreshSecretLength)
	if err != nil {
		return nil, "", fmt.Errorf("리프레시 시크릿 생성 실패: %w", err)
	}

	hash, err := HashSecret(secret)
	if err != nil {
		return nil, "", fmt.Errorf("리프레시 시크릿 해시 실패: %w", err)
	}

	session, err := uc.sessionRepository.Update(ctx, sessionID, hash)
	if err != nil {
		uc.logger.Error("세션 갱신 실패",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return nil, "", err
	}
	if session == nil {
		return nil, "", apperrors.NewAppError(apperrors.ErrNotFound, "세션을 찾을 수 없습니다", nil)
	}

	return session, secret, nil
}

// RevokeSession 단일 세션 폐기
func (uc *SessionUseCase) RevokeSession(ctx context.Context, sessionID string) error {
	if err := uc.sessionRepository.DeleteByID(ctx, sessionID); err != nil {
		uc.logger.Error("세션 폐기 실패",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// RevokeAllSessions 사용자의 모든 세션 폐기
func (uc *SessionUseCase) RevokeAllSessions(ctx context.Context, userID string) error {
	if err := uc.sessionRepository.DeleteByUserID(ctx, userID); err != nil {
		uc.logger.Error("사용자 세션 전체 폐기 실패",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// RevokeOtherSessions 현재 세션을 제외한 모든 세션 폐기
func (uc *SessionUseCase) RevokeOtherSessions(ctx context.Context, userID, currentSessionID string) error {
	if err := uc.sessionRepository.DeleteByUserIDExcluding(ctx, userID, currentSessionID); err != nil {
		uc.logger.Error("다른 세션 폐기 실패",
			zap.String("user_id", userID),
			zap.String("current_session_id", currentSessionID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
