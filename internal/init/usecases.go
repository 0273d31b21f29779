package init

import (
	"github.com/ozalperen/auth-service/internal/domain/repository"
	"github.com/ozalperen/auth-service/internal/usecase"
	"github.com/ozalperen/auth-service/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// UseCases 애플리케이션의 모든 유스케이스 컨테이너
type UseCases struct {
	AuditLogUseCase interfaces.AuditLogUseCase
	SessionUseCase  interfaces.SessionUseCase
}

// NewUseCases 모든 유스케이스 인스턴스 생성 및 초기화
func NewUseCases(
	repos *repository.Repositories,
	logger *zap.Logger,
) *UseCases {
	useCases := &UseCases{}

	// 감사 로그 유스케이스 초기화
	useCases.AuditLogUseCase = usecase.NewAuditLogUseCase(
		logger,
		repos.AuditLog,
	)

	// 세션 유스케이스 초기화
	useCases.SessionUseCase = usecase.NewSessionUseCase(
		logger,
		repos.Session,
	)

	return useCases
}
