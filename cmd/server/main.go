package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ozalperen/auth-service/internal/adapter/repository"
	"github.com/ozalperen/auth-service/internal/config"
	"github.com/ozalperen/auth-service/internal/infrastructure/db"
	"github.com/ozalperen/auth-service/internal/infrastructure/http"
	"github.com/ozalperen/auth-service/internal/infrastructure/http/handler"
	"github.com/ozalperen/auth-service/internal/infrastructure/http/middleware"
	appinit "github.com/ozalperen/auth-service/internal/init"
	"go.uber.org/zap"
)

func main() {
	// 1. 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("설정 로드 실패: %v", err)
	}

	// 2. 로거 가져오기
	logger := cfg.Logger
	defer logger.Sync()

	logger.Info("인증 서비스를 시작합니다...",
		zap.String("service", cfg.Service.Name),
		zap.String("version", cfg.Service.Version),
	)

	// 3. 인프라스트럭처 초기화
	infrastructure, err := db.NewInfrastructure(cfg)
	if err != nil {
		logger.Fatal("인프라스트럭처 초기화 실패", zap.Error(err))
	}
	defer infrastructure.Close()

	// 4. 레포지토리 초기화
	repositories := repository.InitRepositories(infrastructure.DB, infrastructure.RedisClient, logger)

	// 5. 유스케이스 초기화
	useCases := appinit.NewUseCases(repositories, logger)

	// 6. 패시브 감사 레코더 미들웨어 생성
	auditRecorder := middleware.NewAuditRecorderMiddleware(
		useCases.AuditLogUseCase,
		logger,
		cfg.Audit.SkipPaths,
	)

	// 7. HTTP 서버 설정
	httpConfig := http.Config{
		Port:    cfg.Server.HTTP.Port,
		Timeout: cfg.Server.HTTP.Timeout,
		Debug:   cfg.Server.HTTP.Debug,
	}

	// 8. HTTP 서버 생성 및 라우트 등록
	httpServer := http.NewServer(httpConfig, logger, auditRecorder)
	auditLogHandler := handler.NewAuditLogHandler(useCases.AuditLogUseCase, logger)
	httpServer.RegisterRoutes(auditLogHandler)

	// 9. 서버 시작
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error("HTTP 서버 종료", zap.Error(err))
		}
	}()

	// 10. 그레이스풀 종료를 위한 시그널 처리
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("서버를 종료합니다...")

	// 서버 종료
	if err := httpServer.Stop(); err != nil {
		logger.Error("HTTP 서버 종료 오류", zap.Error(err))
	}

	logger.Info("서버가 정상적으로 종료되었습니다")
}
