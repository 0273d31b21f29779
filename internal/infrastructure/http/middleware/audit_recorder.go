package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ozalperen/auth-service/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// 기본 제외 경로 조각 (설정으로 대체 가능)
var defaultSkipPaths = []string{
	"/health",
	"/metrics",
	"/favicon.ico",
	"/api/v1/docs",
}

// 기록하지 않는 정적 리소스 확장자
var staticExtensions = []string{
	".js", ".css", ".png", ".jpg", ".jpeg", ".gif",
	".ico", ".svg", ".woff", ".woff2", ".ttf", ".eot",
}

// 비동기 기록의 최대 대기 시간
const recordTimeout = 5 * time.Second

// AuditRecorderMiddleware는 처리된 HTTP 요청을 감사 로그로 기록하는
// 패시브 레코더입니다. 기록은 응답 이후 비동기로 수행되며,
// 실패해도 요청 처리에는 영향을 주지 않습니다.
type AuditRecorderMiddleware struct {
	auditUseCase interfaces.AuditLogUseCase
	logger       *zap.Logger
	skipPaths    []string
}

// NewAuditRecorderMiddleware 패시브 레코더 미들웨어 생성
// skipPaths가 비어 있으면 기본 제외 목록을 사용합니다
func NewAuditRecorderMiddleware(auditUseCase interfaces.AuditLogUseCase, logger *zap.Logger, skipPaths []string) *AuditRecorderMiddleware {
	if len(skipPaths) == 0 {
		skipPaths = defaultSkipPaths
	}
	return &AuditRecorderMiddleware{
		auditUseCase: auditUseCase,
		logger:       logger,
		skipPaths:    skipPaths,
	}
}

// shouldRecord 해당 요청을 기록할지 판단합니다
// 인프라 경로, OPTIONS 프리플라이트, 정적 리소스, 서버 오류 응답은 제외됩니다
func (m *AuditRecorderMiddleware) shouldRecord(method, path string, status int) bool {
	if method == http.MethodOptions {
		return false
	}

	// 서버 오류는 에러 로그의 영역이므로 감사 기록에서 제외
	if status >= http.StatusInternalServerError {
		return false
	}

	for _, skip := range m.skipPaths {
		if strings.Contains(path, skip) {
			return false
		}
	}

	lowered := strings.ToLower(path)
	for _, ext := range staticExtensions {
		if strings.HasSuffix(lowered, ext) {
			return false
		}
	}

	return true
}

// Handle 요청 완료 후 API 접근을 기록하는 핸들러 함수를 반환합니다
func (m *AuditRecorderMiddleware) Handle() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			// 에러 핸들러를 거치기 전의 상태 추정
			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			req := c.Request()
			method := req.Method
			path := req.URL.Path

			if !m.shouldRecord(method, path, status) {
				return err
			}

			user := CurrentUser(c)
			ipAddress := ResolveClientIP(req.Header, req.RemoteAddr)
			userAgent := ResolveUserAgent(req.Header)
			metadata := map[string]interface{}{
				"statusCode": status,
			}

			// 요청 컨텍스트와 분리된 백그라운드 기록
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
				defer cancel()

				if _, recordErr := m.auditUseCase.LogAPIAccess(ctx, user, ipAddress, path, method, userAgent, metadata); recordErr != nil {
					m.logger.Error("API 접근 기록 실패",
						zap.String("method", method),
						zap.String("path", path),
						zap.Error(recordErr),
					)
				}
			}()

			return err
		}
	}
}
