package logger

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
)

// NewEchoRequestLogger는 Echo 서버를 위한 Request Logger를 생성합니다.
// zap을 사용하여 HTTP 요청과 응답을 로깅합니다.
func NewEchoRequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	config := middleware.RequestLoggerConfig{
		// 상태 점검 경로는 로그에서 제외
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health" || c.Request().URL.Path == "/metrics"
		},
		// 에러도 글로벌 핸들러에게 넘김
		HandleError: true,

		LogLatency:      true,
		LogRemoteIP:     true, // 클라이언트 IP (echo.Context.RealIP() 기준)
		LogMethod:       true,
		LogURI:          true,
		LogURIPath:      true,
		LogRoutePath:    true, // echo 라우팅 경로 (/users/:id 등)
		LogRequestID:    true, // X-Request-ID 헤더 또는 자동 생성된 Request ID
		LogUserAgent:    true,
		LogStatus:       true,
		LogError:        true,
		LogResponseSize: true,

		// 감사 로그 조회 API의 필터 파라미터를 함께 기록
		LogQueryParams: []string{"page", "limit", "userId", "action", "ipAddress", "startDate", "endDate"},

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request.remote_ip", v.RemoteIP),
				zap.String("request.method", v.Method),
				zap.String("request.uri", v.URI),
				zap.String("request.path", v.URIPath),
				zap.String("request.route", v.RoutePath),
				zap.String("request.user_agent", v.UserAgent),
				zap.String("request.request_id", v.RequestID),
				zap.Int("response.status", v.Status),
				zap.Duration("response.latency", v.Latency),
				zap.Int64("response.response_size", v.ResponseSize),
			}

			if len(v.QueryParams) > 0 {
				fields = append(fields, zap.Any("request.query_params", v.QueryParams))
			}

			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
				logger.Error("Request failed", fields...)
				return nil
			}

			// 4XX는 Warn, 5XX는 Error 레벨로 기록
			if v.Status >= 500 {
				logger.Error("Server error", fields...)
				return nil
			}
			if v.Status >= 400 {
				logger.Warn("Client error", fields...)
				return nil
			}

			logger.Info("Request completed", fields...)
			return nil
		},
	}

	return middleware.RequestLoggerWithConfig(config)
}

// WithEchoLogger Echo에 대한 커스텀 에러 핸들러를 설정합니다.
func WithEchoLogger(e *echo.Echo, logger *zap.Logger) {
	// zap 로거를 사용하는 Echo 내장 Logger 구현체
	e.Logger = NewEchoZapLogger(logger)

	// Echo 에러 핸들러 설정
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}

		// 에러 로그 기록
		logger.Error("HTTP error",
			zap.Error(err),
			zap.Int("status", code),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.String("ip", c.RealIP()),
		)

		// 에러 응답
		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, map[string]interface{}{
					"error": http.StatusText(code),
				})
			}
			if err != nil {
				logger.Error("Failed to send error response", zap.Error(err))
			}
		}
	}
}

// EchoZapLogger는 echo.Logger 인터페이스를 구현한 zap 로거 래퍼입니다.
type EchoZapLogger struct {
	Logger *zap.Logger
}

// NewEchoZapLogger는 Echo의 Logger 인터페이스를 구현한 zap 로거 래퍼를 생성합니다.
func NewEchoZapLogger(logger *zap.Logger) *EchoZapLogger {
	return &EchoZapLogger{Logger: logger}
}

// Output Echo 로깅을 위한 Writer를 반환합니다.
func (l *EchoZapLogger) Output() io.Writer {
	return &zapWriter{logger: l.Logger}
}

// SetOutput Echo 로깅을 위한 Writer를 설정합니다. (zap에서는 무시됨)
func (l *EchoZapLogger) SetOutput(w io.Writer) {
	// zap에서는 무시됨
}

// Level Echo 로깅 레벨을 반환합니다.
func (l *EchoZapLogger) Level() log.Lvl {
	return log.INFO
}

// SetLevel Echo 로깅 레벨을 설정합니다. (zap에서는 무시됨)
func (l *EchoZapLogger) SetLevel(v log.Lvl) {
	// zap에서는 무시됨
}

// SetHeader Echo 로그 헤더를 설정합니다. (zap에서는 무시됨)
func (l *EchoZapLogger) SetHeader(h string) {
	// zap에서는 무시됨
}

// Prefix 로그 프리픽스를 반환합니다. (zap에서는 사용되지 않음)
func (l *EchoZapLogger) Prefix() string {
	return ""
}

// SetPrefix 로그 프리픽스를 설정합니다. (zap에서는 무시됨)
func (l *EchoZapLogger) SetPrefix(p string) {
	// zap에서는 무시됨
}

// Print zap 로거로 INFO 레벨 로그를 기록합니다.
func (l *EchoZapLogger) Print(i ...interface{}) {
	l.Logger.Sugar().Info(i...)
}

// Printf zap 로거로 INFO 레벨 로그를 기록합니다. (포맷 지정)
func (l *EchoZapLogger) Printf(format string, i ...interface{}) {
	l.Logger.Sugar().Infof(format, i...)
}

// Printj zap 로거로 INFO 레벨 로그를 기록합니다. (JSON 형식)
func (l *EchoZapLogger) Printj(j log.JSON) {
	l.Logger.Info("json_message", zap.Any("json", j))
}

// Debug zap 로거로 DEBUG 레벨 로그를 기록합니다.
func (l *EchoZapLogger) Debug(i ...interface{}) {
	l.Logger.Sugar().Debug(i...)
}

// Debugf zap 로거로 DEBUG 레벨 로그를 기록합니다. (포맷 지정)
func (l *EchoZapLogger) Debugf(format string, i ...interface{}) {
	l.Logger.Sugar().Debugf(format, i...)
}

// Debugj zap 로거로 DEBUG 레벨 로그를 기록합니다. (JSON 형식)
func (l *EchoZapLogger) Debugj(j log.JSON) {
	l.Logger.Debug("json_message", zap.Any("json", j))
}

// Info zap 로거로 INFO 레벨 로그를 기록합니다.
func (l *EchoZapLogger) Info(i ...interface{}) {
	l.Logger.Sugar().Info(i...)
}

// Infof zap 로거로 INFO 레벨 로그를 기록합니다. (포맷 지정)
func (l *EchoZapLogger) Infof(format string, i ...interface{}) {
	l.Logger.Sugar().Infof(format, i...)
}

// Infoj zap 로거로 INFO 레벨 로그를 기록합니다. (JSON 형식)
func (l *EchoZapLogger) Infoj(j log.JSON) {
	l.Logger.Info("json_message", zap.Any("json", j))
}

// Warn zap 로거로 WARN 레벨 로그를 기록합니다.
func (l *EchoZapLogger) Warn(i ...interface{}) {
	l.Logger.Sugar().Warn(i...)
}

// Warnf zap 로거로 WARN 레벨 로그를 기록합니다. (포맷 지정)
func (l *EchoZapLogger) Warnf(format string, i ...interface{}) {
	l.Logger.Sugar().Warnf(format, i...)
}

// Warnj zap 로거로 WARN 레벨 로그를 기록합니다. (JSON 형식)
func (l *EchoZapLogger) Warnj(j log.JSON) {
	l.Logger.Warn("json_message", zap.Any("json", j))
}

// Error zap 로거로 ERROR 레벨 로그를 기록합니다.
func (l *EchoZapLogger) Error(i ...interface{}) {
	l.Logger.Sugar().Error(i...)
}

// Errorf zap 로거로 ERROR 레벨 로그를 기록합니다. (포맷 지정)
func (l *EchoZapLogger) Errorf(format string, i ...interface{}) {
	l.Logger.Sugar().Errorf(format, i...)
}

// Errorj zap 로거로 ERROR 레벨 로그를 기록합니다. (JSON 형식)
func (l *EchoZapLogger) Errorj(j log.JSON) {
	l.Logger.Error("json_message", zap.Any("json", j))
}

// Fatal zap 로거로 FATAL 레벨 로그를 기록하고 프로그램을 종료합니다.
func (l *EchoZapLogger) Fatal(i ...interface{}) {
	l.Logger.Sugar().Fatal(i...)
}

// Fatalf zap 로거로 FATAL 레벨 로그를 기록하고 프로그램을 종료합니다. (포맷 지정)
func (l *EchoZapLogger) Fatalf(format string, i ...interface{}) {
	l.Logger.Sugar().Fatalf(format, i...)
}

// Fatalj zap 로거로 FATAL 레벨 로그를 기록하고 프로그램을 종료합니다. (JSON 형식)
func (l *EchoZapLogger) Fatalj(j log.JSON) {
	l.Logger.Fatal("json_message", zap.Any("json", j))
}

// Panic zap 로거로 PANIC 레벨 로그를 기록하고 패닉을 발생시킵니다.
func (l *EchoZapLogger) Panic(i ...interface{}) {
	l.Logger.Sugar().Panic(i...)
}

// Panicf zap 로거로 PANIC 레벨 로그를 기록하고 패닉을 발생시킵니다. (포맷 지정)
func (l *EchoZapLogger) Panicf(format string, i ...interface{}) {
	l.Logger.Sugar().Panicf(format, i...)
}

// Panicj zap 로거로 PANIC 레벨 로그를 기록하고 패닉을 발생시킵니다. (JSON 형식)
func (l *EchoZapLogger) Panicj(j log.JSON) {
	l.Logger.Panic("json_message", zap.Any("json", j))
}

// zapWriter는 io.Writer 인터페이스를 구현한 zap 로거 래퍼입니다.
type zapWriter struct {
	logger *zap.Logger
}

// Write는 io.Writer 인터페이스 구현을 위한 메서드입니다.
func (w *zapWriter) Write(p []byte) (n int, err error) {
	w.logger.Info(string(p))
	return len(p), nil
}
