package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ozalperen/auth-service/internal/domain/dto"
	"github.com/ozalperen/auth-service/internal/domain/entity"
	apperrors "github.com/ozalperen/auth-service/internal/errors"
	"github.com/ozalperen/auth-service/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// AuditLogHandler 감사 로그 조회 API 핸들러
type AuditLogHandler struct {
	auditUseCase interfaces.AuditLogUseCase
	logger       *zap.Logger
}

// NewAuditLogHandler 감사 로그 핸들러 생성
func NewAuditLogHandler(auditUseCase interfaces.AuditLogUseCase, logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		auditUseCase: auditUseCase,
		logger:       logger,
	}
}

// RegisterRoutes 감사 로그 라우트 등록
func (h *AuditLogHandler) RegisterRoutes(g *echo.Group) {
	auditLogs := g.Group("/audit-logs")
	auditLogs.GET("", h.List)
	auditLogs.GET("/:id", h.GetByID)
	auditLogs.GET("/user/:userId", h.ListByUser)
	auditLogs.GET("/user/:userId/stats", h.StatsByUser)
	auditLogs.GET("/ip/:ip", h.ListByIP)
	auditLogs.GET("/ip/:ip/stats", h.StatsByIP)
	auditLogs.GET("/action/:action", h.ListByAction)
}

// parsePagination 쿼리 파라미터에서 페이지네이션 추출
// 값 검증과 클램핑은 유스케이스에서 수행됩니다
func parsePagination(c echo.Context) dto.Pagination {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return dto.Pagination{Page: page, Limit: limit}
}

// httpStatus 에러 코드를 HTTP 상태로 변환
func httpStatus(err error) int {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		switch appErr.Code() {
		case apperrors.ErrInvalidArgument:
			return http.StatusBadRequest
		case apperrors.ErrNotFound:
			return http.StatusNotFound
		case apperrors.ErrUnauthenticated:
			return http.StatusUnauthorized
		case apperrors.ErrUnauthorized:
			return http.StatusForbidden
		case apperrors.ErrUnavailable:
			return http.StatusServiceUnavailable
		}
	}
	return http.StatusInternalServerError
}

// fail 에러 응답 작성
func fail(c echo.Context, err error) error {
	return c.JSON(httpStatus(err), echo.Map{
		"error": err.Error(),
	})
}

// pagedResponse 목록 응답 작성
func pagedResponse(c echo.Context, logs []*entity.AuditLog, total int64, page dto.Pagination) error {
	normalized := page.Normalize()
	if logs == nil {
		logs = []*entity.AuditLog{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":  logs,
		"total": total,
		"page":  normalized.Page,
		"limit": normalized.Limit,
	})
}

// List 필터 조건으로 감사 로그 목록 조회
func (h *AuditLogHandler) List(c echo.Context) error {
	page := parsePagination(c)

	filter := dto.AuditLogFilter{}
	if userID := c.QueryParam("userId"); userID != "" {
		filter.UserID = &userID
	}
	if actionParam := c.QueryParam("action"); actionParam != "" {
		action := entity.AuditAction(actionParam)
		filter.Action = &action
	}
	if ip := c.QueryParam("ipAddress"); ip != "" {
		filter.IPAddress = &ip
	}
	if startParam := c.QueryParam("startDate"); startParam != "" {
		start, err := time.Parse(time.RFC3339, startParam)
		if err != nil {
			return fail(c, apperrors.NewAppError(apperrors.ErrInvalidArgument,
				"startDate: RFC3339 형식이 아닙니다", err))
		}
		filter.StartDate = &start
	}
	if endParam := c.QueryParam("endDate"); endParam != "" {
		end, err := time.Parse(time.RFC3339, endParam)
		if err != nil {
			return fail(c, apperrors.NewAppError(apperrors.ErrInvalidArgument,
				"endDate: RFC3339 형식이 아닙니다", err))
		}
		filter.EndDate = &end
	}

	logs, total, err := h.auditUseCase.FindAllWithPagination(c.Request().Context(), filter, page)
	if err != nil {
		return fail(c, err)
	}
	return pagedResponse(c, logs, total, page)
}

// GetByID ID로 감사 로그 단건 조회
func (h *AuditLogHandler) GetByID(c echo.Context) error {
	id := c.Param("id")

	log, err := h.auditUseCase.FindByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	if log == nil {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "감사 로그를 찾을 수 없습니다",
		})
	}
	return c.JSON(http.StatusOK, log)
}

// ListByUser 사용자 ID로 감사 로그 조회
func (h *AuditLogHandler) ListByUser(c echo.Context) error {
	userID := c.Param("userId")
	page := parsePagination(c)

	logs, total, err := h.auditUseCase.FindByUserID(c.Request().Context(), userID, page)
	if err != nil {
		return fail(c, err)
	}
	return pagedResponse(c, logs, total, page)
}

// StatsByUser 사용자별 감사 통계 조회
func (h *AuditLogHandler) StatsByUser(c echo.Context) error {
	userID := c.Param("userId")

	stats, err := h.auditUseCase.GetStatsByUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ListByIP IP 주소로 감사 로그 조회
func (h *AuditLogHandler) ListByIP(c echo.Context) error {
	ip := c.Param("ip")
	page := parsePagination(c)

	logs, total, err := h.auditUseCase.FindByIPAddress(c.Request().Context(), ip, page)
	if err != nil {
		return fail(c, err)
	}
	return pagedResponse(c, logs, total, page)
}

// StatsByIP IP별 감사 통계 조회
func (h *AuditLogHandler) StatsByIP(c echo.Context) error {
	ip := c.Param("ip")

	stats, err := h.auditUseCase.GetStatsByIPAddress(c.Request().Context(), ip)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ListByAction 액션으로 감사 로그 조회
func (h *AuditLogHandler) ListByAction(c echo.Context) error {
	action := entity.AuditAction(c.Param("action"))
	page := parsePagination(c)

	logs, total, err := h.auditUseCase.FindByAction(c.Request().Context(), action, page)
	if err != nil {
		return fail(c, err)
	}
	return pagedResponse(c, logs, total, page)
}
