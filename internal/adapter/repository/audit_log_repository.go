package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ozalperen/auth-service/internal/domain/dto"
	"github.com/ozalperen/auth-service/internal/domain/entity"
	"github.com/ozalperen/auth-service/internal/domain/repository"
	"github.com/ozalperen/auth-service/internal/infrastructure/db/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditLogRepositoryImpl struct {
	db *gorm.DB
}

// NewAuditLogRepository 감사 로그 저장소 구현체 생성
func NewAuditLogRepository(db *gorm.DB) repository.AuditLogRepository {
	return &AuditLogRepositoryImpl{db: db}
}

// 도메인 엔티티를 DB 모델로 변환
func toAuditLogModel(auditLog *entity.AuditLog) (*model.AuditLogModel, error) {
	var metadata datatypes.JSON
	if auditLog.Metadata != nil {
		data, err := json.Marshal(auditLog.Metadata)
		if err != nil {
			return nil, fmt.Errorf("메타데이터 직렬화 실패: %w", err)
		}
		metadata = datatypes.JSON(data)
	}

	return &model.AuditLogModel{
		ID:          auditLog.ID,
		UserID:      auditLog.UserID,
		UserEmail:   auditLog.UserEmail,
		Action:      string(auditLog.Action),
		Description: auditLog.Description,
		IPAddress:   auditLog.IPAddress,
		UserAgent:   auditLog.UserAgent,
		Endpoint:    auditLog.Endpoint,
		Method:      auditLog.Method,
		Metadata:    metadata,
		CreatedAt:   auditLog.CreatedAt,
	}, nil
}

// DB 모델을 도메인 엔티티로 변환
func toAuditLogEntity(auditLogModel *model.AuditLogModel) (*entity.AuditLog, error) {
	var metadata map[string]interface{}
	if len(auditLogModel.Metadata) > 0 {
		if err := json.Unmarshal(auditLogModel.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("메타데이터 역직렬화 실패: %w", err)
		}
	}

	return &entity.AuditLog{
		ID:          auditLogModel.ID,
		UserID:      auditLogModel.UserID,
		UserEmail:   auditLogModel.UserEmail,
		Action:      entity.AuditAction(auditLogModel.Action),
		Description: auditLogModel.Description,
		IPAddress:   auditLogModel.IPAddress,
		UserAgent:   auditLogModel.UserAgent,
		Endpoint:    auditLogModel.Endpoint,
		Method:      auditLogModel.Method,
		Metadata:    metadata,
		CreatedAt:   auditLogModel.CreatedAt,
	}, nil
}

// 모델 목록을 엔티티 목록으로 변환
func toAuditLogEntities(models []model.AuditLogModel) ([]*entity.AuditLog, error) {
	auditLogs := make([]*entity.AuditLog, len(models))
	for i, m := range models {
		auditLog, err := toAuditLogEntity(&m)
		if err != nil {
			return nil, err
		}
		auditLogs[i] = auditLog
	}
	return auditLogs, nil
}

// Create 새 감사 로그 생성
// ID와 생성 시간은 저장 시점에 할당되며 이후 레코드는 수정되지 않습니다
func (r *AuditLogRepositoryImpl) Create(ctx context.Context, log *entity.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	auditLogModel, err := toAuditLogModel(log)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(auditLogModel).Error; err != nil {
		return fmt.Errorf("감사 로그 생성 실패: %w", err)
	}

	return nil
}

// GetByID ID로 감사 로그 조회
func (r *AuditLogRepositoryImpl) GetByID(ctx context.Context, id string) (*entity.AuditLog, error) {
	var auditLogModel model.AuditLogModel

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&auditLogModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // 감사 로그를 찾지 못함
		}
		return nil, fmt.Errorf("감사 로그 조회 실패: %w", err)
	}

	return toAuditLogEntity(&auditLogModel)
}

// Search 검색 조건으로 감사 로그 조회
// 조건은 AND로 결합되며, 날짜 범위는 양쪽 경계가 모두 있을 때만 적용됩니다
func (r *AuditLogRepositoryImpl) Search(ctx context.Context, filter dto.AuditLogFilter, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.AuditLogModel{})

	// 검색 조건 적용
	if filter.UserID != nil && *filter.UserID != "" {
		db = db.Where("user_id = ?", *filter.UserID)
	}

	if filter.Action != nil && *filter.Action != "" {
		db = db.Where("action = ?", string(*filter.Action))
	}

	if filter.IPAddress != nil && *filter.IPAddress != "" {
		db = db.Where("ip_address = ?", *filter.IPAddress)
	}

	if filter.StartDate != nil && filter.EndDate != nil {
		db = db.Where("created_at BETWEEN ? AND ?", *filter.StartDate, *filter.EndDate)
	}

	return r.listPage(db, page)
}

// ListByUserID 사용자 ID로 감사 로그 목록 조회
func (r *AuditLogRepositoryImpl) ListByUserID(ctx context.Context, userID string, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.AuditLogModel{}).Where("user_id = ?", userID)
	return r.listPage(db, page)
}

// ListByIPAddress IP 주소로 감사 로그 목록 조회
func (r *AuditLogRepositoryImpl) ListByIPAddress(ctx context.Context, ipAddress string, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.AuditLogModel{}).Where("ip_address = ?", ipAddress)
	return r.listPage(db, page)
}

// ListByAction 액션으로 감사 로그 목록 조회
func (r *AuditLogRepositoryImpl) ListByAction(ctx context.Context, action entity.AuditAction, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.AuditLogModel{}).Where("action = ?", string(action))
	return r.listPage(db, page)
}

// ListByDateRange 날짜 범위로 감사 로그 목록 조회
func (r *AuditLogRepositoryImpl) ListByDateRange(ctx context.Context, startDate, endDate time.Time, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.AuditLogModel{}).
		Where("created_at BETWEEN ? AND ?", startDate, endDate)
	return r.listPage(db, page)
}

// listPage 공통 페이징 조회 (created_at 내림차순)
func (r *AuditLogRepositoryImpl) listPage(db *gorm.DB, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	var auditLogModels []model.AuditLogModel
	var total int64

	// 전체 개수 카운트
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("감사 로그 개수 조회 실패: %w", err)
	}

	// 페이징 처리된 데이터 조회
	if err := db.Order("created_at DESC").
		Limit(page.Limit).Offset(page.Offset()).
		Find(&auditLogModels).Error; err != nil {
		return nil, 0, fmt.Errorf("감사 로그 목록 조회 실패: %w", err)
	}

	auditLogs, err := toAuditLogEntities(auditLogModels)
	if err != nil {
		return nil, 0, err
	}

	return auditLogs, total, nil
}

// StatsByUser 사용자별 감사 통계 조회
func (r *AuditLogRepositoryImpl) StatsByUser(ctx context.Context, userID string) (*dto.UserAuditStats, error) {
	stats := &dto.UserAuditStats{}

	// 전체 로그 개수
	if err := r.db.WithContext(ctx).Model(&model.AuditLogModel{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalLogs).Error; err != nil {
		return nil, fmt.Errorf("감사 로그 개수 조회 실패: %w", err)
	}

	// 고유 IP 개수
	if err := r.db.WithContext(ctx).Model(&model.AuditLogModel{}).
		Where("user_id = ?", userID).
		Distinct("ip_address").
		Count(&stats.UniqueIPAddresses).Error; err != nil {
		return nil, fmt.Errorf("고유 IP 개수 조회 실패: %w", err)
	}

	// 마지막 활동 시간
	var lastLog model.AuditLogModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&lastLog).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("마지막 활동 시간 조회 실패: %w", err)
	}
	if err == nil {
		lastActivity := lastLog.CreatedAt
		stats.LastActivity = &lastActivity
	}

	return stats, nil
}

// StatsByIPAddress IP별 감사 통계 조회
func (r *AuditLogRepositoryImpl) StatsByIPAddress(ctx context.Context, ipAddress string) (*dto.IPAuditStats, error) {
	stats := &dto.IPAuditStats{}

	// 전체 로그 개수
	if err := r.db.WithContext(ctx).Model(&model.AuditLogModel{}).
		Where("ip_address = ?", ipAddress).
		Count(&stats.TotalLogs).Error; err != nil {
		return nil, fmt.Errorf("감사 로그 개수 조회 실패: %w", err)
	}

	// 고유 사용자 개수 (익명 이벤트는 제외)
	if err := r.db.WithContext(ctx).Model(&model.AuditLogModel{}).
		Where("ip_address = ? AND user_id IS NOT NULL", ipAddress).
		Distinct("user_id").
		Count(&stats.UniqueUsers).Error; err != nil {
		return nil, fmt.Errorf("고유 사용자 개수 조회 실패: %w", err)
	}

	// 마지막 활동 시간
	var lastLog model.AuditLogModel
	err := r.db.WithContext(ctx).
		Where("ip_address = ?", ipAddress).
		Order("created_at DESC").
		First(&lastLog).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("마지막 활동 시간 조회 실패: %w", err)
	}
	if err == nil {
		lastActivity := lastLog.CreatedAt
		stats.LastActivity = &lastActivity
	}

	return stats, nil
}
