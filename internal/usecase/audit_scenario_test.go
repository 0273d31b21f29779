package usecase_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ozalperen/auth-service/internal/domain/dto"
	"github.com/ozalperen/auth-service/internal/domain/entity"
	"github.com/ozalperen/auth-service/internal/usecase"
)

// fakeAuditStore is an in-memory AuditLogRepository with the same query
// contract as the gorm store: conjunctive filters, newest-first ordering,
// offset pagination.
type fakeAuditStore struct {
	logs []*entity.AuditLog
}

func (f *fakeAuditStore) Create(ctx context.Context, log *entity.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	stored := *log
	f.logs = append(f.logs, &stored)
	return nil
}

func (f *fakeAuditStore) GetByID(ctx context.Context, id string) (*entity.AuditLog, error) {
	for _, log := range f.logs {
		if log.ID == id {
			return log, nil
		}
	}
	return nil, nil
}

func (f *fakeAuditStore) matches(log *entity.AuditLog, filter dto.AuditLogFilter) bool {
	if filter.UserID != nil {
		if log.UserID == nil || *log.UserID != *filter.UserID {
			return false
		}
	}
	if filter.Action != nil && log.Action != *filter.Action {
		return false
	}
	if filter.IPAddress != nil && log.IPAddress != *filter.IPAddress {
		return false
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		if log.CreatedAt.Before(*filter.StartDate) || log.CreatedAt.After(*filter.EndDate) {
			return false
		}
	}
	return true
}

func (f *fakeAuditStore) Search(ctx context.Context, filter dto.AuditLogFilter, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	matched := make([]*entity.AuditLog, 0, len(f.logs))
	for _, log := range f.logs {
		if f.matches(log, filter) {
			matched = append(matched, log)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	offset := page.Offset()
	if offset > len(matched) {
		return []*entity.AuditLog{}, total, nil
	}
	end := offset + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeAuditStore) ListByUserID(ctx context.Context, userID string, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	return f.Search(ctx, dto.AuditLogFilter{UserID: &userID}, page)
}

func (f *fakeAuditStore) ListByIPAddress(ctx context.Context, ipAddress string, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	return f.Search(ctx, dto.AuditLogFilter{IPAddress: &ipAddress}, page)
}

func (f *fakeAuditStore) ListByAction(ctx context.Context, action entity.AuditAction, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	return f.Search(ctx, dto.AuditLogFilter{Action: &action}, page)
}

func (f *fakeAuditStore) ListByDateRange(ctx context.Context, startDate, endDate time.Time, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	return f.Search(ctx, dto.AuditLogFilter{StartDate: &startDate, EndDate: &endDate}, page)
}

func (f *fakeAuditStore) StatsByUser(ctx context.Context, userID string) (*dto.UserAuditStats, error) {
	stats := &dto.UserAuditStats{}
	ips := make(map[string]struct{})
	for _, log := range f.logs {
		if log.UserID == nil || *log.UserID != userID {
			continue
		}
		stats.TotalLogs++
		ips[log.IPAddress] = struct{}{}
		if stats.LastActivity == nil || log.CreatedAt.After(*stats.LastActivity) {
			created := log.CreatedAt
			stats.LastActivity = &created
		}
	}
	stats.UniqueIPAddresses = int64(len(ips))
	return stats, nil
}

func (f *fakeAuditStore) StatsByIPAddress(ctx context.Context, ipAddress string) (*dto.IPAuditStats, error) {
	stats := &dto.IPAuditStats{}
	users := make(map[string]struct{})
	for _, log := range f.logs {
		if log.IPAddress != ipAddress {
			continue
		}
		stats.TotalLogs++
		if log.UserID != nil {
			users[*log.UserID] = struct{}{}
		}
		if stats.LastActivity == nil || log.CreatedAt.After(*stats.LastActivity) {
			created := log.CreatedAt
			stats.LastActivity = &created
		}
	}
	stats.UniqueUsers = int64(len(users))
	return stats, nil
}

// Three logins from two addresses, then the query side is checked end to end.
func TestAuditLogUseCase_LoginScenario(t *testing.T) {
	ctx := context.Background()
	store := &fakeAuditStore{}
	uc := usecase.NewAuditLogUseCase(zap.NewNop(), store)
	user := testUser()

	for i, ip := range []string{"192.168.0.1", "192.168.0.1", "10.0.0.5"} {
		_, err := uc.LogLogin(ctx, user, ip, nil, nil)
		assert.NoError(t, err)
		// keep created_at strictly increasing for deterministic ordering
		store.logs[i].CreatedAt = time.Date(2026, 8, 28, 12, 0, i, 0, time.UTC)
	}

	t.Run("stats count logs and distinct addresses", func(t *testing.T) {
		stats, err := uc.GetStatsByUser(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalLogs)
		assert.Equal(t, int64(2), stats.UniqueIPAddresses)
		assert.Equal(t, time.Date(2026, 8, 28, 12, 0, 2, 0, time.UTC), stats.LastActivity.UTC())
	})

	t.Run("ip stats see one user", func(t *testing.T) {
		stats, err := uc.GetStatsByIPAddress(ctx, "192.168.0.1")
		assert.NoError(t, err)
		assert.Equal(t, int64(2), stats.TotalLogs)
		assert.Equal(t, int64(1), stats.UniqueUsers)
	})

	t.Run("lists are newest first", func(t *testing.T) {
		logs, total, err := uc.FindByUserID(ctx, user.ID, dto.Pagination{})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, logs, 3)
		assert.Equal(t, "10.0.0.5", logs[0].IPAddress)
		assert.True(t, logs[0].CreatedAt.After(logs[1].CreatedAt))
		assert.True(t, logs[1].CreatedAt.After(logs[2].CreatedAt))
	})

	t.Run("pages do not overlap", func(t *testing.T) {
		first, total, err := uc.FindByUserID(ctx, user.ID, dto.Pagination{Page: 1, Limit: 2})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, first, 2)

		second, _, err := uc.FindByUserID(ctx, user.ID, dto.Pagination{Page: 2, Limit: 2})
		assert.NoError(t, err)
		assert.Len(t, second, 1)

		seen := map[string]struct{}{}
		for _, log := range append(first, second...) {
			_, dup := seen[log.ID]
			assert.False(t, dup, "log %s returned twice", log.ID)
			seen[log.ID] = struct{}{}
		}
	})

	t.Run("filters combine conjunctively", func(t *testing.T) {
		ip := "192.168.0.1"
		action := entity.AuditActionLogin
		logs, total, err := uc.FindAllWithPagination(ctx, dto.AuditLogFilter{
			UserID:    &user.ID,
			Action:    &action,
			IPAddress: &ip,
		}, dto.Pagination{})
		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, log := range logs {
			assert.Equal(t, ip, log.IPAddress)
			assert.Equal(t, entity.AuditActionLogin, log.Action)
		}

		otherAction := entity.AuditActionLogout
		_, none, err := uc.FindAllWithPagination(ctx, dto.AuditLogFilter{
			UserID: &user.ID,
			Action: &otherAction,
		}, dto.Pagination{})
		assert.NoError(t, err)
		assert.Equal(t, int64(0), none)
	})

	t.Run("date range bounds are inclusive and require both ends", func(t *testing.T) {
		start := time.Date(2026, 8, 28, 12, 0, 1, 0, time.UTC)
		end := time.Date(2026, 8, 28, 12, 0, 2, 0, time.UTC)
		_, total, err := uc.FindByDateRange(ctx, start, end, dto.Pagination{})
		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})
}
