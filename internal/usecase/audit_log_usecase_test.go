package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/ozalperen/auth-service/internal/domain/dto"
	"github.com/ozalperen/auth-service/internal/domain/entity"
	apperrors "github.com/ozalperen/auth-service/internal/errors"
	"github.com/ozalperen/auth-service/internal/usecase"
)

// MockAuditLogRepository is a mock implementation of AuditLogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) GetByID(ctx context.Context, id string) (*entity.AuditLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuditLog), args.Error(1)
}

func (m *MockAuditLogRepository) Search(ctx context.Context, filter dto.AuditLogFilter, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditLogRepository) ListByUserID(ctx context.Context, userID string, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditLogRepository) ListByIPAddress(ctx context.Context, ipAddress string, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	args := m.Called(ctx, ipAddress, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditLogRepository) ListByAction(ctx context.Context, action entity.AuditAction, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	args := m.Called(ctx, action, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditLogRepository) ListByDateRange(ctx context.Context, startDate, endDate time.Time, page dto.Pagination) ([]*entity.AuditLog, int64, error) {
	args := m.Called(ctx, startDate, endDate, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditLogRepository) StatsByUser(ctx context.Context, userID string) (*dto.UserAuditStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserAuditStats), args.Error(1)
}

func (m *MockAuditLogRepository) StatsByIPAddress(ctx context.Context, ipAddress string) (*dto.IPAuditStats, error) {
	args := m.Called(ctx, ipAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.IPAuditStats), args.Error(1)
}

func testUser() *entity.User {
	return &entity.User{
		ID:     "a1b2c3d4-0000-0000-0000-000000000001",
		Email:  "alice@example.com",
		Role:   "user",
		Status: "active",
	}
}

func adminUser() *entity.User {
	return &entity.User{
		ID:     "a1b2c3d4-0000-0000-0000-000000000099",
		Email:  "admin@example.com",
		Role:   "admin",
		Status: "active",
	}
}

func TestAuditLogUseCase_Create(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("rejects unknown action", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		_, err := uc.Create(ctx, dto.CreateAuditLogInput{
			Action:      entity.AuditAction("SOMETHING_ELSE"),
			Description: "whatever",
			IPAddress:   "192.168.0.1",
		})

		assert.Error(t, err)
		var appErr *apperrors.AppError
		assert.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrInvalidArgument, appErr.Code())
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("strips sensitive metadata keys", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		var saved *entity.AuditLog
		mockRepo.On("Create", ctx, mock.AnythingOfType("*entity.AuditLog")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*entity.AuditLog)
			}).
			Return(nil)

		_, err := uc.Create(ctx, dto.CreateAuditLogInput{
			Actor:       testUser(),
			Action:      entity.AuditActionLogin,
			Description: "User alice@example.com logged in",
			IPAddress:   "192.168.0.1",
			Metadata: map[string]interface{}{
				"device":        "mobile",
				"password":      "hunter2",
				"refreshToken":  "abc",
				"clientSecret":  "xyz",
				"Authorization": "Bearer abc",
				"passwordHash":  "$2a$10$...",
			},
		})

		assert.NoError(t, err)
		assert.NotNil(t, saved)
		assert.Equal(t, map[string]interface{}{"device": "mobile"}, saved.Metadata)
	})

	t.Run("sets actor snapshot", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		var saved *entity.AuditLog
		mockRepo.On("Create", ctx, mock.AnythingOfType("*entity.AuditLog")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*entity.AuditLog)
			}).
			Return(nil)

		user := testUser()
		_, err := uc.Create(ctx, dto.CreateAuditLogInput{
			Actor:       user,
			Action:      entity.AuditActionProfileUpdate,
			Description: "User alice@example.com updated profile",
			IPAddress:   "10.0.0.5",
		})

		assert.NoError(t, err)
		assert.NotNil(t, saved.UserID)
		assert.Equal(t, user.ID, *saved.UserID)
		assert.NotNil(t, saved.UserEmail)
		assert.Equal(t, user.Email, *saved.UserEmail)
	})

	t.Run("anonymous event keeps nil actor fields", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		var saved *entity.AuditLog
		mockRepo.On("Create", ctx, mock.AnythingOfType("*entity.AuditLog")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*entity.AuditLog)
			}).
			Return(nil)

		_, err := uc.Create(ctx, dto.CreateAuditLogInput{
			Action:      entity.AuditActionAccessDenied,
			Description: "Access denied to /admin for anonymous user",
			IPAddress:   "203.0.113.9",
		})

		assert.NoError(t, err)
		assert.Nil(t, saved.UserID)
		assert.Nil(t, saved.UserEmail)
	})

	t.Run("sanitizes malformed ip to unknown", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		var saved *entity.AuditLog
		mockRepo.On("Create", ctx, mock.AnythingOfType("*entity.AuditLog")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*entity.AuditLog)
			}).
			Return(nil)

		_, err := uc.Create(ctx, dto.CreateAuditLogInput{
			Action:      entity.AuditActionLogin,
			Description: "User alice@example.com logged in",
			IPAddress:   "not-an-ip<script>",
		})

		assert.NoError(t, err)
		assert.Equal(t, "unknown", saved.IPAddress)
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*entity.AuditLog")).
			Return(errors.New("connection refused"))

		_, err := uc.Create(ctx, dto.CreateAuditLogInput{
			Action:      entity.AuditActionLogin,
			Description: "User alice@example.com logged in",
			IPAddress:   "192.168.0.1",
		})

		assert.Error(t, err)
	})
}

func TestAuditLogUseCase_Emitters(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	ua := "Mozilla/5.0"

	newRecording := func() (*MockAuditLogRepository, *entity.AuditLog) {
		mockRepo := new(MockAuditLogRepository)
		saved := &entity.AuditLog{}
		mockRepo.On("Create", ctx, mock.AnythingOfType("*entity.AuditLog")).
			Run(func(args mock.Arguments) {
				*saved = *args.Get(1).(*entity.AuditLog)
			}).
			Return(nil)
		return mockRepo, saved
	}

	t.Run("LogLogin", func(t *testing.T) {
		mockRepo, saved := newRecording()
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		_, err := uc.LogLogin(ctx, testUser(), "192.168.0.1", &ua, map[string]interface{}{"device": "web"})

		assert.NoError(t, err)
		assert.Equal(t, entity.AuditActionLogin, saved.Action)
		assert.Equal(t, "User alice@example.com logged in", saved.Description)
		assert.Equal(t, "/auth/email/login", *saved.Endpoint)
		assert.Equal(t, "POST", *saved.Method)
		assert.Equal(t, ua, *saved.UserAgent)
	})

	t.Run("LogLogout", func(t *testing.T) {
		mockRepo, saved := newRecording()
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		_, err := uc.LogLogout(ctx, testUser(), "192.168.0.1", &ua)

		assert.NoError(t, err)
		assert.Equal(t, entity.AuditActionLogout, saved.Action)
		assert.Equal(t, "User alice@example.com logged out", saved.Description)
		assert.Equal(t, "/auth/logout", *saved.Endpoint)
	})

	t.Run("LogRegister", func(t *testing.T) {
		mockRepo, saved := newRecording()
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		_, err := uc.LogRegister(ctx, testUser(), "192.168.0.1", &ua, nil)

		assert.NoError(t, err)
		assert.Equal(t, "New user alice@example.com registered", saved.Description)
		assert.Equal(t, "/auth/email/register", *saved.Endpoint)
	})

	t.Run("LogPasswordChange", func(t *testing.T) {
		mockRepo, saved := newRecording()
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		_, err := uc.LogPasswordChange(ctx, testUser(), "192.168.0.1", &ua)

		assert.NoError(t, err)
		assert.Equal(t, "User alice@example.com changed password", saved.Description)
		assert.Equal(t, "/auth/change-password", *saved.Endpoint)
	})

	t.Run("LogUserCreate records target snapshot", func(t *testing.T) {
		mockRepo, saved := newRecording()
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		created := testUser()
		_, err := uc.LogUserCreate(ctx, adminUser(), created, "192.168.0.1", &ua)

		assert.NoError(t, err)
		assert.Equal(t, entity.AuditActionUserCreate, saved.Action)
		assert.Equal(t, "Admin admin@example.com created user alice@example.com", saved.Description)
		assert.Equal(t, created.ID, saved.Metadata["createdUserId"])
		assert.Equal(t, created.Email, saved.Metadata["createdUserEmail"])
		assert.Equal(t, adminUser().ID, *saved.UserID)
	})

	t.Run("LogUserDelete", func(t *testing.T) {
		mockRepo, saved := newRecording()
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		deleted := testUser()
		_, err := uc.LogUserDelete(ctx, adminUser(), deleted, "192.168.0.1", &ua)

		assert.NoError(t, err)
		assert.Equal(t, "Admin admin@example.com deleted user alice@example.com", saved.Description)
		assert.Equal(t, "DELETE", *saved.Method)
		assert.Equal(t, "/users/"+deleted.ID, *saved.Endpoint)
	})

	t.Run("LogRoleChange merges caller metadata", func(t *testing.T) {
		mockRepo, saved := newRecording()
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		target := testUser()
		_, err := uc.LogRoleChange(ctx, adminUser(), target, "192.168.0.1", &ua, map[string]interface{}{
			"oldRole": "user",
			"newRole": "admin",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Admin admin@example.com changed role of user alice@example.com", saved.Description)
		assert.Equal(t, "user", saved.Metadata["oldRole"])
		assert.Equal(t, "admin", saved.Metadata["newRole"])
		assert.Equal(t, target.ID, saved.Metadata["targetUserId"])
	})

	t.Run("LogSessionDelete carries session id", func(t *testing.T) {
		mockRepo, saved := newRecording()
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		_, err := uc.LogSessionDelete(ctx, testUser(), "1712345678901-abc123xyz", "192.168.0.1", &ua)

		assert.NoError(t, err)
		assert.Equal(t, entity.AuditActionSessionDelete, saved.Action)
		assert.Equal(t, "1712345678901-abc123xyz", saved.Metadata["sessionId"])
	})

	t.Run("LogAccessDenied for anonymous caller", func(t *testing.T) {
		mockRepo, saved := newRecording()
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		_, err := uc.LogAccessDenied(ctx, nil, "203.0.113.9", "/admin/users", &ua)

		assert.NoError(t, err)
		assert.Equal(t, "Access denied to /admin/users for anonymous user", saved.Description)
		assert.Nil(t, saved.UserID)
	})

	t.Run("LogAPIAccess uses anonymous label without user", func(t *testing.T) {
		mockRepo, saved := newRecording()
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		_, err := uc.LogAPIAccess(ctx, nil, "203.0.113.9", "/api/v1/audit-logs", "GET", &ua, map[string]interface{}{
			"statusCode": 200,
		})

		assert.NoError(t, err)
		assert.Equal(t, entity.AuditActionAPIAccess, saved.Action)
		assert.Equal(t, "API access: GET /api/v1/audit-logs by anonymous user", saved.Description)
		assert.Equal(t, 200, saved.Metadata["statusCode"])
	})

	t.Run("LogAPIAccess with user", func(t *testing.T) {
		mockRepo, saved := newRecording()
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		_, err := uc.LogAPIAccess(ctx, testUser(), "192.168.0.1", "/api/v1/audit-logs", "GET", &ua, nil)

		assert.NoError(t, err)
		assert.Equal(t, "API access: GET /api/v1/audit-logs by alice@example.com", saved.Description)
	})
}

func TestAuditLogUseCase_Queries(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("pagination is clamped before reaching repository", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		expectedPage := dto.Pagination{Page: 1, Limit: dto.MaxPageLimit}
		mockRepo.On("Search", ctx, dto.AuditLogFilter{}, expectedPage).
			Return([]*entity.AuditLog{}, int64(0), nil)

		_, _, err := uc.FindAllWithPagination(ctx, dto.AuditLogFilter{}, dto.Pagination{Page: 0, Limit: 500})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("zero limit falls back to default", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		expectedPage := dto.Pagination{Page: 3, Limit: dto.DefaultPageLimit}
		mockRepo.On("ListByUserID", ctx, "user-1", expectedPage).
			Return([]*entity.AuditLog{}, int64(0), nil)

		_, _, err := uc.FindByUserID(ctx, "user-1", dto.Pagination{Page: 3})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects filter with unknown action", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		bad := entity.AuditAction("NOPE")
		_, _, err := uc.FindAllWithPagination(ctx, dto.AuditLogFilter{Action: &bad}, dto.Pagination{})

		assert.Error(t, err)
		var appErr *apperrors.AppError
		assert.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrInvalidArgument, appErr.Code())
		mockRepo.AssertNotCalled(t, "Search")
	})

	t.Run("rejects malformed ip filter", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		_, _, err := uc.FindByIPAddress(ctx, "999.999.1.1", dto.Pagination{})

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "ListByIPAddress")
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		now := time.Now()
		_, _, err := uc.FindByDateRange(ctx, now, now.Add(-time.Hour), dto.Pagination{})

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "ListByDateRange")
	})

	t.Run("FindByID passes through missing log", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		mockRepo.On("GetByID", ctx, "missing").Return(nil, nil)

		log, err := uc.FindByID(ctx, "missing")

		assert.NoError(t, err)
		assert.Nil(t, log)
	})

	t.Run("GetStatsByUser", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		uc := usecase.NewAuditLogUseCase(logger, mockRepo)

		last := time.Now()
		mockRepo.On("StatsByUser", ctx, "user-1").Return(&dto.UserAuditStats{
			TotalLogs:         12,
			UniqueIPAddresses: 3,
			LastActivity:      &last,
		}, nil)

		stats, err := uc.GetStatsByUser(ctx, "user-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(12), stats.TotalLogs)
		assert.Equal(t, int64(3), stats.UniqueIPAddresses)
	})
}
