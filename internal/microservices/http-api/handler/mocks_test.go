package handler

import (
	"context"

	"mediatracker/internal/microservices/http-api/dto"
	"mediatracker/internal/microservices/http-api/models"
	"mediatracker/internal/microservices/http-api/service"

	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, *dto.TokenPair, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*dto.TokenPair), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.User, *dto.TokenPair, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*dto.TokenPair), args.Error(2)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenPair), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

type MockMediaTypeService struct {
	mock.Mock
}

func (m *MockMediaTypeService) List(ctx context.Context, userID int64) ([]models.MediaType, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaType), args.Error(1)
}

func (m *MockMediaTypeService) Get(ctx context.Context, userID int64, name string) (*models.MediaType, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaType), args.Error(1)
}

func (m *MockMediaTypeService) Create(ctx context.Context, userID int64, req dto.CreateMediaTypeRequest) (*models.MediaType, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaType), args.Error(1)
}

func (m *MockMediaTypeService) Rename(ctx context.Context, userID int64, name string, req dto.RenameMediaTypeRequest) (*models.MediaType, error) {
	args := m.Called(ctx, userID, name, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaType), args.Error(1)
}

func (m *MockMediaTypeService) Delete(ctx context.Context, userID int64, name string, confirm bool) (*service.DeleteResult, error) {
	args := m.Called(ctx, userID, name, confirm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DeleteResult), args.Error(1)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) List(ctx context.Context, userID int64) ([]models.Media, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Media), args.Error(1)
}

func (m *MockMediaService) Get(ctx context.Context, userID, id int64) (*models.Media, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}

func (m *MockMediaService) Create(ctx context.Context, userID int64, req dto.MediaRequest) (*models.Media, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}

func (m *MockMediaService) Update(ctx context.Context, userID, id int64, req dto.MediaRequest) (*models.Media, error) {
	args := m.Called(ctx, userID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}

func (m *MockMediaService) Delete(ctx context.Context, userID, id int64, confirm bool) (*service.DeleteResult, error) {
	args := m.Called(ctx, userID, id, confirm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DeleteResult), args.Error(1)
}

type MockLogService struct {
	mock.Mock
}

func (m *MockLogService) List(ctx context.Context, userID int64) ([]models.UserLog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserLog), args.Error(1)
}

func (m *MockLogService) Get(ctx context.Context, userID, id int64) (*models.UserLog, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserLog), args.Error(1)
}

func (m *MockLogService) Create(ctx context.Context, userID int64, req dto.CreateLogRequest) (*models.UserLog, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserLog), args.Error(1)
}

func (m *MockLogService) Update(ctx context.Context, userID, id int64, req dto.UpdateLogRequest) (*models.UserLog, error) {
	args := m.Called(ctx, userID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserLog), args.Error(1)
}

func (m *MockLogService) Delete(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
