package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lalazar/config"
	"lalazar/infras/jwt"
	"lalazar/infras/otel/mocks"
	authMocks "lalazar/internal/domains/auth/mocks"
	"lalazar/internal/domains/auth/model"
	"lalazar/internal/domains/auth/model/dto"
	"lalazar/internal/domains/auth/service"
	cacheMocks "lalazar/shared/cache/mocks"
	"lalazar/shared/failure"
	"lalazar/shared/password"
)

func newAuthService(ctrl *gomock.Controller) (service.Auth, *authMocks.MockAdmin, *cacheMocks.MockRedisCache) {
	mockRepo := authMocks.NewMockAdmin(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.App.Name = "lalazar"
	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 1440

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel(), jwt.New(cfg))

	return svc, mockRepo, mockCache
}

func hashed(t *testing.T, plain string) string {
	h, err := password.Hash(plain)
	assert.NoError(t, err)

	return h
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newAuthService(ctrl)

	adminPassword := hashed(t, "correct-horse")

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "admin@lalazar.pk", Password: "correct-horse"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Admin{ID: "A1", Email: "admin@lalazar.pk", Password: adminPassword, Role: "admin"}, nil)
			},
			wantErr: false,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "admin@lalazar.pk", Password: "battery-staple"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Admin{ID: "A1", Email: "admin@lalazar.pk", Password: adminPassword}, nil)
			},
			wantErr: true,
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@lalazar.pk", Password: "whatever"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Admin{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 400, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.AccessToken)
				assert.NotEmpty(t, res.RefreshToken)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockCache := newAuthService(ctrl)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Admin{ID: "A1", Email: "admin@lalazar.pk", Password: hashed(t, "correct-horse"), Role: "admin"}, nil)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Email: "admin@lalazar.pk", Password: "correct-horse"})
	assert.NoError(t, err)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("not blacklisted"))

	res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newAuthService(ctrl)

	_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "not-a-token"})
	assert.Error(t, err)
	assert.Equal(t, 401, failure.GetCode(err))
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockCache := newAuthService(ctrl)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Admin{ID: "A1", Email: "admin@lalazar.pk", Password: hashed(t, "correct-horse")}, nil)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Email: "admin@lalazar.pk", Password: "correct-horse"})
	assert.NoError(t, err)

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), true, gomock.Any()).
		Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), login.AccessToken))
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newAuthService(ctrl)

	adminPassword := hashed(t, "correct-horse")

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful change",
			req:  dto.ChangePasswordRequest{CurrentPassword: "correct-horse", NewPassword: "new-password-1"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Admin{ID: "A1", UserName: "admin", Password: adminPassword}, nil)
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password-1"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Admin{ID: "A1", Password: adminPassword}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.ChangePassword(context.Background(), tt.req, "A1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
