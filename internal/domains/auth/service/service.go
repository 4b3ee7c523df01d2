package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"lalazar/config"
	"lalazar/infras/jwt"
	"lalazar/infras/otel"
	"lalazar/internal/domains/auth/model"
	"lalazar/internal/domains/auth/model/dto"
	"lalazar/internal/domains/auth/repository"
	"lalazar/shared"
	"lalazar/shared/cache"
	"lalazar/shared/constant"
	gDto "lalazar/shared/dto"
	"lalazar/shared/failure"
	"lalazar/shared/password"
)

const cacheTokenBlacklist = "auth:blacklist"

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	Logout(ctx context.Context, accessToken string) error
	Profile(ctx context.Context, userID string) (dto.ProfileResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) error
	IsTokenRevoked(ctx context.Context, tokenID string) bool
}

type serviceImpl struct {
	repo       repository.Admin
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(repo repository.Admin, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		repo:       repo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		jwtService: jwt,
	}
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    email,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, err := s.repo.Get(ctx, emailFilter(req.Email))
	if err != nil || admin.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.BadRequestFromString("invalid email or password") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, admin.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString("invalid email or password") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(admin.ID, admin.Email, admin.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	if s.IsTokenRevoked(ctx, claims.TokenID) {
		return res, failure.Unauthorized("refresh token has been revoked") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// Logout blacklists the token until its natural expiry, after which the
// entry is pointless anyway.
func (s *serviceImpl) Logout(ctx context.Context, accessToken string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.jwtService.ValidateToken(accessToken, jwt.AccessToken)
	if err != nil {
		return failure.Unauthorized("invalid token") // nolint:wrapcheck
	}

	ttl := int(time.Until(claims.ExpiresAt.Time).Seconds())
	if ttl <= 0 {
		return nil
	}

	cacheKey := shared.BuildCacheKey(cacheTokenBlacklist, claims.TokenID)
	if err = s.cache.Save(ctx, cacheKey, true, ttl); err != nil {
		log.Error().Err(err).Msg("failed to blacklist token")

		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	return nil
}

func (s *serviceImpl) IsTokenRevoked(ctx context.Context, tokenID string) bool {
	var revoked bool

	err := s.cache.Get(ctx, shared.BuildCacheKey(cacheTokenBlacklist, tokenID), &revoked)

	return err == nil && revoked
}

func (s *serviceImpl) Profile(ctx context.Context, userID string) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Profile")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, err := s.repo.Get(ctx, shared.FilterByID(userID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		return res, failure.NotFound("admin not found") // nolint:wrapcheck
	}

	res.FromModel(admin)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(userID, model.FieldID, model.TableName)

	admin, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		return failure.NotFound("admin not found") // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, admin.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, admin.DisplayName())

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
