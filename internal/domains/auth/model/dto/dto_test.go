package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lalazar/infras/jwt"
	"lalazar/internal/domains/auth/model"
	"lalazar/internal/domains/auth/model/dto"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestProfileResponse_FromModel(t *testing.T) {
	admin := model.Admin{
		ID:       "A1",
		UserName: "reception",
		FullName: "Front Desk",
		Email:    "desk@lalazar.pk",
		Role:     "staff",
	}

	var response dto.ProfileResponse
	response.FromModel(admin)

	assert.Equal(t, "A1", response.ID)
	assert.Equal(t, "Front Desk", response.Name)
	assert.Equal(t, "desk@lalazar.pk", response.Email)
	assert.Equal(t, "staff", response.Role)
}
