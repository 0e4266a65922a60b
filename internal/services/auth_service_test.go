package services_test

import (
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func storedUser(t *testing.T) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return &models.User{
		ID:        4,
		FirstName: "Maria Clara",
		LastName:  "Albuquerque",
		Email:     "maria@example.com",
		Password:  string(hashed),
	}
}

func TestAuthService_Login_EnrichesClaims(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	user := storedUser(t)
	mockRepo.On("FindByEmail", "maria@example.com").Return(user, nil).Twice()

	tokenString, err := authService.Login("maria@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "maria@example.com", claims["sub"])
	assert.Equal(t, "Maria Clara", claims["userFirstName"])
	assert.Equal(t, "Albuquerque", claims["userLastName"])
	assert.EqualValues(t, 4, claims["userId"])
	assert.NotEmpty(t, claims["jti"])
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	mockRepo.On("FindByEmail", "maria@example.com").Return(storedUser(t), nil).Once()

	tokenString, err := authService.Login("maria@example.com", "wrong")
	assert.Error(t, err)
	assert.Empty(t, tokenString)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	mockRepo.On("FindByEmail", "ghost@example.com").Return(nil, repositories.ErrNotFound).Once()

	tokenString, err := authService.Login("ghost@example.com", "password123")
	assert.Error(t, err)
	assert.Empty(t, tokenString)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_EnrichClaims_MissingUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// A principal with no user row is an inconsistency that must propagate.
	mockRepo.On("FindByEmail", "ghost@example.com").Return(nil, repositories.ErrNotFound).Once()

	claims, err := authService.EnrichClaims("ghost@example.com")
	assert.Nil(t, claims)
	assert.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	mockRepo.On("FindByEmail", "maria@example.com").Return(storedUser(t), nil).Twice()
	tokenString, err := authService.Login("maria@example.com", "password123")
	assert.NoError(t, err)

	claims, err := authService.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "maria@example.com", claims["sub"])

	_, err = authService.ValidateToken("not-a-token")
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}
