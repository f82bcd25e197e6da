package services_test

import (
	"fmt"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gudang/internal/apperrors"
	"gudang/internal/models"
	"gudang/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func newTestIssuer() *services.Issuer {
	return services.NewIssuer("test_jwt_secret", "24h")
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, newTestIssuer())

	mockRepo.On("FindByUsername", "testuser").Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		user := args.Get(0).(*models.User)
		user.ID = "user-123" // the store assigns the id on persist
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.True(t, services.CheckPassword("password123", user.PasswordHash))
	}).Return(nil).Once()

	result, err := authService.Register("testuser", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "user-123", result["id"])
	assert.Equal(t, "testuser", result["username"])
	assert.Contains(t, result, "created_at")
	assert.Contains(t, result, "updated_at")
	assert.NotContains(t, result, "password_hash")
	assert.NotContains(t, result, "password")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "password123"},
		{name: "empty password", username: "testuser", password: ""},
		{name: "username too short", username: "ab", password: "password123"},
		{name: "password too short", username: "testuser", password: "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			authService := services.NewAuthService(mockRepo, newTestIssuer())

			result, err := authService.Register(tt.username, tt.password)
			assert.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
			// Validation failures must not touch the store.
			mockRepo.AssertNotCalled(t, "FindByUsername", mock.Anything)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything)
		})
	}
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, newTestIssuer())

	mockRepo.On("FindByUsername", "testuser").Return(&models.User{ID: "user-1", Username: "testuser"}, nil).Once()

	result, err := authService.Register("testuser", "password123")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_StoreConstraintWins(t *testing.T) {
	// A racing insert slips past the pre-check but the store's unique
	// constraint still rejects it; the conflict kind must survive wrapping.
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, newTestIssuer())

	mockRepo.On("FindByUsername", "testuser").Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).
		Return(apperrors.Conflict("username already exists")).Once()

	result, err := authService.Register("testuser", "password123")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, newTestIssuer())

	hash, err := services.HashPassword("password123")
	assert.NoError(t, err)
	user := &models.User{
		ID:           "user-123",
		Username:     "testuser",
		PasswordHash: hash,
	}

	mockRepo.On("FindByUsername", "testuser").Return(user, nil).Once()

	result, err := authService.Login("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "testuser", result.User["username"])
	assert.NotContains(t, result.User, "password_hash")

	// The token's subject must decode to the registered user's id.
	parsed, err := jwt.Parse(result.Token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte("test_jwt_secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "user-123", claims["sub"])
	assert.Equal(t, "testuser", claims["username"])
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_EnumerationResistance(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, newTestIssuer())

	hash, err := services.HashPassword("password123")
	assert.NoError(t, err)
	user := &models.User{ID: "user-123", Username: "testuser", PasswordHash: hash}

	mockRepo.On("FindByUsername", "testuser").Return(user, nil).Once()
	_, wrongPasswordErr := authService.Login("testuser", "wrongpassword")
	assert.Error(t, wrongPasswordErr)

	mockRepo.On("FindByUsername", "nonexistentuser").Return(nil, nil).Once()
	_, unknownUserErr := authService.Login("nonexistentuser", "password123")
	assert.Error(t, unknownUserErr)

	// Both failures look identical so callers cannot tell which check failed.
	assert.Equal(t, wrongPasswordErr.Error(), unknownUserErr.Error())
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(wrongPasswordErr))
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(unknownUserErr))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_Validation(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, newTestIssuer())

	_, err := authService.Login("", "password123")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = authService.Login("testuser", "")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	mockRepo.AssertNotCalled(t, "FindByUsername", mock.Anything)
}

func TestAuthService_Login_MissingSecret(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, services.NewIssuer("", "24h"))

	hash, err := services.HashPassword("password123")
	assert.NoError(t, err)
	user := &models.User{ID: "user-123", Username: "testuser", PasswordHash: hash}

	mockRepo.On("FindByUsername", "testuser").Return(user, nil).Once()

	result, err := authService.Login("testuser", "password123")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.KindConfiguration, apperrors.KindOf(err))
	// Token issuance failures must not write to the store.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	mockRepo.AssertExpectations(t)
}
