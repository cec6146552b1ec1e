package service_test

import (
	"context"
	"errors"
	"testing"

	appErrors "github.com/alamlaptops/storefront/internal/errors"
	"github.com/alamlaptops/storefront/internal/models"
	"github.com/alamlaptops/storefront/internal/repositories/mocks"
	service "github.com/alamlaptops/storefront/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testJWTKey = []byte("test-signing-key")

func newUserFixture() (*mocks.UserRepository, *mocks.RateLimitRepository, service.UserService) {
	users := new(mocks.UserRepository)
	rateLimit := new(mocks.RateLimitRepository)

	return users, rateLimit, service.NewUserService(users, rateLimit, testJWTKey)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(hash)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	adminUser := &models.User{
		ID:       uuid.New(),
		Name:     "Shop Admin",
		Username: "admin",
	}

	t.Run("Success - Valid Credentials", func(t *testing.T) {
		// Arrange
		users, rateLimit, userService := newUserFixture()
		adminUser.Password = hashPassword(t, "correct-horse-battery")

		rateLimit.On("CheckLoginRateLimit", mock.Anything, "admin").Return(true, 4, 0, nil).Once()
		users.On("GetUserByUsername", mock.Anything, "admin").Return(adminUser, nil).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Username: "admin", Password: "correct-horse-battery"})

		// Assert
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		assert.Positive(t, resp.ExpiresIn)

		// The token round-trips with our claims.
		claims := &models.Claims{}
		token, err := jwt.ParseWithClaims(resp.Token, claims, func(t *jwt.Token) (any, error) {
			return testJWTKey, nil
		})
		require.NoError(t, err)
		assert.True(t, token.Valid)
		assert.Equal(t, adminUser.ID, claims.UserID)
		assert.Equal(t, "admin", claims.Username)
		users.AssertExpectations(t)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		// Arrange
		users, rateLimit, userService := newUserFixture()
		adminUser.Password = hashPassword(t, "correct-horse-battery")

		rateLimit.On("CheckLoginRateLimit", mock.Anything, "admin").Return(true, 3, 0, nil).Once()
		users.On("GetUserByUsername", mock.Anything, "admin").Return(adminUser, nil).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Username: "admin", Password: "wrong"})

		// Assert
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Empty(t, resp.Token)
		assert.Equal(t, 3, resp.RemainingTries)
		assert.Contains(t, resp.Message, "Invalid username or password")
	})

	t.Run("Failure - Unknown Username", func(t *testing.T) {
		// Arrange
		users, rateLimit, userService := newUserFixture()

		rateLimit.On("CheckLoginRateLimit", mock.Anything, "ghost").Return(true, 4, 0, nil).Once()
		users.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, errors.New("no rows")).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Username: "ghost", Password: "whatever"})

		// Assert
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Message, "Invalid username or password")
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		users, rateLimit, userService := newUserFixture()

		rateLimit.On("CheckLoginRateLimit", mock.Anything, "admin").Return(false, 0, 42, nil).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Username: "admin", Password: "anything"})

		// Assert
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, 42, resp.RetryAfter)
		assert.Contains(t, resp.Message, "Too many login attempts")
		users.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Rate Limit Backend Error", func(t *testing.T) {
		// Arrange
		_, rateLimit, userService := newUserFixture()

		rateLimit.On("CheckLoginRateLimit", mock.Anything, "admin").Return(false, 0, 0, errors.New("redis down")).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Username: "admin", Password: "anything"})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, resp)

		var appErr *appErrors.AppError

		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	req := &models.RegisterRequest{
		Name:     "Second Admin",
		Username: "admin2",
		Password: "a-long-password",
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		users, _, userService := newUserFixture()

		users.On("GetUserByUsername", mock.Anything, "admin2").Return(nil, errors.New("no rows")).Once()
		users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Username == "admin2" && u.Password != req.Password
		})).Return(nil).Once()

		// Act
		user, err := userService.Register(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)), "stored password must be a bcrypt hash of the input")
		users.AssertExpectations(t)
	})

	t.Run("Failure - Username Taken", func(t *testing.T) {
		// Arrange
		users, _, userService := newUserFixture()

		users.On("GetUserByUsername", mock.Anything, "admin2").Return(&models.User{Username: "admin2"}, nil).Once()

		// Act
		user, err := userService.Register(ctx, req)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, user)

		var appErr *appErrors.AppError

		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestGetUserByID(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		users, _, userService := newUserFixture()
		expected := &models.User{ID: userID, Username: "admin"}

		users.On("GetUserByID", mock.Anything, userID).Return(expected, nil).Once()

		user, err := userService.GetUserByID(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, expected, user)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		users, _, userService := newUserFixture()

		users.On("GetUserByID", mock.Anything, userID).Return(nil, errors.New("no rows")).Once()

		user, err := userService.GetUserByID(ctx, userID)

		assert.Error(t, err)
		assert.Nil(t, user)
	})
}
