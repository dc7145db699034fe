package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/eskalate/jobboard/internal/auth"
	apperrors "github.com/eskalate/jobboard/internal/errors"
	"github.com/eskalate/jobboard/internal/mail"
	"github.com/eskalate/jobboard/internal/model"
)

const testBaseURL = "http://localhost:8000"

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		fullName      string
		email         string
		password      string
		role          model.Role
		setupMock     func(*MockUserRepository, *MockEnqueuer)
		expectedError error
	}{
		{
			name:     "successful applicant registration",
			fullName: "John Doe",
			email:    "john@example.com",
			password: "Password1!",
			role:     model.RoleApplicant,
			setupMock: func(m *MockUserRepository, e *MockEnqueuer) {
				m.On("FindByEmail", mock.Anything, "john@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				e.On("Enqueue", mock.Anything, mock.MatchedBy(func(msg mail.Message) bool {
					return msg.To == "john@example.com" && msg.Subject == "Verify Your Email"
				})).Return()
			},
			expectedError: nil,
		},
		{
			name:          "single word name rejected",
			fullName:      "John",
			email:         "john@example.com",
			password:      "Password1!",
			role:          model.RoleApplicant,
			setupMock:     func(m *MockUserRepository, e *MockEnqueuer) {},
			expectedError: apperrors.ErrInvalidName,
		},
		{
			name:          "digits in name rejected",
			fullName:      "John Doe3",
			email:         "john@example.com",
			password:      "Password1!",
			role:          model.RoleApplicant,
			setupMock:     func(m *MockUserRepository, e *MockEnqueuer) {},
			expectedError: apperrors.ErrInvalidName,
		},
		{
			name:          "malformed email rejected",
			fullName:      "John Doe",
			email:         "not-an-email",
			password:      "Password1!",
			role:          model.RoleApplicant,
			setupMock:     func(m *MockUserRepository, e *MockEnqueuer) {},
			expectedError: apperrors.ErrInvalidEmail,
		},
		{
			name:          "short password rejected",
			fullName:      "John Doe",
			email:         "john@example.com",
			password:      "Pw1!",
			role:          model.RoleApplicant,
			setupMock:     func(m *MockUserRepository, e *MockEnqueuer) {},
			expectedError: apperrors.ErrWeakPassword,
		},
		{
			name:          "password without symbol rejected",
			fullName:      "John Doe",
			email:         "john@example.com",
			password:      "Password1",
			role:          model.RoleApplicant,
			setupMock:     func(m *MockUserRepository, e *MockEnqueuer) {},
			expectedError: apperrors.ErrWeakPassword,
		},
		{
			name:          "password without uppercase rejected",
			fullName:      "John Doe",
			email:         "john@example.com",
			password:      "password1!",
			role:          model.RoleApplicant,
			setupMock:     func(m *MockUserRepository, e *MockEnqueuer) {},
			expectedError: apperrors.ErrWeakPassword,
		},
		{
			name:          "unknown role rejected",
			fullName:      "John Doe",
			email:         "john@example.com",
			password:      "Password1!",
			role:          model.Role("admin"),
			setupMock:     func(m *MockUserRepository, e *MockEnqueuer) {},
			expectedError: apperrors.ErrInvalidRole,
		},
		{
			name:     "duplicate email rejected",
			fullName: "John Doe",
			email:    "taken@example.com",
			password: "Password1!",
			role:     model.RoleCompany,
			setupMock: func(m *MockUserRepository, e *MockEnqueuer) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: apperrors.ErrUserExists,
		},
		{
			name:     "duplicate key on insert maps to user exists",
			fullName: "John Doe",
			email:    "raced@example.com",
			password: "Password1!",
			role:     model.RoleApplicant,
			setupMock: func(m *MockUserRepository, e *MockEnqueuer) {
				m.On("FindByEmail", mock.Anything, "raced@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockOutbox := new(MockEnqueuer)
			tt.setupMock(mockRepo, mockOutbox)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockOutbox, testBaseURL)

			user, err := service.Register(context.Background(), tt.fullName, tt.email, tt.password, tt.role)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.fullName, user.Name)
				assert.Equal(t, tt.role, user.Role)
				assert.False(t, user.IsVerified)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
			mockOutbox.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Password1!"), 10)
	userID := uuid.New()

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "jane@example.com",
			password: "Password1!",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(&model.User{
					ID:           userID,
					Email:        "jane@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleApplicant,
					IsVerified:   true,
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "Password1!",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unverified account with correct password",
			email:    "pending@example.com",
			password: "Password1!",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "pending@example.com").Return(&model.User{
					ID:           userID,
					Email:        "pending@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleApplicant,
					IsVerified:   false,
				}, nil)
			},
			expectedError: apperrors.ErrEmailNotVerified,
		},
		{
			// verification is checked before the password, so an unverified
			// account never learns whether its password matched
			name:     "unverified account with wrong password",
			email:    "pending@example.com",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "pending@example.com").Return(&model.User{
					ID:           userID,
					Email:        "pending@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleApplicant,
					IsVerified:   false,
				}, nil)
			},
			expectedError: apperrors.ErrEmailNotVerified,
		},
		{
			name:     "wrong password",
			email:    "jane@example.com",
			password: "Wrong1!pw",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(&model.User{
					ID:           userID,
					Email:        "jane@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleApplicant,
					IsVerified:   true,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, new(MockEnqueuer), testBaseURL)

			token, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.NotNil(t, user)

				claims, err := jwtService.ParseSessionToken(token)
				assert.NoError(t, err)
				assert.Equal(t, userID.String(), claims.UserID)
				assert.Equal(t, string(model.RoleApplicant), claims.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// expiredVerifyToken signs a verification token whose expiry is already past.
func expiredVerifyToken(t *testing.T, secret string, userID uuid.UUID) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":  userID.String(),
		"exp": time.Now().Add(-time.Hour).Unix(),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return token
}

func TestAuthService_VerifyEmail(t *testing.T) {
	userID := uuid.New()
	jwtService := auth.NewJWTService("test-secret")

	t.Run("missing token", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), jwtService, new(MockEnqueuer), testBaseURL)
		_, err := service.VerifyEmail(context.Background(), "")
		assert.Equal(t, apperrors.ErrNoToken, err)
	})

	t.Run("valid token verifies the account", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, IsVerified: false}, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.ID == userID && u.IsVerified
		})).Return(nil)

		token, err := jwtService.GenerateVerifyToken(userID)
		assert.NoError(t, err)

		service := NewAuthService(mockRepo, jwtService, new(MockEnqueuer), testBaseURL)
		outcome, err := service.VerifyEmail(context.Background(), token)

		assert.NoError(t, err)
		assert.Equal(t, Verified, outcome)
		mockRepo.AssertExpectations(t)
	})

	t.Run("already verified is idempotent", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, IsVerified: true}, nil)

		token, _ := jwtService.GenerateVerifyToken(userID)

		service := NewAuthService(mockRepo, jwtService, new(MockEnqueuer), testBaseURL)
		outcome, err := service.VerifyEmail(context.Background(), token)

		assert.NoError(t, err)
		assert.Equal(t, AlreadyVerified, outcome)
		mockRepo.AssertExpectations(t)
	})

	t.Run("valid token for deleted user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		token, _ := jwtService.GenerateVerifyToken(userID)

		service := NewAuthService(mockRepo, jwtService, new(MockEnqueuer), testBaseURL)
		_, err := service.VerifyEmail(context.Background(), token)

		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})

	t.Run("expired token reissues a fresh one", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:    userID,
			Email: "late@example.com",
		}, nil)
		mockOutbox := new(MockEnqueuer)
		mockOutbox.On("Enqueue", mock.Anything, mock.MatchedBy(func(msg mail.Message) bool {
			return msg.To == "late@example.com" && msg.Subject == "Verify Your Email (New Token)"
		})).Return()

		token := expiredVerifyToken(t, "test-secret", userID)

		service := NewAuthService(mockRepo, jwtService, mockOutbox, testBaseURL)
		outcome, err := service.VerifyEmail(context.Background(), token)

		assert.NoError(t, err)
		assert.Equal(t, VerificationReissued, outcome)
		mockRepo.AssertExpectations(t)
		mockOutbox.AssertExpectations(t)
	})

	t.Run("expired token for unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		token := expiredVerifyToken(t, "test-secret", userID)

		service := NewAuthService(mockRepo, jwtService, new(MockEnqueuer), testBaseURL)
		_, err := service.VerifyEmail(context.Background(), token)

		assert.Equal(t, apperrors.ErrInvalidToken, err)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		forged, err := auth.NewJWTService("other-secret").GenerateVerifyToken(userID)
		assert.NoError(t, err)

		service := NewAuthService(new(MockUserRepository), jwtService, new(MockEnqueuer), testBaseURL)
		_, err = service.VerifyEmail(context.Background(), forged)

		assert.Equal(t, apperrors.ErrInvalidToken, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), jwtService, new(MockEnqueuer), testBaseURL)
		_, err := service.VerifyEmail(context.Background(), "not.a.jwt")
		assert.Equal(t, apperrors.ErrInvalidToken, err)
	})
}
