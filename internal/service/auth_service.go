package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/eskalate/jobboard/internal/auth"
	apperrors "github.com/eskalate/jobboard/internal/errors"
	"github.com/eskalate/jobboard/internal/mail"
	"github.com/eskalate/jobboard/internal/model"
	"github.com/eskalate/jobboard/internal/repository"
)

const bcryptCost = 10

var (
	// two alphabetic tokens separated by a single space
	nameRE  = regexp.MustCompile(`^[a-zA-Z]+ [a-zA-Z]+$`)
	emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// VerifyOutcome distinguishes the successful endings of email verification.
type VerifyOutcome int

const (
	// Verified means the account was marked verified just now.
	Verified VerifyOutcome = iota
	// AlreadyVerified means the account needed no change.
	AlreadyVerified
	// VerificationReissued means the token had expired and a fresh one was mailed.
	VerificationReissued
)

// AuthService handles registration, email verification and login.
type AuthService interface {
	Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, error)
	VerifyEmail(ctx context.Context, token string) (VerifyOutcome, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	outbox     mail.Enqueuer
	baseURL    string
}

// NewAuthService creates a new authentication service. baseURL is the public
// address used to build verification links.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, outbox mail.Enqueuer, baseURL string) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		outbox:     outbox,
		baseURL:    baseURL,
	}
}

// Register validates the input, stores the user unverified and queues a
// verification email. The verification token is never returned to the caller.
func (s *authService) Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	if !nameRE.MatchString(name) {
		return nil, apperrors.ErrInvalidName
	}
	if !emailRE.MatchString(email) {
		return nil, apperrors.ErrInvalidEmail
	}
	if !strongPassword(password) {
		return nil, apperrors.ErrWeakPassword
	}
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		IsVerified:   false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.sendVerification(ctx, user, "Verify Your Email", "Click to verify: ")
	return user, nil
}

// VerifyEmail resolves a verification token. A valid token marks the account
// verified (idempotently); an expired one triggers a fresh token and email
// rather than a failure.
func (s *authService) VerifyEmail(ctx context.Context, token string) (VerifyOutcome, error) {
	if token == "" {
		return 0, apperrors.ErrNoToken
	}

	res := s.jwtService.CheckVerifyToken(token)
	switch res.Status {
	case auth.TokenValid:
		user, err := s.users.FindByID(ctx, res.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, apperrors.ErrUserNotFound
			}
			return 0, fmt.Errorf("load user: %w", err)
		}
		if user.IsVerified {
			return AlreadyVerified, nil
		}
		user.IsVerified = true
		if err := s.users.Update(ctx, user); err != nil {
			return 0, fmt.Errorf("mark verified: %w", err)
		}
		return Verified, nil

	case auth.TokenExpired:
		user, err := s.users.FindByID(ctx, res.UserID)
		if err != nil {
			return 0, apperrors.ErrInvalidToken
		}
		s.sendVerification(ctx, user, "Verify Your Email (New Token)", "Previous token expired. Click to verify: ")
		return VerificationReissued, nil

	default:
		return 0, apperrors.ErrInvalidToken
	}
}

// Login authenticates a user and returns a signed session token. The
// verification check deliberately precedes the password comparison.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return "", nil, apperrors.ErrEmailNotVerified
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return token, user, nil
}

func (s *authService) sendVerification(ctx context.Context, user *model.User, subject, prefix string) {
	token, err := s.jwtService.GenerateVerifyToken(user.ID)
	if err != nil {
		log.Printf("auth: sign verification token for %s: %v", user.Email, err)
		return
	}
	verifyURL := fmt.Sprintf("%s/api/auth/verify?token=%s", s.baseURL, token)
	s.outbox.Enqueue(ctx, mail.Message{
		To:      user.Email,
		Subject: subject,
		Body:    prefix + verifyURL,
	})
}

// strongPassword requires at least 8 characters with upper, lower, digit and
// symbol present.
func strongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
