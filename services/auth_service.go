package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/HSouheill/coffee_backend/security"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AdminStore is the persistence used by the account services
type AdminStore interface {
	FindByLogin(ctx context.Context, identifier string) (*models.Admin, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	EmailTaken(ctx context.Context, email string, exclude primitive.ObjectID) (bool, error)
	List(ctx context.Context) ([]models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Admin, error)
	// SaveLoginState writes the outcome of a login attempt. A nil lockUntil clears the lock.
	SaveLoginState(ctx context.Context, id primitive.ObjectID, attempts int, lockUntil, lastLogin *time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// LockoutPolicy bounds consecutive failed logins
type LockoutPolicy struct {
	MaxAttempts  int
	LockDuration time.Duration
}

// AuthService logs admins in and resolves bearer tokens to accounts
type AuthService struct {
	admins AdminStore
	tokens *TokenService
	policy LockoutPolicy
	logger *zap.Logger
	now    func() time.Time
}

func NewAuthService(admins AdminStore, tokens *TokenService, policy LockoutPolicy, logger *zap.Logger) *AuthService {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 5
	}
	if policy.LockDuration <= 0 {
		policy.LockDuration = 2 * time.Hour
	}
	return &AuthService{
		admins: admins,
		tokens: tokens,
		policy: policy,
		logger: logger,
		now:    time.Now,
	}
}

// Login checks the credentials and returns a signed token with the account summary.
// identifier may be the username or the email.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*models.LoginResponse, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, apperrors.Validation("Username and password are required")
	}

	admin, err := s.admins.FindByLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrInvalidCredentials, "Invalid credentials")
		}
		return nil, err
	}

	now := s.now()
	if admin.IsLocked(now) {
		return nil, apperrors.New(apperrors.ErrAccountLocked, "Account is temporarily locked due to too many failed attempts")
	}
	if !admin.IsActive {
		return nil, apperrors.New(apperrors.ErrAccountInactive, "Account is deactivated")
	}

	ok, err := security.CheckPassword(admin.Password, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := s.recordFailure(ctx, admin, now); err != nil {
			return nil, err
		}
		return nil, apperrors.New(apperrors.ErrInvalidCredentials, "Invalid credentials")
	}

	if err := s.admins.SaveLoginState(ctx, admin.ID, 0, nil, &now); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(admin.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Admin logged in", zap.String("username", admin.Username))
	return &models.LoginResponse{Token: token, Admin: admin.Summary()}, nil
}

// recordFailure bumps the failure counter. An expired lock restarts the count at one.
func (s *AuthService) recordFailure(ctx context.Context, admin *models.Admin, now time.Time) error {
	var (
		attempts  int
		lockUntil *time.Time
	)
	if admin.LockUntil != nil && !admin.LockUntil.After(now) {
		attempts = 1
	} else {
		attempts = admin.LoginAttempts + 1
		if attempts >= s.policy.MaxAttempts {
			until := now.Add(s.policy.LockDuration)
			lockUntil = &until
			s.logger.Warn("Admin account locked",
				zap.String("username", admin.Username),
				zap.Int("attempts", attempts),
				zap.Time("lock_until", until),
			)
		}
	}
	return s.admins.SaveLoginState(ctx, admin.ID, attempts, lockUntil, nil)
}

// Authenticate resolves a bearer token to an active account
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Admin, error) {
	if token == "" {
		return nil, apperrors.Unauthenticated("Access denied. No token provided.")
	}

	id, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthenticated("Invalid token")
		}
		return nil, err
	}
	if !admin.IsActive {
		return nil, apperrors.Unauthenticated("Account is deactivated")
	}
	return admin, nil
}
