package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/mknoufi/stock-verify-backend/internal/auth/jwt"
	"github.com/mknoufi/stock-verify-backend/internal/auth/repository"
	"github.com/mknoufi/stock-verify-backend/pkg/errors"
	"github.com/mknoufi/stock-verify-backend/pkg/logger"
	"github.com/mknoufi/stock-verify-backend/pkg/messaging"
)

// StaffStore is the persistence surface the auth service needs.
// Implemented by repository.StaffRepository.
type StaffStore interface {
	GetByID(ctx context.Context, id string) (*repository.Staff, error)
	GetByUsername(ctx context.Context, username string) (*repository.Staff, error)
	UpdatePINHash(ctx context.Context, id, pinHash string) error
}

// EventPublisher publishes auth events. A nil publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// AuthService handles staff authentication
type AuthService struct {
	store     StaffStore
	jwtMgr    *jwt.Manager
	publisher EventPublisher
	logger    *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(store StaffStore, jwtMgr *jwt.Manager, publisher EventPublisher, log *logger.Logger) *AuthService {
	return &AuthService{
		store:     store,
		jwtMgr:    jwtMgr,
		publisher: publisher,
		logger:    log,
	}
}

// LoginResult carries the tokens and staff profile returned on login
type LoginResult struct {
	Staff  *repository.Staff `json:"staff"`
	Tokens *jwt.TokenPair    `json:"tokens"`
}

// LoginWithPIN authenticates a staff member by username and PIN
func (s *AuthService) LoginWithPIN(ctx context.Context, username, pin string) (*LoginResult, error) {
	if username == "" || pin == "" {
		return nil, errors.InvalidCredentials()
	}

	staff, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		// Do not reveal whether the username exists
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.InvalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PINHash), []byte(pin)); err != nil {
		s.logger.Warn().Str("username", username).Msg("failed login attempt")
		return nil, errors.InvalidCredentials()
	}

	tokens, err := s.jwtMgr.GenerateTokenPair(&jwt.UserInfo{
		ID:       staff.ID,
		Username: staff.Username,
		Name:     staff.Name,
		Role:     staff.Role,
	})
	if err != nil {
		return nil, errors.Internal("failed to generate tokens")
	}

	s.logger.Info().Str("staff_id", staff.ID).Str("username", staff.Username).Msg("staff logged in")

	s.publishEvent(ctx, messaging.EventStaffLoggedIn, messaging.StaffLoggedInEvent{
		StaffID:  staff.ID,
		Username: staff.Username,
		Role:     staff.Role,
	})

	return &LoginResult{Staff: staff, Tokens: tokens}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := s.jwtMgr.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	staff, err := s.store.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.TokenInvalid()
		}
		return nil, err
	}

	if !staff.IsActive {
		return nil, errors.Unauthorized("account is deactivated")
	}

	return s.jwtMgr.GenerateTokenPair(&jwt.UserInfo{
		ID:       staff.ID,
		Username: staff.Username,
		Name:     staff.Name,
		Role:     staff.Role,
	})
}

// ChangePIN changes a staff member's PIN after verifying the current one
func (s *AuthService) ChangePIN(ctx context.Context, staffID, currentPIN, newPIN string) error {
	if !validPIN(newPIN) {
		return errors.BadRequest("PIN must be 4 to 6 digits")
	}

	staff, err := s.store.GetByID(ctx, staffID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PINHash), []byte(currentPIN)); err != nil {
		return errors.InvalidCredentials()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPIN), bcrypt.DefaultCost)
	if err != nil {
		return errors.Internal("failed to hash PIN")
	}

	if err := s.store.UpdatePINHash(ctx, staffID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("staff_id", staffID).Msg("PIN changed")

	s.publishEvent(ctx, messaging.EventStaffPINChange, messaging.StaffPINChangedEvent{
		StaffID: staffID,
	})

	return nil
}

// HashPIN hashes a PIN for storage. Used by seeding tools.
func HashPIN(pin string) (string, error) {
	if !validPIN(pin) {
		return "", errors.BadRequest("PIN must be 4 to 6 digits")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func validPIN(pin string) bool {
	if len(pin) < 4 || len(pin) > 6 {
		return false
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (s *AuthService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to publish auth event")
	}
}
