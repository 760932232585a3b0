package services

import (
	"errors"
	"fmt"

	"github.com/xwingdb/squad-api/internal/models"
	"github.com/xwingdb/squad-api/internal/repository"
	"gorm.io/gorm"
)

var (
	// ErrUnauthenticated means the request carried no session identity.
	ErrUnauthenticated = errors.New("authentication via OAuth required")
	// ErrInvalidSession means the session referenced a user record that no
	// longer exists; the caller must force re-authentication.
	ErrInvalidSession = errors.New("invalid user; re-authenticate with OAuth")
)

// AuthService resolves session identities and registers users from OAuth
// callbacks.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// ResolveUser resolves the user ID carried by a session to a full identity.
// An empty ID means the request was never authenticated; a non-empty ID with
// no matching record means the session is stale.
func (s *AuthService) ResolveUser(userID string) (*models.User, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// RegisterIdentity records the identity asserted by a completed OAuth
// handshake, creating the user on first login.
func (s *AuthService) RegisterIdentity(provider, externalID string, profile repository.Profile) (*models.User, error) {
	user, err := s.userRepo.GetOrCreate(provider, externalID, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to register identity: %w", err)
	}
	return user, nil
}
