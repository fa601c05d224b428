package service

import (
	"context"
	"errors"
	"fmt"

	"bill_tracker/internal/metrics"
	"bill_tracker/internal/model"
	"bill_tracker/internal/repository"
	"bill_tracker/internal/utils"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNameTaken          = errors.New("user name already in use")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokensDisabled     = errors.New("api tokens are not configured")
	ErrPasswordTooLong    = errors.New("password is longer than 72 bytes")
)

// AuthService provides registration, login and session lookups
type AuthService interface {
	// CheckAvailability reports ErrNameTaken and/or ErrEmailTaken, joined.
	CheckAvailability(ctx context.Context, name, email string) error
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	GetUser(ctx context.Context, id int) (*model.User, error)
	IssueToken(user *model.User) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService. jwtUtil may be nil, in which case
// IssueToken fails with ErrTokensDisabled.
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

func (s *authService) CheckAvailability(ctx context.Context, name, email string) error {
	var errs []error

	if name != "" {
		existing, err := s.userRepo.FindByName(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to check existing user name: %w", err)
		}
		if existing != nil {
			errs = append(errs, ErrNameTaken)
		}
	}

	if email != "" {
		existing, err := s.userRepo.FindByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to check existing email: %w", err)
		}
		if existing != nil {
			errs = append(errs, ErrEmailTaken)
		}
	}

	return errors.Join(errs...)
}

// Register creates a new user account
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if err := s.CheckAvailability(ctx, name, email); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race with a concurrent registration; report which field collided.
			if availErr := s.CheckAvailability(ctx, name, email); availErr != nil {
				return nil, availErr
			}
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	metrics.IncrementCreated("user")
	log.Info("user registered", "user_id", user.ID, "name", user.Name)
	return user, nil
}

// Login checks the email and password and returns the matching user
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		metrics.IncrementLogin(false)
		return nil, ErrInvalidCredentials
	}

	metrics.IncrementLogin(true)
	return user, nil
}

// GetUser returns the user with the given id, or nil if there is none
func (s *authService) GetUser(ctx context.Context, id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// IssueToken signs an API token for the user
func (s *authService) IssueToken(user *model.User) (string, error) {
	if s.jwtUtil == nil {
		return "", ErrTokensDisabled
	}
	token, err := s.jwtUtil.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
