package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anisgadi/roombooking/internal/models"
	"github.com/anisgadi/roombooking/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, user *models.User, password string) error
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	UpdateDetails(ctx context.Context, userID uint, firstName, lastName, email, phone string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	clock     Clock
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, tokenTTL time.Duration, clock Clock) AuthService {
	if clock == nil {
		clock = SystemClock
	}
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		clock:     clock,
	}
}

func (s *authService) Register(ctx context.Context, user *models.User, password string) error {
	if _, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hash)

	if user.Role == "" {
		user.Role = models.RoleClient
	}
	// admin accounts are provisioned out of band, never self-registered
	if user.Role == models.RoleAdmin {
		return ErrNotAuthorized
	}
	user.Active = true

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.Active {
		return "", nil, ErrUserInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := s.clock()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, user, nil
}

func (s *authService) UpdateDetails(ctx context.Context, userID uint, firstName, lastName, email, phone string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if email != user.Email {
		if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.Email = email
	user.Phone = phone

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

func (s *authService) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hash)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}
