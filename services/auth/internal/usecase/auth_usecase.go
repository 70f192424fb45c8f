package usecase

import (
	"context"
	"errors"
	"fmt"

	"cusceda/pkg/jwt"
	"cusceda/pkg/logger"
	"cusceda/services/auth/internal/entity"
	"cusceda/services/auth/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	GetUser(ctx context.Context, userID string) (*entity.User, error)
	VerifyAdminPassword(password string) bool
}

type authUseCase struct {
	userRepo          persistent.UserRepository
	jwtService        *jwt.Service
	adminPasswordHash []byte
	logger            *logger.Logger
}

// NewAuthUseCase takes the bcrypt hash guarding destructive admin actions.
// An empty hash rejects every password.
func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	adminPasswordHash string,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:          userRepo,
		jwtService:        jwtService,
		adminPasswordHash: []byte(adminPasswordHash),
		logger:            logger,
	}
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, "", entity.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (uc *authUseCase) VerifyAdminPassword(password string) bool {
	if len(uc.adminPasswordHash) == 0 || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(uc.adminPasswordHash, []byte(password)) == nil
}
