package service

import (
	"context"
	"errors"
	"strings"

	"umkm-kembar-barokah/internal/model"
	"umkm-kembar-barokah/internal/repository"
	"umkm-kembar-barokah/pkg/jwt"
	"umkm-kembar-barokah/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	Username        string `json:"username" validate:"required"`
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
	ChangePassword(ctx context.Context, req *ChangePasswordRequest) error
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	log      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if msgs := validator.Messages(req); len(msgs) > 0 {
		return nil, newValidationError(msgs...)
	}

	// 1. Username harus unik
	_, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr("mengambil user", err)
	}

	// 2. Hash password
	user := &model.User{Username: req.Username}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, storeErr("hash password", err)
	}

	// 3. Simpan
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Registrasi paralel dengan username yang sama
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, storeErr("menyimpan user", err)
	}

	s.log.Info("user registered", zap.String("username", user.Username))
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if msgs := validator.Messages(req); len(msgs) > 0 {
		return nil, newValidationError(msgs...)
	}

	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeErr("mengambil user", err)
	}

	if !user.CheckPassword(req.Password) {
		s.log.Debug("login rejected", zap.String("username", user.Username))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, storeErr("membuat token", err)
	}

	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, errUserNotFound, "mengambil user")
	}
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, req *ChangePasswordRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	if msgs := validator.Messages(req); len(msgs) > 0 {
		return newValidationError(msgs...)
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return lookupErr(err, errUserNotFound, "mengambil user")
	}

	if !user.CheckPassword(req.OldPassword) {
		return ErrWrongPassword
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return storeErr("hash password", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, user.Password); err != nil {
		return storeErr("memperbarui password", err)
	}

	s.log.Info("password changed", zap.String("username", user.Username))
	return nil
}

// Authenticate resolves a bearer token to a user that still exists.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, jwt.ErrInvalidToken
		}
		return nil, storeErr("mengambil user", err)
	}
	return user, nil
}
