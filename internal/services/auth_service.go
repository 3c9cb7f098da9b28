package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/geotracker/backend/internal/audit"
	"github.com/geotracker/backend/internal/config"
	"github.com/geotracker/backend/internal/dto"
	"github.com/geotracker/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserTaken          = errors.New("username or email already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db    *gorm.DB
	cfg   *config.Config
	audit *audit.Recorder
}

func NewAuthService(db *gorm.DB, cfg *config.Config, rec *audit.Recorder) *AuthService {
	return &AuthService{db: db, cfg: cfg, audit: rec}
}

func (s *AuthService) Register(req *dto.RegisterRequest, ip string) (*dto.AuthResponse, error) {
	var existing models.User
	err := s.db.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error
	if err == nil {
		return nil, ErrUserTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleUser,
		IsActive: true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit.Record(&user.ID, audit.ActionCreate, "users", user.ID.String(), nil,
		map[string]interface{}{"username": user.Username, "email": user.Email, "role": user.Role}, ip)

	token, err := s.generateToken(&user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    toUserResponse(&user),
	}, nil
}

func (s *AuthService) Login(req *dto.LoginRequest, ip string) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("username = ? OR email = ?", req.Username, req.Username).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return nil, err
	}

	s.audit.Record(&user.ID, audit.ActionLogin, "users", user.ID.String(), nil, nil, ip)

	return &dto.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    toUserResponse(&user),
	}, nil
}

func (s *AuthService) Profile(userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	resp := toUserResponse(&user)
	return &resp, nil
}

func (s *AuthService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest, ip string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if req.Email == "" || req.Email == user.Email {
		return nil
	}

	var existing models.User
	if err := s.db.Where("email = ? AND id != ?", req.Email, userID).First(&existing).Error; err == nil {
		return ErrEmailTaken
	}

	oldValues := map[string]interface{}{"email": user.Email}
	if err := s.db.Model(&user).Update("email", req.Email).Error; err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	s.audit.Record(&userID, audit.ActionUpdate, "users", userID.String(),
		oldValues, map[string]interface{}{"email": req.Email}, ip)
	return nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
