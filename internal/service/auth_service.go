package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pinspire/internal/model"
	"pinspire/pkg/apierror"
)

type AuthService struct {
	users     UserStore
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(jwtSecret string, accessTTL time.Duration, users UserStore) (*AuthService, error) {
	if strings.TrimSpace(jwtSecret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}

	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
	}, nil
}

func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.AuthData, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username == "" || email == "" || req.Password == "" {
		return model.AuthData{}, apierror.Validation("username, email and password are required", "")
	}
	if !strings.Contains(email, "@") {
		return model.AuthData{}, apierror.Validation("invalid email address", email)
	}
	if len(req.Password) < 6 {
		return model.AuthData{}, apierror.Validation("password must be at least 6 characters", "")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email, "")
	if err != nil {
		return model.AuthData{}, err
	}
	if exists {
		return model.AuthData{}, apierror.Validation("username or email already exists", "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return model.AuthData{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthData{}, err
	}

	return s.issueAuthData(user)
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthData, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.AuthData{}, apierror.Unauthorized("incorrect username or password")
		}
		return model.AuthData{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return model.AuthData{}, apierror.Unauthorized("incorrect username or password")
	}

	return s.issueAuthData(user)
}

func (s *AuthService) ValidateToken(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apierror.Unauthorized("invalid token signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apierror.Unauthorized("invalid token")
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.Unauthorized("invalid token claims")
	}

	claims := &model.AuthClaims{}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.Username, _ = claimsMap["username"].(string)
	claims.TokenID, _ = claimsMap["jti"].(string)

	if claims.UserID == "" {
		return nil, apierror.Unauthorized("invalid token subject")
	}

	return claims, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (model.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}
	return user.Profile(), nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req model.UpdateProfileRequest) (model.Profile, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username == "" || email == "" {
		return model.Profile{}, apierror.Validation("username and email are required", "")
	}
	if !strings.Contains(email, "@") {
		return model.Profile{}, apierror.Validation("invalid email address", email)
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email, userID)
	if err != nil {
		return model.Profile{}, err
	}
	if exists {
		return model.Profile{}, apierror.Validation("username or email already taken", "")
	}

	if err := s.users.UpdateProfile(ctx, userID, username, email); err != nil {
		return model.Profile{}, err
	}

	return s.Me(ctx, userID)
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID string, req model.UpdatePasswordRequest) error {
	if req.NewPassword == "" {
		return apierror.Validation("new_password is required", "")
	}
	if len(req.NewPassword) < 6 {
		return apierror.Validation("password must be at least 6 characters", "")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apierror.Unauthorized("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, userID, string(hash))
}

func (s *AuthService) issueAuthData(user model.User) (model.AuthData, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return model.AuthData{}, err
	}

	return model.AuthData{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.accessTTL.Seconds()),
		User:        user.Profile(),
	}, nil
}
