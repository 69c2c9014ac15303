package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mediatracker/internal/config"
	"mediatracker/internal/middleware/auth"
	"mediatracker/internal/microservices/http-api/dto"
	"mediatracker/internal/microservices/http-api/models"
	"mediatracker/internal/microservices/http-api/repository"
	"mediatracker/internal/sanitize"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Welcome entry created for every new account.
const (
	welcomeStatus = sanitize.StatusCompleted
	welcomeRating = float64(sanitize.MaxRating)
	welcomeNotes  = "Welcome! This is your default entry :)"
)

// Claims is the payload of an access token.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, *dto.TokenPair, error)
	Login(ctx context.Context, req dto.LoginRequest) (*models.User, *dto.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	users           repository.UserRepository
	media           repository.MediaRepository
	logs            repository.LogRepository
	refreshTokens   repository.RefreshTokenRepository
	tx              repository.TxManager
	jwtSecret       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	log             *zap.Logger
}

func NewAuthService(
	users repository.UserRepository,
	media repository.MediaRepository,
	logs repository.LogRepository,
	refreshTokens repository.RefreshTokenRepository,
	tx repository.TxManager,
	cfg *config.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:           users,
		media:           media,
		logs:            logs,
		refreshTokens:   refreshTokens,
		tx:              tx,
		jwtSecret:       []byte(cfg.JWTSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		log:             log,
	}
}

// Register creates the account together with its welcome log and signs the
// new user in.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, *dto.TokenPair, error) {
	username, ok := sanitize.Username(req.Username)
	if !ok {
		return nil, nil, invalid("Username must be 3-30 characters without spaces")
	}
	displayName := username
	if req.DisplayName != nil {
		if displayName, ok = sanitize.DisplayName(req.DisplayName); !ok {
			return nil, nil, invalid("Display name is invalid")
		}
	}
	if !sanitize.PasswordStrong(req.Password) {
		return nil, nil, invalid("Password must be at least 8 characters and contain an uppercase letter, a lowercase letter, a number and a symbol")
	}
	password := req.Password.(string)

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, nil, conflict("Username is already taken")
	} else if !repository.IsNotFound(err) {
		return nil, nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{Username: username, DisplayName: displayName, Password: hashed}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return conflict("Username is already taken")
			}
			return err
		}
		return s.createWelcomeLog(ctx, user)
	})
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, tokens, nil
}

func (s *authService) createWelcomeLog(ctx context.Context, user *models.User) error {
	media, err := s.media.FindGlobalByTitle(ctx, models.DefaultMediaTitle)
	if repository.IsNotFound(err) {
		// the seed has not run; the account is still usable
		s.log.Warn("default media missing, skipping welcome log", zap.Int64("user_id", user.ID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("find default media: %w", err)
	}

	status, rating, notes := welcomeStatus, welcomeRating, welcomeNotes
	return s.logs.Create(ctx, &models.UserLog{
		UserID:  user.ID,
		MediaID: media.ID,
		Status:  &status,
		Rating:  &rating,
		Notes:   &notes,
	})
}

// Login: authenticates a user and returns access and refresh tokens upon successful login.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*models.User, *dto.TokenPair, error) {
	username, ok := sanitize.Username(req.Username)
	if !ok {
		auth.BurnCompare(req.Password)
		return nil, nil, newError(ErrUnauthorized, "Invalid username or password")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !repository.IsNotFound(err) {
			return nil, nil, fmt.Errorf("find user: %w", err)
		}
		// keep timing equal to the wrong-password path
		auth.BurnCompare(req.Password)
		return nil, nil, newError(ErrUnauthorized, "Invalid username or password")
	}

	if err := auth.VerifyPassword(user.Password, req.Password); err != nil {
		return nil, nil, newError(ErrUnauthorized, "Invalid username or password")
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Refresh rotates the refresh token: the old one stops working.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	userID, err := s.refreshTokens.FindUserID(ctx, refreshToken)
	if errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return nil, newError(ErrUnauthorized, "Invalid or expired refresh token")
	}
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if repository.IsNotFound(err) {
		return nil, newError(ErrUnauthorized, "Invalid or expired refresh token")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.refreshTokens.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// Logout never reports failure to the caller.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.refreshTokens.Revoke(ctx, refreshToken); err != nil {
		s.log.Warn("revoke refresh token failed", zap.Error(err))
	}
	return nil
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenPair, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprint(user.ID),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken := uuid.NewString()
	if err := s.refreshTokens.Save(ctx, refreshToken, user.ID, s.refreshTokenTTL); err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
	}, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
