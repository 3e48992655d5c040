package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"wms-finance/models"
	"wms-finance/repositories"
	"wms-finance/session"
	"wms-finance/types"
)

// Claims is the token payload. The identity itself lives in the session
// store under SessionID.
type Claims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token     string      `json:"token"`
	SessionID string      `json:"sessionId"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      models.User `json:"user"`
}

type AuthService struct {
	users    repositories.Collection[models.User]
	sessions *session.Store
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewAuthService(users repositories.Collection[models.User], sessions *session.Store, secret string, ttl time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Login matches login against username or email. Every failure is
// reported as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, login, password string) (LoginResult, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return LoginResult{}, err
	}

	var user *models.User
	for i := range users {
		if users[i].Username == login || strings.EqualFold(users[i].Email, login) {
			user = &users[i]
			break
		}
	}
	if user == nil {
		s.logger.Info("login failed", zap.String("login", login), zap.String("reason", "USER_NOT_FOUND"))
		return LoginResult{}, ErrInvalidCredentials
	}
	if user.Status != models.StatusActive {
		s.logger.Info("login failed", zap.String("login", login), zap.String("reason", "INACTIVE"))
		return LoginResult{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Info("login failed", zap.String("login", login), zap.String("reason", "WRONG_PASSWORD"))
		return LoginResult{}, ErrInvalidCredentials
	}

	now := s.now()
	stamped, found, err := s.users.Update(ctx, user.ID, models.UserPatch{LastLogin: &now})
	if err != nil {
		return LoginResult{}, err
	}
	if found {
		user = &stamped
	}

	sessionID := uuid.NewString()
	expires := now.Add(s.ttl)
	token, err := s.issue(user.ID, sessionID, now, expires)
	if err != nil {
		return LoginResult{}, err
	}
	if err := s.sessions.Save(sessionID, *user); err != nil {
		return LoginResult{}, err
	}

	s.logger.Info("login succeeded", zap.String("user", user.Username), zap.String("session_id", sessionID))
	return LoginResult{Token: token, SessionID: sessionID, ExpiresAt: expires, User: *user}, nil
}

func (s *AuthService) issue(userID types.SnowflakeID, sessionID string, now, expires time.Time) (string, error) {
	claims := Claims{
		UserID:    userID.String(),
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authenticate verifies token and returns the identity saved for its
// session.
func (s *AuthService) Authenticate(token string) (models.User, Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid || claims.SessionID == "" {
		return models.User{}, claims, ErrInvalidToken
	}

	identity, err := s.sessions.Load(claims.SessionID)
	if errors.Is(err, session.ErrSessionNotFound) {
		return models.User{}, claims, ErrInvalidToken
	}
	if err != nil {
		return models.User{}, claims, err
	}
	return identity, claims, nil
}

func (s *AuthService) Logout(sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// SyncSessions rewrites the saved identity of user's open sessions.
func (s *AuthService) SyncSessions(user models.User) {
	n, err := s.sessions.Refresh(user)
	if err != nil {
		s.logger.Error("failed to refresh sessions", zap.String("user_id", user.ID.String()), zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Debug("sessions refreshed", zap.String("user_id", user.ID.String()), zap.Int("count", n))
	}
}

// RevokeSessions signs a user out everywhere.
func (s *AuthService) RevokeSessions(id types.SnowflakeID) {
	if _, err := s.sessions.Revoke(id); err != nil {
		s.logger.Error("failed to revoke sessions", zap.String("user_id", id.String()), zap.Error(err))
	}
}
