package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/JosueLDjota/ERP-Modern/internal/config"
	"github.com/JosueLDjota/ERP-Modern/internal/domain"
	"github.com/JosueLDjota/ERP-Modern/internal/metrics"
	"github.com/JosueLDjota/ERP-Modern/internal/notify"
	"github.com/JosueLDjota/ERP-Modern/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrInvalidToken       = errors.New("invalid token")
)

// lockAfter is the number of consecutive failed logins that locks an
// account.
const lockAfter = 5

type AuthService struct {
	Config   config.Config
	Users    repository.UserRepository
	Audit    repository.AuditRepository
	Notifier *notify.Engine
	Logger   *slog.Logger
}

type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         domain.User
	ExpiresAt    time.Time
}

type LoginInput struct {
	Username  string
	Password  string
	IPAddress string
	UserAgent string
}

func (s AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	user, err := s.Users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Locked || !user.Active {
		metrics.LoginAttempts.WithLabelValues("locked").Inc()
		return nil, ErrAccountLocked
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		attempts, locked, recErr := s.Users.RecordFailedLogin(ctx, user.ID, lockAfter)
		if recErr != nil {
			s.Logger.Warn("could not record failed login", "user", user.Username, "err", recErr)
		} else if locked {
			s.Logger.Warn("account locked after repeated failures", "user", user.Username, "attempts", attempts)
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.Users.RecordSuccessfulLogin(ctx, user.ID); err != nil {
		s.Logger.Warn("could not reset login counter", "user", user.Username, "err", err)
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()

	if err := s.Audit.Record(ctx, domain.AuditEntry{
		UserID:      &user.ID,
		Action:      "login",
		Module:      "auth",
		Description: fmt.Sprintf("user %s logged in", user.Username),
		IPAddress:   in.IPAddress,
		UserAgent:   in.UserAgent,
	}); err != nil {
		s.Logger.Warn("could not write audit entry", "err", err)
	}

	if s.Notifier != nil {
		s.Notifier.NotifyLogin(user.Name, user.Role)
	}
	return s.issueTokens(user)
}

type RefreshInput struct {
	RefreshToken string
}

func (s AuthService) Refresh(ctx context.Context, in RefreshInput) (*AuthResult, error) {
	token, err := jwt.Parse(in.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.Config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["token_type"] != "refresh" {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if user.Locked || !user.Active {
		return nil, ErrAccountLocked
	}
	return s.issueTokens(user)
}

func (s AuthService) issueTokens(user *domain.User) (*AuthResult, error) {
	now := time.Now()
	expiresAt := now.Add(s.Config.AccessTokenTTL)

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        strconv.FormatInt(user.ID, 10),
		"username":   user.Username,
		"role":       string(user.Role),
		"token_type": "access",
		"iat":        now.Unix(),
		"exp":        expiresAt.Unix(),
	})
	accessStr, err := access.SignedString([]byte(s.Config.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        strconv.FormatInt(user.ID, 10),
		"token_type": "refresh",
		"iat":        now.Unix(),
		"exp":        now.Add(s.Config.RefreshTokenTTL).Unix(),
	})
	refreshStr, err := refresh.SignedString([]byte(s.Config.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &AuthResult{
		AccessToken:  accessStr,
		RefreshToken: refreshStr,
		User:         *user,
		ExpiresAt:    expiresAt,
	}, nil
}
