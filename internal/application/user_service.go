package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/entity"
	repo "github.com/oksasatya/go-marketplace-ddd/internal/domain/repository"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/valueobject"
	"github.com/oksasatya/go-marketplace-ddd/internal/infrastructure/eventbus"
	"github.com/oksasatya/go-marketplace-ddd/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserNotActive      = errors.New("user is not active")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
)

// UserService owns registration, authentication and profile flows. Every
// write goes through the aggregate, is persisted, and only then has its
// events drained to the bus.
type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
	Events *eventbus.Publisher
	OTPTTL time.Duration
}

func NewUserService(repo repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, events *eventbus.Publisher, otpTTL time.Duration) *UserService {
	return &UserService{Repo: repo, JWT: jwt, Redis: rdb, Logger: logger, Events: events, OTPTTL: otpTTL}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Register creates an active, unverified user from an email and plain
// password.
func (s *UserService) Register(ctx context.Context, emailStr, password string) (*entity.User, error) {
	email, err := valueobject.NewEmail(emailStr)
	if err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := entity.NewUser(email, hash)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.drain(ctx, u)
	return u, nil
}

// Authenticate validates email/password and the account status. Suspended
// and banned users cannot log in.
func (s *UserService) Authenticate(ctx context.Context, emailStr, password string) (*entity.User, error) {
	email, err := valueobject.NewEmail(emailStr)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByEmail(ctx, email.Value())
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash(), password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive() {
		return nil, ErrUserNotActive
	}
	return u, nil
}

// IssueTokens generates an access/refresh pair and records the session in
// Redis under a fresh session id.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID(), sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID(), sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID())
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID(),
			"email":      u.Email().Value(),
			"sid":        sid,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

type LoginResponse struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResponse, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return &LoginResponse{UserID: u.ID(), Email: u.Email().Value(), EmailVerified: u.EmailVerified()}, pair, nil
}

// StartOTPLogin generates a one-time code for the user and stores it in
// Redis under its TTL. The caller is responsible for delivering the code.
func (s *UserService) StartOTPLogin(ctx context.Context, u *entity.User) (valueobject.OtpCode, error) {
	otp, err := valueobject.GenerateOtpCode(s.OTPTTL)
	if err != nil {
		return valueobject.OtpCode{}, err
	}
	if s.Redis != nil {
		if err := s.Redis.Set(ctx, helpers.KeyLoginOTP(u.ID()), otp.Value(), s.OTPTTL).Err(); err != nil {
			return valueobject.OtpCode{}, err
		}
	}
	return otp, nil
}

// ConfirmOTPLogin checks the submitted code against the stored one and, on
// match, consumes it and issues tokens.
func (s *UserService) ConfirmOTPLogin(ctx context.Context, emailStr, code string) (*LoginResponse, TokenPair, error) {
	u, err := s.GetUserByEmail(ctx, emailStr)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidOTP
	}
	if !u.IsActive() {
		return nil, TokenPair{}, ErrUserNotActive
	}
	if s.Redis == nil {
		return nil, TokenPair{}, ErrInvalidOTP
	}
	key := helpers.KeyLoginOTP(u.ID())
	stored, err := s.Redis.Get(ctx, key).Result()
	if err != nil {
		return nil, TokenPair{}, ErrInvalidOTP
	}
	otp, err := valueobject.NewOtpCode(stored, time.Now().UTC().Add(s.OTPTTL))
	if err != nil || !otp.Matches(code) {
		return nil, TokenPair{}, ErrInvalidOTP
	}
	_ = s.Redis.Del(ctx, key).Err()

	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return &LoginResponse{UserID: u.ID(), Email: u.Email().Value(), EmailVerified: u.EmailVerified()}, pair, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, emailStr string) (*entity.User, error) {
	email, err := valueobject.NewEmail(emailStr)
	if err != nil {
		return nil, ErrUserNotFound
	}
	u, err := s.Repo.GetByEmail(ctx, email.Value())
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Refresh rotates the session id and token pair after validating the
// refresh token against the stored session.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if !u.IsActive() {
		return TokenPair{}, "", ErrUserNotActive
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.ID())).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID(), nil
}

func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis != nil {
		_ = s.Redis.Del(ctx, sessionKey(userID)).Err()
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateEmail changes the address through the aggregate, which resets the
// verified flag even when the address is unchanged.
func (s *UserService) UpdateEmail(ctx context.Context, userID, newEmail string) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	email, err := valueobject.NewEmail(newEmail)
	if err != nil {
		return nil, err
	}
	if err := u.UpdateEmail(email); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.drain(ctx, u)
	return u, nil
}

func (s *UserService) VerifyEmail(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.VerifyEmail()
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.drain(ctx, u)
	return u, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash(), current) {
		return ErrInvalidCredentials
	}
	hash, err := helpers.HashPassword(next)
	if err != nil {
		return err
	}
	if err := u.ChangePassword(hash); err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}
	s.drain(ctx, u)
	return nil
}

// ResetPassword replaces the hash without checking the current password;
// callers gate it behind a one-time reset token.
func (s *UserService) ResetPassword(ctx context.Context, userID, next string) error {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	hash, err := helpers.HashPassword(next)
	if err != nil {
		return err
	}
	if err := u.ChangePassword(hash); err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}
	s.drain(ctx, u)
	return nil
}

// UpdatePhone normalizes and stores the phone; an empty string clears it.
func (s *UserService) UpdatePhone(ctx context.Context, userID, phoneStr string) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if phoneStr == "" {
		u.UpdatePhone(nil)
	} else {
		phone, err := valueobject.NewPhoneNumber(phoneStr)
		if err != nil {
			return nil, err
		}
		u.UpdatePhone(&phone)
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.drain(ctx, u)
	return u, nil
}

// Suspend, Ban and Reactivate are the administrative status transitions.
// Illegal transitions surface the aggregate's error untouched.

func (s *UserService) Suspend(ctx context.Context, userID string) error {
	return s.transition(ctx, userID, func(u *entity.User) error { return u.Suspend() })
}

func (s *UserService) Ban(ctx context.Context, userID string) error {
	return s.transition(ctx, userID, func(u *entity.User) error { u.Ban(); return nil })
}

func (s *UserService) Reactivate(ctx context.Context, userID string) error {
	return s.transition(ctx, userID, func(u *entity.User) error { return u.Activate() })
}

func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	return s.transition(ctx, userID, func(u *entity.User) error { return u.Deactivate() })
}

func (s *UserService) transition(ctx context.Context, userID string, mutate func(*entity.User) error) error {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if err := mutate(u); err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}
	s.drain(ctx, u)
	return nil
}

func (s *UserService) drain(ctx context.Context, u *entity.User) {
	if s.Events != nil {
		s.Events.Drain(ctx, u)
		return
	}
	u.ClearEvents()
}
