// Package account handles registration, login and the refresh-token
// lifecycle on top of the token primitives in package auth.
package account

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"scheduling-api/internal/apperr"
	"scheduling-api/internal/auth"
	"scheduling-api/internal/model"
	"scheduling-api/internal/store"
)

const minPasswordLen = 8

type Repository interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)

	CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error)
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*store.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error
	RevokeAllRefreshTokens(ctx context.Context, userID string) error
}

// Session is what a successful register, login or refresh hands back.
type Session struct {
	UserID       string
	Name         string
	AccessToken  string
	RefreshToken string
}

type Service struct {
	repo   Repository
	deny   auth.Denylist
	secret string
	log    *zap.Logger
}

func New(repo Repository, deny auth.Denylist, secret string, log *zap.Logger) *Service {
	return &Service{repo: repo, deny: deny, secret: secret, log: log}
}

var errCredentials = apperr.With(apperr.ErrUnauthenticated, "invalid credentials")

func (s *Service) Register(ctx context.Context, email, password, name string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, apperr.Invalid("all fields required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Invalid("invalid email")
	}
	if len(password) < minPasswordLen {
		return nil, apperr.Invalid("password too short")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &model.User{ID: uuid.New().String(), Email: email, PasswordHash: hash, Name: name}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// dup email, but don't reveal that
			return nil, apperr.With(apperr.ErrConflict, "registration failed")
		}
		return nil, err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return s.issue(ctx, u)
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperr.Invalid("email and password required")
	}
	u, err := s.repo.UserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, errCredentials
	}
	return s.issue(ctx, u)
}

// Refresh exchanges a refresh token for a new pair. Presenting a token that
// was already rotated revokes every token of its owner.
func (s *Service) Refresh(ctx context.Context, raw string) (*Session, error) {
	if raw == "" {
		return nil, apperr.Invalid("refresh token required")
	}
	rt, err := s.repo.GetRefreshTokenByHash(ctx, auth.HashRefreshToken(raw))
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.With(apperr.ErrUnauthenticated, "invalid refresh token")
	}
	if err != nil {
		return nil, err
	}
	if rt.Revoked {
		s.log.Warn("refresh token reuse", zap.String("user_id", rt.UserID))
		if err := s.repo.RevokeAllRefreshTokens(ctx, rt.UserID); err != nil {
			return nil, err
		}
		return nil, apperr.With(apperr.ErrUnauthenticated, "invalid refresh token")
	}
	if time.Now().After(rt.ExpiresAt) {
		return nil, apperr.With(apperr.ErrUnauthenticated, "refresh token expired")
	}

	u, err := s.repo.UserByID(ctx, rt.UserID)
	if err != nil {
		return nil, err
	}
	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	err = s.repo.RotateRefreshToken(ctx, rt.ID, uuid.New().String(), u.ID, newHash, time.Now().Add(auth.RefreshTTL))
	if errors.Is(err, store.ErrNotFound) {
		// lost a race with a concurrent rotation
		return nil, apperr.With(apperr.ErrUnauthenticated, "invalid refresh token")
	}
	if err != nil {
		return nil, err
	}
	access, err := auth.MakeToken(u.ID, s.secret)
	if err != nil {
		return nil, err
	}
	return &Session{UserID: u.ID, Name: u.Name, AccessToken: access, RefreshToken: newRaw}, nil
}

// Logout revokes the user's refresh tokens and the presented access token.
func (s *Service) Logout(ctx context.Context, bearer string) error {
	c, err := s.claims(ctx, bearer)
	if err != nil {
		return err
	}
	if err := s.repo.RevokeAllRefreshTokens(ctx, c.UserID); err != nil {
		return err
	}
	if err := s.deny.Revoke(ctx, c.ID, c.ExpiresAt.Time); err != nil {
		return err
	}
	s.log.Info("user logged out", zap.String("user_id", c.UserID))
	return nil
}

// Authenticate validates an access token (with or without the "Bearer "
// prefix) and returns its user id.
func (s *Service) Authenticate(ctx context.Context, bearer string) (string, error) {
	c, err := s.claims(ctx, bearer)
	if err != nil {
		return "", err
	}
	return c.UserID, nil
}

func (s *Service) Me(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.repo.UserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.ErrNotFound
	}
	return u, err
}

func (s *Service) claims(ctx context.Context, bearer string) (*auth.Claims, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(bearer, "Bearer "))
	if raw == "" {
		return nil, apperr.With(apperr.ErrUnauthenticated, "no token")
	}
	c, err := auth.ParseToken(raw, s.secret)
	if err != nil {
		return nil, apperr.With(apperr.ErrUnauthenticated, "bad token")
	}
	revoked, err := s.deny.Revoked(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperr.With(apperr.ErrUnauthenticated, "token revoked")
	}
	return c, nil
}

func (s *Service) issue(ctx context.Context, u *model.User) (*Session, error) {
	access, err := auth.MakeToken(u.ID, s.secret)
	if err != nil {
		return nil, err
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.CreateRefreshToken(ctx, u.ID, hash, time.Now().Add(auth.RefreshTTL)); err != nil {
		return nil, err
	}
	return &Session{UserID: u.ID, Name: u.Name, AccessToken: access, RefreshToken: raw}, nil
}
