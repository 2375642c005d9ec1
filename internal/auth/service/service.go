// Package service implements owner sign-up, sign-in, and token rotation.
package service

import (
	"context"
	"time"

	"guesthouse_backend/internal/auth/password"
	"guesthouse_backend/internal/auth/repository"
	"guesthouse_backend/internal/auth/token"
	"guesthouse_backend/internal/auth/transport"
	"guesthouse_backend/internal/config"
	"guesthouse_backend/internal/email"
	"guesthouse_backend/platform/apperr"
	"guesthouse_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTokenType  = "access"
	refreshTokenSize = 48
)

// Service implements the auth operations.
type Service struct {
	repo repository.Repository
	cfg  *config.Config
	mail email.Sender
	log  *logger.Logger
}

// New creates a new auth service.
func New(repo repository.Repository, cfg *config.Config, mailer email.Sender, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, mail: mailer, log: log}
}

// SignUp registers an owner account. The welcome email is best effort; a
// delivery failure never fails the registration.
func (s *Service) SignUp(ctx context.Context, name, emailAddr, plainPassword string) error {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return err
	}

	owner, err := s.repo.CreateOwner(ctx, name, emailAddr, hash)
	if err != nil {
		s.log.AuthEvent("sign_up", emailAddr, false, err.Error())
		return err
	}

	if err := s.mail.SendWelcomeEmail(ctx, owner.Email, owner.Name); err != nil {
		s.log.ExternalAPIError("smtp", err)
	}

	s.log.AuthEvent("sign_up", owner.Email, true, "")
	return nil
}

// SignIn verifies credentials and issues an access and refresh token pair.
func (s *Service) SignIn(ctx context.Context, emailAddr, plainPassword string) (transport.AuthResponse, error) {
	owner, err := s.repo.GetOwnerByEmail(ctx, emailAddr)
	if err != nil {
		s.log.AuthEvent("sign_in", emailAddr, false, "unknown email")
		return transport.AuthResponse{}, apperr.Unauthorized("invalid credentials")
	}

	if err := password.Compare(owner.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("sign_in", emailAddr, false, "wrong password")
		return transport.AuthResponse{}, apperr.Unauthorized("invalid credentials")
	}

	pair, err := s.issueTokens(ctx, owner.ID)
	if err != nil {
		return transport.AuthResponse{}, err
	}
	s.log.AuthEvent("sign_in", owner.Email, true, "")
	return pair, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. Expired tokens are revoked and rejected.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (transport.AuthResponse, error) {
	hash := token.HashSHA256(refreshToken)
	ownerID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return transport.AuthResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeRefreshToken(ctx, hash)
		return transport.AuthResponse{}, apperr.Unauthorized("refresh token expired")
	}

	if err := s.repo.RevokeRefreshToken(ctx, hash); err != nil {
		return transport.AuthResponse{}, err
	}
	return s.issueTokens(ctx, ownerID)
}

// SignOut revokes a refresh token. Revoking an unknown token is not an
// error.
func (s *Service) SignOut(ctx context.Context, refreshToken string) error {
	hash := token.HashSHA256(refreshToken)
	return s.repo.RevokeRefreshToken(ctx, hash)
}

// GetMe returns the authenticated owner's profile.
func (s *Service) GetMe(ctx context.Context, ownerID uuid.UUID) (transport.ProfileResponse, error) {
	owner, err := s.repo.GetOwnerByID(ctx, ownerID)
	if err != nil {
		return transport.ProfileResponse{}, err
	}
	return transport.ProfileResponse{
		ID:        owner.ID.String(),
		Name:      owner.Name,
		Email:     owner.Email,
		CreatedAt: owner.CreatedAt,
		UpdatedAt: owner.UpdatedAt,
	}, nil
}

func (s *Service) issueTokens(ctx context.Context, ownerID uuid.UUID) (transport.AuthResponse, error) {
	accessToken, err := s.signJWT(ownerID, s.cfg.AccessTokenTTL, s.cfg.GetJWTAccessSecret())
	if err != nil {
		return transport.AuthResponse{}, err
	}

	refreshToken, err := token.GenerateRandomToken(refreshTokenSize)
	if err != nil {
		return transport.AuthResponse{}, err
	}

	hash := token.HashSHA256(refreshToken)
	expiresAt := time.Now().Add(s.cfg.RefreshTokenTTL)
	if err := s.repo.CreateRefreshToken(ctx, ownerID, hash, expiresAt); err != nil {
		return transport.AuthResponse{}, err
	}

	return transport.AuthResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *Service) signJWT(ownerID uuid.UUID, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  ownerID.String(),
		"type": accessTokenType,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(secret))
}
