package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/identity"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
	now        func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
		now:        time.Now,
	}
}

// Authenticate verifies credentials and issues a token pair. Unknown,
// inactive and deleted users fail exactly like a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, input LoginInput) (*TokenResult, error) {
	s.logger.Info("Login attempt", zap.String("username", input.Username))

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if !shared.IsKind(err, shared.KindNotFound) {
			return nil, err
		}
		s.logger.Warn("User not found during login", zap.String("username", input.Username))
		return nil, shared.ErrAuthenticationFailed
	}
	if !user.CanSignIn() {
		s.logger.Warn("Login attempt for inactive account", zap.String("username", input.Username))
		return nil, shared.ErrAuthenticationFailed
	}
	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		return nil, shared.ErrAuthenticationFailed
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	user.RecordLogin(s.now())
	if err := s.userRepo.RecordLogin(ctx, user); err != nil {
		// the login itself succeeded
		s.logger.Error("Failed to record last login", zap.Error(err))
	}
	result.User.LastLoginAt = user.LastLoginAt

	s.logger.Info("User logged in successfully",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))
	return result, nil
}

// Refresh exchanges a refresh token for a new pair. The user is reloaded so
// role, branch and status changes take effect, and the used refresh token is
// revoked.
func (s *AuthService) Refresh(ctx context.Context, input RefreshTokenInput) (*TokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, tokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, tokenError(auth.ErrInvalidClaims)
	}
	user, err := s.userRepo.FindByID(ctx, access.Unrestricted(), userID, false)
	if err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			return nil, shared.ErrAuthenticationFailed
		}
		return nil, err
	}
	if !user.CanSignIn() {
		s.logger.Warn("Token refresh for inactive user", zap.String("user_id", userID.String()))
		return nil, shared.ErrAuthenticationFailed
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke used refresh token", zap.Error(err))
	}

	s.logger.Info("Token refreshed successfully", zap.String("user_id", userID.String()))
	return result, nil
}

// Logout revokes the access token and, when supplied, the refresh token
func (s *AuthService) Logout(ctx context.Context, p shared.Principal, input LogoutInput) error {
	if input.AccessTokenID != "" {
		if err := s.blacklist.AddToBlacklist(ctx, input.AccessTokenID, input.AccessTokenTTL); err != nil {
			return shared.NewInternalError("Failed to revoke access token")
		}
	}
	if input.RefreshToken != "" {
		claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
		if err == nil && claims.UserID == p.UserID.String() {
			if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
				return shared.NewInternalError("Failed to revoke refresh token")
			}
		}
	}

	s.logger.Info("User logout", zap.String("user_id", p.UserID.String()))
	return nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return shared.NewInternalError("Failed to check token status")
	}
	if !revoked {
		revoked, err = s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
		if err != nil {
			return shared.NewInternalError("Failed to check token status")
		}
	}
	if revoked {
		return tokenError(auth.ErrTokenBlacklisted)
	}
	return nil
}

func (s *AuthService) issue(user *identity.User) (*TokenResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		BranchID:   user.BranchID,
		BranchName: user.BranchName,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewInternalError("Failed to generate authentication tokens")
	}
	return &TokenResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserResponse(user),
	}, nil
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError(shared.KindAuthenticationFailed, "TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return shared.NewDomainError(shared.KindAuthenticationFailed, "TOKEN_REVOKED", "Token has been revoked")
	default:
		return shared.NewDomainError(shared.KindAuthenticationFailed, "TOKEN_INVALID", "Invalid token")
	}
}
