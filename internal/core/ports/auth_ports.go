package ports

import (
	"context"

	"github.com/pollhub/api/internal/core/domain"
)

type AuthRepository interface {
	StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id string) error
}

type TokenPayload struct {
	Email string
	Name  string
}

// TokenVerifier checks a third-party identity token and extracts the claims
// the user service needs.
type TokenVerifier interface {
	Verify(ctx context.Context, token string, clientID string) (*TokenPayload, error)
}

type AuthService interface {
	// LoginWithGoogle exchanges a Google ID token for an access and refresh
	// token pair.
	LoginWithGoogle(ctx context.Context, googleToken string) (string, string, error)
	// RefreshAccessToken rotates the refresh token and mints a new access token.
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
}
