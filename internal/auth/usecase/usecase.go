package usecase

import (
	"context"
	"io"

	authdomain "vidtube-backend/internal/auth/domain"
	authdto "vidtube-backend/internal/auth/dto"
)

// Upload is one incoming multipart file relayed to media storage.
type Upload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// AuthUsecase interface
type AuthUsecase interface {
	// Register creates a user with a required avatar and optional cover image
	// and returns the public projection.
	Register(ctx context.Context, req *authdto.RegisterRequest, avatar, coverImage *Upload) (*authdomain.User, error)

	// Login verifies credentials and issues a fresh token pair. Unknown
	// identifier and wrong password fail identically.
	Login(ctx context.Context, identifier, password string) (*authdto.TokenResponse, error)

	// ValidateAccessToken is the per-request gate: signature, expiry, and user
	// resolution. Read-only.
	ValidateAccessToken(ctx context.Context, tokenString string) (*authdomain.User, error)

	// Refresh rotates the token pair. The presented token must equal the one
	// stored on the user record; stale tokens are rejected.
	Refresh(ctx context.Context, refreshToken string) (*authdto.TokenResponse, error)

	// Logout clears the stored refresh token, ending the user's session.
	Logout(ctx context.Context, userID string) error
}
