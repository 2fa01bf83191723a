package client

import (
	"context"

	"github.com/dmitrijs2005/reeldesk/internal/client/models"
)

// TokenSource yields the bearer token for the next request; "" means
// the request goes out unauthenticated.
type TokenSource func(ctx context.Context) (string, error)

// LoginResult is the credential issued by a successful login.
type LoginResult struct {
	Token string
	User  *models.User
}

// AuthAPI covers the /api/auth/* endpoints.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	VerifyToken(ctx context.Context, token string) (bool, error)
	GetSecurityQuestion(ctx context.Context, email string) (string, error)
	VerifySecurityAnswer(ctx context.Context, email, answer string) (string, error)
	ResetPasswordWithSecurity(ctx context.Context, resetToken, newPassword, answer string) error
	// SetSecurityQuestion and UpdatePassword return the re-issued token.
	SetSecurityQuestion(ctx context.Context, question, answer, currentPassword string) (string, error)
	UpdatePassword(ctx context.Context, currentPassword, newPassword string) (string, error)
}

// ContentAPI covers the read-only dashboard listings.
type ContentAPI interface {
	ListReviewsWithVideo(ctx context.Context) ([]models.Review, error)
	ListReviewsWithoutVideo(ctx context.Context) ([]models.Review, error)
	ListFAQs(ctx context.Context) ([]models.FAQ, error)
	ListVideoReels(ctx context.Context, category string) ([]models.VideoReel, error)
}

type Client interface {
	AuthAPI
	ContentAPI
}
