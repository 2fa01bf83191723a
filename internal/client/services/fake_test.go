package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/dmitrijs2005/reeldesk/internal/client/client"
	"github.com/dmitrijs2005/reeldesk/internal/client/models"
	"github.com/dmitrijs2005/reeldesk/internal/client/session"
	"github.com/dmitrijs2005/reeldesk/internal/client/storage"
	"github.com/stretchr/testify/require"
)

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	mu sync.Mutex

	LoginRet *client.LoginResult
	LoginErr error

	LogoutErr   error
	LogoutCalls int

	MeRet   *models.User
	MeErr   error
	MeCalls int
	// MeBlock, when set, is waited on inside Me.
	MeBlock chan struct{}

	VerifyRet  bool
	VerifyErr  error
	LastVerify string

	QuestionRet string
	QuestionErr error

	AnswerRet string
	AnswerErr error

	ResetErr        error
	LastResetToken  string
	LastResetPass   string
	LastResetAnswer string

	SetQuestionRet string
	SetQuestionErr error

	PasswordRet string
	PasswordErr error

	Reels    map[string][]models.VideoReel
	ReelsErr error
	Reviews  []models.Review
	FAQs     []models.FAQ
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*client.LoginResult, error) {
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.mu.Lock()
	f.LogoutCalls++
	f.mu.Unlock()
	return f.LogoutErr
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	f.MeCalls++
	block := f.MeBlock
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, client.ErrTimeout
		}
	}
	return f.MeRet, f.MeErr
}

func (f *fakeClient) VerifyToken(ctx context.Context, token string) (bool, error) {
	f.LastVerify = token
	return f.VerifyRet, f.VerifyErr
}

func (f *fakeClient) GetSecurityQuestion(ctx context.Context, email string) (string, error) {
	return f.QuestionRet, f.QuestionErr
}

func (f *fakeClient) VerifySecurityAnswer(ctx context.Context, email, answer string) (string, error) {
	return f.AnswerRet, f.AnswerErr
}

func (f *fakeClient) ResetPasswordWithSecurity(ctx context.Context, resetToken, newPassword, answer string) error {
	f.LastResetToken = resetToken
	f.LastResetPass = newPassword
	f.LastResetAnswer = answer
	return f.ResetErr
}

func (f *fakeClient) SetSecurityQuestion(ctx context.Context, question, answer, currentPassword string) (string, error) {
	return f.SetQuestionRet, f.SetQuestionErr
}

func (f *fakeClient) UpdatePassword(ctx context.Context, currentPassword, newPassword string) (string, error) {
	return f.PasswordRet, f.PasswordErr
}

func (f *fakeClient) ListReviewsWithVideo(ctx context.Context) ([]models.Review, error) {
	return f.Reviews, nil
}

func (f *fakeClient) ListReviewsWithoutVideo(ctx context.Context) ([]models.Review, error) {
	return f.Reviews, nil
}

func (f *fakeClient) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	return f.FAQs, nil
}

func (f *fakeClient) ListVideoReels(ctx context.Context, category string) ([]models.VideoReel, error) {
	if f.ReelsErr != nil {
		return nil, f.ReelsErr
	}
	return f.Reels[category], nil
}

var _ client.Client = (*fakeClient)(nil)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newAuth(t *testing.T, fc *fakeClient) (*AuthService, *sql.DB) {
	t.Helper()
	db := setupDB(t)
	store := session.NewStore(storage.NewCredentialStore(db), nil)
	return NewAuthService(fc, store, nil, 0), db
}

func storedToken(t *testing.T, db *sql.DB) string {
	t.Helper()
	tok, err := storage.NewCredentialStore(db).Token(context.Background())
	require.NoError(t, err)
	return tok
}
