package devapi_test

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/reeldesk/internal/client/client"
	"github.com/dmitrijs2005/reeldesk/internal/client/guard"
	"github.com/dmitrijs2005/reeldesk/internal/client/services"
	"github.com/dmitrijs2005/reeldesk/internal/client/session"
	"github.com/dmitrijs2005/reeldesk/internal/client/storage"
	"github.com/dmitrijs2005/reeldesk/internal/devapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type backend struct {
	srv   *httptest.Server
	users *devapi.Users
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	cfg := &devapi.Config{}
	cfg.LoadDefaults()
	users := devapi.NewUsers(cfg, bcrypt.MinCost)
	u, err := users.Create("admin@x.io", "Admin", "admin123")
	require.NoError(t, err)
	_, err = users.SetSecurityQuestion(u.ID, "First pet?", "Rex", "admin123")
	require.NoError(t, err)

	srv := httptest.NewServer(devapi.NewRouter(users, devapi.NewContent(), nil, nil))
	t.Cleanup(srv.Close)
	return &backend{srv: srv, users: users}
}

// process is one run of the admin client over a shared state database.
type process struct {
	auth  *services.AuthService
	guard *guard.Guard
}

func start(t *testing.T, b *backend, db *sql.DB) *process {
	t.Helper()
	store := session.NewStore(storage.NewCredentialStore(db), nil)
	api := client.NewHTTPClient(b.srv.URL, b.srv.Client(), store.Token, nil)
	auth := services.NewAuthService(api, store, nil, 0)
	return &process{auth: auth, guard: guard.New(auth, nil, guard.WithRetries(0, 0))}
}

func stateDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestE2E_LoginThenDashboard(t *testing.T) {
	b := newBackend(t)
	p := start(t, b, stateDB(t))
	ctx := context.Background()

	assert.False(t, p.guard.Evaluate(ctx).Allowed())

	_, err := p.auth.Login(ctx, "admin@x.io", "admin123")
	require.NoError(t, err)
	d := p.guard.Evaluate(ctx)
	require.True(t, d.Allowed())
	assert.Equal(t, "Admin", d.User.Name)
	assert.Equal(t, "First pet?", d.User.SecurityQuestion.Question)
}

func TestE2E_RestartVerifiesStoredSession(t *testing.T) {
	b := newBackend(t)
	db := stateDB(t)
	ctx := context.Background()

	first := start(t, b, db)
	_, err := first.auth.Login(ctx, "admin@x.io", "admin123")
	require.NoError(t, err)

	second := start(t, b, db)
	assert.True(t, second.guard.Evaluate(ctx).Allowed())
}

func TestE2E_RevokedTokenLogsOut(t *testing.T) {
	b := newBackend(t)
	db := stateDB(t)
	ctx := context.Background()

	first := start(t, b, db)
	user, err := first.auth.Login(ctx, "admin@x.io", "admin123")
	require.NoError(t, err)
	b.users.Logout(user.ID)

	second := start(t, b, db)
	d := second.guard.Evaluate(ctx)
	assert.False(t, d.Allowed())
	assert.ErrorIs(t, d.Err, client.ErrUnauthorized)

	token, err := storage.NewCredentialStore(db).Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.False(t, second.auth.Session().IsAuthenticated)
}

func TestE2E_PasswordChangeKeepsSession(t *testing.T) {
	b := newBackend(t)
	p := start(t, b, stateDB(t))
	ctx := context.Background()

	_, err := p.auth.Login(ctx, "admin@x.io", "admin123")
	require.NoError(t, err)
	require.NoError(t, p.auth.UpdatePassword(ctx, "admin123", "admin456"))

	u, err := p.auth.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin@x.io", u.Email)
}

func TestE2E_ResetFlow(t *testing.T) {
	b := newBackend(t)
	p := start(t, b, stateDB(t))
	ctx := context.Background()
	flow := services.NewResetFlow(p.auth)

	q, err := flow.SubmitEmail(ctx, "admin@x.io")
	require.NoError(t, err)
	assert.Equal(t, "First pet?", q)

	err = flow.SubmitAnswer(ctx, "Max")
	assert.ErrorIs(t, err, client.ErrRejected)
	require.NoError(t, flow.SubmitAnswer(ctx, "rex"))
	require.NoError(t, flow.SubmitNewPassword(ctx, "brandnew", "brandnew"))
	require.NoError(t, flow.Finish())

	_, err = p.auth.Login(ctx, "admin@x.io", "admin123")
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	_, err = p.auth.Login(ctx, "admin@x.io", "brandnew")
	assert.NoError(t, err)
}

func TestE2E_ForgedResetTokenRejected(t *testing.T) {
	b := newBackend(t)
	p := start(t, b, stateDB(t))
	ctx := context.Background()

	_, err := p.auth.VerifySecurityQuestion(ctx, "admin@x.io", "Rex")
	require.NoError(t, err)

	err = p.auth.ResetPasswordWithSecurity(ctx, "00000000-0000-0000-0000-000000000000", "brandnew", "Rex")
	assert.ErrorIs(t, err, client.ErrRejected)
	assert.Equal(t, "Reset token is invalid or has expired", err.Error())
}

func TestE2E_Capacity(t *testing.T) {
	b := newBackend(t)
	api := client.NewHTTPClient(b.srv.URL, b.srv.Client(), nil, nil)
	content := services.NewContentService(api, nil, 0)

	c, err := content.Capacity(context.Background(), "introduction")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Current)
	assert.False(t, c.CanAdd)
}
