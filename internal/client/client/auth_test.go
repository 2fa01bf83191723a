package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSecurityQuestion_Forms(t *testing.T) {
	for name, reply := range map[string]string{
		"string": `{"status":"success","data":{"securityQuestion":"First pet?"}}`,
		"object": `{"status":"success","data":{"securityQuestion":{"question":"First pet?"}}}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv, rec := newStub(t, http.StatusOK, reply)
			q, err := NewHTTPClient(srv.URL, nil, nil, nil).GetSecurityQuestion(context.Background(), "a@b.com")
			require.NoError(t, err)
			assert.Equal(t, "First pet?", q)
			assert.Equal(t, "/api/auth/get-security-question", rec.path)
			assert.Equal(t, "a@b.com", rec.body["email"])
		})
	}

	srv, _ := newStub(t, http.StatusOK, `{"status":"success","data":{}}`)
	_, err := NewHTTPClient(srv.URL, nil, nil, nil).GetSecurityQuestion(context.Background(), "a@b.com")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestVerifySecurityAnswer(t *testing.T) {
	srv, rec := newStub(t, http.StatusOK, `{"status":"success","resetToken":"rt-1"}`)

	rt, err := NewHTTPClient(srv.URL, nil, nil, nil).VerifySecurityAnswer(context.Background(), "a@b.com", "Rex")
	require.NoError(t, err)
	assert.Equal(t, "rt-1", rt)
	assert.Equal(t, map[string]string{"email": "a@b.com", "answer": "Rex"}, rec.body)

	srv, _ = newStub(t, http.StatusOK, `{"status":"success"}`)
	_, err = NewHTTPClient(srv.URL, nil, nil, nil).VerifySecurityAnswer(context.Background(), "a@b.com", "Rex")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestResetPasswordWithSecurity_Body(t *testing.T) {
	srv, rec := newStub(t, http.StatusOK, `{"status":"success"}`)

	err := NewHTTPClient(srv.URL, nil, nil, nil).ResetPasswordWithSecurity(context.Background(), "rt-1", "newpass", "Rex")
	require.NoError(t, err)
	assert.Equal(t, "/api/auth/reset-password-with-security", rec.path)
	assert.Equal(t, map[string]string{"token": "rt-1", "newPassword": "newpass", "answer": "Rex"}, rec.body)
}

func TestUpdatePassword_PatchReturnsToken(t *testing.T) {
	srv, rec := newStub(t, http.StatusOK, `{"status":"success","token":"fresh"}`)

	tok, err := NewHTTPClient(srv.URL, nil, staticToken("old"), nil).UpdatePassword(context.Background(), "cur", "next")
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/api/auth/updatePassword", rec.path)
	assert.Equal(t, "Bearer old", rec.auth)
}

func TestSetSecurityQuestion_MissingTokenIsMalformed(t *testing.T) {
	srv, rec := newStub(t, http.StatusOK, `{"status":"success"}`)

	_, err := NewHTTPClient(srv.URL, nil, nil, nil).SetSecurityQuestion(context.Background(), "Pet?", "Rex", "cur")
	require.ErrorIs(t, err, ErrMalformedResponse)
	assert.Equal(t, map[string]string{"question": "Pet?", "answer": "Rex", "currentPassword": "cur"}, rec.body)
}

func TestVerifyToken(t *testing.T) {
	srv, _ := newStub(t, http.StatusOK, `{"status":"success","isValid":false}`)
	ok, err := NewHTTPClient(srv.URL, nil, nil, nil).VerifyToken(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, ok)

	srv, _ = newStub(t, http.StatusOK, `{"status":"success"}`)
	ok, err = NewHTTPClient(srv.URL, nil, nil, nil).VerifyToken(context.Background(), "x")
	require.NoError(t, err)
	assert.True(t, ok)

	srv, _ = newStub(t, http.StatusUnauthorized, `{"message":"jwt expired"}`)
	ok, err = NewHTTPClient(srv.URL, nil, nil, nil).VerifyToken(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, ok)

	srv, _ = newStub(t, http.StatusServiceUnavailable, `{}`)
	_, err = NewHTTPClient(srv.URL, nil, nil, nil).VerifyToken(context.Background(), "x")
	require.ErrorIs(t, err, ErrUnavailable)
}
