package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/reeldesk/internal/client/models"
)

const (
	pathLogin               = "/api/auth/login"
	pathLogout              = "/api/auth/logout"
	pathMe                  = "/api/auth/me"
	pathVerifyToken         = "/api/auth/verify-token"
	pathGetSecurityQuestion = "/api/auth/get-security-question"
	pathVerifyAnswer        = "/api/auth/verify-security-answer"
	pathResetWithSecurity   = "/api/auth/reset-password-with-security"
	pathSetSecurityQuestion = "/api/auth/set-security-question"
	pathUpdatePassword      = "/api/auth/updatePassword"
)

type userData struct {
	User *models.User `json:"user"`
}

func (c *HTTPClient) decodeUser(endpoint string, e *envelope) (*models.User, error) {
	var d userData
	if err := decodeData(endpoint, e.Data, &d); err != nil {
		return nil, err
	}
	if d.User == nil {
		return nil, fmt.Errorf("%w: %s: missing user", ErrMalformedResponse, endpoint)
	}
	return d.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var e envelope
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, pathLogin, body, &e); err != nil {
		return nil, err
	}
	if e.Token == "" {
		return nil, fmt.Errorf("%w: %s: missing token", ErrMalformedResponse, pathLogin)
	}
	user, err := c.decodeUser(pathLogin, &e)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: e.Token, User: user}, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, pathLogout, nil, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var e envelope
	if err := c.do(ctx, http.MethodGet, pathMe, nil, &e); err != nil {
		return nil, err
	}
	return c.decodeUser(pathMe, &e)
}

// VerifyToken asks the backend whether token is still valid. A 401/403
// answer is a definite "no" rather than an error.
func (c *HTTPClient) VerifyToken(ctx context.Context, token string) (bool, error) {
	var e envelope
	err := c.do(ctx, http.MethodPost, pathVerifyToken, map[string]string{"token": token}, &e)
	if errors.Is(err, ErrUnauthorized) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if e.IsValid != nil {
		return *e.IsValid, nil
	}
	return true, nil
}

func (c *HTTPClient) GetSecurityQuestion(ctx context.Context, email string) (string, error) {
	var e envelope
	if err := c.do(ctx, http.MethodPost, pathGetSecurityQuestion, map[string]string{"email": email}, &e); err != nil {
		return "", err
	}

	var d struct {
		SecurityQuestion json.RawMessage `json:"securityQuestion"`
	}
	if err := decodeData(pathGetSecurityQuestion, e.Data, &d); err != nil {
		return "", err
	}

	// The question arrives either as a bare string or as {"question": ...}.
	var q string
	if err := json.Unmarshal(d.SecurityQuestion, &q); err == nil && q != "" {
		return q, nil
	}
	var sq models.SecurityQuestion
	if err := json.Unmarshal(d.SecurityQuestion, &sq); err == nil && sq.Question != "" {
		return sq.Question, nil
	}
	return "", fmt.Errorf("%w: %s: missing security question", ErrMalformedResponse, pathGetSecurityQuestion)
}

func (c *HTTPClient) VerifySecurityAnswer(ctx context.Context, email, answer string) (string, error) {
	var e envelope
	body := map[string]string{"email": email, "answer": answer}
	if err := c.do(ctx, http.MethodPost, pathVerifyAnswer, body, &e); err != nil {
		return "", err
	}
	if e.ResetToken == "" {
		return "", fmt.Errorf("%w: %s: missing reset token", ErrMalformedResponse, pathVerifyAnswer)
	}
	return e.ResetToken, nil
}

func (c *HTTPClient) ResetPasswordWithSecurity(ctx context.Context, resetToken, newPassword, answer string) error {
	var e envelope
	body := map[string]string{"token": resetToken, "newPassword": newPassword, "answer": answer}
	return c.do(ctx, http.MethodPost, pathResetWithSecurity, body, &e)
}

func (c *HTTPClient) SetSecurityQuestion(ctx context.Context, question, answer, currentPassword string) (string, error) {
	var e envelope
	body := map[string]string{"question": question, "answer": answer, "currentPassword": currentPassword}
	if err := c.do(ctx, http.MethodPost, pathSetSecurityQuestion, body, &e); err != nil {
		return "", err
	}
	return reissuedToken(pathSetSecurityQuestion, &e)
}

func (c *HTTPClient) UpdatePassword(ctx context.Context, currentPassword, newPassword string) (string, error) {
	var e envelope
	body := map[string]string{"currentPassword": currentPassword, "newPassword": newPassword}
	if err := c.do(ctx, http.MethodPatch, pathUpdatePassword, body, &e); err != nil {
		return "", err
	}
	return reissuedToken(pathUpdatePassword, &e)
}

func reissuedToken(endpoint string, e *envelope) (string, error) {
	if e.Token == "" {
		return "", fmt.Errorf("%w: %s: missing token", ErrMalformedResponse, endpoint)
	}
	return e.Token, nil
}
