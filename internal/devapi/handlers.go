package devapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/reeldesk/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
)

// maxBody caps request bodies.
const maxBody = 1 << 20

type handler struct {
	users     *Users
	content   *Content
	log       logging.Logger
	validator *validator.Validate
}

type userKey struct{}

type userView struct {
	ID               string        `json:"_id"`
	Email            string        `json:"email"`
	Name             string        `json:"name"`
	SecurityQuestion *questionView `json:"securityQuestion,omitempty"`
}

type questionView struct {
	Question string `json:"question"`
}

func viewOf(u *User) userView {
	v := userView{ID: u.ID, Email: u.Email, Name: u.Name}
	if u.Question != "" {
		v.SecurityQuestion = &questionView{Question: u.Question}
	}
	return v
}

// NewRouter builds the HTTP API. allowedOrigins enables CORS for browser
// frontends; empty disables it.
func NewRouter(users *Users, content *Content, log logging.Logger, allowedOrigins []string) http.Handler {
	if log == nil {
		log = logging.Discard()
	}
	h := &handler{users: users, content: content, log: log, validator: validator.New()}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.logRequests)
	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Post("/verify-token", h.verifyToken)
		r.Post("/get-security-question", h.getSecurityQuestion)
		r.Post("/verify-security-answer", h.verifySecurityAnswer)
		r.Post("/reset-password-with-security", h.resetPassword)

		r.Group(func(r chi.Router) {
			r.Use(h.requireUser)
			r.Post("/logout", h.logout)
			r.Get("/me", h.me)
			r.Post("/set-security-question", h.setSecurityQuestion)
			r.Patch("/updatePassword", h.updatePassword)
		})
	})

	r.Get("/api/reviews-with-video", h.reviewsWithVideo)
	r.Get("/api/reviews-without-video", h.reviewsWithoutVideo)
	r.Get("/api/faqs", h.faqs)
	r.Get("/api/video-reels/category/{category}", h.videoReels)

	return r
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.log.Debug(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", r.Header.Get("X-Request-ID"))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"status": "error", "message": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(v); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// check validates a decoded request, answering 400 with msg on failure.
func (h *handler) check(w http.ResponseWriter, v any, msg string) bool {
	if err := h.validator.Struct(v); err != nil {
		fail(w, http.StatusBadRequest, msg)
		return false
	}
	return true
}

func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func (h *handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearer(r)
		if token == "" {
			fail(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		u, err := h.users.Authenticate(token)
		if err != nil {
			msg := "Not authorized, token failed"
			if errors.Is(err, ErrorTokenExpired) {
				msg = "Token expired"
			}
			fail(w, http.StatusUnauthorized, msg)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, u)))
	})
}

func currentUser(r *http.Request) *User {
	u, _ := r.Context().Value(userKey{}).(*User)
	return u
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if !decode(w, r, &req) || !h.check(w, &req, "Please provide email and password") {
		return
	}
	token, u, err := h.users.Login(req.Email, req.Password)
	if err != nil {
		fail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	h.log.Info(r.Context(), "login", "user_id", u.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"token":  token,
		"data":   map[string]any{"user": viewOf(u)},
	})
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	h.users.Logout(currentUser(r).ID)
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Logged out"})
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"user": viewOf(currentUser(r))},
	})
}

func (h *handler) verifyToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if !decode(w, r, &req) {
		return
	}
	token := req.Token
	if token == "" {
		token = bearer(r)
	}
	u, err := h.users.Authenticate(token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"status": "error", "message": "Invalid token", "isValid": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"isValid": true,
		"data":    map[string]any{"user": viewOf(u)},
	})
}

func (h *handler) getSecurityQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if !decode(w, r, &req) || !h.check(w, &req, "Please provide a valid email") {
		return
	}
	q, err := h.users.SecurityQuestion(req.Email)
	switch {
	case errors.Is(err, ErrorNotFound):
		fail(w, http.StatusNotFound, "No account found with this email")
		return
	case err != nil:
		fail(w, http.StatusBadRequest, "No security question set for this account")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"securityQuestion": q},
	})
}

func (h *handler) verifySecurityAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email  string `json:"email" validate:"required,email"`
		Answer string `json:"answer" validate:"required"`
	}
	if !decode(w, r, &req) || !h.check(w, &req, "Please provide email and answer") {
		return
	}
	token, err := h.users.VerifyAnswer(req.Email, req.Answer)
	if err != nil {
		fail(w, http.StatusBadRequest, "Incorrect answer to security question")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "resetToken": token})
}

func (h *handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required"`
		Answer      string `json:"answer" validate:"required"`
	}
	if !decode(w, r, &req) || !h.check(w, &req, "Please provide token, new password and answer") {
		return
	}
	err := h.users.ResetPassword(req.Token, req.NewPassword, req.Answer)
	switch {
	case errors.Is(err, ErrorValidation):
		fail(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	case errors.Is(err, ErrorInvalidToken):
		fail(w, http.StatusBadRequest, "Reset token is invalid or has expired")
		return
	case err != nil:
		fail(w, http.StatusBadRequest, "Incorrect answer to security question")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Password has been reset"})
}

func (h *handler) setSecurityQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question        string `json:"question" validate:"required"`
		Answer          string `json:"answer" validate:"required"`
		CurrentPassword string `json:"currentPassword" validate:"required"`
	}
	if !decode(w, r, &req) || !h.check(w, &req, "Please provide question, answer and current password") {
		return
	}
	token, err := h.users.SetSecurityQuestion(currentUser(r).ID, req.Question, req.Answer, req.CurrentPassword)
	switch {
	case errors.Is(err, ErrorValidation):
		fail(w, http.StatusBadRequest, "Please provide question, answer and current password")
		return
	case errors.Is(err, ErrorInvalidCredentials):
		fail(w, http.StatusBadRequest, "Current password is incorrect")
		return
	case err != nil:
		h.log.Error(r.Context(), "set security question", "error", err)
		fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "token": token})
}

func (h *handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword" validate:"required"`
		NewPassword     string `json:"newPassword" validate:"required,min=6"`
	}
	if !decode(w, r, &req) || !h.check(w, &req, "Password must be at least 6 characters long") {
		return
	}
	token, err := h.users.UpdatePassword(currentUser(r).ID, req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, ErrorValidation):
		fail(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	case errors.Is(err, ErrorInvalidCredentials):
		fail(w, http.StatusBadRequest, "Current password is incorrect")
		return
	case err != nil:
		h.log.Error(r.Context(), "update password", "error", err)
		fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "token": token})
}

func (h *handler) reviewsWithVideo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"reviews": h.content.ReviewsWithVideo()},
	})
}

func (h *handler) reviewsWithoutVideo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"reviews": h.content.ReviewsWithoutVideo()},
	})
}

func (h *handler) faqs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"faqs": h.content.FAQs()},
	})
}

func (h *handler) videoReels(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"videoReels": h.content.Reels(category)},
	})
}
