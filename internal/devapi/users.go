package devapi

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength matches the admin client's check.
const MinPasswordLength = 6

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
	Question     string
	AnswerHash   []byte
	// Generation is bumped to revoke all outstanding session tokens.
	Generation int
	CreatedAt  time.Time
}

// resetGrant is a reset token minted by a correct security answer. Only
// the latest grant per account is kept.
type resetGrant struct {
	token   string
	userID  string
	expires time.Time
}

// Users is the in-memory account service.
type Users struct {
	mu      sync.Mutex
	byID    map[string]*User
	byEmail map[string]*User
	grants  map[string]resetGrant // by user ID

	secret        []byte
	validity      time.Duration
	resetValidity time.Duration
	cost          int
	now           func() time.Time
}

func NewUsers(cfg *Config, cost int) *Users {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Users{
		byID:          map[string]*User{},
		byEmail:       map[string]*User{},
		grants:        map[string]resetGrant{},
		secret:        []byte(cfg.SecretKey),
		validity:      cfg.TokenValidity,
		resetValidity: cfg.ResetTokenValidity,
		cost:          cost,
		now:           time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Answers compare case- and space-insensitively.
func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

func (s *Users) hash(secret string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(secret), s.cost)
}

func matches(hash []byte, candidate string) bool {
	return len(hash) > 0 && bcrypt.CompareHashAndPassword(hash, []byte(candidate)) == nil
}

// Create registers an account. Used for seeding.
func (s *Users) Create(email, name, password string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < MinPasswordLength {
		return nil, ErrorValidation
	}
	hash, err := s.hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[email]; ok {
		return nil, ErrorAlreadyExists
	}
	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	s.byID[u.ID] = u
	s.byEmail[email] = u
	return u, nil
}

func (s *Users) issue(u *User) (string, error) {
	return GenerateToken(u.ID, u.Generation, s.secret, s.validity)
}

func (s *Users) Login(email, password string) (string, *User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byEmail[normalizeEmail(email)]
	if !ok || !matches(u.PasswordHash, password) {
		return "", nil, ErrorInvalidCredentials
	}
	token, err := s.issue(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Authenticate resolves a session token to its user.
func (s *Users) Authenticate(token string) (*User, error) {
	claims, err := ParseToken(token, s.secret)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[claims.UserID]
	if !ok || u.Generation != claims.Generation {
		return nil, ErrorInvalidToken
	}
	return u, nil
}

// Logout revokes every session token of the user.
func (s *Users) Logout(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byID[userID]; ok {
		u.Generation++
	}
}

func (s *Users) SecurityQuestion(email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return "", ErrorNotFound
	}
	if u.Question == "" {
		return "", ErrorValidation
	}
	return u.Question, nil
}

// VerifyAnswer checks the security answer and mints a reset token,
// replacing any earlier one for the account.
func (s *Users) VerifyAnswer(email, answer string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byEmail[normalizeEmail(email)]
	if !ok || u.Question == "" || !matches(u.AnswerHash, normalizeAnswer(answer)) {
		return "", ErrorInvalidCredentials
	}
	g := resetGrant{token: uuid.NewString(), userID: u.ID, expires: s.now().Add(s.resetValidity)}
	s.grants[u.ID] = g
	return g.token, nil
}

// ResetPassword consumes a reset token. The token must be the latest one
// minted for its account and the answer must still match.
func (s *Users) ResetPassword(token, newPassword, answer string) error {
	if len(newPassword) < MinPasswordLength {
		return ErrorValidation
	}
	hash, err := s.hash(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var grant resetGrant
	found := false
	for _, g := range s.grants {
		if token != "" && g.token == token {
			grant, found = g, true
			break
		}
	}
	if !found || s.now().After(grant.expires) {
		return ErrorInvalidToken
	}
	u := s.byID[grant.userID]
	if u == nil || !matches(u.AnswerHash, normalizeAnswer(answer)) {
		return ErrorInvalidCredentials
	}

	delete(s.grants, u.ID)
	u.PasswordHash = hash
	u.Generation++
	return nil
}

// SetSecurityQuestion replaces the recovery Q&A and re-issues the token.
func (s *Users) SetSecurityQuestion(userID, question, answer, currentPassword string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" || normalizeAnswer(answer) == "" {
		return "", ErrorValidation
	}
	hash, err := s.hash(normalizeAnswer(answer))
	if err != nil {
		return "", fmt.Errorf("error hashing answer: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[userID]
	if !ok {
		return "", ErrorNotFound
	}
	if !matches(u.PasswordHash, currentPassword) {
		return "", ErrorInvalidCredentials
	}
	u.Question = question
	u.AnswerHash = hash
	delete(s.grants, u.ID)
	return s.issue(u)
}

// UpdatePassword changes the password, revokes older tokens and returns a
// fresh one.
func (s *Users) UpdatePassword(userID, currentPassword, newPassword string) (string, error) {
	if len(newPassword) < MinPasswordLength {
		return "", ErrorValidation
	}
	hash, err := s.hash(newPassword)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[userID]
	if !ok {
		return "", ErrorNotFound
	}
	if !matches(u.PasswordHash, currentPassword) {
		return "", ErrorInvalidCredentials
	}
	u.PasswordHash = hash
	u.Generation++
	return s.issue(u)
}
