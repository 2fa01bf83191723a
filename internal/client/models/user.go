// Package models defines client-side data models used by the reeldesk CLI.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidUser is returned when a serialized user record is not a JSON object.
var ErrInvalidUser = errors.New("invalid user record")

// SecurityQuestion is the recovery question registered for an account.
// The answer never leaves the backend.
type SecurityQuestion struct {
	Question string `json:"question"`
}

// User is the account record returned by the backend.
type User struct {
	ID               string            `json:"id"`
	Email            string            `json:"email"`
	Name             string            `json:"name,omitempty"`
	SecurityQuestion *SecurityQuestion `json:"securityQuestion,omitempty"`
}

// HasSecurityQuestion reports whether a recovery question is configured.
func (u *User) HasSecurityQuestion() bool {
	return u != nil && u.SecurityQuestion != nil && u.SecurityQuestion.Question != ""
}

// Clone returns a deep copy of u, or nil.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.SecurityQuestion != nil {
		q := *u.SecurityQuestion
		c.SecurityQuestion = &q
	}
	return &c
}

// DisplayName prefers Name and falls back to Email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// UnmarshalJSON accepts the identifier as "id" or "_id", string or number.
func (u *User) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID               json.RawMessage   `json:"id"`
		MongoID          json.RawMessage   `json:"_id"`
		Email            string            `json:"email"`
		Name             string            `json:"name"`
		SecurityQuestion *SecurityQuestion `json:"securityQuestion"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	idRaw := raw.ID
	if len(idRaw) == 0 {
		idRaw = raw.MongoID
	}
	id, err := decodeID(idRaw)
	if err != nil {
		return err
	}

	*u = User{
		ID:               id,
		Email:            raw.Email,
		Name:             raw.Name,
		SecurityQuestion: raw.SecurityQuestion,
	}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("user id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}

// ParseUser decodes a persisted user record. Anything that is not a JSON
// object (including null) is rejected.
func ParseUser(data []byte) (*User, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, ErrInvalidUser
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}
	return &u, nil
}

// Credential is the pair persisted by the session store. Token and User are
// always written and removed together.
type Credential struct {
	Token string
	User  *User
}
