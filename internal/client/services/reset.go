package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ResetStep is the position in the password recovery flow.
type ResetStep int

const (
	StepIdle ResetStep = iota
	StepEmailSubmitted
	StepQuestionVerified
	StepPasswordReset
	StepComplete
)

func (s ResetStep) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepEmailSubmitted:
		return "emailSubmitted"
	case StepQuestionVerified:
		return "securityQuestionVerified"
	case StepPasswordReset:
		return "passwordReset"
	case StepComplete:
		return "complete"
	}
	return fmt.Sprintf("ResetStep(%d)", int(s))
}

// ErrPasswordMismatch is returned when the confirmation differs.
var ErrPasswordMismatch = errors.New("passwords don't match")

// Recovery is the part of AuthService the reset flow needs.
type Recovery interface {
	GetSecurityQuestion(ctx context.Context, email string) (string, error)
	VerifySecurityQuestion(ctx context.Context, email, answer string) (string, error)
	ResetPasswordWithSecurity(ctx context.Context, resetToken, newPassword, answer string) error
}

// ResetFlow walks one account through security-question recovery:
// email, answer, new password. Going back to an earlier step is allowed and
// drops what the later steps collected. A failed step leaves the flow where
// it was.
type ResetFlow struct {
	rec Recovery

	mu         sync.Mutex
	step       ResetStep
	email      string
	question   string
	answer     string
	resetToken string
}

func NewResetFlow(rec Recovery) *ResetFlow {
	return &ResetFlow{rec: rec}
}

func (f *ResetFlow) Step() ResetStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Question is the security question fetched for the submitted email.
func (f *ResetFlow) Question() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.question
}

// Email is the account being recovered.
func (f *ResetFlow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

func stepErr(op string, at ResetStep) error {
	return fmt.Errorf("%w: %s at step %s", ErrFlowStep, op, at)
}

// SubmitEmail fetches the account's question. Allowed before the password
// has been reset.
func (f *ResetFlow) SubmitEmail(ctx context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step > StepQuestionVerified {
		return "", stepErr("submit email", f.step)
	}
	q, err := f.rec.GetSecurityQuestion(ctx, email)
	if err != nil {
		return "", err
	}
	f.wipe()
	f.step = StepEmailSubmitted
	f.email = email
	f.question = q
	return q, nil
}

// SubmitAnswer verifies the answer and keeps the reset token it yields.
func (f *ResetFlow) SubmitAnswer(ctx context.Context, answer string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepEmailSubmitted && f.step != StepQuestionVerified {
		return stepErr("submit answer", f.step)
	}
	token, err := f.rec.VerifySecurityQuestion(ctx, f.email, answer)
	if err != nil {
		return err
	}
	f.answer = answer
	f.resetToken = token
	f.step = StepQuestionVerified
	return nil
}

// SubmitNewPassword sets the new password using the held reset token.
func (f *ResetFlow) SubmitNewPassword(ctx context.Context, newPassword, confirm string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepQuestionVerified {
		return stepErr("submit new password", f.step)
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if err := f.rec.ResetPasswordWithSecurity(ctx, f.resetToken, newPassword, f.answer); err != nil {
		return err
	}
	f.step = StepPasswordReset
	f.answer = ""
	f.resetToken = ""
	return nil
}

// Finish acknowledges a successful reset.
func (f *ResetFlow) Finish() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepPasswordReset {
		return stepErr("finish", f.step)
	}
	f.wipe()
	f.step = StepComplete
	return nil
}

// Reset abandons the flow from any step.
func (f *ResetFlow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wipe()
	f.step = StepIdle
}

func (f *ResetFlow) wipe() {
	f.email = ""
	f.question = ""
	f.answer = ""
	f.resetToken = ""
}
